package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"crbill/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender for billing notifications.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceIssued(ctx context.Context, toEmail, toName, invoiceNumber, netAmount string) error {
	subject := fmt.Sprintf("Invoice %s issued", invoiceNumber)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nInvoice %s has been issued for your completed change request.\nNet payable: %s\n\nThe invoice document is available from the billing console.\n",
		toName, invoiceNumber, netAmount)

	return s.send(ctx, toEmail, subject, textBody)
}

func (s *sesSender) SendPaymentRecorded(ctx context.Context, toEmail, toName, amount string, invoiceNumbers []string) error {
	subject := fmt.Sprintf("Payment of %s recorded", amount)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nA payment of %s was recorded against invoice(s) %s.\nThe updated balances are visible in the billing console.\n",
		toName, amount, strings.Join(invoiceNumbers, ", "))

	return s.send(ctx, toEmail, subject, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
