package port

import "context"

// EmailSender defines the contract for billing notifications.
type EmailSender interface {
	SendInvoiceIssued(ctx context.Context, toEmail, toName, invoiceNumber, netAmount string) error
	SendPaymentRecorded(ctx context.Context, toEmail, toName, amount string, invoiceNumbers []string) error
}
