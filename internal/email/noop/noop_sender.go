package noop

import (
	"context"
	"log"
	"strings"

	"crbill/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceIssued(_ context.Context, toEmail, toName, invoiceNumber, netAmount string) error {
	log.Printf("[NOOP EMAIL] Invoice %s issued to %s (%s), net %s", invoiceNumber, toName, toEmail, netAmount)
	return nil
}

func (s *noopSender) SendPaymentRecorded(_ context.Context, toEmail, toName, amount string, invoiceNumbers []string) error {
	log.Printf("[NOOP EMAIL] Payment %s recorded for %s (%s) against %s", amount, toName, toEmail, strings.Join(invoiceNumbers, ", "))
	return nil
}
