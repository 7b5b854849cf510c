package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crbill/internal/billing"
	"crbill/internal/domain"
	"crbill/internal/port"
)

// RecordPaymentInput is the DTO for recording a payment against one or more
// invoices of a developer.
type RecordPaymentInput struct {
	DeveloperID          uuid.UUID          `json:"developer_id" binding:"required"`
	InvoiceNumbers       []string           `json:"invoice_numbers" binding:"required,min=1"`
	Amount               decimal.Decimal    `json:"amount" binding:"required"`
	PaymentDate          time.Time          `json:"payment_date" binding:"required"`
	PaymentMode          domain.PaymentMode `json:"payment_mode" binding:"required"`
	TransactionReference string             `json:"transaction_reference"`
	Remarks              string             `json:"remarks"`
}

// PaymentService defines the payment recording contract.
type PaymentService interface {
	Record(ctx context.Context, input RecordPaymentInput) ([]domain.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	List(ctx context.Context, filters *domain.PaymentFilters) ([]domain.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentService struct {
	paymentRepo port.PaymentRepository
	invoiceRepo port.InvoiceRepository
	devRepo     port.DeveloperRepository
	email       port.EmailSender
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(
	paymentRepo port.PaymentRepository,
	invoiceRepo port.InvoiceRepository,
	devRepo port.DeveloperRepository,
	email port.EmailSender,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		devRepo:     devRepo,
		email:       email,
	}
}

// Record splits the amount across the selected invoices oldest-first, writes
// one payment row per share, and commits the reconciled balances atomically.
func (s *paymentService) Record(ctx context.Context, input RecordPaymentInput) ([]domain.Payment, error) {
	if !domain.ValidPaymentModes[input.PaymentMode] {
		return nil, domain.ErrInvalidPaymentMode
	}

	// An invoice listed twice must count its balance once, or the allocation
	// would overpay it.
	invoices := make([]domain.Invoice, 0, len(input.InvoiceNumbers))
	seen := make(map[string]bool, len(input.InvoiceNumbers))
	for _, number := range input.InvoiceNumbers {
		if seen[number] {
			continue
		}
		seen[number] = true
		inv, err := s.invoiceRepo.GetByNumber(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("payment.Record: %w", err)
		}
		if inv.DeveloperID != input.DeveloperID {
			return nil, domain.ErrForbidden
		}
		invoices = append(invoices, *inv)
	}

	allocations, err := billing.Allocate(invoices, input.Amount)
	if err != nil {
		return nil, err
	}

	byNumber := make(map[string]*domain.Invoice, len(invoices))
	for i := range invoices {
		byNumber[invoices[i].InvoiceNumber] = &invoices[i]
	}

	batchID := uuid.New()
	payments := make([]domain.Payment, 0, len(allocations))
	updated := make([]domain.Invoice, 0, len(allocations))
	for _, alloc := range allocations {
		inv := byNumber[alloc.InvoiceNumber]
		applied, err := billing.Apply(*inv, alloc.Amount)
		if err != nil {
			return nil, err
		}
		updated = append(updated, applied)
		payments = append(payments, domain.Payment{
			BatchID:              batchID,
			InvoiceNumber:        alloc.InvoiceNumber,
			DeveloperID:          input.DeveloperID,
			Amount:               alloc.Amount,
			PaymentDate:          input.PaymentDate,
			PaymentMode:          input.PaymentMode,
			TransactionReference: input.TransactionReference,
			Remarks:              input.Remarks,
		})
	}

	if err := s.paymentRepo.RecordBatch(ctx, payments, updated); err != nil {
		return nil, fmt.Errorf("payment.Record: %w", err)
	}

	s.notify(ctx, input.DeveloperID, input.Amount, allocations)

	return payments, nil
}

func (s *paymentService) notify(ctx context.Context, developerID uuid.UUID, amount decimal.Decimal, allocations []billing.Allocation) {
	dev, err := s.devRepo.GetByID(ctx, developerID)
	if err != nil {
		log.Printf("payment notification: developer lookup failed: %v", err)
		return
	}

	numbers := make([]string, len(allocations))
	for i, a := range allocations {
		numbers[i] = a.InvoiceNumber
	}
	if err := s.email.SendPaymentRecorded(ctx, dev.Email, dev.Name, billing.FormatINR(amount), numbers); err != nil {
		log.Printf("payment notification failed: %v", err)
	}
}

func (s *paymentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("payment.GetByID: %w", err)
	}
	return p, nil
}

func (s *paymentService) List(ctx context.Context, filters *domain.PaymentFilters) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("payment.List: %w", err)
	}
	return payments, nil
}

// Delete reverses one payment row: its amount goes back onto the invoice
// balance and the status reverts accordingly.
func (s *paymentService) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("payment.Delete: %w", err)
	}

	inv, err := s.invoiceRepo.GetByNumber(ctx, payment.InvoiceNumber)
	if err != nil {
		return fmt.Errorf("payment.Delete: %w", err)
	}

	restored, err := billing.Unapply(*inv, payment.Amount)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.DeleteWithReversal(ctx, id, &restored); err != nil {
		return fmt.Errorf("payment.Delete: %w", err)
	}
	return nil
}
