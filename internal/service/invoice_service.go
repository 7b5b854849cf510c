package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crbill/internal/billing"
	"crbill/internal/config"
	"crbill/internal/domain"
	"crbill/internal/port"
	"crbill/internal/xlsxexport"
)

// GenerateInvoiceInput is the DTO for generating an invoice from a billable CR.
type GenerateInvoiceInput struct {
	CRNumber      string          `json:"cr_number" binding:"required"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
	InvoiceDate   *time.Time      `json:"invoice_date"`
}

// InvoiceService defines the invoice lifecycle contract.
type InvoiceService interface {
	Generate(ctx context.Context, input GenerateInvoiceInput) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	List(ctx context.Context, filters *domain.InvoiceFilters) ([]domain.Invoice, error)
	MarkSent(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	DocumentURL(ctx context.Context, invoiceNumber string) (string, error)
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	crRepo      port.CRRepository
	devRepo     port.DeveloperRepository
	clientRepo  port.ClientRepository
	advanceRepo port.AdvanceRepository
	tdsRepo     port.TDSRepository
	storage     port.ObjectStorage
	email       port.EmailSender
	s3cfg       config.S3Config
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	crRepo port.CRRepository,
	devRepo port.DeveloperRepository,
	clientRepo port.ClientRepository,
	advanceRepo port.AdvanceRepository,
	tdsRepo port.TDSRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	s3cfg config.S3Config,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		crRepo:      crRepo,
		devRepo:     devRepo,
		clientRepo:  clientRepo,
		advanceRepo: advanceRepo,
		tdsRepo:     tdsRepo,
		storage:     storage,
		email:       email,
		s3cfg:       s3cfg,
	}
}

// Generate bills a Ready for Billing CR: gross from actual hours at the
// developer's rate, TDS frozen from the rate history as of the invoice date,
// requested advance consumed oldest-first from the developer's pending
// advances. The invoice insert, the CR's move to Billed, and the advance
// adjustments commit in one transaction.
func (s *invoiceService) Generate(ctx context.Context, input GenerateInvoiceInput) (*domain.Invoice, error) {
	cr, err := s.crRepo.GetByNumber(ctx, input.CRNumber)
	if err != nil {
		return nil, fmt.Errorf("invoice.Generate: %w", err)
	}
	if cr.Status != domain.CRStatusReadyForBilling || cr.ActualHours == nil {
		return nil, domain.ErrCRNotBillable
	}

	dev, err := s.devRepo.GetByID(ctx, cr.DeveloperID)
	if err != nil {
		return nil, fmt.Errorf("invoice.Generate: %w", err)
	}
	client, err := s.clientRepo.GetByID(ctx, cr.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invoice.Generate: %w", err)
	}

	invoiceDate := time.Now().UTC()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	history, err := s.tdsRepo.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoice.Generate: %w", err)
	}
	rate, err := billing.ResolveRate(history, invoiceDate)
	if err != nil {
		return nil, err
	}

	advance := input.AdvanceAmount
	if advance.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	if advance.IsPositive() {
		pending, err := s.advanceRepo.PendingTotal(ctx, cr.DeveloperID)
		if err != nil {
			return nil, fmt.Errorf("invoice.Generate: %w", err)
		}
		if advance.GreaterThan(pending) {
			return nil, domain.ErrAdvanceExceedsAvailable
		}
	}

	gross := billing.Round2(cr.ActualHours.Mul(dev.HourlyRate))
	comp, err := billing.Compute(gross, rate, advance)
	if err != nil {
		return nil, err
	}

	seq, err := s.invoiceRepo.NextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoice.Generate: %w", err)
	}

	inv := &domain.Invoice{
		InvoiceNumber:   fmt.Sprintf("INV-%d-%04d", invoiceDate.Year(), seq),
		CRNumber:        cr.CRNumber,
		ClientID:        cr.ClientID,
		DeveloperID:     cr.DeveloperID,
		InvoiceDate:     invoiceDate,
		HoursBilled:     *cr.ActualHours,
		GrossAmount:     gross,
		TDSPercentage:   rate,
		TDSAmount:       comp.TDSAmount,
		AdvanceAdjusted: advance,
		NetAmount:       comp.NetAmount,
		BalanceAmount:   comp.NetAmount,
		Status:          domain.InvoiceStatusGenerated,
	}
	// The advance can cover the whole net. Balance zero means paid, even at
	// birth.
	if billing.Classify(inv.NetAmount, inv.BalanceAmount) == billing.FullyPaid {
		inv.Status = domain.InvoiceStatusPaid
	}

	consumed, remainder, err := s.consumeAdvances(ctx, cr.DeveloperID, advance)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.CreateWithBilling(ctx, inv, consumed, remainder); err != nil {
		return nil, fmt.Errorf("invoice.Generate: %w", err)
	}

	s.archiveDocument(ctx, inv, cr, dev, client)

	if err := s.email.SendInvoiceIssued(ctx, dev.Email, dev.Name, inv.InvoiceNumber, billing.FormatINR(inv.NetAmount)); err != nil {
		log.Printf("invoice %s: issue notification failed: %v", inv.InvoiceNumber, err)
	}

	return inv, nil
}

// consumeAdvances walks the developer's pending advances oldest-first until
// the requested amount is covered. A row consumed only in part is split: the
// consumed slice carries it with the reduced amount, and the rest comes back
// as a fresh pending row.
func (s *invoiceService) consumeAdvances(ctx context.Context, developerID uuid.UUID, amount decimal.Decimal) ([]domain.Advance, *domain.Advance, error) {
	if !amount.IsPositive() {
		return nil, nil, nil
	}

	pending, err := s.advanceRepo.PendingOldestFirst(ctx, developerID)
	if err != nil {
		return nil, nil, fmt.Errorf("invoice.consumeAdvances: %w", err)
	}

	var consumed []domain.Advance
	var remainder *domain.Advance
	remaining := amount
	for i := range pending {
		if remaining.IsZero() {
			break
		}
		a := pending[i]
		if a.Amount.GreaterThan(remaining) {
			rest := a.Amount.Sub(remaining)
			a.Amount = remaining
			remainder = &domain.Advance{
				ID:          uuid.New(),
				DeveloperID: a.DeveloperID,
				AdvanceDate: a.AdvanceDate,
				Amount:      rest,
				Purpose:     a.Purpose,
				Status:      domain.AdvanceStatusPending,
			}
		}
		remaining = remaining.Sub(a.Amount)
		consumed = append(consumed, a)
	}
	if remaining.IsPositive() {
		return nil, nil, domain.ErrAdvanceExceedsAvailable
	}
	return consumed, remainder, nil
}

// archiveDocument uploads the invoice workbook to the archive bucket. The
// invoice is already committed; archival failures are logged and the document
// stays fetchable via regeneration.
func (s *invoiceService) archiveDocument(ctx context.Context, inv *domain.Invoice, cr *domain.ChangeRequest, dev *domain.Developer, client *domain.Client) {
	buf, err := xlsxexport.InvoiceWorkbook(inv, cr, dev, client)
	if err != nil {
		log.Printf("invoice %s: workbook render failed: %v", inv.InvoiceNumber, err)
		return
	}

	key := fmt.Sprintf("invoices/%d/%s.xlsx", inv.InvoiceDate.Year(), inv.InvoiceNumber)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        buf,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if err != nil {
		log.Printf("invoice %s: archive upload failed: %v", inv.InvoiceNumber, err)
		return
	}

	if err := s.invoiceRepo.SetDocumentKey(ctx, inv.InvoiceNumber, key); err != nil {
		log.Printf("invoice %s: document key update failed: %v", inv.InvoiceNumber, err)
		return
	}
	inv.DocumentKey = key
}

func (s *invoiceService) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("invoice.GetByNumber: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) List(ctx context.Context, filters *domain.InvoiceFilters) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("invoice.List: %w", err)
	}
	return invoices, nil
}

// MarkSent moves a Generated invoice to Sent. Paid states are derived from
// payments and never set through this path.
func (s *invoiceService) MarkSent(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("invoice.MarkSent: %w", err)
	}
	if inv.Status != domain.InvoiceStatusGenerated {
		return nil, domain.ErrInvalidStatusTransition
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, invoiceNumber, domain.InvoiceStatusSent); err != nil {
		return nil, fmt.Errorf("invoice.MarkSent: %w", err)
	}
	inv.Status = domain.InvoiceStatusSent
	return inv, nil
}

func (s *invoiceService) DocumentURL(ctx context.Context, invoiceNumber string) (string, error) {
	inv, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return "", fmt.Errorf("invoice.DocumentURL: %w", err)
	}
	if inv.DocumentKey == "" {
		return "", domain.ErrDocumentNotArchived
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, inv.DocumentKey, s.s3cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("invoice.DocumentURL: %w", err)
	}
	return url, nil
}
