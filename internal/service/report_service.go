package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crbill/internal/billing"
	"crbill/internal/csvexport"
	"crbill/internal/domain"
	"crbill/internal/port"
	"crbill/internal/xlsxexport"
)

// Dashboard is the admin landing view: billing totals across all invoices
// plus the CR pipeline breakdown.
type Dashboard struct {
	Billing    billing.Summary        `json:"billing"`
	CRPipeline []domain.CRStatusCount `json:"cr_pipeline"`
}

// DeveloperSummary is one developer's billing position.
type DeveloperSummary struct {
	Developer       *domain.Developer `json:"developer"`
	Billing         billing.Summary   `json:"billing"`
	PendingAdvances decimal.Decimal   `json:"pending_advances"`
}

// MonthlyReport is the billing summary for one calendar month.
type MonthlyReport struct {
	Month    time.Month       `json:"month"`
	Year     int              `json:"year"`
	Billing  billing.Summary  `json:"billing"`
	Invoices []domain.Invoice `json:"invoices"`
}

// ReportService defines the reporting contract.
type ReportService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	DeveloperSummary(ctx context.Context, developerID uuid.UUID) (*DeveloperSummary, error)
	Outstanding(ctx context.Context) ([]domain.OutstandingRow, error)
	Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error)
	ExportInvoices(ctx context.Context, filters *domain.InvoiceFilters) (*bytes.Buffer, error)
	ExportInvoicesCSV(ctx context.Context, filters *domain.InvoiceFilters) (*bytes.Buffer, error)
}

type reportService struct {
	reportRepo  port.ReportRepository
	invoiceRepo port.InvoiceRepository
	crRepo      port.CRRepository
	devRepo     port.DeveloperRepository
	advanceRepo port.AdvanceRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	reportRepo port.ReportRepository,
	invoiceRepo port.InvoiceRepository,
	crRepo port.CRRepository,
	devRepo port.DeveloperRepository,
	advanceRepo port.AdvanceRepository,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		invoiceRepo: invoiceRepo,
		crRepo:      crRepo,
		devRepo:     devRepo,
		advanceRepo: advanceRepo,
	}
}

func (s *reportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	invoices, err := s.invoiceRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("report.Dashboard: %w", err)
	}
	pipeline, err := s.crRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("report.Dashboard: %w", err)
	}

	return &Dashboard{
		Billing:    billing.Aggregate(invoices),
		CRPipeline: pipeline,
	}, nil
}

func (s *reportService) DeveloperSummary(ctx context.Context, developerID uuid.UUID) (*DeveloperSummary, error) {
	dev, err := s.devRepo.GetByID(ctx, developerID)
	if err != nil {
		return nil, fmt.Errorf("report.DeveloperSummary: %w", err)
	}

	invoices, err := s.invoiceRepo.List(ctx, &domain.InvoiceFilters{DeveloperID: &developerID})
	if err != nil {
		return nil, fmt.Errorf("report.DeveloperSummary: %w", err)
	}

	pending, err := s.advanceRepo.PendingTotal(ctx, developerID)
	if err != nil {
		return nil, fmt.Errorf("report.DeveloperSummary: %w", err)
	}

	return &DeveloperSummary{
		Developer:       dev,
		Billing:         billing.Aggregate(invoices),
		PendingAdvances: pending,
	}, nil
}

func (s *reportService) Outstanding(ctx context.Context) ([]domain.OutstandingRow, error) {
	rows, err := s.reportRepo.Outstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("report.Outstanding: %w", err)
	}
	return rows, nil
}

func (s *reportService) Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	invoices, err := s.invoiceRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("report.Monthly: %w", err)
	}

	var inMonth []domain.Invoice
	for i := range invoices {
		d := invoices[i].InvoiceDate
		if d.Year() == year && d.Month() == month {
			inMonth = append(inMonth, invoices[i])
		}
	}

	return &MonthlyReport{
		Month:    month,
		Year:     year,
		Billing:  billing.Aggregate(inMonth),
		Invoices: inMonth,
	}, nil
}

func (s *reportService) ExportInvoices(ctx context.Context, filters *domain.InvoiceFilters) (*bytes.Buffer, error) {
	invoices, err := s.invoiceRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("report.ExportInvoices: %w", err)
	}

	buf, err := xlsxexport.Register("Invoice Register", invoices)
	if err != nil {
		return nil, fmt.Errorf("report.ExportInvoices: %w", err)
	}
	return buf, nil
}

func (s *reportService) ExportInvoicesCSV(ctx context.Context, filters *domain.InvoiceFilters) (*bytes.Buffer, error) {
	invoices, err := s.invoiceRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("report.ExportInvoicesCSV: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, fmt.Errorf("report.ExportInvoicesCSV: %w", err)
	}
	if err := w.WriteInvoices(invoices); err != nil {
		return nil, fmt.Errorf("report.ExportInvoicesCSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("report.ExportInvoicesCSV: %w", err)
	}
	return &buf, nil
}
