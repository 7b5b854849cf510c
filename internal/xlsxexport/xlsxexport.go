// Package xlsxexport renders invoices and billing reports as Excel workbooks.
package xlsxexport

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"crbill/internal/billing"
	"crbill/internal/domain"
)

const dateLayout = "02-Jan-2006"

// InvoiceWorkbook renders a single invoice as a one-sheet workbook. The
// layout mirrors the printed invoice: parties at the top, the billed line in
// the middle, the deduction waterfall at the bottom.
func InvoiceWorkbook(inv *domain.Invoice, cr *domain.ChangeRequest, dev *domain.Developer, client *domain.Client) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Invoice"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rows := [][2]string{
		{"Invoice Number", inv.InvoiceNumber},
		{"Invoice Date", inv.InvoiceDate.Format(dateLayout)},
		{"", ""},
		{"Billed To", client.OrganizationName},
		{"GSTIN", client.GSTIN},
		{"Developer", dev.Name},
		{"PAN", dev.PAN},
		{"", ""},
		{"Change Request", cr.CRNumber},
		{"Title", cr.Title},
		{"Hours Billed", inv.HoursBilled.String()},
		{"Hourly Rate", billing.FormatINR(dev.HourlyRate)},
		{"", ""},
		{"Gross Amount", billing.FormatINR(inv.GrossAmount)},
		{fmt.Sprintf("Less: TDS @ %s%%", inv.TDSPercentage.String()), billing.FormatINR(inv.TDSAmount)},
		{"Less: Advance Adjusted", billing.FormatINR(inv.AdvanceAdjusted)},
		{"Net Payable", billing.FormatINR(inv.NetAmount)},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("xlsxexport.InvoiceWorkbook: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{row[0], row[1]}); err != nil {
			return nil, fmt.Errorf("xlsxexport.InvoiceWorkbook: %w", err)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.InvoiceWorkbook: %w", err)
	}
	return buf, nil
}

// Register renders a set of invoices as a tabular register with a totals row.
// Used by the invoice export and the monthly report download.
func Register(title string, invoices []domain.Invoice) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Register"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := []interface{}{
		"Invoice Number", "CR Number", "Invoice Date", "Hours",
		"Gross", "TDS %", "TDS", "Advance Adjusted", "Net", "Paid", "Balance", "Status",
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{title}); err != nil {
		return nil, fmt.Errorf("xlsxexport.Register: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return nil, fmt.Errorf("xlsxexport.Register: %w", err)
	}

	for i := range invoices {
		inv := &invoices[i]
		paid := inv.NetAmount.Sub(inv.BalanceAmount)
		row := []interface{}{
			inv.InvoiceNumber,
			inv.CRNumber,
			inv.InvoiceDate.Format(dateLayout),
			inv.HoursBilled.String(),
			inv.GrossAmount.StringFixed(2),
			inv.TDSPercentage.String(),
			inv.TDSAmount.StringFixed(2),
			inv.AdvanceAdjusted.StringFixed(2),
			inv.NetAmount.StringFixed(2),
			paid.StringFixed(2),
			inv.BalanceAmount.StringFixed(2),
			string(inv.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, fmt.Errorf("xlsxexport.Register: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsxexport.Register: %w", err)
		}
	}

	s := billing.Aggregate(invoices)
	totalsCell, err := excelize.CoordinatesToCellName(1, len(invoices)+5)
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.Register: %w", err)
	}
	totals := []interface{}{
		"Totals", "", "", "",
		s.GrossBilled.StringFixed(2),
		"",
		s.TotalTDS.StringFixed(2),
		s.AdvancesAdjusted.StringFixed(2),
		s.TotalInvoiced.StringFixed(2),
		s.TotalPaid.StringFixed(2),
		s.BalancePayable.StringFixed(2),
		"",
	}
	if err := f.SetSheetRow(sheet, totalsCell, &totals); err != nil {
		return nil, fmt.Errorf("xlsxexport.Register: %w", err)
	}

	_ = f.SetColWidth(sheet, "A", "L", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.Register: %w", err)
	}
	return buf, nil
}
