package csvexport

import (
	"encoding/csv"
	"io"
	"time"

	"crbill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row for the invoice register.
var columns = []string{
	"Invoice Number",
	"CR Number",
	"Invoice Date",
	"Hours Billed",
	"Gross Amount",
	"TDS %",
	"TDS Amount",
	"Advance Adjusted",
	"Net Amount",
	"Balance Amount",
	"Status",
	"Created At",
}

// Writer wraps csv.Writer for exporting the invoice register as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		row := invoiceToRow(&invoices[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.Invoice) []string {
	row := make([]string, len(columns))
	row[0] = inv.InvoiceNumber
	row[1] = inv.CRNumber
	row[2] = inv.InvoiceDate.Format("2006-01-02")
	row[3] = inv.HoursBilled.StringFixed(2)
	row[4] = inv.GrossAmount.StringFixed(2)
	row[5] = inv.TDSPercentage.StringFixed(2)
	row[6] = inv.TDSAmount.StringFixed(2)
	row[7] = inv.AdvanceAdjusted.StringFixed(2)
	row[8] = inv.NetAmount.StringFixed(2)
	row[9] = inv.BalanceAmount.StringFixed(2)
	row[10] = string(inv.Status)
	row[11] = inv.CreatedAt.Format(time.RFC3339)
	return row
}
