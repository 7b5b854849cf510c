package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crbill/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 12)
	assert.Equal(t, "Invoice Number", row[0])
	assert.Equal(t, "Created At", row[11])
}

func TestWriteInvoices(t *testing.T) {
	inv := domain.Invoice{
		InvoiceNumber:   "INV-2026-0007",
		CRNumber:        "CR-2026-0001",
		InvoiceDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		HoursBilled:     decimal.RequireFromString("50"),
		GrossAmount:     decimal.RequireFromString("10000"),
		TDSPercentage:   decimal.RequireFromString("10"),
		TDSAmount:       decimal.RequireFromString("1000"),
		AdvanceAdjusted: decimal.RequireFromString("1000"),
		NetAmount:       decimal.RequireFromString("8000"),
		BalanceAmount:   decimal.RequireFromString("8000"),
		Status:          domain.InvoiceStatusGenerated,
		CreatedAt:       time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteInvoices([]domain.Invoice{inv}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "INV-2026-0007", row[0])
	assert.Equal(t, "2026-03-15", row[2])
	assert.Equal(t, "10000.00", row[4])
	assert.Equal(t, "8000.00", row[9])
	assert.Equal(t, string(domain.InvoiceStatusGenerated), row[10])
}
