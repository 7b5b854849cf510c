package billing

import (
	"sort"

	"github.com/shopspring/decimal"

	"crbill/internal/domain"
)

// Summary is the reduction of a set of invoices into dashboard totals.
type Summary struct {
	GrossBilled        decimal.Decimal `json:"gross_billed"`
	TotalTDS           decimal.Decimal `json:"total_tds"`
	AdvancesAdjusted   decimal.Decimal `json:"advances_adjusted"`
	TotalInvoiced      decimal.Decimal `json:"total_invoiced"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	BalancePayable     decimal.Decimal `json:"balance_payable"`
	FullyPaidCount     int             `json:"fully_paid_count"`
	PartiallyPaidCount int             `json:"partially_paid_count"`
	UnpaidCount        int             `json:"unpaid_count"`
}

// Aggregate sums the per-invoice amounts and classifies each invoice into
// exactly one of the fully/partially/unpaid buckets, so the three counts
// always total len(invoices).
func Aggregate(invoices []domain.Invoice) Summary {
	var s Summary
	s.GrossBilled = decimal.Zero
	s.TotalTDS = decimal.Zero
	s.AdvancesAdjusted = decimal.Zero
	s.TotalInvoiced = decimal.Zero
	s.TotalPaid = decimal.Zero
	s.BalancePayable = decimal.Zero

	for i := range invoices {
		inv := &invoices[i]
		s.GrossBilled = s.GrossBilled.Add(inv.GrossAmount)
		s.TotalTDS = s.TotalTDS.Add(inv.TDSAmount)
		s.AdvancesAdjusted = s.AdvancesAdjusted.Add(inv.AdvanceAdjusted)
		s.TotalInvoiced = s.TotalInvoiced.Add(inv.NetAmount)
		s.TotalPaid = s.TotalPaid.Add(inv.NetAmount.Sub(inv.BalanceAmount))
		s.BalancePayable = s.BalancePayable.Add(inv.BalanceAmount)

		switch Classify(inv.NetAmount, inv.BalanceAmount) {
		case FullyPaid:
			s.FullyPaidCount++
		case PartiallyPaid:
			s.PartiallyPaidCount++
		default:
			s.UnpaidCount++
		}
	}

	s.GrossBilled = Round2(s.GrossBilled)
	s.TotalTDS = Round2(s.TotalTDS)
	s.AdvancesAdjusted = Round2(s.AdvancesAdjusted)
	s.TotalInvoiced = Round2(s.TotalInvoiced)
	s.TotalPaid = Round2(s.TotalPaid)
	s.BalancePayable = Round2(s.BalancePayable)
	return s
}

// Allocation is one invoice's share of a distributed payment.
type Allocation struct {
	InvoiceNumber string
	Amount        decimal.Decimal
}

// Allocate splits one payment amount across invoices oldest-first (by
// invoice date, then invoice number), each invoice absorbing up to its
// outstanding balance. The caller selects the invoice set; Allocate rejects
// amounts above the set's summed balance. Zero shares are omitted.
func Allocate(invoices []domain.Invoice, amount decimal.Decimal) ([]Allocation, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, domain.ErrNegativeAmount
	}

	ordered := make([]domain.Invoice, len(invoices))
	copy(ordered, invoices)
	sort.Slice(ordered, func(i, j int) bool {
		return invoiceBefore(&ordered[i], &ordered[j])
	})

	total := decimal.Zero
	for i := range ordered {
		total = total.Add(ordered[i].BalanceAmount)
	}
	if amount.GreaterThan(total) {
		return nil, domain.ErrPaymentExceedsBalance
	}

	var out []Allocation
	remaining := amount
	for i := range ordered {
		if remaining.IsZero() {
			break
		}
		share := decimal.Min(remaining, ordered[i].BalanceAmount)
		if share.IsZero() {
			continue
		}
		out = append(out, Allocation{
			InvoiceNumber: ordered[i].InvoiceNumber,
			Amount:        Round2(share),
		})
		remaining = remaining.Sub(share)
	}
	return out, nil
}

func invoiceBefore(a, b *domain.Invoice) bool {
	if !a.InvoiceDate.Equal(b.InvoiceDate) {
		return a.InvoiceDate.Before(b.InvoiceDate)
	}
	return a.InvoiceNumber < b.InvoiceNumber
}
