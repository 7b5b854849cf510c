package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crbill/internal/billing"
	"crbill/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCompute_GrossTDSAdvance(t *testing.T) {
	got, err := billing.Compute(dec("10000"), dec("10"), dec("1000"))
	require.NoError(t, err)
	assert.True(t, got.TDSAmount.Equal(dec("1000.00")), "tds = %s", got.TDSAmount)
	assert.True(t, got.NetAmount.Equal(dec("8000.00")), "net = %s", got.NetAmount)
}

func TestCompute_AmountsSumBackToGross(t *testing.T) {
	cases := []struct{ gross, pct, advance string }{
		{"10000", "10", "1000"},
		{"9999.99", "7.5", "0"},
		{"123456.78", "2", "456.78"},
		{"0", "10", "0"},
		{"500", "0", "500"},
	}
	for _, tc := range cases {
		got, err := billing.Compute(dec(tc.gross), dec(tc.pct), dec(tc.advance))
		require.NoError(t, err, "gross=%s pct=%s adv=%s", tc.gross, tc.pct, tc.advance)

		sum := got.NetAmount.Add(got.TDSAmount).Add(dec(tc.advance))
		diff := sum.Sub(dec(tc.gross)).Abs()
		assert.True(t, diff.LessThanOrEqual(dec("0.01")),
			"net+tds+advance=%s should equal gross=%s", sum, tc.gross)
	}
}

func TestCompute_Rejections(t *testing.T) {
	_, err := billing.Compute(dec("-1"), dec("10"), dec("0"))
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	_, err = billing.Compute(dec("100"), dec("10"), dec("-5"))
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	_, err = billing.Compute(dec("100"), dec("101"), dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidPercentage)

	_, err = billing.Compute(dec("100"), dec("10"), dec("150"))
	assert.ErrorIs(t, err, domain.ErrAdvanceExceedsAvailable)
}

func TestResolveRate_PicksLatestEffectiveOnOrBefore(t *testing.T) {
	history := []domain.TDSRate{
		{EffectiveDate: day("2024-01-01"), Percentage: dec("10")},
		{EffectiveDate: day("2024-06-01"), Percentage: dec("8")},
	}

	rate, err := billing.ResolveRate(history, day("2024-03-15"))
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("10")))

	rate, err = billing.ResolveRate(history, day("2024-07-01"))
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("8")))

	// Boundary: a rate effective exactly on the invoice date applies.
	rate, err = billing.ResolveRate(history, day("2024-06-01"))
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("8")))
}

func TestResolveRate_NoApplicableRate(t *testing.T) {
	history := []domain.TDSRate{
		{EffectiveDate: day("2024-06-01"), Percentage: dec("8")},
	}
	_, err := billing.ResolveRate(history, day("2024-01-15"))
	assert.ErrorIs(t, err, domain.ErrNoApplicableTDSRate)

	_, err = billing.ResolveRate(nil, day("2024-01-15"))
	assert.ErrorIs(t, err, domain.ErrNoApplicableTDSRate)
}

func TestResolveRate_TieBreaksToLatestInserted(t *testing.T) {
	older := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	history := []domain.TDSRate{
		{EffectiveDate: day("2024-06-01"), Percentage: dec("8"), CreatedAt: newer},
		{EffectiveDate: day("2024-06-01"), Percentage: dec("10"), CreatedAt: older},
	}
	rate, err := billing.ResolveRate(history, day("2024-07-01"))
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("8")))
}

func TestResolveRate_ZonedEffectiveDateBoundary(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	history := []domain.TDSRate{
		{EffectiveDate: time.Date(2024, 6, 1, 0, 0, 0, 0, ist), Percentage: dec("8")},
	}

	// Late on May 31 UTC the June 1 rate must not apply yet, even though the
	// zoned timestamp reads 18:30 UTC the previous evening.
	_, err := billing.ResolveRate(history, time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrNoApplicableTDSRate)

	// On its own calendar day the rate applies regardless of zone.
	rate, err := billing.ResolveRate(history, time.Date(2024, 6, 1, 0, 30, 0, 0, ist))
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("8")))
}

func invoiceWith(net, balance string) domain.Invoice {
	return domain.Invoice{
		InvoiceNumber: "INV-001",
		NetAmount:     dec(net),
		BalanceAmount: dec(balance),
		Status:        domain.InvoiceStatusSent,
	}
}

func TestApply_PartialThenUnapplyKeepsPartial(t *testing.T) {
	inv := invoiceWith("8000", "8000")

	inv, err := billing.Apply(inv, dec("3000"))
	require.NoError(t, err)
	inv, err = billing.Apply(inv, dec("2000"))
	require.NoError(t, err)

	assert.True(t, inv.BalanceAmount.Equal(dec("3000")))
	assert.Equal(t, domain.InvoiceStatusPartiallyPaid, inv.Status)

	inv, err = billing.Unapply(inv, dec("2000"))
	require.NoError(t, err)
	assert.True(t, inv.BalanceAmount.Equal(dec("5000")))
	assert.Equal(t, domain.InvoiceStatusPartiallyPaid, inv.Status)
}

func TestApply_FullPaymentMarksPaid(t *testing.T) {
	inv := invoiceWith("5000", "5000")

	inv, err := billing.Apply(inv, dec("5000"))
	require.NoError(t, err)
	assert.True(t, inv.BalanceAmount.IsZero())
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
}

func TestApply_RejectsOverpaymentAndPaidInvoices(t *testing.T) {
	inv := invoiceWith("5000", "1000")
	_, err := billing.Apply(inv, dec("1500"))
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)

	paid := invoiceWith("5000", "0")
	paid.Status = domain.InvoiceStatusPaid
	_, err = billing.Apply(paid, dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvoiceAlreadyPaid)
}

func TestUnapply_NeverRaisesBalanceAboveNet(t *testing.T) {
	inv := invoiceWith("5000", "4000")
	_, err := billing.Unapply(inv, dec("2000"))
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)
}

func TestUnapply_FullReversalRestoresWorkflowStatus(t *testing.T) {
	inv := invoiceWith("5000", "5000")

	inv, err := billing.Apply(inv, dec("5000"))
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceStatusPaid, inv.Status)

	inv, err = billing.Unapply(inv, dec("5000"))
	require.NoError(t, err)
	assert.True(t, inv.BalanceAmount.Equal(dec("5000")))
	assert.Equal(t, domain.InvoiceStatusSent, inv.Status)
}

func TestApplyUnapply_DeleteThenReapplyIsIdempotent(t *testing.T) {
	inv := invoiceWith("8000", "8000")

	inv, err := billing.Apply(inv, dec("3000"))
	require.NoError(t, err)
	before := inv

	inv, err = billing.Unapply(inv, dec("3000"))
	require.NoError(t, err)
	inv, err = billing.Apply(inv, dec("3000"))
	require.NoError(t, err)

	assert.True(t, inv.BalanceAmount.Equal(before.BalanceAmount))
	assert.Equal(t, before.Status, inv.Status)
}

func TestApply_Monotonicity(t *testing.T) {
	inv := invoiceWith("8000", "8000")
	amounts := []string{"100", "250.50", "4000", "1"}
	for _, a := range amounts {
		prev := inv.BalanceAmount
		next, err := billing.Apply(inv, dec(a))
		require.NoError(t, err)
		assert.True(t, next.BalanceAmount.LessThanOrEqual(prev),
			"applying %s must not increase balance", a)
		inv = next
	}
}

func TestAggregate_PartitionAndTotals(t *testing.T) {
	invoices := []domain.Invoice{
		{NetAmount: dec("1000"), BalanceAmount: dec("0")},
		{NetAmount: dec("2000"), BalanceAmount: dec("2000")},
		{NetAmount: dec("500"), BalanceAmount: dec("200")},
	}

	s := billing.Aggregate(invoices)
	assert.Equal(t, 1, s.FullyPaidCount)
	assert.Equal(t, 1, s.PartiallyPaidCount)
	assert.Equal(t, 1, s.UnpaidCount)
	assert.Equal(t, len(invoices), s.FullyPaidCount+s.PartiallyPaidCount+s.UnpaidCount)
	assert.True(t, s.BalancePayable.Equal(dec("2200")))
	assert.True(t, s.TotalInvoiced.Equal(dec("3500")))
	assert.True(t, s.TotalPaid.Equal(dec("1300")))
}

func TestAggregate_SumsFinancialFields(t *testing.T) {
	invoices := []domain.Invoice{
		{
			GrossAmount: dec("10000"), TDSAmount: dec("1000"),
			AdvanceAdjusted: dec("1000"), NetAmount: dec("8000"), BalanceAmount: dec("8000"),
		},
		{
			GrossAmount: dec("5000"), TDSAmount: dec("500"),
			AdvanceAdjusted: dec("0"), NetAmount: dec("4500"), BalanceAmount: dec("0"),
		},
	}

	s := billing.Aggregate(invoices)
	assert.True(t, s.GrossBilled.Equal(dec("15000")))
	assert.True(t, s.TotalTDS.Equal(dec("1500")))
	assert.True(t, s.AdvancesAdjusted.Equal(dec("1000")))
	assert.True(t, s.TotalInvoiced.Equal(dec("12500")))
	assert.True(t, s.TotalPaid.Equal(dec("4500")))
	assert.True(t, s.BalancePayable.Equal(dec("8000")))
}

func TestAllocate_OldestFirst(t *testing.T) {
	invoices := []domain.Invoice{
		{InvoiceNumber: "INV-003", InvoiceDate: day("2024-03-01"), BalanceAmount: dec("1000")},
		{InvoiceNumber: "INV-001", InvoiceDate: day("2024-01-01"), BalanceAmount: dec("2000")},
		{InvoiceNumber: "INV-002", InvoiceDate: day("2024-02-01"), BalanceAmount: dec("500")},
	}

	shares, err := billing.Allocate(invoices, dec("2300"))
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "INV-001", shares[0].InvoiceNumber)
	assert.True(t, shares[0].Amount.Equal(dec("2000")))
	assert.Equal(t, "INV-002", shares[1].InvoiceNumber)
	assert.True(t, shares[1].Amount.Equal(dec("300")))
}

func TestAllocate_RejectsAmountAboveSetBalance(t *testing.T) {
	invoices := []domain.Invoice{
		{InvoiceNumber: "INV-001", InvoiceDate: day("2024-01-01"), BalanceAmount: dec("100")},
	}
	_, err := billing.Allocate(invoices, dec("101"))
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsBalance)

	_, err = billing.Allocate(invoices, dec("0"))
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹0.00", billing.FormatINR(decimal.Zero))
	assert.Equal(t, "₹500.00", billing.FormatINR(dec("500")))
	assert.Equal(t, "₹1,000.00", billing.FormatINR(dec("1000")))
	assert.Equal(t, "₹12,34,567.89", billing.FormatINR(dec("1234567.89")))
	assert.Equal(t, "₹1,00,00,000.00", billing.FormatINR(dec("10000000")))
	assert.Equal(t, "-₹1,234.50", billing.FormatINR(dec("-1234.5")))
}
