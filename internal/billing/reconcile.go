package billing

import (
	"github.com/shopspring/decimal"

	"crbill/internal/domain"
)

// PaidState classifies an invoice by how much of its net amount has been
// received. The three states partition every invoice exactly once.
type PaidState int

const (
	Unpaid PaidState = iota
	PartiallyPaid
	FullyPaid
)

// Classify returns the paid state for an invoice given its net and balance.
func Classify(net, balance decimal.Decimal) PaidState {
	if balance.IsZero() {
		return FullyPaid
	}
	if balance.LessThan(net) {
		return PartiallyPaid
	}
	return Unpaid
}

// statusAfter maps the reconciled paid state back onto the invoice status,
// leaving workflow statuses (Generated/Sent) untouched for unpaid invoices.
func statusAfter(inv *domain.Invoice, prior domain.InvoiceStatus) domain.InvoiceStatus {
	switch Classify(inv.NetAmount, inv.BalanceAmount) {
	case FullyPaid:
		return domain.InvoiceStatusPaid
	case PartiallyPaid:
		return domain.InvoiceStatusPartiallyPaid
	default:
		if prior == domain.InvoiceStatusPartiallyPaid || prior == domain.InvoiceStatusPaid {
			return domain.InvoiceStatusSent
		}
		return prior
	}
}

// Apply records a payment amount against an invoice, reducing its balance
// and recalculating the status. Rejects amounts above the outstanding
// balance and non-positive amounts.
func Apply(inv domain.Invoice, amount decimal.Decimal) (domain.Invoice, error) {
	if amount.IsNegative() || amount.IsZero() {
		return inv, domain.ErrNegativeAmount
	}
	if inv.BalanceAmount.IsZero() {
		return inv, domain.ErrInvoiceAlreadyPaid
	}
	if amount.GreaterThan(inv.BalanceAmount) {
		return inv, domain.ErrPaymentExceedsBalance
	}

	prior := inv.Status
	inv.BalanceAmount = Round2(inv.BalanceAmount.Sub(amount))
	inv.Status = statusAfter(&inv, prior)
	return inv, nil
}

// Unapply reverses a previously recorded payment, adding its amount back to
// the balance. The restored balance must never exceed the net amount.
func Unapply(inv domain.Invoice, amount decimal.Decimal) (domain.Invoice, error) {
	if amount.IsNegative() || amount.IsZero() {
		return inv, domain.ErrNegativeAmount
	}
	restored := Round2(inv.BalanceAmount.Add(amount))
	if restored.GreaterThan(inv.NetAmount) {
		return inv, domain.ErrPaymentExceedsBalance
	}

	prior := inv.Status
	inv.BalanceAmount = restored
	inv.Status = statusAfter(&inv, prior)
	return inv, nil
}
