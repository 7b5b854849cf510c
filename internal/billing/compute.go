package billing

import (
	"github.com/shopspring/decimal"

	"crbill/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Computation holds the derived amounts for one invoice.
type Computation struct {
	TDSAmount decimal.Decimal
	NetAmount decimal.Decimal
}

// Compute derives the TDS and net amounts for an invoice:
//
//	tds = round2(gross * pct / 100)
//	net = gross - tds - advance
//
// The advance is validated against [0, gross]; whether it fits within the
// developer's available advance balance is the caller's concern. A negative
// net is a data error, never a valid result.
func Compute(gross, tdsPercentage, advanceToAdjust decimal.Decimal) (Computation, error) {
	if gross.IsNegative() || advanceToAdjust.IsNegative() {
		return Computation{}, domain.ErrNegativeAmount
	}
	if tdsPercentage.IsNegative() || tdsPercentage.GreaterThan(hundred) {
		return Computation{}, domain.ErrInvalidPercentage
	}
	if advanceToAdjust.GreaterThan(gross) {
		return Computation{}, domain.ErrAdvanceExceedsAvailable
	}

	tds := Round2(gross.Mul(tdsPercentage).Div(hundred))
	net := Round2(gross.Sub(tds).Sub(advanceToAdjust))
	if net.IsNegative() {
		return Computation{}, domain.ErrNegativeAmount
	}

	return Computation{TDSAmount: tds, NetAmount: net}, nil
}
