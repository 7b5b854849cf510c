package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"crbill/internal/domain"
)

// dateOnly strips the time of day, keeping the calendar date as it reads in
// the value's own location. Truncating against the UTC epoch instead would
// shift zoned timestamps onto the wrong day near midnight.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ResolveRate selects the TDS percentage applicable on a given date: the
// entry with the greatest effective date that is on or before onDate.
// History order does not matter; ties on effective date resolve to the most
// recently inserted entry. Returns domain.ErrNoApplicableTDSRate when no
// entry qualifies.
func ResolveRate(history []domain.TDSRate, onDate time.Time) (decimal.Decimal, error) {
	day := dateOnly(onDate)

	var best *domain.TDSRate
	for i := range history {
		r := &history[i]
		eff := dateOnly(r.EffectiveDate)
		if eff.After(day) {
			continue
		}
		if best == nil {
			best = r
			continue
		}
		bestEff := dateOnly(best.EffectiveDate)
		switch {
		case eff.After(bestEff):
			best = r
		case eff.Equal(bestEff) && !r.CreatedAt.Before(best.CreatedAt):
			best = r
		}
	}

	if best == nil {
		return decimal.Zero, domain.ErrNoApplicableTDSRate
	}
	return best.Percentage, nil
}
