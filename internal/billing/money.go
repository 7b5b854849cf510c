package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds a money value to 2 decimal places, half away from zero.
// Every derived amount is rounded at the step it is computed, not only at
// display time, so repeated aggregation cannot drift.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatINR renders an amount as an Indian-grouped rupee string, e.g.
// ₹12,34,567.89. The zero value renders as ₹0.00.
func FormatINR(d decimal.Decimal) string {
	s := Round2(d).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	grouped := groupIndian(intPart)
	if neg {
		return "-₹" + grouped + fracPart
	}
	return "₹" + grouped + fracPart
}

// groupIndian inserts commas in the Indian numbering style: the last three
// digits form one group, every preceding pair forms another.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
