package service

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var groupingPrinter = message.NewPrinter(language.English)

// FormatRupees renders lakh-scale amounts as "₹6.6L" and smaller amounts as
// whole rupees with comma grouping, e.g. "₹11,122".
func FormatRupees(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	rupees := amount.Round(0)
	if rupees.IsZero() {
		sign = ""
	}
	if rupees.GreaterThanOrEqual(lakh) {
		return sign + "₹" + amount.Div(lakh).StringFixed(1) + "L"
	}
	return sign + "₹" + groupingPrinter.Sprintf("%d", rupees.IntPart())
}

// FormatPercent renders a percentage value without trailing zeros.
func FormatPercent(value decimal.Decimal) string {
	return value.String() + "%"
}

// CreditRating maps a bureau score to its fixed rating band.
func CreditRating(score int) string {
	switch {
	case score >= 750:
		return "Excellent"
	case score >= 650:
		return "Good"
	case score >= 550:
		return "Fair"
	default:
		return "Poor"
	}
}
