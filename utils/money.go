package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// Spanish groups thousands with dots
	clpPrinter = message.NewPrinter(language.Spanish)
	usdPrinter = message.NewPrinter(language.AmericanEnglish)
)

// FormatCLP formats a whole peso amount with dot grouping, e.g. "$12.500".
func FormatCLP(amount int64) string {
	if amount < 0 {
		return "-" + clpPrinter.Sprintf("$%d", -amount)
	}
	return clpPrinter.Sprintf("$%d", amount)
}

// FormatUSD formats a dollar amount with two decimals and comma grouping,
// e.g. "$1,250.50".
func FormatUSD(amount float64) string {
	amount = RoundCents(amount)
	if amount < 0 {
		return "-" + usdPrinter.Sprintf("$%.2f", -amount)
	}
	return usdPrinter.Sprintf("$%.2f", amount)
}

// RoundCents rounds a dollar amount to cents, half away from zero.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
