// Package format renders metric values for tables, labels and chart data.
// Rounding goes through decimal so 0.1234 is always "12.34%" and never "12.339999%".
package format

import (
	"math"

	"github.com/shopspring/decimal"
)

// Missing is printed for values that cannot be formatted (NaN, ±Inf)
const Missing = "-"

var hundred = decimal.NewFromInt(100)

// Percent formats a fraction as a percentage with 2 decimal places: 0.1234 -> "12.34%"
func Percent(v float64) string {
	return PercentN(v, 2)
}

// PercentN formats a fraction as a percentage with the given decimal places
func PercentN(v float64, places int32) string {
	if !finite(v) {
		return Missing
	}
	return decimal.NewFromFloat(v).Mul(hundred).StringFixed(places) + "%"
}

// Ratio formats Sharpe/Calmar style ratios with 4 decimal places: 1.23456 -> "1.2346"
func Ratio(v float64) string {
	return Fixed(v, 4)
}

// Fixed formats v with exactly places decimals
func Fixed(v float64, places int32) string {
	if !finite(v) {
		return Missing
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Round returns v rounded half away from zero, for chart data points.
// Non-finite values pass through unchanged.
func Round(v float64, places int32) float64 {
	if !finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// PercentValue returns v*100 rounded to places, for chart axes expressed in percent
func PercentValue(v float64, places int32) float64 {
	if !finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Mul(hundred).Round(places).InexactFloat64()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
