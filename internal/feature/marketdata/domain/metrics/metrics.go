// Package metrics computes derived price metrics from pairs of optional inputs.
//
// Arithmetic is done in decimal on the shortest decimal representation of each
// float operand, and results are rounded to two places half away from zero.
// 152.345 - 150.00 therefore yields 2.35, not the 2.34 that binary float
// subtraction followed by rounding would give.
//
// Every function returns an invalid null.Float when an operand is missing or a
// divisor is zero. Nothing here panics or returns an error.
package metrics

import (
	"math"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every derived metric is rounded to.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Round rounds f to two decimal places, half away from zero.
func Round(f float64) float64 {
	if !finite(f) {
		return f
	}
	out, _ := decimal.NewFromFloat(f).Round(Places).Float64()
	return out
}

// Change is round(current - previous, 2).
func Change(current, previous null.Float) null.Float {
	cur, prev, ok := operands(current, previous)
	if !ok {
		return null.Float{}
	}
	return fromDecimal(cur.Sub(prev))
}

// ChangePercent is round(change / previous * 100, 2).
func ChangePercent(change, previous null.Float) null.Float {
	chg, prev, ok := operands(change, previous)
	if !ok || prev.IsZero() {
		return null.Float{}
	}
	return fromDecimal(chg.Mul(hundred).Div(prev))
}

// UpsidePercent is round((targetMean - current) / current * 100, 2).
func UpsidePercent(targetMean, current null.Float) null.Float {
	return percentFrom(targetMean, current)
}

// PercentFrom52WeekLow is round((current - yearLow) / yearLow * 100, 2).
func PercentFrom52WeekLow(current, yearLow null.Float) null.Float {
	return percentFrom(current, yearLow)
}

// percentFrom is the relative distance of value from base, in percent.
func percentFrom(value, base null.Float) null.Float {
	v, b, ok := operands(value, base)
	if !ok || b.IsZero() {
		return null.Float{}
	}
	return fromDecimal(v.Sub(b).Mul(hundred).Div(b))
}

func operands(a, b null.Float) (decimal.Decimal, decimal.Decimal, bool) {
	if !a.Valid || !b.Valid || !finite(a.Float64) || !finite(b.Float64) {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(a.Float64), decimal.NewFromFloat(b.Float64), true
}

func fromDecimal(d decimal.Decimal) null.Float {
	f, _ := d.Round(Places).Float64()
	return null.FloatFrom(f)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
