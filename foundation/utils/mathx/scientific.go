// File: scientific.go
// Title: Scientific Helpers
// Description: Extremum, average, integral power and integral/fractional
//              decomposition over parsed sources.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package mathx

import "github.com/shopspring/decimal"

// ScientificScale is the scale of averages and negative powers
const ScientificScale int32 = 10

// Max returns the largest parseable operand; void when none parse
func Max(srcs ...Source) decimal.NullDecimal {
	return extremum(srcs, Greater)
}

// Min returns the smallest parseable operand; void when none parse
func Min(srcs ...Source) decimal.NullDecimal {
	return extremum(srcs, Less)
}

func extremum(srcs []Source, direction Comparison) decimal.NullDecimal {
	result := Null()
	for _, src := range srcs {
		candidate := Parse(src)
		if c := Compare(N(candidate), N(result)); c == direction || c == RightNull {
			result = candidate
		}
	}
	return result
}

// Average divides the sum by the number of operands, unparseable ones
// counting as zero. No operands average to zero.
func Average(srcs ...Source) decimal.Decimal {
	count := decimal.New(int64(len(srcs)), 0)
	return strip(Quotient(Dec(Sum(srcs...)), Dec(count), ScientificScale, RoundHalfUp))
}

// AverageIgnoreNull averages only the parseable operands
func AverageIgnoreNull(srcs ...Source) decimal.Decimal {
	parsed := make([]Source, 0, len(srcs))
	for _, src := range srcs {
		if d, ok := parse(src); ok {
			parsed = append(parsed, Dec(d))
		}
	}
	return Average(parsed...)
}

// Power raises root (unparseable taken as zero) to exp. A zero root yields
// zero, exp 0 yields one, a negative exp the reciprocal at ScientificScale.
func Power(root Source, exp int32) decimal.Decimal {
	base := wrap0(root)
	if base.Sign() == 0 {
		return zero
	}
	if exp == 0 {
		return one
	}
	n := exp
	if n < 0 {
		n = -n
	}
	result, err := base.PowInt32(n)
	if err != nil {
		return zero
	}
	if exp < 0 {
		result = Quotient(Int(1), Dec(result), ScientificScale, RoundHalfUp)
	}
	return strip(result)
}

// IntegralPart truncates src (unparseable taken as zero) toward zero
func IntegralPart(src Source) decimal.Decimal {
	return rescale(wrap0(src), 0, RoundDown)
}

// FractionalPart returns src minus its integral part, keeping the sign.
// A zero fraction is returned as 0.0.
func FractionalPart(src Source) decimal.Decimal {
	d := wrap0(src)
	f := strip(d.Sub(rescale(d, 0, RoundDown)))
	if f.Sign() == 0 {
		return rescale(f, 1, RoundHalfUp)
	}
	return f
}

// IntegralLength counts the digits of the integral part
func IntegralLength(src Source) int {
	return len(plain(IntegralPart(src).Abs()))
}

// FractionalLength counts the significant fractional digits
func FractionalLength(src Source) int {
	f := strip(FractionalPart(src).Abs())
	if f.Sign() == 0 {
		return 0
	}
	return len(plain(f)) - 2
}

// SumBy adds get(item) over items like an accumulator would. An empty
// collection is void.
func SumBy[T any](items []T, get func(T) Source) decimal.NullDecimal {
	if len(items) == 0 {
		return Null()
	}
	addends := make([]Source, len(items))
	for i, item := range items {
		addends[i] = get(item)
	}
	return Valid(Sum(addends...))
}
