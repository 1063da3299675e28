// File: policy.go
// Title: Null-Propagation Policy Engine
// Description: n-ary sum and product, quotient, modulo and percentage
//              derivations, each offered under the three null policies.
//              Reserve-Null skips unparseable operands, Notice-Null lets any
//              of them void the result, Wrap-Zero replaces a void result with
//              the identity of the operation.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package mathx

import (
	"strings"

	"github.com/shopspring/decimal"

	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
)

// Policy selects how unparseable operands propagate through a reduction
type Policy int

const (
	// PolicyWrapZero is Reserve-Null with a void result replaced by the identity
	PolicyWrapZero Policy = iota
	// PolicyReserveNull skips unparseable operands; void only if none parsed
	PolicyReserveNull
	// PolicyNoticeNull voids the result on the first unparseable operand
	PolicyNoticeNull
)

func (p Policy) String() string {
	switch p {
	case PolicyReserveNull:
		return "reserve_null"
	case PolicyNoticeNull:
		return "notice_null"
	case PolicyWrapZero:
		return "wrap_zero"
	default:
		return "unknown"
	}
}

// ParsePolicy parses reserve_null, notice_null or wrap_zero
func ParsePolicy(name string) (Policy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "reserve_null":
		return PolicyReserveNull, nil
	case "notice_null":
		return PolicyNoticeNull, nil
	case "wrap_zero", "":
		return PolicyWrapZero, nil
	}
	return PolicyWrapZero, mdwerrors.MathxInvalidPolicy(name)
}

// WrapNull parses src and turns zero into the unparseable outcome
func WrapNull(src Source) decimal.NullDecimal {
	d, ok := parse(src)
	if !ok || d.Sign() == 0 {
		return Null()
	}
	return Valid(d)
}

// WrapZero parses src, substituting zero for an unparseable value
func WrapZero(src Source) decimal.Decimal {
	return wrap0(src)
}

// IfNullThen parses a, falling back to the parse of b
func IfNullThen(a, b Source) decimal.NullDecimal {
	if d, ok := parse(a); ok {
		return Valid(d)
	}
	return Parse(b)
}

// Minus negates src
func Minus(src Source) decimal.NullDecimal {
	d, ok := parse(src)
	if !ok {
		return Null()
	}
	return Valid(d.Neg())
}

// Absolute returns |src|
func Absolute(src Source) decimal.NullDecimal {
	d, ok := parse(src)
	if !ok {
		return Null()
	}
	return Valid(d.Abs())
}

// SetScale rescales src to scale fractional digits
func SetScale(src Source, scale int32, mode RoundingMode) decimal.NullDecimal {
	d, ok := parse(src)
	if !ok {
		return Null()
	}
	return Valid(rescale(d, scale, mode))
}

// ---------------------------------------------------------------------------
// sum

// Sum adds all parseable operands; zero when none parse
func Sum(addends ...Source) decimal.Decimal {
	return wrap0(N(SumReserveNull(addends...)))
}

// SumReserveNull adds all parseable operands; void when none parse
func SumReserveNull(addends ...Source) decimal.NullDecimal {
	result := Null()
	for _, addend := range addends {
		if d, ok := parse(addend); ok {
			result = Valid(wrap0(N(result)).Add(d))
		}
	}
	return result
}

// SumNoticeNull adds all operands; void when any does not parse
func SumNoticeNull(addends ...Source) decimal.NullDecimal {
	result := zero
	for _, addend := range addends {
		d, ok := parse(addend)
		if !ok {
			return Null()
		}
		result = result.Add(d)
	}
	return Valid(result)
}

// blendAddends applies Flag markers: Flag(false) negates the operands that
// follow, Flag(true) restores the sign. Unparseable operands stay void.
func blendAddends(params []Source) []Source {
	positive := true
	addends := make([]Source, 0, len(params))
	for _, param := range params {
		if flag, ok := param.(Flag); ok {
			positive = bool(flag)
			continue
		}
		d, ok := parse(param)
		switch {
		case !ok:
			addends = append(addends, Absent{})
		case !positive:
			addends = append(addends, Dec(d.Neg()))
		default:
			addends = append(addends, Dec(d))
		}
	}
	return addends
}

// BlendSum is Sum over operands interleaved with Flag sign markers
func BlendSum(params ...Source) decimal.Decimal {
	return Sum(blendAddends(params)...)
}

// BlendSumReserveNull is SumReserveNull over Flag-signed operands
func BlendSumReserveNull(params ...Source) decimal.NullDecimal {
	return SumReserveNull(blendAddends(params)...)
}

// BlendSumNoticeNull is SumNoticeNull over Flag-signed operands
func BlendSumNoticeNull(params ...Source) decimal.NullDecimal {
	return SumNoticeNull(blendAddends(params)...)
}

// ---------------------------------------------------------------------------
// product

// Product multiplies all parseable operands; one when none parse
func Product(multipliers ...Source) decimal.Decimal {
	p := ProductReserveNull(multipliers...)
	if !p.Valid {
		return one
	}
	return p.Decimal
}

// ProductReserveNull multiplies all parseable operands; void when none parse
func ProductReserveNull(multipliers ...Source) decimal.NullDecimal {
	result := Null()
	for _, multiplier := range multipliers {
		if d, ok := parse(multiplier); ok {
			base := one
			if result.Valid {
				base = result.Decimal
			}
			result = Valid(base.Mul(d))
		}
	}
	return result
}

// ProductNoticeNull multiplies all operands; void when any does not parse
func ProductNoticeNull(multipliers ...Source) decimal.NullDecimal {
	result := one
	for _, multiplier := range multipliers {
		d, ok := parse(multiplier)
		if !ok {
			return Null()
		}
		result = result.Mul(d)
	}
	return Valid(result)
}

// ProductDepercent is Product scaled by 0.01, one operand being a percentage
func ProductDepercent(multipliers ...Source) decimal.Decimal {
	return depercent.Mul(Product(multipliers...))
}

// ProductDepercentReserveNull is ProductReserveNull scaled by 0.01
func ProductDepercentReserveNull(multipliers ...Source) decimal.NullDecimal {
	return ProductNoticeNull(Dec(depercent), N(ProductReserveNull(multipliers...)))
}

// ProductDepercentNoticeNull is ProductNoticeNull scaled by 0.01
func ProductDepercentNoticeNull(multipliers ...Source) decimal.NullDecimal {
	return ProductNoticeNull(Dec(depercent), N(ProductNoticeNull(multipliers...)))
}

// ---------------------------------------------------------------------------
// quotient

// usableDivisor returns the divisor, or one when it is void or zero
func usableDivisor(divisor Source) decimal.Decimal {
	d, ok := parse(divisor)
	if !ok || d.Sign() == 0 {
		return one
	}
	return d
}

// Quotient divides with exactly scale fractional digits. A void or zero
// divisor is taken as one, a void dividend as zero.
func Quotient(dividend, divisor Source, scale int32, mode RoundingMode) decimal.Decimal {
	return divide(wrap0(dividend), usableDivisor(divisor), scale, mode)
}

// QuotientReserveNull is Quotient keeping a void dividend void
func QuotientReserveNull(dividend, divisor Source, scale int32, mode RoundingMode) decimal.NullDecimal {
	a, ok := parse(dividend)
	if !ok {
		return Null()
	}
	return Valid(divide(a, usableDivisor(divisor), scale, mode))
}

// QuotientNoticeNull is void when the dividend is void or the divisor is
// void or zero
func QuotientNoticeNull(dividend, divisor Source, scale int32, mode RoundingMode) decimal.NullDecimal {
	a, okA := parse(dividend)
	b, okB := parse(divisor)
	if !okA || !okB || b.Sign() == 0 {
		return Null()
	}
	return Valid(divide(a, b, scale, mode))
}

// QuotientPercent is Quotient expressed in percent (dividend × 100)
func QuotientPercent(dividend, divisor Source, scale int32, mode RoundingMode) decimal.Decimal {
	return divide(wrap0(dividend).Mul(hundred), usableDivisor(divisor), scale, mode)
}

// QuotientPercentReserveNull is QuotientReserveNull expressed in percent
func QuotientPercentReserveNull(dividend, divisor Source, scale int32, mode RoundingMode) decimal.NullDecimal {
	a, ok := parse(dividend)
	if !ok {
		return Null()
	}
	return Valid(divide(a.Mul(hundred), usableDivisor(divisor), scale, mode))
}

// QuotientPercentNoticeNull is QuotientNoticeNull expressed in percent
func QuotientPercentNoticeNull(dividend, divisor Source, scale int32, mode RoundingMode) decimal.NullDecimal {
	return QuotientNoticeNull(N(ProductNoticeNull(dividend, Dec(hundred))), divisor, scale, mode)
}

// ---------------------------------------------------------------------------
// modulo

// Mod returns the remainder of truncated division, carrying the sign of the
// dividend. A void or zero divisor returns the dividend (void taken as zero).
func Mod(dividend, divisor Source) decimal.Decimal {
	b, ok := parse(divisor)
	if !ok || b.Sign() == 0 {
		return wrap0(dividend)
	}
	return wrap0(dividend).Mod(b)
}

// ModReserveNull is Mod keeping a void dividend void
func ModReserveNull(dividend, divisor Source) decimal.NullDecimal {
	a, okA := parse(dividend)
	if !okA {
		return Null()
	}
	b, okB := parse(divisor)
	if !okB || b.Sign() == 0 {
		return Valid(a)
	}
	return Valid(a.Mod(b))
}

// ModNoticeNull is void when the dividend is void or the divisor is void or zero
func ModNoticeNull(dividend, divisor Source) decimal.NullDecimal {
	a, okA := parse(dividend)
	b, okB := parse(divisor)
	if !okA || !okB || b.Sign() == 0 {
		return Null()
	}
	return Valid(a.Mod(b))
}

// ---------------------------------------------------------------------------
// policy dispatch

// SumWith adds under policy p
func SumWith(p Policy, addends ...Source) decimal.NullDecimal {
	switch p {
	case PolicyReserveNull:
		return SumReserveNull(addends...)
	case PolicyNoticeNull:
		return SumNoticeNull(addends...)
	default:
		return Valid(Sum(addends...))
	}
}

// BlendSumWith adds Flag-signed operands under policy p
func BlendSumWith(p Policy, params ...Source) decimal.NullDecimal {
	return SumWith(p, blendAddends(params)...)
}

// ProductWith multiplies under policy p
func ProductWith(p Policy, multipliers ...Source) decimal.NullDecimal {
	switch p {
	case PolicyReserveNull:
		return ProductReserveNull(multipliers...)
	case PolicyNoticeNull:
		return ProductNoticeNull(multipliers...)
	default:
		return Valid(Product(multipliers...))
	}
}

// ProductDepercentWith multiplies and scales by 0.01 under policy p
func ProductDepercentWith(p Policy, multipliers ...Source) decimal.NullDecimal {
	switch p {
	case PolicyReserveNull:
		return ProductDepercentReserveNull(multipliers...)
	case PolicyNoticeNull:
		return ProductDepercentNoticeNull(multipliers...)
	default:
		return Valid(ProductDepercent(multipliers...))
	}
}

// QuotientWith divides under policy p
func QuotientWith(p Policy, dividend, divisor Source, scale int32, mode RoundingMode) decimal.NullDecimal {
	switch p {
	case PolicyReserveNull:
		return QuotientReserveNull(dividend, divisor, scale, mode)
	case PolicyNoticeNull:
		return QuotientNoticeNull(dividend, divisor, scale, mode)
	default:
		return Valid(Quotient(dividend, divisor, scale, mode))
	}
}

// QuotientPercentWith divides in percent under policy p
func QuotientPercentWith(p Policy, dividend, divisor Source, scale int32, mode RoundingMode) decimal.NullDecimal {
	switch p {
	case PolicyReserveNull:
		return QuotientPercentReserveNull(dividend, divisor, scale, mode)
	case PolicyNoticeNull:
		return QuotientPercentNoticeNull(dividend, divisor, scale, mode)
	default:
		return Valid(QuotientPercent(dividend, divisor, scale, mode))
	}
}

// ModWith takes the remainder under policy p
func ModWith(p Policy, dividend, divisor Source) decimal.NullDecimal {
	switch p {
	case PolicyReserveNull:
		return ModReserveNull(dividend, divisor)
	case PolicyNoticeNull:
		return ModNoticeNull(dividend, divisor)
	default:
		return Valid(Mod(dividend, divisor))
	}
}
