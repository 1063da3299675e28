// File: accumulator.go
// Title: Stateful Accumulator
// Description: Mutable decimal register with chained operations built on the
//              policy engine, a persistent scale and rounding mode for
//              divisions, and an append-only audit log of every step.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package mathx

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
)

// Accumulator is a mutable decimal register. Every mutator applies one
// operation to the current value, appends a log entry and returns the
// receiver for chaining. An Accumulator is not safe for concurrent use.
//
// The current value never becomes void: unparseable operands are skipped by
// additions and multiplications, and divisions fall back to the identity.
type Accumulator struct {
	value decimal.Decimal
	scale int32
	mode  RoundingMode
	log   strings.Builder
}

func (*Accumulator) decimalSource() {}

// NewAccumulator creates a register at zero with scale 0 and half-up rounding
func NewAccumulator() *Accumulator {
	return NewAccumulatorWith(0, DefaultRoundingMode)
}

// NewAccumulatorWith creates a register at zero with the given division
// scale and rounding mode
func NewAccumulatorWith(scale int32, mode RoundingMode) *Accumulator {
	a := &Accumulator{value: zero, scale: scale, mode: mode}
	a.logLine("initialized")
	a.logLine("set value to default: 0")
	a.logScale()
	return a
}

// ---------------------------------------------------------------------------
// mutators

// Clear resets the value to zero and empties the log. Scale and rounding
// mode are kept.
func (a *Accumulator) Clear() *Accumulator {
	a.value = zero
	a.log.Reset()
	a.logLine("(re)set value to default: 0")
	return a
}

// Negate flips the sign of the value
func (a *Accumulator) Negate() *Accumulator {
	a.value = a.value.Neg()
	a.logOp("negate")
	return a
}

// Absolute makes the value non-negative
func (a *Accumulator) Absolute() *Accumulator {
	a.value = a.value.Abs()
	a.logOp("absolute")
	return a
}

// Add adds every parseable addend
func (a *Accumulator) Add(addends ...Source) *Accumulator {
	a.value = Sum(a, N(SumReserveNull(addends...)))
	a.logOp("add", addends...)
	return a
}

// Subtract subtracts every parseable subtrahend
func (a *Accumulator) Subtract(subtrahends ...Source) *Accumulator {
	a.value = Sum(a, N(Minus(N(SumReserveNull(subtrahends...)))))
	a.logOp("subtract", subtrahends...)
	return a
}

// Multiply multiplies by every parseable multiplier
func (a *Accumulator) Multiply(multipliers ...Source) *Accumulator {
	a.value = Product(a, N(ProductReserveNull(multipliers...)))
	a.logOp("multiply", multipliers...)
	return a
}

// MultiplyDepercent multiplies by every parseable multiplier, one of them
// being a percentage, and scales by 0.01
func (a *Accumulator) MultiplyDepercent(multipliers ...Source) *Accumulator {
	a.value = ProductDepercent(a, N(ProductReserveNull(multipliers...)))
	a.logOp("multiply into depercent", multipliers...)
	return a
}

// Divide divides the value by divisor at the register scale. A void or zero
// divisor leaves the value unchanged apart from the rescale.
func (a *Accumulator) Divide(divisor Source) *Accumulator {
	a.value = Quotient(a, divisor, a.scale, a.mode)
	a.logOp("divide", divisor)
	return a
}

// DivideWith sets a new scale and rounding mode, then divides
func (a *Accumulator) DivideWith(divisor Source, scale int32, mode RoundingMode) *Accumulator {
	a.setScaleCore(scale, mode)
	return a.Divide(divisor)
}

// DividePercent divides the value by divisor and expresses it in percent
func (a *Accumulator) DividePercent(divisor Source) *Accumulator {
	a.value = QuotientPercent(a, divisor, a.scale, a.mode)
	a.logOp("divide into percent", divisor)
	return a
}

// DividePercentWith sets a new scale and rounding mode, then DividePercent
func (a *Accumulator) DividePercentWith(divisor Source, scale int32, mode RoundingMode) *Accumulator {
	a.setScaleCore(scale, mode)
	return a.DividePercent(divisor)
}

// DivideAsDivisor replaces the value with dividend / value
func (a *Accumulator) DivideAsDivisor(dividend Source) *Accumulator {
	a.value = Quotient(dividend, a, a.scale, a.mode)
	a.logOp("divide as divisor", dividend)
	return a
}

// DivideAsDivisorWith sets a new scale and rounding mode, then DivideAsDivisor
func (a *Accumulator) DivideAsDivisorWith(dividend Source, scale int32, mode RoundingMode) *Accumulator {
	a.setScaleCore(scale, mode)
	return a.DivideAsDivisor(dividend)
}

// DivideAsDivisorPercent replaces the value with dividend / value in percent
func (a *Accumulator) DivideAsDivisorPercent(dividend Source) *Accumulator {
	a.value = QuotientPercent(dividend, a, a.scale, a.mode)
	a.logOp("divide as divisor into percent", dividend)
	return a
}

// DivideAsDivisorPercentWith sets a new scale and rounding mode, then
// DivideAsDivisorPercent
func (a *Accumulator) DivideAsDivisorPercentWith(dividend Source, scale int32, mode RoundingMode) *Accumulator {
	a.setScaleCore(scale, mode)
	return a.DivideAsDivisorPercent(dividend)
}

// Mod replaces the value with value mod divisor
func (a *Accumulator) Mod(divisor Source) *Accumulator {
	a.value = Mod(a, divisor)
	a.logOp("mod", divisor)
	return a
}

// ModAsDivisor replaces the value with dividend mod value
func (a *Accumulator) ModAsDivisor(dividend Source) *Accumulator {
	a.value = Mod(dividend, a)
	a.logOp("mod", dividend)
	return a
}

// SetScale rescales the value with the register rounding mode and keeps the
// scale for later divisions
func (a *Accumulator) SetScale(scale int32) *Accumulator {
	return a.SetScaleWith(scale, a.mode)
}

// SetScaleWith rescales the value and keeps scale and mode for later divisions
func (a *Accumulator) SetScaleWith(scale int32, mode RoundingMode) *Accumulator {
	a.scale = scale
	a.mode = mode
	a.value = rescale(a.value, scale, mode)
	a.logScale()
	return a
}

func (a *Accumulator) setScaleCore(scale int32, mode RoundingMode) {
	a.scale = scale
	a.mode = mode
	a.logScale()
}

// ---------------------------------------------------------------------------
// comparison, unparseable targets taken as zero

// IsEquivalentTo reports value == target
func (a *Accumulator) IsEquivalentTo(target Source) bool {
	return CompareW0(a, target) == Equal
}

// IsGreaterThan reports value > target
func (a *Accumulator) IsGreaterThan(target Source) bool {
	return CompareW0(a, target) == Greater
}

// IsGreaterEqual reports value >= target
func (a *Accumulator) IsGreaterEqual(target Source) bool {
	c := CompareW0(a, target)
	return c == Equal || c == Greater
}

// IsLessThan reports value < target
func (a *Accumulator) IsLessThan(target Source) bool {
	return CompareW0(a, target) == Less
}

// IsLessEqual reports value <= target
func (a *Accumulator) IsLessEqual(target Source) bool {
	c := CompareW0(a, target)
	return c == Equal || c == Less
}

// ---------------------------------------------------------------------------
// output

// Value returns the current value
func (a *Accumulator) Value() decimal.Decimal { return a.value }

// Scale returns the division scale
func (a *Accumulator) Scale() int32 { return a.scale }

// RoundingMode returns the division rounding mode
func (a *Accumulator) RoundingMode() RoundingMode { return a.mode }

func (a *Accumulator) IntegralPart() decimal.Decimal         { return IntegralPart(a) }
func (a *Accumulator) FractionalPart() decimal.Decimal       { return FractionalPart(a) }
func (a *Accumulator) Int32Value() (int32, bool)             { return ToInt32(a) }
func (a *Accumulator) Int64Value() (int64, bool)             { return ToInt64(a) }
func (a *Accumulator) Float64Value() (float64, bool)         { return ToFloat64(a) }
func (a *Accumulator) Stringify() string                     { return Stringify(a) }
func (a *Accumulator) Dress() string                         { return Dress(a) }
func (a *Accumulator) Dress2DP() string                      { return Dress2DP(a) }
func (a *Accumulator) Format(pattern string) (string, error) { return Format(a, pattern) }
func (a *Accumulator) Percent(places *int) string            { return Percent(a, places) }

// String returns the value in plain notation, keeping its scale
func (a *Accumulator) String() string { return plain(a.value) }

// Log returns the audit log, one '\n' terminated entry per step
func (a *Accumulator) Log() string { return a.log.String() }

// LogLines returns the audit log entries
func (a *Accumulator) LogLines() []string {
	return strings.Split(strings.TrimSuffix(a.log.String(), "\n"), "\n")
}

func (a *Accumulator) logLine(line string) {
	a.log.WriteString(line)
	a.log.WriteByte('\n')
}

func (a *Accumulator) logScale() {
	a.logLine("set scale: " + strconv.FormatInt(int64(a.scale), 10) + ", roundingMode: " + a.mode.String())
}

// logOp writes "<command> <p>" for one parameter and "<command> (<p1>, ...)"
// for several, followed by the division settings and the current value
func (a *Accumulator) logOp(command string, params ...Source) {
	b := &a.log
	b.WriteString(command)
	b.WriteByte(' ')
	if len(params) > 1 {
		b.WriteByte('(')
	}
	for i, param := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		if d, ok := parse(param); ok {
			b.WriteString(plain(d))
		} else {
			b.WriteString("null")
		}
	}
	if len(params) > 1 {
		b.WriteByte(')')
	}
	if strings.Contains(command, "divide") {
		b.WriteString(" (" + strconv.FormatInt(int64(a.scale), 10) + ", " + a.mode.String() + ")")
	}
	b.WriteString(", current value: ")
	b.WriteString(plain(a.value))
	b.WriteByte('\n')
}

// ---------------------------------------------------------------------------
// batch helpers

// NewAccumulators creates n default registers
func NewAccumulators(n int) []*Accumulator {
	accs := make([]*Accumulator, n)
	for i := range accs {
		accs[i] = NewAccumulator()
	}
	return accs
}

// NewAccumulatorMap creates one default register per key
func NewAccumulatorMap(keys ...string) map[string]*Accumulator {
	accs := make(map[string]*Accumulator, len(keys))
	for _, key := range keys {
		accs[key] = NewAccumulator()
	}
	return accs
}

// ClearAll clears every register
func ClearAll(accs []*Accumulator) {
	for _, acc := range accs {
		if acc != nil {
			acc.Clear()
		}
	}
}

// ClearMap clears every register
func ClearMap(accs map[string]*Accumulator) {
	for _, acc := range accs {
		if acc != nil {
			acc.Clear()
		}
	}
}

// TransferIndex moves the value of accs[from] into accs[to]: it is added to
// the destination and the source is cleared
func TransferIndex(accs []*Accumulator, from, to int) error {
	for _, i := range []int{from, to} {
		if i < 0 || i >= len(accs) || accs[i] == nil {
			return mdwerrors.MathxInvalidSlot("transfer_index", i)
		}
	}
	accs[to].Add(accs[from])
	accs[from].Clear()
	return nil
}

// TransferKey moves the value of accs[from] into accs[to]
func TransferKey(accs map[string]*Accumulator, from, to string) error {
	for _, key := range []string{from, to} {
		if acc, ok := accs[key]; !ok || acc == nil {
			return mdwerrors.MathxInvalidSlot("transfer_key", key)
		}
	}
	accs[to].Add(accs[from])
	accs[from].Clear()
	return nil
}
