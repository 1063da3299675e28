// File: compare.go
// Title: Comparison Oracle
// Description: Null-aware six-valued comparison and every predicate derived
//              from it: ascending sequence checks, sort comparators, scope
//              membership and option selection.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package mathx

import (
	"math"

	"github.com/shopspring/decimal"
)

// Comparison is the outcome of Compare. Besides the ordering of two parsed
// values it records which side, if any, did not parse.
type Comparison int

const (
	Equal Comparison = iota
	Greater
	Less
	// LeftNull: only the left operand is unparseable
	LeftNull
	// RightNull: only the right operand is unparseable
	RightNull
	// BothNull: neither operand parses
	BothNull
)

func (c Comparison) String() string {
	switch c {
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	case Less:
		return "less"
	case LeftNull:
		return "left_null"
	case RightNull:
		return "right_null"
	case BothNull:
		return "both_null"
	default:
		return "unknown"
	}
}

// Mirror returns the comparison with the operands swapped
func (c Comparison) Mirror() Comparison {
	switch c {
	case Greater:
		return Less
	case Less:
		return Greater
	case LeftNull:
		return RightNull
	case RightNull:
		return LeftNull
	default:
		return c
	}
}

// IsOrdered reports whether both operands parsed
func (c Comparison) IsOrdered() bool {
	return c == Equal || c == Greater || c == Less
}

// Sign maps the comparison onto -1, 0, +1 for sort functions. An
// unparseable value sorts before every parsed one.
func (c Comparison) Sign() int {
	switch c {
	case Greater, RightNull:
		return 1
	case Less, LeftNull:
		return -1
	default:
		return 0
	}
}

// Compare parses both operands and compares them
func Compare(a, b Source) Comparison {
	x, okA := parse(a)
	y, okB := parse(b)
	switch {
	case !okA && !okB:
		return BothNull
	case !okA:
		return LeftNull
	case !okB:
		return RightNull
	}
	switch x.Cmp(y) {
	case 1:
		return Greater
	case -1:
		return Less
	default:
		return Equal
	}
}

// CompareW0 compares with unparseable operands taken as zero
func CompareW0(a, b Source) Comparison {
	return Compare(Dec(wrap0(a)), Dec(wrap0(b)))
}

type violations []Comparison

func (v violations) contains(c Comparison) bool {
	for _, x := range v {
		if x == c {
			return true
		}
	}
	return false
}

var (
	ascendingPlain        = violations{Greater}
	ascendingNotEqual     = violations{Greater, Equal}
	ascendingNotNull      = violations{Greater, RightNull, LeftNull, BothNull}
	ascendingNotEqualNull = violations{Greater, Equal, RightNull, LeftNull, BothNull}
)

// IsAscending reports whether no parsed element is smaller than the most
// recent parsed element before it. Unparseable elements are skipped.
func IsAscending(srcs ...Source) bool {
	return isAscending(srcs, ascendingPlain)
}

// IsAscendingNotEqual is IsAscending with equal neighbours rejected
func IsAscendingNotEqual(srcs ...Source) bool {
	return isAscending(srcs, ascendingNotEqual)
}

// IsAscendingNotNull is IsAscending with unparseable elements rejected
func IsAscendingNotNull(srcs ...Source) bool {
	return isAscending(srcs, ascendingNotNull)
}

// IsAscendingNotEqualNull rejects equal neighbours and unparseable elements
func IsAscendingNotEqualNull(srcs ...Source) bool {
	return isAscending(srcs, ascendingNotEqualNull)
}

// isAscending compares each element with the last parseable predecessor.
// The first element is the initial baseline even when it does not parse.
func isAscending(srcs []Source, invalid violations) bool {
	if len(srcs) == 0 {
		return true
	}
	baseline := srcs[0]
	for _, current := range srcs[1:] {
		if invalid.contains(Compare(baseline, current)) {
			return false
		}
		if IsDecimal(current) {
			baseline = current
		}
	}
	return true
}

// CompareAsc builds an ascending comparator for slices.SortFunc
func CompareAsc[T any](get func(T) Source) func(a, b T) int {
	return func(a, b T) int { return Compare(get(a), get(b)).Sign() }
}

// CompareDesc builds a descending comparator for slices.SortFunc
func CompareDesc[T any](get func(T) Source) func(a, b T) int {
	return func(a, b T) int { return Compare(get(b), get(a)).Sign() }
}

// CompareW0Asc is CompareAsc with unparseable values taken as zero
func CompareW0Asc[T any](get func(T) Source) func(a, b T) int {
	return func(a, b T) int { return CompareW0(get(a), get(b)).Sign() }
}

// CompareW0Desc is CompareDesc with unparseable values taken as zero
func CompareW0Desc[T any](get func(T) Source) func(a, b T) int {
	return func(a, b T) int { return CompareW0(get(b), get(a)).Sign() }
}

// IsNullOrZero reports whether d is unparseable or numerically zero
func IsNullOrZero(d decimal.NullDecimal) bool {
	return !d.Valid || d.Decimal.Sign() == 0
}

// IsUnusableOrZero reports whether src does not parse or parses to zero
func IsUnusableOrZero(src Source) bool {
	return IsNullOrZero(Parse(src))
}

// IsDecimal reports whether src parses
func IsDecimal(src Source) bool {
	_, ok := parse(src)
	return ok
}

// IsInt32 reports whether src is an exact 32-bit integer
func IsInt32(src Source) bool {
	_, ok := ToInt32(src)
	return ok
}

// IsInt64 reports whether src is an exact 64-bit integer
func IsInt64(src Source) bool {
	_, ok := ToInt64(src)
	return ok
}

// IsNaturalNumber reports whether src is an integer in int64 range and >= 0
func IsNaturalNumber(src Source) bool {
	if !IsInt64(src) {
		return false
	}
	c := Compare(src, Dec(zero))
	return c == Equal || c == Greater
}

// IsPositiveIntegral reports whether src is an integer in int64 range and > 0
func IsPositiveIntegral(src Source) bool {
	return IsInt64(src) && Compare(src, Dec(zero)) == Greater
}

// IsInScope reports whether any option compares equal to target. An
// unparseable target matches nothing.
func IsInScope(target Source, options ...Source) bool {
	for _, option := range options {
		if Compare(target, option) == Equal {
			return true
		}
	}
	return false
}

// HaveSameValue reports whether every operand compares equal to the first.
// No operands is vacuously true; any unparseable operand makes it false.
func HaveSameValue(srcs ...Source) bool {
	for _, src := range srcs {
		if Compare(srcs[0], src) != Equal {
			return false
		}
	}
	return true
}

// Options is an ordered decimal-keyed lookup table
type Options[T any] struct {
	keys   []Source
	values []T
}

// NewOptions starts an option table with one entry
func NewOptions[T any](key Source, value T) *Options[T] {
	return (&Options[T]{}).And(key, value)
}

// And appends an entry
func (o *Options[T]) And(key Source, value T) *Options[T] {
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
	return o
}

// Len returns the number of entries
func (o *Options[T]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Select returns the value of the first entry whose key compares equal to
// target
func (o *Options[T]) Select(target Source) (T, bool) {
	var none T
	if o == nil {
		return none, false
	}
	for i, key := range o.keys {
		if Compare(target, key) == Equal {
			return o.values[i], true
		}
	}
	return none, false
}

// ToInt32 converts src when it is an exact 32-bit integer
func ToInt32(src Source) (int32, bool) {
	n, ok := ToInt64(src)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

// ToInt64 converts src when it is an exact 64-bit integer
func ToInt64(src Source) (int64, bool) {
	d, ok := parse(src)
	if !ok || !d.IsInteger() {
		return 0, false
	}
	i := d.BigInt()
	if !i.IsInt64() {
		return 0, false
	}
	return i.Int64(), true
}

// ToFloat64 converts src when the shortest float representation reproduces
// the value exactly
func ToFloat64(src Source) (float64, bool) {
	d, ok := parse(src)
	if !ok {
		return 0, false
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, false
	}
	if Compare(Float(f), Dec(d)) != Equal {
		return 0, false
	}
	return f, true
}

// ToInt32W0 is ToInt32 with an unparseable source taken as zero
func ToInt32W0(src Source) (int32, bool) { return ToInt32(Dec(wrap0(src))) }

// ToInt64W0 is ToInt64 with an unparseable source taken as zero
func ToInt64W0(src Source) (int64, bool) { return ToInt64(Dec(wrap0(src))) }

// ToFloat64W0 is ToFloat64 with an unparseable source taken as zero
func ToFloat64W0(src Source) (float64, bool) { return ToFloat64(Dec(wrap0(src))) }
