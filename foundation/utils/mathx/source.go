// File: source.go
// Title: Canonical Decimal Parser
// Description: Closed set of source kinds accepted by the engine and the
//              exhaustive parser that maps each of them onto a canonical
//              decimal or the unparseable outcome.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package mathx

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	mdwstringx "github.com/msto63/numerik/foundation/utils/stringx"
)

// Source is any value the engine can parse into a canonical decimal.
// The set of implementations is closed.
type Source interface {
	decimalSource()
}

type (
	// Dec is an already canonical decimal
	Dec decimal.Decimal
	// Int is a 32-bit integer
	Int int32
	// Long is a 64-bit integer
	Long int64
	// Float is a double precision float, converted via its shortest representation
	Float float64
	// Text is a textual number; ',' group separators are ignored
	Text string
	// Nullable is an earlier parse outcome
	Nullable decimal.NullDecimal
	// Absent is the universal "no value"
	Absent struct{}
	// Flag is a sign marker for blend sums; it never parses
	Flag bool
)

func (Dec) decimalSource()      {}
func (Int) decimalSource()      {}
func (Long) decimalSource()     {}
func (Float) decimalSource()    {}
func (Text) decimalSource()     {}
func (Nullable) decimalSource() {}
func (Absent) decimalSource()   {}
func (Flag) decimalSource()     {}

// Null returns the unparseable outcome
func Null() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

// Valid wraps d as a parsed outcome
func Valid(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Parse converts src into a canonical decimal. Unparseable input, including
// a nil Source, yields an outcome with Valid == false.
func Parse(src Source) decimal.NullDecimal {
	d, ok := parse(src)
	if !ok {
		return Null()
	}
	return Valid(d)
}

func parse(src Source) (decimal.Decimal, bool) {
	switch v := src.(type) {
	case nil, Absent, Flag:
		return decimal.Decimal{}, false
	case Dec:
		d := decimal.Decimal(v)
		if d.Exponent() > 0 {
			d = rescale(d, 0, RoundUnnecessary)
		}
		return d, true
	case Int:
		return decimal.New(int64(v), 0), true
	case Long:
		return decimal.New(int64(v), 0), true
	case Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}
		return parseText(strconv.FormatFloat(f, 'g', -1, 64))
	case Text:
		return parseText(string(v))
	case Nullable:
		return v.Decimal, v.Valid
	case *Accumulator:
		if v == nil {
			return decimal.Decimal{}, false
		}
		return v.value, true
	default:
		panic(mdwerrors.MathxUnsupportedSource(src))
	}
}

func parseText(s string) (decimal.Decimal, bool) {
	if mdwstringx.IsBlank(s) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Of adapts a dynamically typed value. Types outside the supported set are a
// programming error and panic with a MATHX_UNSUPPORTED_SOURCE error.
func Of(v any) Source {
	src, err := TryOf(v)
	if err != nil {
		panic(err)
	}
	return src
}

// TryOf is Of returning the error instead of panicking
func TryOf(v any) (Source, error) {
	switch x := v.(type) {
	case nil:
		return Absent{}, nil
	case Source:
		return x, nil
	case bool:
		return Flag(x), nil
	case int:
		return Long(x), nil
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Long(x), nil
	case uint:
		return Dec(decimal.NewFromUint64(uint64(x))), nil
	case uint8:
		return Long(x), nil
	case uint16:
		return Long(x), nil
	case uint32:
		return Long(x), nil
	case uint64:
		return Dec(decimal.NewFromUint64(x)), nil
	case float32:
		return Text(strconv.FormatFloat(float64(x), 'g', -1, 32)), nil
	case float64:
		return Float(x), nil
	case string:
		return Text(x), nil
	case json.Number:
		return Text(string(x)), nil
	case decimal.Decimal:
		return Dec(x), nil
	case decimal.NullDecimal:
		return Nullable(x), nil
	default:
		return nil, mdwerrors.MathxUnsupportedSource(v)
	}
}

// Values adapts each value with Of
func Values(vs ...any) []Source {
	out := make([]Source, len(vs))
	for i, v := range vs {
		out[i] = Of(v)
	}
	return out
}

// Texts adapts strings, a common shape for form and CSV input
func Texts(ss ...string) []Source {
	out := make([]Source, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}
	return out
}

// D wraps a canonical decimal as a Source
func D(d decimal.Decimal) Source { return Dec(d) }

// N wraps a parse outcome as a Source
func N(d decimal.NullDecimal) Source { return Nullable(d) }

func wrap0(src Source) decimal.Decimal {
	if d, ok := parse(src); ok {
		return d
	}
	return zero
}
