// File: decimal.go
// Title: Canonical Decimal Rounding and Scaling
// Description: Rounding modes and the scale-exact primitives (rescale, divide,
//              strip) the engine builds on. Values are shopspring decimals; the
//              primitives operate on their big.Int coefficient so that every
//              rounding mode and scale padding behaves exactly.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial big.Rat based implementation
// - 2026-10-18 v0.2.0: Rebased on shopspring/decimal with eight rounding modes

package mathx

import (
	"math/big"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
)

// RoundingMode defines how a scale-reducing operation discards digits
type RoundingMode int

const (
	// RoundUp rounds away from zero
	RoundUp RoundingMode = iota
	// RoundDown rounds toward zero (truncation)
	RoundDown
	// RoundCeiling rounds toward positive infinity
	RoundCeiling
	// RoundFloor rounds toward negative infinity
	RoundFloor
	// RoundHalfUp rounds to nearest, ties away from zero (commercial rounding)
	RoundHalfUp
	// RoundHalfDown rounds to nearest, ties toward zero
	RoundHalfDown
	// RoundHalfEven rounds to nearest, ties to the even neighbour (banker's rounding)
	RoundHalfEven
	// RoundUnnecessary asserts that no rounding is needed
	RoundUnnecessary
)

// DefaultRoundingMode is used wherever a caller does not pick one
const DefaultRoundingMode = RoundHalfUp

var roundingModeNames = [...]string{
	RoundUp:          "up",
	RoundDown:        "down",
	RoundCeiling:     "ceiling",
	RoundFloor:       "floor",
	RoundHalfUp:      "half_up",
	RoundHalfDown:    "half_down",
	RoundHalfEven:    "half_even",
	RoundUnnecessary: "unnecessary",
}

// String returns the lowercase name used in logs and configuration
func (m RoundingMode) String() string {
	if m < RoundUp || m > RoundUnnecessary {
		return "unknown"
	}
	return roundingModeNames[m]
}

// IsValid reports whether m is one of the eight modes
func (m RoundingMode) IsValid() bool {
	return m >= RoundUp && m <= RoundUnnecessary
}

// ParseRoundingMode parses a mode name. Case and '-' versus '_' are ignored.
func ParseRoundingMode(name string) (RoundingMode, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for mode, modeName := range roundingModeNames {
		if modeName == normalized {
			return RoundingMode(mode), nil
		}
	}
	return RoundHalfUp, mdwerrors.MathxInvalidRoundingMode(name)
}

var (
	zero    = decimal.New(0, 0)
	one     = decimal.New(1, 0)
	hundred = decimal.New(100, 0)
	// 0.01, scale 2
	depercent = decimal.New(1, -2)

	bigTen = big.NewInt(10)

	pow10Mu    sync.Mutex
	pow10Cache = map[int64]*big.Int{}
)

// pow10 returns 10^n; callers must not modify the result
func pow10(n int64) *big.Int {
	if n < 32 {
		pow10Mu.Lock()
		defer pow10Mu.Unlock()
		if p, ok := pow10Cache[n]; ok {
			return p
		}
		p := new(big.Int).Exp(bigTen, big.NewInt(n), nil)
		pow10Cache[n] = p
		return p
	}
	return new(big.Int).Exp(bigTen, big.NewInt(n), nil)
}

// quoRound divides num by den (den != 0) and rounds the integer quotient
// according to mode. exact is false when digits were discarded.
func quoRound(num, den *big.Int, mode RoundingMode) (q *big.Int, exact bool) {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() == 0 {
		return q, true
	}

	sign := num.Sign() * den.Sign()
	away := false
	switch mode {
	case RoundUp:
		away = true
	case RoundDown:
	case RoundCeiling:
		away = sign > 0
	case RoundFloor:
		away = sign < 0
	default:
		twiceRem := new(big.Int).Abs(r)
		twiceRem.Lsh(twiceRem, 1)
		switch twiceRem.Cmp(new(big.Int).Abs(den)) {
		case 1:
			away = true
		case 0:
			switch mode {
			case RoundHalfUp:
				away = true
			case RoundHalfEven:
				away = new(big.Int).Abs(q).Bit(0) == 1
			}
		}
	}

	if away {
		if sign > 0 {
			q.Add(q, big.NewInt(1))
		} else {
			q.Sub(q, big.NewInt(1))
		}
	}
	return q, false
}

// rescale sets d to exactly scale fractional digits. Widening pads with zeros,
// narrowing rounds with mode. RoundUnnecessary panics on an inexact narrowing.
func rescale(d decimal.Decimal, scale int32, mode RoundingMode) decimal.Decimal {
	exp := int64(d.Exponent())
	target := -int64(scale)
	coef := d.Coefficient()

	if exp >= target {
		coef.Mul(coef, pow10(exp-target))
		return decimal.NewFromBigInt(coef, int32(target))
	}

	q, exact := quoRound(coef, pow10(target-exp), mode)
	if !exact && mode == RoundUnnecessary {
		panic(mdwerrors.MathxRoundingNecessary("set_scale", plain(d), scale))
	}
	return decimal.NewFromBigInt(q, int32(target))
}

// divide returns a / b with exactly scale fractional digits; b must be non-zero
func divide(a, b decimal.Decimal, scale int32, mode RoundingMode) decimal.Decimal {
	// a/b = (ca/cb) * 10^(ea-eb); shift so the quotient carries scale digits
	shift := int64(a.Exponent()) - int64(b.Exponent()) + int64(scale)
	num := a.Coefficient()
	den := b.Coefficient()
	if shift >= 0 {
		num.Mul(num, pow10(shift))
	} else {
		den.Mul(den, pow10(-shift))
	}

	q, exact := quoRound(num, den, mode)
	if !exact && mode == RoundUnnecessary {
		panic(mdwerrors.MathxRoundingNecessary("divide", plain(a)+"/"+plain(b), scale))
	}
	return decimal.NewFromBigInt(q, -scale)
}

// strip removes trailing fractional zeros; zero becomes scale 0
func strip(d decimal.Decimal) decimal.Decimal {
	exp := d.Exponent()
	if exp >= 0 {
		return d
	}
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return zero
	}
	r := new(big.Int)
	for exp < 0 {
		q, m := new(big.Int).QuoRem(coef, bigTen, r)
		if m.Sign() != 0 {
			break
		}
		coef = q
		exp++
	}
	return decimal.NewFromBigInt(coef, exp)
}

// scaleOf returns the number of fractional digits carried by d (0 for
// integers with a positive exponent)
func scaleOf(d decimal.Decimal) int32 {
	if exp := d.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

// plain renders d without exponent, keeping trailing zeros of its scale
func plain(d decimal.Decimal) string {
	if s := scaleOf(d); s > 0 {
		return d.StringFixed(s)
	}
	return d.String()
}
