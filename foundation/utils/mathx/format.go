// File: format.go
// Title: Decimal Output Formatting
// Description: Plain stringification, grouped display patterns in the
//              DecimalFormat style ("##,##0.00"), and percentage rendering.
//              Unparseable values render as the empty string.
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

	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	mdwstringx "github.com/msto63/numerik/foundation/utils/stringx"
)

const (
	// PatternGrouped renders integers with thousands separators
	PatternGrouped = "##,##0"
	// PatternGrouped2DP renders two fixed decimals with thousands separators
	PatternGrouped2DP = "##,##0.00"
)

// Pattern is a compiled number pattern. It supports the subset
// prefix [#,0]+(.[0#]+)? suffix, where a '%' in prefix or suffix scales the
// value by 100. A '.' with no fraction placeholders after it is always
// shown. Rounding is half-even; a negative value that rounds to zero keeps
// its sign.
type Pattern struct {
	source     string
	prefix     string
	suffix     string
	grouping   int
	minInt     int
	minFrac    int
	maxFrac    int
	showPoint  bool
	multiplier decimal.Decimal
}

var (
	groupedPattern    = MustCompilePattern(PatternGrouped)
	grouped2DPPattern = MustCompilePattern(PatternGrouped2DP)
)

// CompilePattern parses a number pattern. Callers formatting many values
// with one pattern should keep the result.
func CompilePattern(pattern string) (*Pattern, error) {
	return compilePattern(pattern)
}

// MustCompilePattern is CompilePattern panicking on error
func MustCompilePattern(pattern string) *Pattern {
	p, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

func compilePattern(pattern string) (*Pattern, error) {
	if mdwstringx.IsBlank(pattern) {
		return nil, mdwerrors.MathxInvalidPattern(pattern, "empty pattern")
	}
	if strings.ContainsAny(pattern, ";'") {
		return nil, mdwerrors.MathxInvalidPattern(pattern, "quotes and negative subpatterns are not supported")
	}

	first := strings.IndexAny(pattern, "#0,.")
	last := strings.LastIndexAny(pattern, "#0,.")
	if first < 0 {
		return nil, mdwerrors.MathxInvalidPattern(pattern, "no digit placeholder")
	}

	p := &Pattern{
		source:     pattern,
		prefix:     pattern[:first],
		suffix:     pattern[last+1:],
		multiplier: one,
	}
	if strings.Contains(p.prefix+p.suffix, "%") {
		p.multiplier = hundred
	}

	number := pattern[first : last+1]
	intPart, fracPart, hasPoint := strings.Cut(number, ".")
	if hasPoint && strings.Contains(fracPart, ".") {
		return nil, mdwerrors.MathxInvalidPattern(pattern, "multiple decimal separators")
	}
	p.showPoint = hasPoint && fracPart == ""

	seenZero := false
	digits := 0
	lastComma := -1
	for _, c := range intPart {
		switch c {
		case '#':
			if seenZero {
				return nil, mdwerrors.MathxInvalidPattern(pattern, "'#' after '0' in integer part")
			}
			digits++
		case '0':
			seenZero = true
			p.minInt++
			digits++
		case ',':
			lastComma = digits
		default:
			return nil, mdwerrors.MathxInvalidPattern(pattern, "unexpected character "+string(c))
		}
	}
	if lastComma >= 0 {
		p.grouping = digits - lastComma
		if p.grouping == 0 {
			return nil, mdwerrors.MathxInvalidPattern(pattern, "grouping separator without digits")
		}
	}

	seenHash := false
	for _, c := range fracPart {
		switch c {
		case '0':
			if seenHash {
				return nil, mdwerrors.MathxInvalidPattern(pattern, "'0' after '#' in fraction part")
			}
			p.minFrac++
		case '#':
			seenHash = true
		default:
			return nil, mdwerrors.MathxInvalidPattern(pattern, "unexpected character "+string(c))
		}
		p.maxFrac++
	}

	if digits+p.maxFrac == 0 {
		return nil, mdwerrors.MathxInvalidPattern(pattern, "no digit placeholder")
	}
	return p, nil
}

// String returns the source pattern
func (p *Pattern) String() string { return p.source }

// Format renders src; unparseable input yields ""
func (p *Pattern) Format(src Source) string {
	d, ok := parse(src)
	if !ok {
		return ""
	}
	return p.format(d)
}

func (p *Pattern) format(d decimal.Decimal) string {
	v := d.Mul(p.multiplier)
	negative := v.Sign() < 0

	text := plain(rescale(v.Abs(), int32(p.maxFrac), RoundHalfEven))
	intDigits, fracDigits, _ := strings.Cut(text, ".")

	for len(fracDigits) > p.minFrac && strings.HasSuffix(fracDigits, "0") {
		fracDigits = fracDigits[:len(fracDigits)-1]
	}
	if intDigits == "0" && p.minInt == 0 {
		intDigits = ""
	}
	if pad := p.minInt - len(intDigits); pad > 0 {
		intDigits = strings.Repeat("0", pad) + intDigits
	}
	if intDigits == "" && fracDigits == "" {
		intDigits = "0"
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(p.prefix)
	b.WriteString(group(intDigits, p.grouping))
	if fracDigits != "" || p.showPoint {
		b.WriteByte('.')
		b.WriteString(fracDigits)
	}
	b.WriteString(p.suffix)
	return b.String()
}

// group inserts ',' every size digits from the right
func group(digits string, size int) string {
	if size <= 0 || len(digits) <= size {
		return digits
	}
	var b strings.Builder
	head := len(digits) % size
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += size {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}

// Stringify renders src in plain notation without trailing zeros
func Stringify(src Source) string {
	d, ok := parse(src)
	if !ok {
		return ""
	}
	return plain(strip(d))
}

// Plain renders src in plain notation keeping its scale; "" when unparseable
func Plain(src Source) string {
	d, ok := parse(src)
	if !ok {
		return ""
	}
	return plain(d)
}

// Dress renders src as "##,##0"
func Dress(src Source) string { return groupedPattern.Format(src) }

// Dress2DP renders src as "##,##0.00"
func Dress2DP(src Source) string { return grouped2DPPattern.Format(src) }

// Format renders src with pattern. An empty or unsupported pattern is an
// error; an unparseable value renders as "".
func Format(src Source, pattern string) (string, error) {
	p, err := CompilePattern(pattern)
	if err != nil {
		return "", err
	}
	return p.Format(src), nil
}

// Percent renders src × 100 rounded half-up to |places| decimals with a
// trailing '%'. A nil or negative places inserts a space before the sign;
// nil means zero decimals.
func Percent(src Source, places *int) string {
	d, ok := parse(src)
	if !ok {
		return ""
	}
	n := 0
	if places != nil {
		n = *places
		if n < 0 {
			n = -n
		}
	}
	p := &Pattern{grouping: 3, minInt: 1, minFrac: n, maxFrac: n, multiplier: one}
	out := p.format(rescale(d.Mul(hundred), int32(n), RoundHalfUp))
	if places == nil || *places < 0 {
		return out + " %"
	}
	return out + "%"
}

// Places is a convenience for the places argument of Percent
func Places(n int) *int { return &n }

// StringifyW0 is Stringify with an unparseable source taken as zero
func StringifyW0(src Source) string { return Stringify(Dec(wrap0(src))) }

// DressW0 is Dress with an unparseable source taken as zero
func DressW0(src Source) string { return Dress(Dec(wrap0(src))) }

// Dress2DPW0 is Dress2DP with an unparseable source taken as zero
func Dress2DPW0(src Source) string { return Dress2DP(Dec(wrap0(src))) }

// FormatW0 is Format with an unparseable source taken as zero
func FormatW0(src Source, pattern string) (string, error) {
	return Format(Dec(wrap0(src)), pattern)
}

// PercentW0 is Percent with an unparseable source taken as zero
func PercentW0(src Source, places *int) string { return Percent(Dec(wrap0(src)), places) }

// IsPatternError reports whether err came from an invalid format pattern
func IsPatternError(err error) bool {
	return mdwerror.HasCode(err, mdwerror.Code(mdwerrors.CodeMathxInvalidPattern))
}
