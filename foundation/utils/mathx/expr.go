// File: expr.go
// Title: Expression Interpreter
// Description: Operator-precedence evaluation of infix arithmetic over the
//              canonical decimal (+ - * / ^ and parentheses), and extraction
//              of signed number runs from free text.
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

	mdwstringx "github.com/msto63/numerik/foundation/utils/stringx"
)

const (
	// ExpressionDivisionScale is the fixed scale of '/' inside expressions,
	// rounded half-up independent of any caller setting
	ExpressionDivisionScale int32 = 2
	// MaxExponent bounds the magnitude of the right operand of '^'
	MaxExponent = 9999
	// MaxPowerDigits bounds the coefficient size of a '^' result, estimated
	// as the digits of the base coefficient times the exponent magnitude
	MaxPowerDigits = 10000
)

var precedence = map[byte]int{
	'+': 1,
	'-': 1,
	'*': 2,
	'/': 2,
	'^': 3,
}

func isNumberByte(c byte) bool {
	return c >= '0' && c <= '9' || c == '.'
}

// balanceParentheses prepends '(' or appends ')' until the counts match
func balanceParentheses(s string) string {
	open := strings.Count(s, "(") - strings.Count(s, ")")
	switch {
	case open > 0:
		return s + strings.Repeat(")", open)
	case open < 0:
		return strings.Repeat("(", -open) + s
	}
	return s
}

// evaluator holds the two transient stacks of one evaluation
type evaluator struct {
	operands  []decimal.Decimal
	operators []byte
}

func (e *evaluator) pushOperator(op byte) { e.operators = append(e.operators, op) }

func (e *evaluator) topOperator() (byte, bool) {
	if len(e.operators) == 0 {
		return 0, false
	}
	return e.operators[len(e.operators)-1], true
}

func (e *evaluator) popOperator() byte {
	op := e.operators[len(e.operators)-1]
	e.operators = e.operators[:len(e.operators)-1]
	return op
}

// reduce pops one operator and two operands and pushes the result. It
// reports false on a structural or arithmetic failure.
func (e *evaluator) reduce() bool {
	op := e.popOperator()
	n := len(e.operands)
	if n < 2 || op == '(' {
		return false
	}
	left, right := e.operands[n-2], e.operands[n-1]
	result, ok := apply(op, left, right)
	if !ok {
		return false
	}
	e.operands = append(e.operands[:n-2], result)
	return true
}

func apply(op byte, left, right decimal.Decimal) (decimal.Decimal, bool) {
	switch op {
	case '+':
		return left.Add(right), true
	case '-':
		return left.Sub(right), true
	case '*':
		return left.Mul(right), true
	case '/':
		if right.Sign() == 0 {
			return decimal.Decimal{}, false
		}
		return divide(left, right, ExpressionDivisionScale, RoundHalfUp), true
	case '^':
		return power(left, right)
	}
	return decimal.Decimal{}, false
}

// power raises base to the integer part of exp. A negative exponent yields
// the reciprocal at the expression division scale.
func power(base, exp decimal.Decimal) (decimal.Decimal, bool) {
	if exp.Abs().GreaterThanOrEqual(decimal.New(MaxExponent+1, 0)) {
		return decimal.Decimal{}, false
	}
	n := exp.IntPart()
	if n == 0 {
		return one, true
	}
	neg := n < 0
	if neg {
		n = -n
	}
	if base.Sign() == 0 {
		if neg {
			return decimal.Decimal{}, false
		}
		return zero, true
	}
	if int64(base.NumDigits())*n > MaxPowerDigits {
		return decimal.Decimal{}, false
	}
	result, err := base.PowInt32(int32(n))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		return divide(one, result, ExpressionDivisionScale, RoundHalfUp), true
	}
	return result, true
}

// Evaluate computes an infix arithmetic expression. Whitespace and unknown
// characters are ignored and unbalanced parentheses are completed. Unary
// signs are not supported: "1+-2" is unparseable, as is any operator that
// lacks an operand, division by zero, a malformed number or an empty input.
func Evaluate(expr string) decimal.NullDecimal {
	s := balanceParentheses(mdwstringx.StripWhitespace(expr))
	e := &evaluator{}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isNumberByte(c):
			start := i
			for i < len(s) && isNumberByte(s[i]) {
				i++
			}
			d, ok := parseText(s[start:i])
			if !ok {
				return Null()
			}
			e.operands = append(e.operands, d)
			continue
		case c == '(':
			e.pushOperator(c)
		case c == ')':
			for {
				top, ok := e.topOperator()
				if !ok {
					return Null()
				}
				if top == '(' {
					e.popOperator()
					break
				}
				if !e.reduce() {
					return Null()
				}
			}
		default:
			p, isOperator := precedence[c]
			if !isOperator {
				break
			}
			for {
				top, ok := e.topOperator()
				if !ok || top == '(' || precedence[top] < p {
					break
				}
				if !e.reduce() {
					return Null()
				}
			}
			e.pushOperator(c)
		}
		i++
	}

	for len(e.operators) > 0 {
		if !e.reduce() {
			return Null()
		}
	}
	if len(e.operands) != 1 {
		return Null()
	}
	return Valid(e.operands[0])
}

// BlendExtract returns every number run found in text. A '+' or '-' sets the
// sign of the runs that follow until the next sign character; any other
// character ends the current run. Malformed runs such as "1.2.3" are
// returned as unparseable entries.
func BlendExtract(text string) []decimal.NullDecimal {
	result := []decimal.NullDecimal{}
	var run strings.Builder
	negative := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		d := Parse(Text(run.String()))
		if negative {
			d = Minus(N(d))
		}
		result = append(result, d)
		run.Reset()
	}

	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case isNumberByte(c):
			run.WriteByte(c)
		case c == '+' || c == '-':
			flush()
			negative = c == '-'
		default:
			flush()
		}
	}
	flush()
	return result
}
