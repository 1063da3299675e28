// Package mathx is the canonical decimal arithmetic engine.
//
// Heterogeneous inputs (text, integers, floats, earlier results) are
// normalized by Parse into a shopspring decimal or the unparseable outcome
// (decimal.NullDecimal with Valid == false). Parsing never substitutes a
// default; substitution is explicit (WrapZero, IfNullThen).
//
// # Null policies
//
// Every n-ary reduction comes in three flavours:
//
//   - Reserve-Null skips unparseable operands; the result is void only when
//     nothing parsed (SumReserveNull, ProductReserveNull, ...).
//   - Notice-Null voids the result on any unparseable operand
//     (SumNoticeNull, QuotientNoticeNull, ...).
//   - Wrap-Zero is Reserve-Null with a void result replaced by the identity
//     of the operation (Sum, Product, Quotient, Mod).
//
// Division by a void or zero divisor is the identity under Wrap-Zero:
//
//	mathx.Quotient(mathx.Long(5), mathx.Long(0), 2, mathx.RoundHalfUp) // 5.00
//
// # Comparison
//
// Compare returns one of six outcomes so that "absent" is never confused
// with "smaller". The ascending checks, Min, Max, IsInScope and the sort
// comparators are all derived from it.
//
// # Expressions
//
// Evaluate runs an infix expression over + - * / ^ and parentheses.
// Division inside expressions always uses two decimals, half-up.
//
//	mathx.Evaluate("1 + 2 - 3 * 4^5 /6") // -509.00
//
// # Accumulator
//
// Accumulator is a mutable register with chained operations and an audit log:
//
//	acc := mathx.NewAccumulatorWith(2, mathx.RoundHalfUp)
//	acc.Add(mathx.Texts("10", "x", "5")...).Divide(mathx.Long(4))
//	acc.Stringify() // "3.75"
//
// Contract violations such as an unsupported dynamic type in Of panic with a
// *mdwerror.Error; data problems never do.
package mathx
