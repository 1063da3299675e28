// File: tax.go
// Title: Tax Decomposition
// Description: Splits tax-inclusive and tax-exclusive amounts into net, tax
//              and gross parts, statelessly or accumulated over many lines.
//              Rates are fractions (0.1 = 10 %). Each tax amount is rounded
//              exactly once, to the caller's scale and mode.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Business percentage and tax helpers
// - 2026-10-18 v0.2.0: Tax accumulator over the policy engine

package mathx

import "github.com/shopspring/decimal"

// TaxIncluded returns the tax contained in a gross amount:
// amount × rate / (1 + rate). Void or zero amount or rate yields zero.
func TaxIncluded(amount, rate Source, scale int32, mode RoundingMode) decimal.Decimal {
	if IsUnusableOrZero(amount) || IsUnusableOrZero(rate) {
		return rescale(zero, scale, mode)
	}
	return Quotient(Dec(Product(amount, rate)), Dec(Sum(Dec(one), rate)), scale, mode)
}

// TaxExcluded returns the tax due on a net amount: amount × rate
func TaxExcluded(amount, rate Source, scale int32, mode RoundingMode) decimal.Decimal {
	if IsUnusableOrZero(amount) || IsUnusableOrZero(rate) {
		return rescale(zero, scale, mode)
	}
	return Quotient(Dec(Product(amount, rate)), Dec(one), scale, mode)
}

// NetOfTax removes the included tax from a gross amount
func NetOfTax(gross, rate Source, scale int32, mode RoundingMode) decimal.Decimal {
	return wrap0(gross).Sub(TaxIncluded(gross, rate, scale, mode))
}

// GrossOfTax adds the due tax to a net amount
func GrossOfTax(net, rate Source, scale int32, mode RoundingMode) decimal.Decimal {
	return wrap0(net).Add(TaxExcluded(net, rate, scale, mode))
}

// TaxAccumulator keeps running totals of net (pay), tax and gross (all)
// amounts over many invoice lines
type TaxAccumulator struct {
	scale int32
	mode  RoundingMode
	pay   *Accumulator
	tax   *Accumulator
	all   *Accumulator
}

// NewTaxAccumulator rounds taxes to whole units, half-up
func NewTaxAccumulator() *TaxAccumulator {
	return NewTaxAccumulatorWith(0, DefaultRoundingMode)
}

// NewTaxAccumulatorWith rounds taxes to scale with mode
func NewTaxAccumulatorWith(scale int32, mode RoundingMode) *TaxAccumulator {
	return &TaxAccumulator{
		scale: scale,
		mode:  mode,
		pay:   NewAccumulatorWith(scale, mode),
		tax:   NewAccumulatorWith(scale, mode),
		all:   NewAccumulatorWith(scale, mode),
	}
}

// Pay is the net total
func (t *TaxAccumulator) Pay() *Accumulator { return t.pay }

// Tax is the tax total
func (t *TaxAccumulator) Tax() *Accumulator { return t.tax }

// All is the gross total
func (t *TaxAccumulator) All() *Accumulator { return t.all }

// AddInTax adds a gross amount that already contains tax at rate
func (t *TaxAccumulator) AddInTax(amount, rate Source) *TaxAccumulator {
	tax := TaxIncluded(amount, rate, t.scale, t.mode)
	t.all.Add(amount)
	t.tax.Add(Dec(tax))
	t.pay.Add(amount).Subtract(Dec(tax))
	return t
}

// AddInTaxUnits adds unitPrice × count as a gross amount
func (t *TaxAccumulator) AddInTaxUnits(unitPrice, count, rate Source) *TaxAccumulator {
	return t.AddInTax(Dec(t.lineAmount(unitPrice, count)), rate)
}

// AddOutTax adds a net amount on which tax at rate is due
func (t *TaxAccumulator) AddOutTax(amount, rate Source) *TaxAccumulator {
	tax := TaxExcluded(amount, rate, t.scale, t.mode)
	t.pay.Add(amount)
	t.tax.Add(Dec(tax))
	t.all.Add(amount, Dec(tax))
	return t
}

// AddOutTaxUnits adds unitPrice × count as a net amount
func (t *TaxAccumulator) AddOutTaxUnits(unitPrice, count, rate Source) *TaxAccumulator {
	return t.AddOutTax(Dec(t.lineAmount(unitPrice, count)), rate)
}

// lineAmount is unitPrice × count rounded once; zero when either is void or zero
func (t *TaxAccumulator) lineAmount(unitPrice, count Source) decimal.Decimal {
	if IsUnusableOrZero(unitPrice) || IsUnusableOrZero(count) {
		return zero
	}
	return rescale(Product(unitPrice, count), t.scale, t.mode)
}
