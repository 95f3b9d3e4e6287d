package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type PricingRules struct {
	Currency              currency.Unit
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// DefaultPricingRules: 8% tax, free shipping above 50, otherwise a flat 10.
func DefaultPricingRules() PricingRules {
	return PricingRules{
		Currency:              currency.USD,
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShippingFee:       decimal.NewFromInt(10),
	}
}

type Totals struct {
	Subtotal Money
	Shipping Money
	Tax      Money
	Total    Money
}

// Totals derives the order summary. Values are exact; round for display only.
func (r PricingRules) Totals(cart Cart) Totals {
	subtotal := cart.Subtotal(r.Currency)

	shipping := ZeroMoney(r.Currency)
	if !subtotal.IsZero() && !subtotal.Amount.GreaterThan(r.FreeShippingThreshold) {
		shipping = NewMoney(r.FlatShippingFee, r.Currency)
	}

	tax := subtotal.Mul(r.TaxRate)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
