package domain

import "github.com/shopspring/decimal"

// RebateCalculator is a domain service deciding whether a rebate applies to
// a product and volume, and for how much.
type RebateCalculator struct{}

// NewRebateCalculator creates a new RebateCalculator.
func NewRebateCalculator() *RebateCalculator {
	return &RebateCalculator{}
}

// TryCalculate returns the rebate amount for the request. The product must
// support the rebate's incentive (checked first) and the variant's numeric
// rule must hold. On any error the amount is zero.
//
// ErrIncentiveNotSupported and ErrNotEligible are business rejections.
// ErrUnknownIncentive means the rebate data is broken.
func (rc *RebateCalculator) TryCalculate(rebate Rebate, product *Product, volume decimal.Decimal) (decimal.Decimal, error) {
	if rebate == nil || product == nil {
		return decimal.Zero, ErrMissingInput
	}

	required, err := RequiredSupport(rebate.Incentive())
	if err != nil {
		return decimal.Zero, err
	}

	if !product.SupportedIncentives().Has(required) {
		return decimal.Zero, ErrIncentiveNotSupported
	}

	if !rebate.isValidForRequest(product, volume) {
		return decimal.Zero, ErrNotEligible
	}

	return rebate.calculateAmount(product, volume), nil
}
