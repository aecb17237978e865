package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rebate is a rebate definition. The set of implementations is closed to
// this package: FixedCashAmountRebate, FixedRateRebate and
// AmountPerUomRebate.
type Rebate interface {
	Identifier() string
	Incentive() IncentiveType

	isValidForRequest(product *Product, volume decimal.Decimal) bool
	calculateAmount(product *Product, volume decimal.Decimal) decimal.Decimal
}

type rebateBase struct {
	identifier string
}

func (b rebateBase) Identifier() string {
	return b.identifier
}

func newRebateBase(identifier string) (rebateBase, error) {
	if identifier == "" {
		return rebateBase{}, ErrEmptyIdentifier
	}
	return rebateBase{identifier: identifier}, nil
}

// FixedCashAmountRebate pays a flat amount regardless of volume or price.
type FixedCashAmountRebate struct {
	rebateBase
	amount decimal.Decimal
}

func NewFixedCashAmountRebate(identifier string, amount decimal.Decimal) (*FixedCashAmountRebate, error) {
	base, err := newRebateBase(identifier)
	if err != nil {
		return nil, err
	}
	return &FixedCashAmountRebate{rebateBase: base, amount: amount}, nil
}

func (r *FixedCashAmountRebate) Incentive() IncentiveType {
	return IncentiveFixedCashAmount
}

func (r *FixedCashAmountRebate) Amount() decimal.Decimal {
	return r.amount
}

func (r *FixedCashAmountRebate) isValidForRequest(_ *Product, _ decimal.Decimal) bool {
	return r.amount.IsPositive()
}

func (r *FixedCashAmountRebate) calculateAmount(_ *Product, _ decimal.Decimal) decimal.Decimal {
	return r.amount
}

// FixedRateRebate pays a fraction of the product price per unit of volume.
type FixedRateRebate struct {
	rebateBase
	percentage decimal.Decimal
}

func NewFixedRateRebate(identifier string, percentage decimal.Decimal) (*FixedRateRebate, error) {
	base, err := newRebateBase(identifier)
	if err != nil {
		return nil, err
	}
	return &FixedRateRebate{rebateBase: base, percentage: percentage}, nil
}

func (r *FixedRateRebate) Incentive() IncentiveType {
	return IncentiveFixedRateRebate
}

// Percentage is a fraction: 0.05 means five percent.
func (r *FixedRateRebate) Percentage() decimal.Decimal {
	return r.percentage
}

func (r *FixedRateRebate) isValidForRequest(product *Product, volume decimal.Decimal) bool {
	return r.percentage.IsPositive() && volume.IsPositive() && product.Price().IsPositive()
}

func (r *FixedRateRebate) calculateAmount(product *Product, volume decimal.Decimal) decimal.Decimal {
	return product.Price().Mul(r.percentage).Mul(volume)
}

// AmountPerUomRebate pays a fixed amount per unit of volume.
type AmountPerUomRebate struct {
	rebateBase
	amount decimal.Decimal
}

func NewAmountPerUomRebate(identifier string, amount decimal.Decimal) (*AmountPerUomRebate, error) {
	base, err := newRebateBase(identifier)
	if err != nil {
		return nil, err
	}
	return &AmountPerUomRebate{rebateBase: base, amount: amount}, nil
}

func (r *AmountPerUomRebate) Incentive() IncentiveType {
	return IncentiveAmountPerUom
}

func (r *AmountPerUomRebate) Amount() decimal.Decimal {
	return r.amount
}

func (r *AmountPerUomRebate) isValidForRequest(_ *Product, volume decimal.Decimal) bool {
	return r.amount.IsPositive() && volume.IsPositive()
}

func (r *AmountPerUomRebate) calculateAmount(_ *Product, volume decimal.Decimal) decimal.Decimal {
	return r.amount.Mul(volume)
}

// RebateFields is the flat shape rebates are persisted and transported in.
// Only the parameter owned by the incentive is valid.
type RebateFields struct {
	Identifier string
	Incentive  IncentiveType
	Amount     decimal.NullDecimal
	Percentage decimal.NullDecimal
}

// FieldsOf flattens a rebate.
func FieldsOf(r Rebate) RebateFields {
	f := RebateFields{Identifier: r.Identifier(), Incentive: r.Incentive()}
	switch v := r.(type) {
	case *FixedCashAmountRebate:
		f.Amount = decimal.NewNullDecimal(v.amount)
	case *FixedRateRebate:
		f.Percentage = decimal.NewNullDecimal(v.percentage)
	case *AmountPerUomRebate:
		f.Amount = decimal.NewNullDecimal(v.amount)
	}
	return f
}

// ReconstructRebate rebuilds the variant named by f.Incentive. A record
// whose parameters do not match its incentive is rejected, as is an
// incentive name this package does not know.
func ReconstructRebate(f RebateFields) (Rebate, error) {
	switch f.Incentive {
	case IncentiveFixedCashAmount:
		if err := checkParameters(f, true, false); err != nil {
			return nil, err
		}
		return NewFixedCashAmountRebate(f.Identifier, f.Amount.Decimal)
	case IncentiveFixedRateRebate:
		if err := checkParameters(f, false, true); err != nil {
			return nil, err
		}
		return NewFixedRateRebate(f.Identifier, f.Percentage.Decimal)
	case IncentiveAmountPerUom:
		if err := checkParameters(f, true, false); err != nil {
			return nil, err
		}
		return NewAmountPerUomRebate(f.Identifier, f.Amount.Decimal)
	default:
		return nil, fmt.Errorf("rebate %s: %w: %q", f.Identifier, ErrUnknownIncentive, string(f.Incentive))
	}
}

func checkParameters(f RebateFields, wantAmount, wantPercentage bool) error {
	if f.Amount.Valid != wantAmount {
		return parameterError(f, "amount", wantAmount)
	}
	if f.Percentage.Valid != wantPercentage {
		return parameterError(f, "percentage", wantPercentage)
	}
	return nil
}

func parameterError(f RebateFields, name string, wanted bool) error {
	if wanted {
		return fmt.Errorf("rebate %s (%s): %w: %s", f.Identifier, f.Incentive, ErrMissingParameter, name)
	}
	return fmt.Errorf("rebate %s (%s): %w: %s", f.Identifier, f.Incentive, ErrUnexpectedParameter, name)
}
