package contracts

import "github.com/shopspring/decimal"

// ProductDTO is the read shape of a product definition.
type ProductDTO struct {
	ProductID           string
	Price               decimal.Decimal
	Uom                 string
	SupportedIncentives []string
}

// RebateDTO is the read shape of a rebate definition. Only the parameter
// used by Incentive is valid.
type RebateDTO struct {
	RebateID   string
	Incentive  string
	Amount     decimal.NullDecimal
	Percentage decimal.NullDecimal
}
