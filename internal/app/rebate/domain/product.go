package domain

import "github.com/shopspring/decimal"

// Product is a catalog item a rebate can be calculated against.
type Product struct {
	identifier          string
	price               decimal.Decimal
	uom                 string
	supportedIncentives SupportedIncentives
}

// NewProduct creates a validated product definition.
func NewProduct(identifier string, price decimal.Decimal, uom string, supported SupportedIncentives) (*Product, error) {
	if identifier == "" {
		return nil, ErrEmptyIdentifier
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	return &Product{
		identifier:          identifier,
		price:               price,
		uom:                 uom,
		supportedIncentives: supported,
	}, nil
}

// ReconstructProduct rebuilds a product from persisted fields without validation.
func ReconstructProduct(identifier string, price decimal.Decimal, uom string, supported SupportedIncentives) *Product {
	return &Product{
		identifier:          identifier,
		price:               price,
		uom:                 uom,
		supportedIncentives: supported,
	}
}

func (p *Product) Identifier() string {
	return p.identifier
}

func (p *Product) Price() decimal.Decimal {
	return p.price
}

// Uom is the unit of measure volumes are expressed in.
func (p *Product) Uom() string {
	return p.uom
}

func (p *Product) SupportedIncentives() SupportedIncentives {
	return p.supportedIncentives
}
