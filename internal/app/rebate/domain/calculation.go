package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Calculation is the record of one successful rebate calculation.
type Calculation struct {
	id           string
	rebateID     string
	incentive    IncentiveType
	amount       decimal.Decimal
	calculatedAt time.Time
}

// NewCalculation records that rebate produced amount at the given time.
func NewCalculation(id string, rebate Rebate, amount decimal.Decimal, at time.Time) *Calculation {
	return &Calculation{
		id:           id,
		rebateID:     rebate.Identifier(),
		incentive:    rebate.Incentive(),
		amount:       amount,
		calculatedAt: at,
	}
}

func (c *Calculation) ID() string               { return c.id }
func (c *Calculation) RebateID() string         { return c.rebateID }
func (c *Calculation) Incentive() IncentiveType { return c.incentive }
func (c *Calculation) Amount() decimal.Decimal  { return c.amount }
func (c *Calculation) CalculatedAt() time.Time  { return c.calculatedAt }

// Event returns the domain event announcing this calculation.
func (c *Calculation) Event() *RebateCalculatedEvent {
	return &RebateCalculatedEvent{
		CalculationID: c.id,
		RebateID:      c.rebateID,
		Incentive:     c.incentive,
		Amount:        c.amount,
		CalculatedAt:  c.calculatedAt,
	}
}
