package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// RebateCalculatedEvent is emitted when a successful calculation is recorded.
type RebateCalculatedEvent struct {
	CalculationID string          `json:"calculation_id"`
	RebateID      string          `json:"rebate_id"`
	Incentive     IncentiveType   `json:"incentive"`
	Amount        decimal.Decimal `json:"amount"`
	CalculatedAt  time.Time       `json:"calculated_at"`
}

func (e *RebateCalculatedEvent) EventType() string {
	return "rebate.calculated"
}

func (e *RebateCalculatedEvent) AggregateID() string {
	return e.RebateID
}
