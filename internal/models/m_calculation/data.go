package m_calculation

import (
	"math/big"
	"time"
)

// Data represents a row of the rebate_calculations table.
type Data struct {
	CalculationID string    `spanner:"calculation_id"`
	RebateID      string    `spanner:"rebate_id"`
	Incentive     string    `spanner:"incentive"`
	Amount        big.Rat   `spanner:"amount"`
	CalculatedAt  time.Time `spanner:"calculated_at"`
}
