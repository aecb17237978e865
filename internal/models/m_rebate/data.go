package m_rebate

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the rebates table. Amount and Percentage are
// nullable; which one is set depends on Incentive.
type Data struct {
	RebateID   string              `spanner:"rebate_id"`
	Incentive  string              `spanner:"incentive"`
	Amount     spanner.NullNumeric `spanner:"amount"`
	Percentage spanner.NullNumeric `spanner:"percentage"`
	UpdatedAt  time.Time           `spanner:"updated_at"`
}
