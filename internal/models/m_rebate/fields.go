package m_rebate

// Field name constants for the rebates table.
const (
	TableName = "rebates"

	RebateID   = "rebate_id"
	Incentive  = "incentive"
	Amount     = "amount"
	Percentage = "percentage"
	UpdatedAt  = "updated_at"
)
