package m_calculation

// Field name constants for the rebate_calculations table.
const (
	TableName = "rebate_calculations"

	CalculationID = "calculation_id"
	RebateID      = "rebate_id"
	Incentive     = "incentive"
	Amount        = "amount"
	CalculatedAt  = "calculated_at"
)
