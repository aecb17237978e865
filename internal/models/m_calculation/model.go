package m_calculation

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe operations on the rebate_calculations table.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation recording one calculation.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{CalculationID, RebateID, Incentive, Amount, CalculatedAt},
		[]interface{}{
			data.CalculationID,
			data.RebateID,
			data.Incentive,
			&data.Amount,
			data.CalculatedAt,
		},
	)
}

func (m *Model) ReadColumns() []string {
	return []string{CalculationID, RebateID, Incentive, Amount, CalculatedAt}
}
