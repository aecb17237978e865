package m_rebate

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe operations on the rebates table.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation that inserts or replaces a rebate.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{RebateID, Incentive, Amount, Percentage, UpdatedAt},
		[]interface{}{
			data.RebateID,
			data.Incentive,
			data.Amount,
			data.Percentage,
			spanner.CommitTimestamp,
		},
	)
}

func (m *Model) ReadColumns() []string {
	return []string{RebateID, Incentive, Amount, Percentage, UpdatedAt}
}
