package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation that inserts or replaces a product.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{ProductID, Uom, Price, SupportedIncentives, UpdatedAt},
		[]interface{}{
			data.ProductID,
			data.Uom,
			&data.Price,
			data.SupportedIncentives,
			spanner.CommitTimestamp,
		},
	)
}

// ReadColumns lists the columns read back into Data.
func (m *Model) ReadColumns() []string {
	return []string{ProductID, Uom, Price, SupportedIncentives, UpdatedAt}
}
