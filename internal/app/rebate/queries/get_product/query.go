package get_product

import (
	"context"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID string
}

// Query handles the get product query use case.
type Query struct {
	store contracts.ProductStore
}

// NewQuery creates a new get product query.
func NewQuery(store contracts.ProductStore) *Query {
	return &Query{store: store}
}

// Execute retrieves a product by ID. A missing product is domain.ErrProductNotFound.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	product, err := q.store.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	types := product.SupportedIncentives().Incentives()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	return &contracts.ProductDTO{
		ProductID:           product.Identifier(),
		Price:               product.Price(),
		Uom:                 product.Uom(),
		SupportedIncentives: names,
	}, nil
}
