package get_rebate

import (
	"context"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
)

// Request contains the rebate ID to retrieve.
type Request struct {
	RebateID string
}

// Query handles the get rebate query use case.
type Query struct {
	store contracts.RebateStore
}

// NewQuery creates a new get rebate query.
func NewQuery(store contracts.RebateStore) *Query {
	return &Query{store: store}
}

// Execute retrieves a rebate by ID. A missing rebate is domain.ErrRebateNotFound.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.RebateDTO, error) {
	rebate, err := q.store.GetRebate(ctx, req.RebateID)
	if err != nil {
		return nil, err
	}

	fields := domain.FieldsOf(rebate)
	return &contracts.RebateDTO{
		RebateID:   fields.Identifier,
		Incentive:  fields.Incentive.String(),
		Amount:     fields.Amount,
		Percentage: fields.Percentage,
	}, nil
}
