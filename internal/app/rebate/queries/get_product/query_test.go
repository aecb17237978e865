package get_product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
)

type stubStore map[string]*domain.Product

func (s stubStore) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func TestQuery_Execute(t *testing.T) {
	store := stubStore{
		"widget": domain.ReconstructProduct("widget", decimal.NewFromInt(30), "box", domain.SupportsFixedCashAmount|domain.SupportsAmountPerUom),
	}
	q := NewQuery(store)

	dto, err := q.Execute(context.Background(), &Request{ProductID: "widget"})
	require.NoError(t, err)
	assert.Equal(t, "widget", dto.ProductID)
	assert.Equal(t, "box", dto.Uom)
	assert.True(t, dto.Price.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, []string{"FixedCashAmount", "AmountPerUom"}, dto.SupportedIncentives)

	_, err = q.Execute(context.Background(), &Request{ProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
