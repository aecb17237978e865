package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
	"github.com/light-bringer/rebate-service/internal/app/rebate/usecases/calculate_rebate"
	"github.com/light-bringer/rebate-service/internal/config"
	"github.com/light-bringer/rebate-service/internal/pkg/metrics"
)

func TestNewServiceOptions_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		StoreBackend: config.BackendSQLite,
		DatabaseDSN:  fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()),
	}

	opts, err := NewServiceOptions(ctx, cfg, zerolog.Nop(), metrics.NopRecorder{})
	require.NoError(t, err)
	t.Cleanup(opts.Close)

	require.NotNil(t, opts.DB)
	assert.Nil(t, opts.SpannerClient)
	assert.NotNil(t, opts.GRPCHandler)
	assert.NotNil(t, opts.HTTPHandler)

	product, err := domain.NewProduct("widget", decimal.NewFromInt(30), "box", domain.SupportsAmountPerUom)
	require.NoError(t, err)
	rebate, err := domain.NewAmountPerUomRebate("per-box", decimal.NewFromInt(7))
	require.NoError(t, err)
	require.NoError(t, opts.Catalog.SaveProduct(ctx, product))
	require.NoError(t, opts.Catalog.SaveRebate(ctx, rebate))

	result, err := opts.CalculateRebate.Execute(ctx, &calculate_rebate.Request{
		RebateIdentifier:  "per-box",
		ProductIdentifier: "widget",
		Volume:            decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(21)))
}

func TestNewServiceOptions_UnknownBackend(t *testing.T) {
	_, err := NewServiceOptions(context.Background(), config.Config{StoreBackend: "mongo"}, zerolog.Nop(), nil)
	assert.Error(t, err)
}

func TestDialectorFor(t *testing.T) {
	pg := dialectorFor(config.Config{StoreBackend: config.BackendPostgres, DatabaseDSN: "host=localhost dbname=rebates"})
	assert.Equal(t, "postgres", pg.Name())

	lite := dialectorFor(config.Config{StoreBackend: config.BackendSQLite, DatabaseDSN: "file::memory:"})
	assert.Equal(t, "sqlite", lite.Name())
}
