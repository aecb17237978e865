package contracts

import (
	"context"

	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
	"github.com/shopspring/decimal"
)

// ProductStore looks up product definitions.
type ProductStore interface {
	// GetProduct returns domain.ErrProductNotFound when no product has the identifier.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

// RebateStore looks up rebate definitions and records successful calculations.
type RebateStore interface {
	// GetRebate returns domain.ErrRebateNotFound when no rebate has the identifier.
	GetRebate(ctx context.Context, rebateID string) (domain.Rebate, error)

	// StoreCalculationResult records that rebate produced amount.
	StoreCalculationResult(ctx context.Context, rebate domain.Rebate, amount decimal.Decimal) error
}

// CatalogWriter upserts product and rebate definitions.
type CatalogWriter interface {
	SaveProduct(ctx context.Context, product *domain.Product) error
	SaveRebate(ctx context.Context, rebate domain.Rebate) error
}
