package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
)

// Seeder upserts catalogs into a store.
type Seeder struct {
	writer contracts.CatalogWriter
	logger zerolog.Logger
}

func NewSeeder(writer contracts.CatalogWriter, logger zerolog.Logger) *Seeder {
	return &Seeder{writer: writer, logger: logger}
}

// Seed writes every product, then every rebate. It stops at the first failure.
func (s *Seeder) Seed(ctx context.Context, cat *Catalog) error {
	for _, product := range cat.Products {
		if err := s.writer.SaveProduct(ctx, product); err != nil {
			return err
		}
	}
	for _, rebate := range cat.Rebates {
		if err := s.writer.SaveRebate(ctx, rebate); err != nil {
			return err
		}
	}

	s.logger.Info().
		Int("products", len(cat.Products)).
		Int("rebates", len(cat.Rebates)).
		Msg("catalog seeded")
	return nil
}
