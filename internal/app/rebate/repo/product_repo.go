package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
	"github.com/light-bringer/rebate-service/internal/models/m_product"
	"github.com/light-bringer/rebate-service/internal/pkg/committer"
)

// ProductRepo reads and writes product definitions in Spanner.
type ProductRepo struct {
	client    *spanner.Client
	model     *m_product.Model
	committer *committer.Committer
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client, c *committer.Committer) *ProductRepo {
	return &ProductRepo{
		client:    client,
		model:     m_product.NewModel(),
		committer: c,
	}
}

// UpsertMut creates a mutation that inserts or replaces the product.
func (r *ProductRepo) UpsertMut(product *domain.Product) *spanner.Mutation {
	return r.model.UpsertMut(productToData(product))
}

// SaveProduct upserts a product definition.
func (r *ProductRepo) SaveProduct(ctx context.Context, product *domain.Product) error {
	plan := committer.NewPlan()
	plan.Add(r.UpsertMut(product))
	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("save product %s: %w", product.Identifier(), err)
	}
	return nil
}

// GetProduct reads a product by identifier.
func (r *ProductRepo) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, r.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	return dataToProduct(&data)
}

func productToData(product *domain.Product) *m_product.Data {
	return &m_product.Data{
		ProductID:           product.Identifier(),
		Uom:                 product.Uom(),
		Price:               decimalToRat(product.Price()),
		SupportedIncentives: product.SupportedIncentives().Bits(),
	}
}

func dataToProduct(data *m_product.Data) (*domain.Product, error) {
	price, err := ratToDecimal(&data.Price)
	if err != nil {
		return nil, fmt.Errorf("product %s price: %w", data.ProductID, err)
	}
	supported, err := domain.SupportedIncentivesFromBits(data.SupportedIncentives)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", data.ProductID, err)
	}
	return domain.ReconstructProduct(data.ProductID, price, data.Uom, supported), nil
}
