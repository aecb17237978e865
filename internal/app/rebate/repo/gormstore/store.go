// Package gormstore is the SQL backend of the rebate service, used with
// PostgreSQL in deployments and SQLite for local runs and tests.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
	"github.com/light-bringer/rebate-service/internal/models/m_outbox"
	"github.com/light-bringer/rebate-service/internal/pkg/clock"
)

// Store implements ProductStore, RebateStore and CatalogWriter over gorm.
type Store struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewStore creates a Store. The schema must already exist (see AutoMigrate).
func NewStore(db *gorm.DB, clk clock.Clock) *Store {
	return &Store{db: db, clock: clk}
}

// Open connects through dialector and migrates the schema.
func Open(dialector gorm.Dialector, cfg *gorm.Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &gorm.Config{}
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}

func (s *Store) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var row Product
	if err := s.db.WithContext(ctx).First(&row, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	supported, err := domain.SupportedIncentivesFromBits(row.SupportedIncentives)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", row.ProductID, err)
	}
	return domain.ReconstructProduct(row.ProductID, row.Price.Decimal, row.Uom, supported), nil
}

func (s *Store) GetRebate(ctx context.Context, rebateID string) (domain.Rebate, error) {
	var row Rebate
	if err := s.db.WithContext(ctx).First(&row, "rebate_id = ?", rebateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRebateNotFound
		}
		return nil, fmt.Errorf("failed to read rebate: %w", err)
	}

	return domain.ReconstructRebate(domain.RebateFields{
		Identifier: row.RebateID,
		Incentive:  domain.IncentiveType(row.Incentive),
		Amount:     row.Amount.NullDecimal,
		Percentage: row.Percentage.NullDecimal,
	})
}

// StoreCalculationResult writes the calculation row and its outbox event
// in one transaction.
func (s *Store) StoreCalculationResult(ctx context.Context, rebate domain.Rebate, amount decimal.Decimal) error {
	calc := domain.NewCalculation(uuid.New().String(), rebate, amount, s.clock.Now())
	event := calc.Event()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.EventType(), err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&Calculation{
			CalculationID: calc.ID(),
			RebateID:      calc.RebateID(),
			Incentive:     calc.Incentive().String(),
			Amount:        Numeric{calc.Amount()},
			CalculatedAt:  calc.CalculatedAt(),
		}).Error; err != nil {
			return err
		}
		return tx.Create(&OutboxEvent{
			EventID:     uuid.New().String(),
			EventType:   event.EventType(),
			AggregateID: event.AggregateID(),
			Payload:     string(payload),
			Status:      m_outbox.StatusPending,
			CreatedAt:   calc.CalculatedAt(),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("store calculation for rebate %s: %w", rebate.Identifier(), err)
	}
	return nil
}

// SaveProduct upserts a product definition.
func (s *Store) SaveProduct(ctx context.Context, product *domain.Product) error {
	row := &Product{
		ProductID:           product.Identifier(),
		Uom:                 product.Uom(),
		Price:               Numeric{product.Price()},
		SupportedIncentives: product.SupportedIncentives().Bits(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"uom", "price", "supported_incentives", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("save product %s: %w", product.Identifier(), err)
	}
	return nil
}

// SaveRebate upserts a rebate definition.
func (s *Store) SaveRebate(ctx context.Context, rebate domain.Rebate) error {
	fields := domain.FieldsOf(rebate)
	row := &Rebate{
		RebateID:   fields.Identifier,
		Incentive:  fields.Incentive.String(),
		Amount:     NullNumeric{fields.Amount},
		Percentage: NullNumeric{fields.Percentage},
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rebate_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"incentive", "amount", "percentage", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("save rebate %s: %w", rebate.Identifier(), err)
	}
	return nil
}
