package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
	"github.com/light-bringer/rebate-service/internal/app/rebate/queries/get_product"
	"github.com/light-bringer/rebate-service/internal/app/rebate/queries/get_rebate"
	"github.com/light-bringer/rebate-service/internal/app/rebate/repo"
	"github.com/light-bringer/rebate-service/internal/app/rebate/repo/gormstore"
	"github.com/light-bringer/rebate-service/internal/app/rebate/usecases/calculate_rebate"
	"github.com/light-bringer/rebate-service/internal/config"
	"github.com/light-bringer/rebate-service/internal/pkg/clock"
	"github.com/light-bringer/rebate-service/internal/pkg/metrics"
	grpcrebate "github.com/light-bringer/rebate-service/internal/transport/grpc/rebate"
	httptransport "github.com/light-bringer/rebate-service/internal/transport/http"
)

// store is what every backend provides.
type store interface {
	contracts.ProductStore
	contracts.RebateStore
	contracts.CatalogWriter
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	DB            *gorm.DB

	Catalog         contracts.CatalogWriter
	CalculateRebate *calculate_rebate.Interactor
	GRPCHandler     *grpcrebate.Handler
	HTTPHandler     *httptransport.RebateHandler
}

// dialectorFor opens the gorm dialector of a SQL backend.
func dialectorFor(cfg config.Config) gorm.Dialector {
	if cfg.StoreBackend == config.BackendPostgres {
		return postgres.Open(cfg.DatabaseDSN)
	}
	return sqlite.Open(cfg.DatabaseDSN)
}

// NewServiceOptions creates and wires up all application dependencies for
// the backend selected in cfg.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger zerolog.Logger, recorder metrics.Recorder) (*ServiceOptions, error) {
	opts := &ServiceOptions{}
	clk := clock.NewRealClock()

	// 1. Initialize the store
	var st store
	switch cfg.StoreBackend {
	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		opts.SpannerClient = client
		st = repo.NewStore(client, clk)
	case config.BackendPostgres, config.BackendSQLite:
		db, err := gormstore.Open(dialectorFor(cfg), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
		if err != nil {
			return nil, err
		}
		opts.DB = db
		st = gormstore.NewStore(db, clk)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	logger.Info().Str("backend", cfg.StoreBackend).Msg("store initialized")

	// 2. Create use cases and queries
	calculateRebate := calculate_rebate.NewInteractor(st, st, recorder, clk, logger)
	getProduct := get_product.NewQuery(st)
	getRebate := get_rebate.NewQuery(st)

	// 3. Create transport handlers
	opts.Catalog = st
	opts.CalculateRebate = calculateRebate
	opts.GRPCHandler = grpcrebate.NewHandler(calculateRebate, getProduct, getRebate)
	opts.HTTPHandler = httptransport.NewRebateHandler(calculateRebate, getProduct, getRebate)

	return opts, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
