package calculate_rebate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
	"github.com/light-bringer/rebate-service/internal/pkg/clock"
	"github.com/light-bringer/rebate-service/internal/pkg/metrics"
)

// Request identifies the rebate and product and carries the volume.
type Request struct {
	RebateIdentifier  string
	ProductIdentifier string
	Volume            decimal.Decimal
}

// Reason explains an unsuccessful calculation.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonRebateNotFound        Reason = "rebate_not_found"
	ReasonProductNotFound       Reason = "product_not_found"
	ReasonIncentiveNotSupported Reason = "incentive_not_supported"
	ReasonNotEligible           Reason = "not_eligible"
)

// Result is the business outcome of a calculation. Amount is zero unless
// Success is true.
type Result struct {
	Success bool
	Reason  Reason
	Amount  decimal.Decimal
}

// Interactor handles the calculate rebate use case.
type Interactor struct {
	products   contracts.ProductStore
	rebates    contracts.RebateStore
	calculator *domain.RebateCalculator
	recorder   metrics.Recorder
	clock      clock.Clock
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// NewInteractor creates a new calculate rebate interactor.
func NewInteractor(
	products contracts.ProductStore,
	rebates contracts.RebateStore,
	recorder metrics.Recorder,
	clock clock.Clock,
	logger zerolog.Logger,
) *Interactor {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	return &Interactor{
		products:   products,
		rebates:    rebates,
		calculator: domain.NewRebateCalculator(),
		recorder:   recorder,
		clock:      clock,
		logger:     logger,
		tracer:     otel.Tracer("calculate_rebate"),
	}
}

// Execute calculates the rebate for the request and records it when
// successful. A rebate or product that does not exist, or a request the
// rebate does not apply to, is an unsuccessful Result with a nil error.
// Errors are reserved for store failures and broken rebate data.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	ctx, span := i.tracer.Start(ctx, "calculate_rebate.Execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("rebate.id", req.RebateIdentifier),
		attribute.String("product.id", req.ProductIdentifier),
		attribute.String("rebate.volume", req.Volume.String()),
	)

	started := i.clock.Now()
	log := i.logger.With().
		Str("rebate_id", req.RebateIdentifier).
		Str("product_id", req.ProductIdentifier).
		Str("volume", req.Volume.String()).
		Logger()

	// 1. Load rebate and product
	rebate, err := i.rebates.GetRebate(ctx, req.RebateIdentifier)
	if err != nil && !errors.Is(err, domain.ErrRebateNotFound) {
		return nil, i.fail(span, "", started, fmt.Errorf("load rebate %s: %w", req.RebateIdentifier, err))
	}
	product, err := i.products.GetProduct(ctx, req.ProductIdentifier)
	if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		return nil, i.fail(span, incentiveOf(rebate), started, fmt.Errorf("load product %s: %w", req.ProductIdentifier, err))
	}

	if rebate == nil {
		return i.reject(span, log, "", started, ReasonRebateNotFound), nil
	}
	if product == nil {
		return i.reject(span, log, incentiveOf(rebate), started, ReasonProductNotFound), nil
	}

	incentive := incentiveOf(rebate)
	span.SetAttributes(attribute.String("rebate.incentive", incentive))

	// 2. Apply the rebate rules
	amount, err := i.calculator.TryCalculate(rebate, product, req.Volume)
	switch {
	case errors.Is(err, domain.ErrIncentiveNotSupported):
		return i.reject(span, log, incentive, started, ReasonIncentiveNotSupported), nil
	case errors.Is(err, domain.ErrNotEligible):
		return i.reject(span, log, incentive, started, ReasonNotEligible), nil
	case err != nil:
		return nil, i.fail(span, incentive, started, fmt.Errorf("calculate rebate %s: %w", rebate.Identifier(), err))
	}

	// 3. Record the calculation
	if err := i.rebates.StoreCalculationResult(ctx, rebate, amount); err != nil {
		return nil, i.fail(span, incentive, started, err)
	}

	i.recorder.ObserveCalculation(incentive, metrics.OutcomeSuccess, i.clock.Now().Sub(started))
	span.SetAttributes(attribute.String("rebate.amount", amount.String()))
	log.Info().Str("incentive", incentive).Str("amount", amount.String()).Msg("rebate calculated")

	return &Result{Success: true, Amount: amount}, nil
}

func (i *Interactor) reject(span trace.Span, log zerolog.Logger, incentive string, started time.Time, reason Reason) *Result {
	i.recorder.ObserveCalculation(incentive, string(reason), i.clock.Now().Sub(started))
	span.SetAttributes(attribute.String("rebate.reason", string(reason)))
	log.Debug().Str("incentive", incentive).Str("reason", string(reason)).Msg("rebate not applied")

	return &Result{Success: false, Reason: reason, Amount: decimal.Zero}
}

func (i *Interactor) fail(span trace.Span, incentive string, started time.Time, err error) error {
	i.recorder.ObserveCalculation(incentive, metrics.OutcomeError, i.clock.Now().Sub(started))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	i.logger.Error().Err(err).Str("incentive", incentive).Msg("rebate calculation failed")
	return err
}

func incentiveOf(rebate domain.Rebate) string {
	if rebate == nil {
		return ""
	}
	return rebate.Incentive().String()
}
