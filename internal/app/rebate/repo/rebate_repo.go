package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
	"github.com/light-bringer/rebate-service/internal/models/m_calculation"
	"github.com/light-bringer/rebate-service/internal/models/m_rebate"
	"github.com/light-bringer/rebate-service/internal/pkg/clock"
	"github.com/light-bringer/rebate-service/internal/pkg/committer"
)

// RebateRepo reads rebate definitions and records calculations in Spanner.
type RebateRepo struct {
	client       *spanner.Client
	model        *m_rebate.Model
	calculations *m_calculation.Model
	outbox       contracts.OutboxRepository
	committer    *committer.Committer
	clock        clock.Clock
}

// NewRebateRepo creates a new RebateRepo.
func NewRebateRepo(client *spanner.Client, c *committer.Committer, outbox contracts.OutboxRepository, clk clock.Clock) *RebateRepo {
	return &RebateRepo{
		client:       client,
		model:        m_rebate.NewModel(),
		calculations: m_calculation.NewModel(),
		outbox:       outbox,
		committer:    c,
		clock:        clk,
	}
}

// UpsertMut creates a mutation that inserts or replaces the rebate.
func (r *RebateRepo) UpsertMut(rebate domain.Rebate) *spanner.Mutation {
	return r.model.UpsertMut(rebateToData(rebate))
}

// SaveRebate upserts a rebate definition.
func (r *RebateRepo) SaveRebate(ctx context.Context, rebate domain.Rebate) error {
	plan := committer.NewPlan()
	plan.Add(r.UpsertMut(rebate))
	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("save rebate %s: %w", rebate.Identifier(), err)
	}
	return nil
}

// GetRebate reads a rebate by identifier and rebuilds its variant.
func (r *RebateRepo) GetRebate(ctx context.Context, rebateID string) (domain.Rebate, error) {
	row, err := r.client.Single().ReadRow(ctx, m_rebate.TableName, spanner.Key{rebateID}, r.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrRebateNotFound
		}
		return nil, fmt.Errorf("failed to read rebate: %w", err)
	}

	var data m_rebate.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse rebate: %w", err)
	}

	return dataToRebate(&data)
}

// CalculationMuts builds the mutations recording a calculation: the
// calculation row and its rebate.calculated outbox event.
func (r *RebateRepo) CalculationMuts(calc *domain.Calculation) ([]*spanner.Mutation, error) {
	event := calc.Event()
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", event.EventType(), err)
	}

	calcMut := r.calculations.InsertMut(&m_calculation.Data{
		CalculationID: calc.ID(),
		RebateID:      calc.RebateID(),
		Incentive:     calc.Incentive().String(),
		Amount:        decimalToRat(calc.Amount()),
		CalculatedAt:  calc.CalculatedAt(),
	})
	eventMut := r.outbox.InsertMut(r.outbox.EnrichEvent(event, string(payload)))

	return []*spanner.Mutation{calcMut, eventMut}, nil
}

// StoreCalculationResult writes the calculation and its outbox event in one commit.
func (r *RebateRepo) StoreCalculationResult(ctx context.Context, rebate domain.Rebate, amount decimal.Decimal) error {
	calc := domain.NewCalculation(uuid.New().String(), rebate, amount, r.clock.Now())

	muts, err := r.CalculationMuts(calc)
	if err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.AddMultiple(muts)

	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("store calculation for rebate %s: %w", rebate.Identifier(), err)
	}
	return nil
}

func rebateToData(rebate domain.Rebate) *m_rebate.Data {
	fields := domain.FieldsOf(rebate)
	return &m_rebate.Data{
		RebateID:   fields.Identifier,
		Incentive:  fields.Incentive.String(),
		Amount:     nullDecimalToNumeric(fields.Amount),
		Percentage: nullDecimalToNumeric(fields.Percentage),
	}
}

func dataToRebate(data *m_rebate.Data) (domain.Rebate, error) {
	amount, err := numericToNullDecimal(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("rebate %s amount: %w", data.RebateID, err)
	}
	percentage, err := numericToNullDecimal(data.Percentage)
	if err != nil {
		return nil, fmt.Errorf("rebate %s percentage: %w", data.RebateID, err)
	}

	return domain.ReconstructRebate(domain.RebateFields{
		Identifier: data.RebateID,
		Incentive:  domain.IncentiveType(data.Incentive),
		Amount:     amount,
		Percentage: percentage,
	})
}
