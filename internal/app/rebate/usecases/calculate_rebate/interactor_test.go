package calculate_rebate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
	"github.com/light-bringer/rebate-service/internal/pkg/clock"
)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

type mockRebateStore struct{ mock.Mock }

func (m *mockRebateStore) GetRebate(ctx context.Context, rebateID string) (domain.Rebate, error) {
	args := m.Called(ctx, rebateID)
	rebate, _ := args.Get(0).(domain.Rebate)
	return rebate, args.Error(1)
}

func (m *mockRebateStore) StoreCalculationResult(ctx context.Context, rebate domain.Rebate, amount decimal.Decimal) error {
	args := m.Called(ctx, rebate, amount)
	return args.Error(0)
}

type observation struct {
	incentive string
	outcome   string
}

type recordingRecorder struct{ observed []observation }

func (r *recordingRecorder) ObserveCalculation(incentive, outcome string, _ time.Duration) {
	r.observed = append(r.observed, observation{incentive, outcome})
}

type fixture struct {
	products *mockProductStore
	rebates  *mockRebateStore
	recorder *recordingRecorder
	uc       *Interactor
}

func newFixture() *fixture {
	f := &fixture{
		products: &mockProductStore{},
		rebates:  &mockRebateStore{},
		recorder: &recordingRecorder{},
	}
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.uc = NewInteractor(f.products, f.rebates, f.recorder, clk, zerolog.Nop())
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amountEquals(want string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(dec(want)) })
}

func product(t *testing.T, id, price string, supported domain.SupportedIncentives) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, dec(price), "box", supported)
	require.NoError(t, err)
	return p
}

func request(rebateID, productID, volume string) *Request {
	return &Request{RebateIdentifier: rebateID, ProductIdentifier: productID, Volume: dec(volume)}
}

func TestExecute_FixedCashAmountSupported(t *testing.T) {
	f := newFixture()
	rebate, _ := domain.NewFixedCashAmountRebate("cash-10", dec("10"))

	f.rebates.On("GetRebate", mock.Anything, "cash-10").Return(rebate, nil)
	f.products.On("GetProduct", mock.Anything, "p-1").Return(product(t, "p-1", "30", domain.SupportsFixedCashAmount), nil)
	f.rebates.On("StoreCalculationResult", mock.Anything, rebate, amountEquals("10")).Return(nil).Once()

	result, err := f.uc.Execute(context.Background(), request("cash-10", "p-1", "3"))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, ReasonNone, result.Reason)
	assert.True(t, result.Amount.Equal(dec("10")))
	f.rebates.AssertExpectations(t)
	assert.Equal(t, []observation{{"FixedCashAmount", "success"}}, f.recorder.observed)
}

func TestExecute_ProductSupportsNothing(t *testing.T) {
	f := newFixture()
	rebate, _ := domain.NewFixedCashAmountRebate("cash-10", dec("10"))

	f.rebates.On("GetRebate", mock.Anything, "cash-10").Return(rebate, nil)
	f.products.On("GetProduct", mock.Anything, "p-1").Return(product(t, "p-1", "30", domain.SupportsNone), nil)

	result, err := f.uc.Execute(context.Background(), request("cash-10", "p-1", "3"))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, ReasonIncentiveNotSupported, result.Reason)
	assert.True(t, result.Amount.IsZero())
	f.rebates.AssertNotCalled(t, "StoreCalculationResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_FixedRateRebate(t *testing.T) {
	f := newFixture()
	rebate, _ := domain.NewFixedRateRebate("rate-5", dec("0.05"))

	f.rebates.On("GetRebate", mock.Anything, "rate-5").Return(rebate, nil)
	f.products.On("GetProduct", mock.Anything, "p-1").Return(product(t, "p-1", "30", domain.SupportsFixedRateRebate), nil)
	f.rebates.On("StoreCalculationResult", mock.Anything, rebate, amountEquals("15")).Return(nil).Once()

	result, err := f.uc.Execute(context.Background(), request("rate-5", "p-1", "10"))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "15", result.Amount.String())
	f.rebates.AssertExpectations(t)
}

func TestExecute_AmountPerUom(t *testing.T) {
	f := newFixture()
	rebate, _ := domain.NewAmountPerUomRebate("per-box", dec("7"))

	f.rebates.On("GetRebate", mock.Anything, "per-box").Return(rebate, nil)
	f.products.On("GetProduct", mock.Anything, "p-1").Return(product(t, "p-1", "30", domain.SupportsAmountPerUom), nil)
	f.rebates.On("StoreCalculationResult", mock.Anything, rebate, amountEquals("70")).Return(nil).Once()

	result, err := f.uc.Execute(context.Background(), request("per-box", "p-1", "10"))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "70", result.Amount.String())
	f.rebates.AssertExpectations(t)
}

func TestExecute_RebateNotFound(t *testing.T) {
	f := newFixture()

	f.rebates.On("GetRebate", mock.Anything, "ghost").Return(nil, domain.ErrRebateNotFound)
	f.products.On("GetProduct", mock.Anything, "p-1").Return(product(t, "p-1", "30", domain.SupportsFixedCashAmount), nil)

	result, err := f.uc.Execute(context.Background(), request("ghost", "p-1", "1"))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, ReasonRebateNotFound, result.Reason)
	f.rebates.AssertNotCalled(t, "StoreCalculationResult", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []observation{{"", "rebate_not_found"}}, f.recorder.observed)
}

func TestExecute_ProductNotFound(t *testing.T) {
	f := newFixture()
	rebate, _ := domain.NewFixedCashAmountRebate("cash-10", dec("10"))

	f.rebates.On("GetRebate", mock.Anything, "cash-10").Return(rebate, nil)
	f.products.On("GetProduct", mock.Anything, "ghost").Return(nil, fmt.Errorf("lookup: %w", domain.ErrProductNotFound))

	result, err := f.uc.Execute(context.Background(), request("cash-10", "ghost", "1"))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, ReasonProductNotFound, result.Reason)
	f.rebates.AssertNotCalled(t, "StoreCalculationResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_NotEligible(t *testing.T) {
	f := newFixture()
	rebate, _ := domain.NewAmountPerUomRebate("per-box", dec("7"))

	f.rebates.On("GetRebate", mock.Anything, "per-box").Return(rebate, nil)
	f.products.On("GetProduct", mock.Anything, "p-1").Return(product(t, "p-1", "30", domain.SupportsAmountPerUom), nil)

	result, err := f.uc.Execute(context.Background(), request("per-box", "p-1", "-2"))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, ReasonNotEligible, result.Reason)
	assert.True(t, result.Amount.IsZero())
	f.rebates.AssertNotCalled(t, "StoreCalculationResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_StoreFailure(t *testing.T) {
	f := newFixture()
	rebate, _ := domain.NewFixedCashAmountRebate("cash-10", dec("10"))
	boom := errors.New("connection reset")

	f.rebates.On("GetRebate", mock.Anything, "cash-10").Return(rebate, nil)
	f.products.On("GetProduct", mock.Anything, "p-1").Return(product(t, "p-1", "30", domain.SupportsFixedCashAmount), nil)
	f.rebates.On("StoreCalculationResult", mock.Anything, rebate, amountEquals("10")).Return(boom).Once()

	result, err := f.uc.Execute(context.Background(), request("cash-10", "p-1", "1"))

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, result)
	assert.Equal(t, []observation{{"FixedCashAmount", "error"}}, f.recorder.observed)
}

func TestExecute_LookupFailures(t *testing.T) {
	boom := errors.New("deadline exceeded")

	t.Run("rebate store error", func(t *testing.T) {
		f := newFixture()
		f.rebates.On("GetRebate", mock.Anything, "r").Return(nil, boom)

		result, err := f.uc.Execute(context.Background(), request("r", "p", "1"))
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, result)
		f.products.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
	})

	t.Run("product store error", func(t *testing.T) {
		f := newFixture()
		rebate, _ := domain.NewFixedCashAmountRebate("r", dec("1"))
		f.rebates.On("GetRebate", mock.Anything, "r").Return(rebate, nil)
		f.products.On("GetProduct", mock.Anything, "p").Return(nil, boom)

		_, err := f.uc.Execute(context.Background(), request("r", "p", "1"))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("broken rebate data", func(t *testing.T) {
		f := newFixture()
		f.rebates.On("GetRebate", mock.Anything, "r").Return(nil, fmt.Errorf("rebate r: %w", domain.ErrUnknownIncentive))

		_, err := f.uc.Execute(context.Background(), request("r", "p", "1"))
		assert.ErrorIs(t, err, domain.ErrUnknownIncentive)
		f.rebates.AssertNotCalled(t, "StoreCalculationResult", mock.Anything, mock.Anything, mock.Anything)
	})
}

// The store is called exactly once for every successful calculation and
// never otherwise, always with the unrounded amount.
func TestExecute_StoresIffSuccessful(t *testing.T) {
	values := []string{"-1", "0", "0.5", "3"}
	supportSets := []domain.SupportedIncentives{domain.SupportsNone, domain.SupportsFixedRateRebate | domain.SupportsAmountPerUom}

	for _, price := range values {
		for _, param := range values {
			for _, volume := range values {
				for _, supported := range supportSets {
					rate, _ := domain.NewFixedRateRebate("rate", dec(param))
					perUom, _ := domain.NewAmountPerUomRebate("per-uom", dec(param))

					for _, rebate := range []domain.Rebate{rate, perUom} {
						f := newFixture()
						p := domain.ReconstructProduct("p", dec(price), "kg", supported)

						f.rebates.On("GetRebate", mock.Anything, rebate.Identifier()).Return(rebate, nil)
						f.products.On("GetProduct", mock.Anything, "p").Return(p, nil)
						f.rebates.On("StoreCalculationResult", mock.Anything, rebate, mock.Anything).Return(nil)

						result, err := f.uc.Execute(context.Background(), request(rebate.Identifier(), "p", volume))
						require.NoError(t, err)

						if result.Success {
							f.rebates.AssertNumberOfCalls(t, "StoreCalculationResult", 1)
							stored := f.rebates.Calls[len(f.rebates.Calls)-1].Arguments.Get(2).(decimal.Decimal)
							assert.True(t, stored.Equal(result.Amount))
						} else {
							f.rebates.AssertNotCalled(t, "StoreCalculationResult", mock.Anything, mock.Anything, mock.Anything)
							assert.True(t, result.Amount.IsZero())
						}
					}
				}
			}
		}
	}
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture()
	rebate, _ := domain.NewFixedRateRebate("rate", dec("0.125"))

	f.rebates.On("GetRebate", mock.Anything, "rate").Return(rebate, nil)
	f.products.On("GetProduct", mock.Anything, "p").Return(product(t, "p", "19.99", domain.SupportsFixedRateRebate), nil)
	f.rebates.On("StoreCalculationResult", mock.Anything, rebate, mock.Anything).Return(nil)

	first, err := f.uc.Execute(context.Background(), request("rate", "p", "7"))
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), request("rate", "p", "7"))
	require.NoError(t, err)

	assert.Equal(t, first.Success, second.Success)
	assert.True(t, first.Amount.Equal(second.Amount))
	f.rebates.AssertNumberOfCalls(t, "StoreCalculationResult", 2)
}
