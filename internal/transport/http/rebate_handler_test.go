package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/light-bringer/rebate-service/internal/app/rebate/catalog"
	"github.com/light-bringer/rebate-service/internal/app/rebate/queries/get_product"
	"github.com/light-bringer/rebate-service/internal/app/rebate/queries/get_rebate"
	"github.com/light-bringer/rebate-service/internal/app/rebate/repo/gormstore"
	"github.com/light-bringer/rebate-service/internal/app/rebate/usecases/calculate_rebate"
	"github.com/light-bringer/rebate-service/internal/pkg/clock"
	"github.com/light-bringer/rebate-service/internal/pkg/metrics"
)

const testCatalog = `
products:
  - identifier: widget
    price: "30"
    uom: box
    supported_incentives: [FixedRateRebate, AmountPerUom]
rebates:
  - identifier: rate-5
    incentive: FixedRateRebate
    percentage: "0.05"
  - identifier: welcome-10
    incentive: FixedCashAmount
    amount: "10"
`

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gormstore.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	store := gormstore.NewStore(db, clock.NewMockClock(time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)))
	cat, err := catalog.Parse(strings.NewReader(testCatalog))
	require.NoError(t, err)
	require.NoError(t, catalog.NewSeeder(store, zerolog.Nop()).Seed(context.Background(), cat))

	reg := prometheus.NewRegistry()
	recorder, err := metrics.NewPrometheusRecorder(reg)
	require.NoError(t, err)
	uc := calculate_rebate.NewInteractor(store, store, recorder, clock.NewRealClock(), zerolog.Nop())
	handler := NewRebateHandler(uc, get_product.NewQuery(store), get_rebate.NewQuery(store))

	return NewRouter(handler, reg, zerolog.Nop()), db
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func countCalculations(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&gormstore.Calculation{}).Count(&n).Error)
	return n
}

func TestCalculateRebate(t *testing.T) {
	router, db := newTestRouter(t)

	t.Run("successful calculation is stored", func(t *testing.T) {
		w, env := do(t, router, http.MethodPost, "/api/v1/rebates/calculate",
			`{"rebate_identifier":"rate-5","product_identifier":"widget","volume":10}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", env.Status)

		var data CalculateResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.True(t, data.Success)
		assert.Empty(t, data.Reason)
		require.NotNil(t, data.Amount)
		assert.True(t, data.Amount.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, int64(1), countCalculations(t, db))
	})

	t.Run("volume as a decimal string", func(t *testing.T) {
		w, env := do(t, router, http.MethodPost, "/api/v1/rebates/calculate",
			`{"rebate_identifier":"rate-5","product_identifier":"widget","volume":"2.5"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var data CalculateResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.NotNil(t, data.Amount)
		assert.True(t, data.Amount.Equal(decimal.RequireFromString("3.75")))
	})

	rejections := []struct {
		name   string
		body   string
		reason calculate_rebate.Reason
	}{
		{"unknown rebate", `{"rebate_identifier":"nope","product_identifier":"widget","volume":1}`, calculate_rebate.ReasonRebateNotFound},
		{"unknown product", `{"rebate_identifier":"rate-5","product_identifier":"nope","volume":1}`, calculate_rebate.ReasonProductNotFound},
		{"unsupported incentive", `{"rebate_identifier":"welcome-10","product_identifier":"widget","volume":1}`, calculate_rebate.ReasonIncentiveNotSupported},
		{"zero volume", `{"rebate_identifier":"rate-5","product_identifier":"widget","volume":0}`, calculate_rebate.ReasonNotEligible},
	}
	for _, tc := range rejections {
		t.Run(tc.name, func(t *testing.T) {
			before := countCalculations(t, db)

			w, env := do(t, router, http.MethodPost, "/api/v1/rebates/calculate", tc.body)
			require.Equal(t, http.StatusOK, w.Code)

			var data CalculateResponse
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.False(t, data.Success)
			assert.Equal(t, string(tc.reason), data.Reason)
			assert.Nil(t, data.Amount)
			assert.Equal(t, before, countCalculations(t, db))
		})
	}

	t.Run("malformed payloads are rejected", func(t *testing.T) {
		for _, body := range []string{
			`{"product_identifier":"widget","volume":1}`,
			`{"rebate_identifier":"rate-5","product_identifier":"widget"}`,
			`{"rebate_identifier":"rate-5","product_identifier":"widget","volume":"ten"}`,
			`not json`,
		} {
			w, env := do(t, router, http.MethodPost, "/api/v1/rebates/calculate", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Equal(t, "error", env.Status)
		}
	})
}

func TestGetProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	w, env := do(t, router, http.MethodGet, "/api/v1/products/widget", "")
	require.Equal(t, http.StatusOK, w.Code)

	var data ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "widget", data.ProductID)
	assert.Equal(t, "box", data.Uom)
	assert.True(t, data.Price.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, []string{"FixedRateRebate", "AmountPerUom"}, data.SupportedIncentives)

	w, env = do(t, router, http.MethodGet, "/api/v1/products/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "product not found", env.Error)
}

func TestGetRebate(t *testing.T) {
	router, _ := newTestRouter(t)

	w, env := do(t, router, http.MethodGet, "/api/v1/rebates/rate-5", "")
	require.Equal(t, http.StatusOK, w.Code)

	var data RebateResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "rate-5", data.RebateID)
	assert.Equal(t, "FixedRateRebate", data.Incentive)
	assert.Nil(t, data.Amount)
	require.NotNil(t, data.Percentage)
	assert.True(t, data.Percentage.Equal(decimal.RequireFromString("0.05")))

	w, _ = do(t, router, http.MethodGet, "/api/v1/rebates/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	w, env := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.Status)

	do(t, router, http.MethodPost, "/api/v1/rebates/calculate",
		`{"rebate_identifier":"rate-5","product_identifier":"widget","volume":1}`)

	w, _ = do(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rebate_calculations_total")
}
