package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
	"github.com/light-bringer/rebate-service/internal/app/rebate/queries/get_product"
	"github.com/light-bringer/rebate-service/internal/app/rebate/queries/get_rebate"
	"github.com/light-bringer/rebate-service/internal/app/rebate/usecases/calculate_rebate"
)

// CalculateRequest is the body of POST /api/v1/rebates/calculate. Volume
// accepts a JSON number or a decimal string.
type CalculateRequest struct {
	RebateIdentifier  string           `json:"rebate_identifier" binding:"required"`
	ProductIdentifier string           `json:"product_identifier" binding:"required"`
	Volume            *decimal.Decimal `json:"volume" binding:"required"`
}

// CalculateResponse is the data of a calculation reply.
type CalculateResponse struct {
	Success bool             `json:"success"`
	Reason  string           `json:"reason,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
}

// ProductResponse is the data of GET /api/v1/products/:id.
type ProductResponse struct {
	ProductID           string          `json:"product_id"`
	Price               decimal.Decimal `json:"price"`
	Uom                 string          `json:"uom"`
	SupportedIncentives []string        `json:"supported_incentives"`
}

// RebateResponse is the data of GET /api/v1/rebates/:id.
type RebateResponse struct {
	RebateID   string           `json:"rebate_id"`
	Incentive  string           `json:"incentive"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// RebateHandler serves the rebate REST API.
type RebateHandler struct {
	calculateRebate *calculate_rebate.Interactor
	getProduct      *get_product.Query
	getRebate       *get_rebate.Query
}

func NewRebateHandler(
	calculateRebate *calculate_rebate.Interactor,
	getProduct *get_product.Query,
	getRebate *get_rebate.Query,
) *RebateHandler {
	return &RebateHandler{
		calculateRebate: calculateRebate,
		getProduct:      getProduct,
		getRebate:       getRebate,
	}
}

func (h *RebateHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1")
	{
		api.POST("/rebates/calculate", h.CalculateRebate)
		api.GET("/rebates/:id", h.GetRebate)
		api.GET("/products/:id", h.GetProduct)
	}
}

// CalculateRebate answers 200 for every business outcome; success=false
// carries the reason.
func (h *RebateHandler) CalculateRebate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.calculateRebate.Execute(c.Request.Context(), &calculate_rebate.Request{
		RebateIdentifier:  req.RebateIdentifier,
		ProductIdentifier: req.ProductIdentifier,
		Volume:            *req.Volume,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	data := CalculateResponse{Success: result.Success, Reason: string(result.Reason)}
	if result.Success {
		amount := result.Amount
		data.Amount = &amount
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, data))
}

func (h *RebateHandler) GetProduct(c *gin.Context) {
	dto, err := h.getProduct.Execute(c.Request.Context(), &get_product.Request{ProductID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, productResponse(dto)))
}

func (h *RebateHandler) GetRebate(c *gin.Context) {
	dto, err := h.getRebate.Execute(c.Request.Context(), &get_rebate.Request{RebateID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, rebateResponse(dto)))
}

func productResponse(dto *contracts.ProductDTO) ProductResponse {
	return ProductResponse{
		ProductID:           dto.ProductID,
		Price:               dto.Price,
		Uom:                 dto.Uom,
		SupportedIncentives: dto.SupportedIncentives,
	}
}

func rebateResponse(dto *contracts.RebateDTO) RebateResponse {
	resp := RebateResponse{RebateID: dto.RebateID, Incentive: dto.Incentive}
	if dto.Amount.Valid {
		amount := dto.Amount.Decimal
		resp.Amount = &amount
	}
	if dto.Percentage.Valid {
		percentage := dto.Percentage.Decimal
		resp.Percentage = &percentage
	}
	return resp
}

// writeError maps domain errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		code, msg = http.StatusNotFound, "product not found"
	case errors.Is(err, domain.ErrRebateNotFound):
		code, msg = http.StatusNotFound, "rebate not found"
	case domain.IsInvalidDefinition(err):
		code, msg = http.StatusUnprocessableEntity, "stored rebate definition is invalid"
	}

	_ = c.Error(err)
	c.JSON(code, Error(code, msg))
}
