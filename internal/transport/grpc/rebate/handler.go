package rebate

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/rebate-service/internal/app/rebate/queries/get_product"
	"github.com/light-bringer/rebate-service/internal/app/rebate/queries/get_rebate"
	"github.com/light-bringer/rebate-service/internal/app/rebate/usecases/calculate_rebate"
)

// Handler implements RebateServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	calculateRebate *calculate_rebate.Interactor

	getProduct *get_product.Query
	getRebate  *get_rebate.Query
}

// NewHandler creates a new gRPC rebate handler.
func NewHandler(
	calculateRebate *calculate_rebate.Interactor,
	getProduct *get_product.Query,
	getRebate *get_rebate.Query,
) *Handler {
	return &Handler{
		calculateRebate: calculateRebate,
		getProduct:      getProduct,
		getRebate:       getRebate,
	}
}

// CalculateRebate calculates and records a rebate. Business rejections come
// back as success=false with a reason, not as a gRPC error.
func (h *Handler) CalculateRebate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// 1. Validate and map request
	appReq, err := calculateRequestFromProto(req)
	if err != nil {
		return nil, err
	}

	// 2. Call usecase
	result, err := h.calculateRebate.Execute(ctx, appReq)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	// 3. Return response
	return calculateResultToProto(result), nil
}

// GetProduct returns a product definition.
func (h *Handler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	productID, err := requiredString(req, fieldProductID)
	if err != nil {
		return nil, err
	}

	dto, err := h.getProduct.Execute(ctx, &get_product.Request{ProductID: productID})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return productToProto(dto), nil
}

// GetRebate returns a rebate definition.
func (h *Handler) GetRebate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	rebateID, err := requiredString(req, fieldRebateID)
	if err != nil {
		return nil, err
	}

	dto, err := h.getRebate.Execute(ctx, &get_rebate.Request{RebateID: rebateID})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return rebateToProto(dto), nil
}
