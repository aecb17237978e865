package rebate

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return status.Error(codes.NotFound, "product not found")

	case errors.Is(err, domain.ErrRebateNotFound):
		return status.Error(codes.NotFound, "rebate not found")

	case domain.IsIneligible(err):
		return status.Error(codes.FailedPrecondition, err.Error())

	case domain.IsInvalidDefinition(err):
		return status.Error(codes.DataLoss, "stored rebate definition is invalid")

	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
