package rebate

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
	"github.com/light-bringer/rebate-service/internal/app/rebate/usecases/calculate_rebate"
)

// Request and reply field names.
const (
	fieldRebateIdentifier    = "rebate_identifier"
	fieldProductIdentifier   = "product_identifier"
	fieldVolume              = "volume"
	fieldSuccess             = "success"
	fieldReason              = "reason"
	fieldAmount              = "amount"
	fieldProductID           = "product_id"
	fieldRebateID            = "rebate_id"
	fieldPrice               = "price"
	fieldUom                 = "uom"
	fieldSupportedIncentives = "supported_incentives"
	fieldIncentive           = "incentive"
	fieldPercentage          = "percentage"
)

func calculateRequestFromProto(req *structpb.Struct) (*calculate_rebate.Request, error) {
	rebateID, err := requiredString(req, fieldRebateIdentifier)
	if err != nil {
		return nil, err
	}
	productID, err := requiredString(req, fieldProductIdentifier)
	if err != nil {
		return nil, err
	}
	volume, err := requiredDecimal(req, fieldVolume)
	if err != nil {
		return nil, err
	}
	return &calculate_rebate.Request{
		RebateIdentifier:  rebateID,
		ProductIdentifier: productID,
		Volume:            volume,
	}, nil
}

func calculateResultToProto(result *calculate_rebate.Result) *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldSuccess: structpb.NewBoolValue(result.Success),
	}
	if result.Success {
		fields[fieldAmount] = structpb.NewStringValue(result.Amount.String())
	} else {
		fields[fieldReason] = structpb.NewStringValue(string(result.Reason))
	}
	return &structpb.Struct{Fields: fields}
}

func productToProto(dto *contracts.ProductDTO) *structpb.Struct {
	incentives := make([]*structpb.Value, len(dto.SupportedIncentives))
	for i, name := range dto.SupportedIncentives {
		incentives[i] = structpb.NewStringValue(name)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldProductID:           structpb.NewStringValue(dto.ProductID),
		fieldPrice:               structpb.NewStringValue(dto.Price.String()),
		fieldUom:                 structpb.NewStringValue(dto.Uom),
		fieldSupportedIncentives: structpb.NewListValue(&structpb.ListValue{Values: incentives}),
	}}
}

func rebateToProto(dto *contracts.RebateDTO) *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldRebateID:  structpb.NewStringValue(dto.RebateID),
		fieldIncentive: structpb.NewStringValue(dto.Incentive),
	}
	if dto.Amount.Valid {
		fields[fieldAmount] = structpb.NewStringValue(dto.Amount.Decimal.String())
	}
	if dto.Percentage.Valid {
		fields[fieldPercentage] = structpb.NewStringValue(dto.Percentage.Decimal.String())
	}
	return &structpb.Struct{Fields: fields}
}
