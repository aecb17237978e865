package domain

import "errors"

// Domain errors as sentinel values
var (
	// Lookup errors
	ErrProductNotFound = errors.New("product not found")
	ErrRebateNotFound  = errors.New("rebate not found")

	// Definition errors
	ErrEmptyIdentifier     = errors.New("identifier cannot be empty")
	ErrNegativePrice       = errors.New("product price cannot be negative")
	ErrUnknownIncentive    = errors.New("unknown incentive type")
	ErrUnknownSupportFlags = errors.New("unknown supported incentive flags")
	ErrMissingParameter    = errors.New("rebate is missing a parameter required by its incentive")
	ErrUnexpectedParameter = errors.New("rebate carries a parameter its incentive does not use")

	// Calculation outcomes
	ErrIncentiveNotSupported = errors.New("product does not support the rebate incentive")
	ErrNotEligible           = errors.New("request is not eligible for the rebate")
	ErrMissingInput          = errors.New("rebate and product are required")
)

// IsIneligible reports whether err is a business rejection of a calculation
// rather than a data or infrastructure failure.
func IsIneligible(err error) bool {
	return errors.Is(err, ErrIncentiveNotSupported) || errors.Is(err, ErrNotEligible)
}

// IsInvalidDefinition reports whether err comes from a stored product or
// rebate that cannot be rebuilt.
func IsInvalidDefinition(err error) bool {
	return errors.Is(err, ErrUnknownIncentive) ||
		errors.Is(err, ErrUnknownSupportFlags) ||
		errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrUnexpectedParameter)
}
