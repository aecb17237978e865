package domain

import (
	"fmt"
	"strings"
)

// IncentiveType names the calculation rule a rebate follows.
type IncentiveType string

const (
	IncentiveFixedCashAmount IncentiveType = "FixedCashAmount"
	IncentiveFixedRateRebate IncentiveType = "FixedRateRebate"
	IncentiveAmountPerUom    IncentiveType = "AmountPerUom"
)

func (t IncentiveType) String() string {
	return string(t)
}

// SupportedIncentives is the set of incentive kinds a product accepts.
// Each kind owns exactly one bit.
type SupportedIncentives uint8

const (
	SupportsFixedCashAmount SupportedIncentives = 1 << iota
	SupportsFixedRateRebate
	SupportsAmountPerUom

	// SupportsNone is the empty set.
	SupportsNone SupportedIncentives = 0

	knownSupportMask = SupportsFixedCashAmount | SupportsFixedRateRebate | SupportsAmountPerUom
)

// requiredSupport maps every incentive kind to the one flag a product must
// carry for it. Adding a kind without an entry here makes it unusable.
var requiredSupport = map[IncentiveType]SupportedIncentives{
	IncentiveFixedCashAmount: SupportsFixedCashAmount,
	IncentiveFixedRateRebate: SupportsFixedRateRebate,
	IncentiveAmountPerUom:    SupportsAmountPerUom,
}

// incentiveOrder fixes the order used when listing a support set.
var incentiveOrder = []IncentiveType{
	IncentiveFixedCashAmount,
	IncentiveFixedRateRebate,
	IncentiveAmountPerUom,
}

// ParseIncentiveType resolves a stored or user supplied incentive name.
func ParseIncentiveType(name string) (IncentiveType, error) {
	t := IncentiveType(strings.TrimSpace(name))
	if _, ok := requiredSupport[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownIncentive, name)
	}
	return t, nil
}

// RequiredSupport returns the product flag a rebate of kind t needs.
func RequiredSupport(t IncentiveType) (SupportedIncentives, error) {
	flag, ok := requiredSupport[t]
	if !ok {
		return SupportsNone, fmt.Errorf("%w: %q", ErrUnknownIncentive, string(t))
	}
	return flag, nil
}

// NewSupportedIncentives builds a support set from incentive kinds.
func NewSupportedIncentives(types ...IncentiveType) (SupportedIncentives, error) {
	set := SupportsNone
	for _, t := range types {
		flag, err := RequiredSupport(t)
		if err != nil {
			return SupportsNone, err
		}
		set |= flag
	}
	return set, nil
}

// SupportedIncentivesFromBits validates a raw bit set read from storage.
func SupportedIncentivesFromBits(bits int64) (SupportedIncentives, error) {
	if bits < 0 || bits&^int64(knownSupportMask) != 0 {
		return SupportsNone, fmt.Errorf("%w: %d", ErrUnknownSupportFlags, bits)
	}
	return SupportedIncentives(bits), nil
}

// Has reports whether every bit of flag is set. The empty flag is never
// considered present.
func (s SupportedIncentives) Has(flag SupportedIncentives) bool {
	return flag != SupportsNone && s&flag == flag
}

// Supports reports whether a product with this set accepts kind t.
func (s SupportedIncentives) Supports(t IncentiveType) bool {
	flag, ok := requiredSupport[t]
	return ok && s.Has(flag)
}

// Incentives lists the kinds in the set in a stable order.
func (s SupportedIncentives) Incentives() []IncentiveType {
	types := make([]IncentiveType, 0, len(incentiveOrder))
	for _, t := range incentiveOrder {
		if s.Supports(t) {
			types = append(types, t)
		}
	}
	return types
}

// Bits returns the raw representation used by the stores.
func (s SupportedIncentives) Bits() int64 {
	return int64(s)
}

func (s SupportedIncentives) String() string {
	types := s.Incentives()
	if len(types) == 0 {
		return "None"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, "|")
}
