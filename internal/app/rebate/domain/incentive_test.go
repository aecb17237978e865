package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIncentiveType(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		for _, name := range []string{"FixedCashAmount", "FixedRateRebate", "AmountPerUom"} {
			got, err := ParseIncentiveType(name)
			require.NoError(t, err)
			assert.Equal(t, name, got.String())
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseIncentiveType("BuyOneGetOne")
		assert.ErrorIs(t, err, ErrUnknownIncentive)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := ParseIncentiveType("")
		assert.ErrorIs(t, err, ErrUnknownIncentive)
	})
}

func TestRequiredSupport(t *testing.T) {
	cases := map[IncentiveType]SupportedIncentives{
		IncentiveFixedCashAmount: SupportsFixedCashAmount,
		IncentiveFixedRateRebate: SupportsFixedRateRebate,
		IncentiveAmountPerUom:    SupportsAmountPerUom,
	}
	for kind, want := range cases {
		got, err := RequiredSupport(kind)
		require.NoError(t, err)
		assert.Equal(t, want, got, kind)
	}

	_, err := RequiredSupport(IncentiveType("Mystery"))
	assert.ErrorIs(t, err, ErrUnknownIncentive)
}

func TestSupportedIncentives_Has(t *testing.T) {
	set := SupportsFixedCashAmount | SupportsAmountPerUom

	assert.True(t, set.Has(SupportsFixedCashAmount))
	assert.True(t, set.Has(SupportsAmountPerUom))
	assert.False(t, set.Has(SupportsFixedRateRebate))

	t.Run("empty flag is never present", func(t *testing.T) {
		assert.False(t, set.Has(SupportsNone))
		assert.False(t, SupportsNone.Has(SupportsNone))
	})
}

func TestNewSupportedIncentives(t *testing.T) {
	set, err := NewSupportedIncentives(IncentiveFixedRateRebate, IncentiveAmountPerUom)
	require.NoError(t, err)

	assert.Equal(t, SupportsFixedRateRebate|SupportsAmountPerUom, set)
	assert.Equal(t, []IncentiveType{IncentiveFixedRateRebate, IncentiveAmountPerUom}, set.Incentives())
	assert.Equal(t, "FixedRateRebate|AmountPerUom", set.String())

	_, err = NewSupportedIncentives(IncentiveType("Nope"))
	assert.ErrorIs(t, err, ErrUnknownIncentive)

	empty, err := NewSupportedIncentives()
	require.NoError(t, err)
	assert.Equal(t, "None", empty.String())
	assert.Empty(t, empty.Incentives())
}

func TestSupportedIncentivesFromBits(t *testing.T) {
	set, err := SupportedIncentivesFromBits(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), set.Bits())

	_, err = SupportedIncentivesFromBits(8)
	assert.ErrorIs(t, err, ErrUnknownSupportFlags)

	_, err = SupportedIncentivesFromBits(-1)
	assert.ErrorIs(t, err, ErrUnknownSupportFlags)
}
