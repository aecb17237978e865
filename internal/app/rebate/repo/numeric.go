package repo

import (
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
)

// Spanner NUMERIC keeps nine fractional digits.
const numericScale = 9

// decimalToRat rounds d half away from zero to the NUMERIC scale.
func decimalToRat(d decimal.Decimal) big.Rat {
	return *d.Round(numericScale).Rat()
}

func ratToDecimal(r *big.Rat) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(r.FloatString(numericScale))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid numeric %s: %w", r.String(), err)
	}
	return d, nil
}

func nullDecimalToNumeric(d decimal.NullDecimal) spanner.NullNumeric {
	if !d.Valid {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: decimalToRat(d.Decimal), Valid: true}
}

func numericToNullDecimal(n spanner.NullNumeric) (decimal.NullDecimal, error) {
	if !n.Valid {
		return decimal.NullDecimal{}, nil
	}
	d, err := ratToDecimal(&n.Numeric)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
