package m_product

import (
	"math/big"
	"time"
)

// Data represents a row of the products table.
type Data struct {
	ProductID           string    `spanner:"product_id"`
	Uom                 string    `spanner:"uom"`
	Price               big.Rat   `spanner:"price"`
	SupportedIncentives int64     `spanner:"supported_incentives"`
	UpdatedAt           time.Time `spanner:"updated_at"`
}
