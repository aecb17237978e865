package gormstore

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// numericType is the column type of decimal fields. SQLite would give
// decimal(20,9) NUMERIC affinity and keep the value as a float, so there
// the decimal string is stored as text.
func numericType(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "decimal(20,9)"
}

// Numeric is a decimal column.
type Numeric struct {
	decimal.Decimal
}

func (Numeric) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return numericType(db)
}

// NullNumeric is a nullable decimal column.
type NullNumeric struct {
	decimal.NullDecimal
}

func (NullNumeric) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return numericType(db)
}
