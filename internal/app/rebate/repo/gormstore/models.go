package gormstore

import (
	"time"

	"gorm.io/gorm"
)

// Product is the products table.
type Product struct {
	ProductID           string  `gorm:"type:varchar(64);primaryKey"`
	Uom                 string  `gorm:"type:varchar(32)"`
	Price               Numeric `gorm:"not null"`
	SupportedIncentives int64   `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Product) TableName() string { return "products" }

// Rebate is the rebates table. Only the parameter owned by the incentive is set.
type Rebate struct {
	RebateID   string `gorm:"type:varchar(64);primaryKey"`
	Incentive  string `gorm:"type:varchar(32);not null"`
	Amount     NullNumeric
	Percentage NullNumeric
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Rebate) TableName() string { return "rebates" }

// Calculation is the rebate_calculations table.
type Calculation struct {
	CalculationID string    `gorm:"type:varchar(36);primaryKey"`
	RebateID      string    `gorm:"type:varchar(64);not null;index"`
	Incentive     string    `gorm:"type:varchar(32);not null"`
	Amount        Numeric   `gorm:"not null"`
	CalculatedAt  time.Time `gorm:"not null;index"`
}

func (Calculation) TableName() string { return "rebate_calculations" }

// OutboxEvent is the outbox_events table.
type OutboxEvent struct {
	EventID     string    `gorm:"type:varchar(36);primaryKey"`
	EventType   string    `gorm:"type:varchar(64);not null;index"`
	AggregateID string    `gorm:"type:varchar(64);not null;index"`
	Payload     string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (OutboxEvent) TableName() string { return "outbox_events" }

// AutoMigrate creates or updates every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{}, &Rebate{}, &Calculation{}, &OutboxEvent{})
}
