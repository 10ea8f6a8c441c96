package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionRun is one finished-product declaration. WastedQuantity is derived
// (used minus produced, floored at zero). The row commits in the same
// transaction as its raw-material deduction.
type ProductionRun struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductName      string    `gorm:"index;not null"`
	Description      *string
	Unit             string          `gorm:"not null;default:'kg'"`
	UsedQuantity     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	WastedQuantity   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	ProducedQuantity decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
