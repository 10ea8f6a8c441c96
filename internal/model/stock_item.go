package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem is one raw-material receipt. The ledger consumes these
// oldest-first; ReceivedAt is the FIFO key, ID breaks ties.
type StockItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Unit        string `gorm:"not null;default:'kg'"`
	// ReceivedQuantity is the amount added by this receipt. The deduction
	// engine never touches it.
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	// AvailableQuantity is the consumable balance. Invariant: never negative.
	AvailableQuantity decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	// Threshold is the minimum desired balance; going below it fires a
	// reorder alert. Updated only via the admin threshold endpoint.
	Threshold  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	SupplierID *uuid.UUID      `gorm:"type:uuid;index"`
	ReceivedAt time.Time       `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}
