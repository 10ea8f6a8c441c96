package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovement records every balance change on a StockItem.
// Created automatically on intake, consumption, and manual adjustment.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StockItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null"` // "intake" | "consumption" | "adjustment"
	// Quantity: positive = in, negative = out
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Reason        string
	ReferenceID   *uuid.UUID `gorm:"type:uuid"` // production run id if applicable
	CreatedAt     time.Time

	StockItem *StockItem `gorm:"foreignKey:StockItemID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
