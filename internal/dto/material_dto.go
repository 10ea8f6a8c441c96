package dto

import "github.com/shopspring/decimal"

// CreateMaterialRequest registers a new raw-material receipt (intake).
type CreateMaterialRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required,gt=0"`
	Threshold   decimal.Decimal `json:"threshold" validate:"min=0"`
	SupplierID  *string         `json:"supplier_id"`
	// ReceivedAt is RFC 3339; defaults to the server clock when omitted.
	ReceivedAt *string `json:"received_at"`
}

// ReceiveStockRequest adds quantity to an existing receipt record.
type ReceiveStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required,gt=0"`
}

type UpdateThresholdRequest struct {
	Threshold decimal.Decimal `json:"threshold" validate:"min=0"`
}

type MaterialResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       *string         `json:"description,omitempty"`
	Unit              string          `json:"unit"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	Threshold         decimal.Decimal `json:"threshold"`
	SupplierID        *string         `json:"supplier_id,omitempty"`
	ReceivedAt        string          `json:"received_at"`
	CreatedAt         string          `json:"created_at"`
}

type MaterialFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type MaterialListResponse struct {
	Data  []MaterialResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type MovementResponse struct {
	ID            string          `json:"id"`
	StockItemID   string          `json:"stock_item_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reason        string          `json:"reason,omitempty"`
	ReferenceID   *string         `json:"reference_id,omitempty"`
	CreatedAt     string          `json:"created_at"`
}
