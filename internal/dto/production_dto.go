package dto

import "github.com/shopspring/decimal"

type RecordProductionRequest struct {
	ProductName      string          `json:"product_name" validate:"required"`
	Description      *string         `json:"description"`
	Unit             string          `json:"unit"`
	UsedQuantity     decimal.Decimal `json:"used_quantity" validate:"min=0"`
	ProducedQuantity decimal.Decimal `json:"produced_quantity" validate:"min=0"`
}

type ProductionResponse struct {
	ID               string          `json:"id"`
	ProductName      string          `json:"product_name"`
	Description      *string         `json:"description,omitempty"`
	Unit             string          `json:"unit"`
	UsedQuantity     decimal.Decimal `json:"used_quantity"`
	WastedQuantity   decimal.Decimal `json:"wasted_quantity"`
	ProducedQuantity decimal.Decimal `json:"produced_quantity"`
	CreatedAt        string          `json:"created_at"`
}

type ProductionFilter struct {
	ProductName string `form:"product_name"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

type ProductionListResponse struct {
	Data  []ProductionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// DailyProductionRow is one aggregated reporting row (GROUP BY day).
type DailyProductionRow struct {
	Date             string          `json:"date"`
	UsedQuantity     decimal.Decimal `json:"used_quantity"`
	WastedQuantity   decimal.Decimal `json:"wasted_quantity"`
	ProducedQuantity decimal.Decimal `json:"produced_quantity"`
}
