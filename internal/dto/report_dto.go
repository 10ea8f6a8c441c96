package dto

import "github.com/shopspring/decimal"

// DailyQuantityRow aggregates raw-material intake per day.
type DailyQuantityRow struct {
	Date          string          `json:"date"`
	AddedQuantity decimal.Decimal `json:"added_quantity"`
}

type DailyQuantitiesResponse struct {
	Data []DailyQuantityRow `json:"data"`
	// TotalAvailable is the current aggregate consumable stock across all receipts.
	TotalAvailable decimal.Decimal `json:"total_available"`
}

type DailyProductionResponse struct {
	Data []DailyProductionRow `json:"data"`
}
