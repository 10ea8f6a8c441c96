package dto

import "github.com/shopspring/decimal"

type StartBatchRequest struct {
	InitialMoisture decimal.Decimal `json:"initial_moisture" validate:"min=0"`
	OperatorEmail   string          `json:"operator_email" validate:"required,email"`
}

type StopBatchRequest struct {
	FinalMoisture decimal.Decimal `json:"final_moisture" validate:"min=0"`
}

type BatchResponse struct {
	ID              string           `json:"id"`
	BatchID         string           `json:"batch_id"`
	StartTime       string           `json:"start_time"`
	EndTime         *string          `json:"end_time,omitempty"`
	InitialMoisture decimal.Decimal  `json:"initial_moisture"`
	FinalMoisture   *decimal.Decimal `json:"final_moisture,omitempty"`
	OperatorEmail   string           `json:"operator_email"`
}
