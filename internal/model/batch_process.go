package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchProcess tracks one physical drying run, labeled with a sequential
// batch identifier ("B" + counter) issued at start time.
type BatchProcess struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID         string    `gorm:"uniqueIndex;not null"`
	StartTime       time.Time `gorm:"index;not null"`
	EndTime         *time.Time
	InitialMoisture decimal.Decimal  `gorm:"type:decimal(5,2);not null"`
	FinalMoisture   *decimal.Decimal `gorm:"type:decimal(5,2)"`
	OperatorEmail   string           `gorm:"index;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides GORM's default pluralization (batch_proceses → batch_processes).
func (BatchProcess) TableName() string { return "batch_processes" }
