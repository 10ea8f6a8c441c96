package model

// BatchCounterID is the primary key of the single counter row.
const BatchCounterID = "BATCH_COUNTER"

// BatchCounter is the single shared row backing batch identifier issuance.
// The counter is only ever advanced via an atomic increment-and-return at the
// storage layer; two concurrent starts must never observe the same value.
type BatchCounter struct {
	ID              string `gorm:"primaryKey"`
	LastBatchNumber int64  `gorm:"not null;default:0"`
}
