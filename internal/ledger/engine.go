package ledger

import (
	"context"
	"strings"

	"github.com/HIMS4RA/CocoPro/internal/model"
	"github.com/HIMS4RA/CocoPro/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MovementIntake      = "intake"
	MovementConsumption = "consumption"
	MovementAdjustment  = "adjustment"
)

// maxTxAttempts bounds the retry-with-fresh-snapshot loop for transactions
// rejected by the storage layer (deadlock / serialization failure).
const maxTxAttempts = 3

// Engine is the inventory ledger: FIFO deduction across raw-material
// receipts, intake replenishment, and threshold monitoring.
//
// Every mutating operation runs inside a transaction with row-level locks on
// the touched StockItem rows, so two concurrent consumers can never both read
// the same stale balance and independently subtract from it. Either the full
// requested amount is deducted in receipt order, or nothing is.
type Engine struct {
	items     repository.StockItemRepository
	movements repository.StockMovementRepository
	sink      AlertSink
}

func NewEngine(items repository.StockItemRepository, movements repository.StockMovementRepository, sink AlertSink) *Engine {
	return &Engine{items: items, movements: movements, sink: sink}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// isRetryable reports whether the storage error is a transient transaction
// conflict worth retrying with a fresh snapshot.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize access")
}

// InTx runs fn in a transaction, retrying transient conflicts up to
// maxTxAttempts before surfacing ErrConflict. Exported so collaborators
// (the production accountant) can bundle their own writes with a deduction.
func (e *Engine) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = runTx(ctx, e.items.DB(), fn)
		if err == nil || !isRetryable(err) {
			return err
		}
	}
	return ErrConflict
}

// Consume atomically deducts totalRequired across receipts, oldest first.
// Returns false (with no mutation at all) when aggregate stock is
// insufficient; that is an expected outcome, not an error.
func (e *Engine) Consume(ctx context.Context, totalRequired decimal.Decimal) (bool, error) {
	if totalRequired.IsNegative() {
		return false, ErrInvalidQuantity
	}
	if totalRequired.IsZero() {
		return true, nil
	}

	var ok bool
	var touched []model.StockItem
	err := e.InTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		ok, touched, txErr = e.ConsumeTx(tx, totalRequired, nil, "")
		return txErr
	})
	if err != nil {
		return false, err
	}

	e.EmitAlerts(ctx, touched)
	return ok, nil
}

// ConsumeTx is the deduction algorithm against a caller-supplied transaction.
// The returned items carry their post-deduction balances; the caller must
// run EmitAlerts on them after the transaction commits.
//
//  1. Load every receipt with stock left, oldest first (FOR UPDATE).
//  2. If the aggregate cannot cover the request, touch nothing.
//  3. Walk the list, draining each receipt up to its balance until the
//     remainder hits zero. A receipt's balance never goes negative.
func (e *Engine) ConsumeTx(tx *gorm.DB, totalRequired decimal.Decimal, referenceID *uuid.UUID, reason string) (bool, []model.StockItem, error) {
	if totalRequired.IsNegative() {
		return false, nil, ErrInvalidQuantity
	}
	if totalRequired.IsZero() {
		return true, nil, nil
	}

	items, err := e.items.ListConsumableTx(tx)
	if err != nil {
		return false, nil, err
	}

	available := decimal.Zero
	for _, item := range items {
		available = available.Add(item.AvailableQuantity)
	}
	if available.LessThan(totalRequired) {
		return false, nil, nil
	}

	remaining := totalRequired
	var touched []model.StockItem
	for i := range items {
		if !remaining.IsPositive() {
			break
		}

		before := items[i].AvailableQuantity
		take := decimal.Min(before, remaining)
		after := before.Sub(take)

		if err := e.items.UpdateAvailableTx(tx, items[i].ID, after); err != nil {
			return false, nil, err
		}
		if err := e.movements.CreateTx(tx, &model.StockMovement{
			StockItemID:   items[i].ID,
			Type:          MovementConsumption,
			Quantity:      take.Neg(),
			BalanceBefore: before,
			BalanceAfter:  after,
			Reason:        reason,
			ReferenceID:   referenceID,
		}); err != nil {
			return false, nil, err
		}

		items[i].AvailableQuantity = after
		touched = append(touched, items[i])
		remaining = remaining.Sub(take)
	}

	return true, touched, nil
}

// Receive adds quantity to an existing receipt's consumable balance.
// Non-positive quantities are a caller contract violation.
func (e *Engine) Receive(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}

	var updated model.StockItem
	err := e.InTx(ctx, func(tx *gorm.DB) error {
		item, err := e.items.FindByIDForUpdateTx(tx, itemID)
		if err != nil {
			return err
		}

		before := item.AvailableQuantity
		after := before.Add(quantity)
		if err := e.items.UpdateAvailableTx(tx, item.ID, after); err != nil {
			return err
		}
		if err := e.movements.CreateTx(tx, &model.StockMovement{
			StockItemID:   item.ID,
			Type:          MovementIntake,
			Quantity:      quantity,
			BalanceBefore: before,
			BalanceAfter:  after,
		}); err != nil {
			return err
		}

		item.AvailableQuantity = after
		updated = *item
		return nil
	})
	if err != nil {
		return err
	}

	e.EmitAlerts(ctx, []model.StockItem{updated})
	return nil
}

// SetThreshold updates an item's reorder threshold and immediately
// re-evaluates the monitor, so a raised threshold alerts without waiting
// for the next stock mutation.
func (e *Engine) SetThreshold(ctx context.Context, itemID uuid.UUID, threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return ErrInvalidQuantity
	}

	var updated model.StockItem
	err := e.InTx(ctx, func(tx *gorm.DB) error {
		item, err := e.items.FindByIDForUpdateTx(tx, itemID)
		if err != nil {
			return err
		}
		if err := e.items.UpdateThresholdTx(tx, item.ID, threshold); err != nil {
			return err
		}
		item.Threshold = threshold
		updated = *item
		return nil
	})
	if err != nil {
		return err
	}

	e.EmitAlerts(ctx, []model.StockItem{updated})
	return nil
}

// EmitAlerts runs the threshold monitor over post-mutation items and
// publishes an alert for each one below threshold. Call only after the
// mutating transaction has committed.
func (e *Engine) EmitAlerts(ctx context.Context, items []model.StockItem) {
	if e.sink == nil {
		return
	}
	for i := range items {
		if alert := CheckReorder(&items[i]); alert != nil {
			e.sink.Publish(ctx, *alert)
		}
	}
}
