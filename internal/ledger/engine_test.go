package ledger

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubItemRepo keeps receipts in memory. DB() returns nil, which makes the
// engine run its transaction bodies directly against the stub.
type stubItemRepo struct {
	mu    sync.Mutex
	items []*model.StockItem
}

func (r *stubItemRepo) Create(ctx context.Context, item *model.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *stubItemRepo) CreateTx(tx *gorm.DB, item *model.StockItem) error {
	return r.Create(context.Background(), item)
}

func (r *stubItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubItemRepo) List(ctx context.Context, filter dto.MaterialFilter) ([]model.StockItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.StockItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, *it)
	}
	return out, int64(len(out)), nil
}

func (r *stubItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubItemRepo) FindLowStock(ctx context.Context) ([]model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StockItem
	for _, it := range r.items {
		if it.AvailableQuantity.LessThan(it.Threshold) {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *stubItemRepo) TotalAvailable(ctx context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, it := range r.items {
		total = total.Add(it.AvailableQuantity)
	}
	return total, nil
}

func (r *stubItemRepo) DailyQuantities(ctx context.Context) ([]dto.DailyQuantityRow, error) {
	return nil, nil
}

func (r *stubItemRepo) ListConsumableTx(tx *gorm.DB) ([]model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StockItem
	for _, it := range r.items {
		if it.AvailableQuantity.IsPositive() {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ReceivedAt.Before(out[j].ReceivedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *stubItemRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.StockItem, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubItemRepo) UpdateAvailableTx(tx *gorm.DB, id uuid.UUID, available decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			it.AvailableQuantity = available
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubItemRepo) UpdateThresholdTx(tx *gorm.DB, id uuid.UUID, threshold decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			it.Threshold = threshold
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubItemRepo) DB() *gorm.DB { return nil }

type stubMovementRepo struct {
	mu        sync.Mutex
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]model.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.StockItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

// captureSink records published alerts for assertions.
type captureSink struct {
	mu     sync.Mutex
	alerts []ReorderAlert
}

func (s *captureSink) Publish(ctx context.Context, alert ReorderAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

func newTestEngine() (*Engine, *stubItemRepo, *stubMovementRepo, *captureSink) {
	items := &stubItemRepo{}
	movements := &stubMovementRepo{}
	sink := &captureSink{}
	return NewEngine(items, movements, sink), items, movements, sink
}

func receipt(name string, available, threshold int64, receivedAt time.Time) *model.StockItem {
	return &model.StockItem{
		ID:                uuid.New(),
		Name:              name,
		Unit:              "kg",
		ReceivedQuantity:  decimal.NewFromInt(available),
		AvailableQuantity: decimal.NewFromInt(available),
		Threshold:         decimal.NewFromInt(threshold),
		ReceivedAt:        receivedAt,
	}
}

func TestConsumeDrainsOldestReceiptsFirst(t *testing.T) {
	engine, items, movements, _ := newTestEngine()
	ctx := context.Background()

	t0 := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	a := receipt("husks", 5, 0, t0)
	b := receipt("husks", 5, 0, t0.Add(time.Hour))
	items.items = []*model.StockItem{a, b}

	ok, err := engine.Consume(ctx, decimal.NewFromInt(7))
	require.NoError(t, err)
	require.True(t, ok)

	gotA, _ := items.FindByID(ctx, a.ID)
	gotB, _ := items.FindByID(ctx, b.ID)
	assert.True(t, gotA.AvailableQuantity.IsZero(), "oldest receipt should be fully drained, got %s", gotA.AvailableQuantity)
	assert.True(t, gotB.AvailableQuantity.Equal(decimal.NewFromInt(3)), "newer receipt keeps the remainder, got %s", gotB.AvailableQuantity)

	require.Len(t, movements.movements, 2)
	assert.True(t, movements.movements[0].Quantity.Equal(decimal.NewFromInt(-5)))
	assert.True(t, movements.movements[1].Quantity.Equal(decimal.NewFromInt(-2)))
	assert.Equal(t, MovementConsumption, movements.movements[0].Type)
}

func TestConsumeInsufficientStockTouchesNothing(t *testing.T) {
	engine, items, movements, _ := newTestEngine()
	ctx := context.Background()

	t0 := time.Now()
	a := receipt("husks", 3, 0, t0)
	b := receipt("husks", 1, 0, t0.Add(time.Minute))
	items.items = []*model.StockItem{a, b}

	ok, err := engine.Consume(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.False(t, ok)

	gotA, _ := items.FindByID(ctx, a.ID)
	gotB, _ := items.FindByID(ctx, b.ID)
	assert.True(t, gotA.AvailableQuantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, gotB.AvailableQuantity.Equal(decimal.NewFromInt(1)))
	assert.Empty(t, movements.movements, "a rejected deduction must not write movements")
}

func TestConsumeExactTotalDrainsEverything(t *testing.T) {
	engine, items, _, _ := newTestEngine()
	ctx := context.Background()

	t0 := time.Now()
	items.items = []*model.StockItem{
		receipt("husks", 4, 0, t0),
		receipt("husks", 6, 0, t0.Add(time.Minute)),
	}

	ok, err := engine.Consume(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.True(t, ok)

	total, _ := items.TotalAvailable(ctx)
	assert.True(t, total.IsZero())
}

func TestConsumeFractionalQuantities(t *testing.T) {
	engine, items, _, _ := newTestEngine()
	ctx := context.Background()

	a := receipt("husks", 5, 0, time.Now())
	items.items = []*model.StockItem{a}

	ok, err := engine.Consume(ctx, decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := items.FindByID(ctx, a.ID)
	assert.True(t, got.AvailableQuantity.Equal(decimal.RequireFromString("2.5")))
}

func TestConsumeConservesTotal(t *testing.T) {
	engine, items, _, _ := newTestEngine()
	ctx := context.Background()

	t0 := time.Now()
	items.items = []*model.StockItem{
		receipt("husks", 7, 0, t0),
		receipt("husks", 2, 0, t0.Add(time.Second)),
		receipt("husks", 9, 0, t0.Add(2*time.Second)),
	}

	before, _ := items.TotalAvailable(ctx)
	request := decimal.NewFromInt(11)

	ok, err := engine.Consume(ctx, request)
	require.NoError(t, err)
	require.True(t, ok)

	after, _ := items.TotalAvailable(ctx)
	assert.True(t, before.Sub(after).Equal(request),
		"deducted %s, requested %s", before.Sub(after), request)
}

func TestConsumeZeroIsANoOp(t *testing.T) {
	engine, items, movements, _ := newTestEngine()
	ctx := context.Background()
	items.items = []*model.StockItem{receipt("husks", 5, 0, time.Now())}

	ok, err := engine.Consume(ctx, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, movements.movements)
}

func TestConsumeNegativeIsRejected(t *testing.T) {
	engine, _, _, _ := newTestEngine()

	_, err := engine.Consume(context.Background(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestReceiveAddsToBalance(t *testing.T) {
	engine, items, movements, _ := newTestEngine()
	ctx := context.Background()

	a := receipt("husks", 10, 0, time.Now())
	items.items = []*model.StockItem{a}

	require.NoError(t, engine.Receive(ctx, a.ID, decimal.NewFromInt(4)))

	got, _ := items.FindByID(ctx, a.ID)
	assert.True(t, got.AvailableQuantity.Equal(decimal.NewFromInt(14)))

	require.Len(t, movements.movements, 1)
	assert.Equal(t, MovementIntake, movements.movements[0].Type)
	assert.True(t, movements.movements[0].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestReceiveRejectsNonPositive(t *testing.T) {
	engine, items, _, _ := newTestEngine()
	a := receipt("husks", 10, 0, time.Now())
	items.items = []*model.StockItem{a}

	assert.ErrorIs(t, engine.Receive(context.Background(), a.ID, decimal.Zero), ErrInvalidQuantity)
	assert.ErrorIs(t, engine.Receive(context.Background(), a.ID, decimal.NewFromInt(-3)), ErrInvalidQuantity)
}

func TestConsumeAlertsWhenBalanceDropsBelowThreshold(t *testing.T) {
	engine, items, _, sink := newTestEngine()
	ctx := context.Background()

	a := receipt("husks", 25, 20, time.Now())
	items.items = []*model.StockItem{a}

	ok, err := engine.Consume(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, 1, sink.count())
	alert := sink.alerts[0]
	assert.Equal(t, a.ID, alert.ItemID)
	assert.True(t, alert.AvailableQuantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, alert.Threshold.Equal(decimal.NewFromInt(20)))
}

func TestNoAlertWhenBalanceEqualsThreshold(t *testing.T) {
	engine, items, _, sink := newTestEngine()
	ctx := context.Background()

	items.items = []*model.StockItem{receipt("husks", 25, 20, time.Now())}

	ok, err := engine.Consume(ctx, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Zero(t, sink.count(), "balance exactly at threshold must not alert")
}

func TestAlertRepeatsOnEveryMutationBelowThreshold(t *testing.T) {
	engine, items, _, sink := newTestEngine()
	ctx := context.Background()

	items.items = []*model.StockItem{receipt("husks", 25, 20, time.Now())}

	ok, err := engine.Consume(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = engine.Consume(ctx, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 2, sink.count(), "each deduction below threshold re-alerts")
}

func TestSetThresholdReevaluatesImmediately(t *testing.T) {
	engine, items, _, sink := newTestEngine()
	ctx := context.Background()

	a := receipt("husks", 10, 5, time.Now())
	items.items = []*model.StockItem{a}

	// Raising the threshold above the current balance must alert without
	// waiting for the next stock mutation.
	require.NoError(t, engine.SetThreshold(ctx, a.ID, decimal.NewFromInt(15)))
	require.Equal(t, 1, sink.count())
	assert.True(t, sink.alerts[0].Threshold.Equal(decimal.NewFromInt(15)))

	got, _ := items.FindByID(ctx, a.ID)
	assert.True(t, got.Threshold.Equal(decimal.NewFromInt(15)))
}

func TestSetThresholdRejectsNegative(t *testing.T) {
	engine, items, _, _ := newTestEngine()
	a := receipt("husks", 10, 5, time.Now())
	items.items = []*model.StockItem{a}

	err := engine.SetThreshold(context.Background(), a.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCheckReorderBoundary(t *testing.T) {
	at := func(available, threshold string) *model.StockItem {
		return &model.StockItem{
			ID:                uuid.New(),
			Name:              "husks",
			AvailableQuantity: decimal.RequireFromString(available),
			Threshold:         decimal.RequireFromString(threshold),
		}
	}

	assert.Nil(t, CheckReorder(at("20", "20")), "equal is not below")
	assert.Nil(t, CheckReorder(at("20.0001", "20")))
	assert.NotNil(t, CheckReorder(at("19.9999", "20")))
	assert.Nil(t, CheckReorder(at("5", "0")), "zero threshold never alerts")
}
