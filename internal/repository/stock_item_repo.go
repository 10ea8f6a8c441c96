package repository

import (
	"context"

	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockItemRepository defines the data access contract for raw-material receipts.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type StockItemRepository interface {
	Create(ctx context.Context, item *model.StockItem) error
	// CreateTx persists a receipt inside the caller's transaction so the
	// record and its intake movement commit together.
	CreateTx(tx *gorm.DB, item *model.StockItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error)
	List(ctx context.Context, filter dto.MaterialFilter) ([]model.StockItem, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindLowStock returns items whose available balance sits below their
	// threshold, sorted by deficit (largest shortfall first).
	FindLowStock(ctx context.Context) ([]model.StockItem, error)

	// TotalAvailable sums available_quantity across all receipts.
	TotalAvailable(ctx context.Context) (decimal.Decimal, error)

	// DailyQuantities aggregates intake per day for reporting.
	DailyQuantities(ctx context.Context) ([]dto.DailyQuantityRow, error)

	// Used inside transactions — callers must pass the tx instance.
	// ListConsumableTx returns all items with available_quantity > 0 ordered
	// oldest receipt first (received_at ASC, id ASC), row-locked FOR UPDATE.
	ListConsumableTx(tx *gorm.DB) ([]model.StockItem, error)
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.StockItem, error)
	UpdateAvailableTx(tx *gorm.DB, id uuid.UUID, available decimal.Decimal) error
	UpdateThresholdTx(tx *gorm.DB, id uuid.UUID, threshold decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type stockItemRepo struct{ db *gorm.DB }

func NewStockItemRepository(db *gorm.DB) StockItemRepository { return &stockItemRepo{db: db} }

func (r *stockItemRepo) Create(ctx context.Context, item *model.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockItemRepo) CreateTx(tx *gorm.DB, item *model.StockItem) error {
	return tx.Create(item).Error
}

func (r *stockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return &item, err
}

func (r *stockItemRepo) List(ctx context.Context, filter dto.MaterialFilter) ([]model.StockItem, int64, error) {
	var items []model.StockItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.StockItem{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("received_at ASC, id ASC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *stockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.StockItem{}, id).Error
}

func (r *stockItemRepo) FindLowStock(ctx context.Context) ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.db.WithContext(ctx).
		Where("available_quantity < threshold").
		Order("(threshold - available_quantity) DESC").
		Find(&items).Error
	return items, err
}

func (r *stockItemRepo) TotalAvailable(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.StockItem{}).
		Select("COALESCE(SUM(available_quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *stockItemRepo) DailyQuantities(ctx context.Context) ([]dto.DailyQuantityRow, error) {
	var rows []dto.DailyQuantityRow
	err := r.db.WithContext(ctx).Model(&model.StockItem{}).
		Select("to_char(received_at::date, 'YYYY-MM-DD') AS date, SUM(received_quantity) AS added_quantity").
		Group("received_at::date").
		Order("received_at::date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *stockItemRepo) ListConsumableTx(tx *gorm.DB) ([]model.StockItem, error) {
	var items []model.StockItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("available_quantity > 0").
		Order("received_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *stockItemRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error
	return &item, err
}

func (r *stockItemRepo) UpdateAvailableTx(tx *gorm.DB, id uuid.UUID, available decimal.Decimal) error {
	return tx.Model(&model.StockItem{}).Where("id = ?", id).
		Update("available_quantity", available).Error
}

func (r *stockItemRepo) UpdateThresholdTx(tx *gorm.DB, id uuid.UUID, threshold decimal.Decimal) error {
	return tx.Model(&model.StockItem{}).Where("id = ?", id).
		Update("threshold", threshold).Error
}

func (r *stockItemRepo) DB() *gorm.DB { return r.db }
