package repository

import (
	"context"

	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductionRepository interface {
	// CreateTx persists a run inside the caller's transaction. The run and
	// its raw-material deduction must commit or roll back together.
	CreateTx(tx *gorm.DB, run *model.ProductionRun) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionRun, error)
	List(ctx context.Context, filter dto.ProductionFilter) ([]model.ProductionRun, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DailyProduction(ctx context.Context) ([]dto.DailyProductionRow, error)
	DB() *gorm.DB
}

type productionRepo struct{ db *gorm.DB }

func NewProductionRepository(db *gorm.DB) ProductionRepository { return &productionRepo{db: db} }

func (r *productionRepo) CreateTx(tx *gorm.DB, run *model.ProductionRun) error {
	return tx.Create(run).Error
}

func (r *productionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionRun, error) {
	var run model.ProductionRun
	err := r.db.WithContext(ctx).First(&run, id).Error
	return &run, err
}

func (r *productionRepo) List(ctx context.Context, filter dto.ProductionFilter) ([]model.ProductionRun, int64, error) {
	var runs []model.ProductionRun
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ProductionRun{})
	if filter.ProductName != "" {
		q = q.Where("product_name ILIKE ?", "%"+filter.ProductName+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&runs).Error
	return runs, total, err
}

func (r *productionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductionRun{}, id).Error
}

func (r *productionRepo) DailyProduction(ctx context.Context) ([]dto.DailyProductionRow, error) {
	var rows []dto.DailyProductionRow
	err := r.db.WithContext(ctx).Model(&model.ProductionRun{}).
		Select(`to_char(created_at::date, 'YYYY-MM-DD') AS date,
			SUM(used_quantity)     AS used_quantity,
			SUM(wasted_quantity)   AS wasted_quantity,
			SUM(produced_quantity) AS produced_quantity`).
		Group("created_at::date").
		Order("created_at::date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *productionRepo) DB() *gorm.DB { return r.db }
