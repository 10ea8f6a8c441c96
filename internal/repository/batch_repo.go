package repository

import (
	"context"
	"time"

	"github.com/HIMS4RA/CocoPro/internal/model"

	"gorm.io/gorm"
)

type BatchRepository interface {
	// NextBatchNumberTx atomically increments the single counter row and
	// returns the new value. The upsert seeds the row on first use, so a
	// fresh database starts the sequence at 1. Because the increment happens
	// in SQL, two concurrent starts can never observe the same number.
	NextBatchNumberTx(ctx context.Context, tx *gorm.DB) (int64, error)

	CreateProcessTx(tx *gorm.DB, bp *model.BatchProcess) error
	FindByBatchID(ctx context.Context, batchID string) (*model.BatchProcess, error)
	Update(ctx context.Context, bp *model.BatchProcess) error
	ListRecent(ctx context.Context, limit int) ([]model.BatchProcess, error)
	ListToday(ctx context.Context, operatorEmail string, limit int) ([]model.BatchProcess, error)
	DB() *gorm.DB
}

type batchRepo struct{ db *gorm.DB }

func NewBatchRepository(db *gorm.DB) BatchRepository { return &batchRepo{db: db} }

func (r *batchRepo) NextBatchNumberTx(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw(`
		INSERT INTO batch_counters (id, last_batch_number)
		VALUES (?, 1)
		ON CONFLICT (id) DO UPDATE
		SET last_batch_number = batch_counters.last_batch_number + 1
		RETURNING last_batch_number`, model.BatchCounterID).Scan(&num).Error
	return num, err
}

func (r *batchRepo) CreateProcessTx(tx *gorm.DB, bp *model.BatchProcess) error {
	return tx.Create(bp).Error
}

func (r *batchRepo) FindByBatchID(ctx context.Context, batchID string) (*model.BatchProcess, error) {
	var bp model.BatchProcess
	err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).First(&bp).Error
	return &bp, err
}

func (r *batchRepo) Update(ctx context.Context, bp *model.BatchProcess) error {
	return r.db.WithContext(ctx).Save(bp).Error
}

func (r *batchRepo) ListRecent(ctx context.Context, limit int) ([]model.BatchProcess, error) {
	if limit < 1 {
		limit = 10
	}
	var procs []model.BatchProcess
	err := r.db.WithContext(ctx).Order("start_time DESC").Limit(limit).Find(&procs).Error
	return procs, err
}

func (r *batchRepo) ListToday(ctx context.Context, operatorEmail string, limit int) ([]model.BatchProcess, error) {
	if limit < 1 {
		limit = 10
	}
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var procs []model.BatchProcess
	q := r.db.WithContext(ctx).
		Where("start_time >= ?", startOfDay).
		Order("start_time DESC").
		Limit(limit)
	if operatorEmail != "" {
		q = q.Where("operator_email = ?", operatorEmail)
	}
	err := q.Find(&procs).Error
	return procs, err
}

func (r *batchRepo) DB() *gorm.DB { return r.db }
