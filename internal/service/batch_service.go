package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/model"
	"github.com/HIMS4RA/CocoPro/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchService issues sequential batch identifiers and tracks drying runs.
type BatchService interface {
	Start(ctx context.Context, req dto.StartBatchRequest) (*dto.BatchResponse, error)
	Stop(ctx context.Context, batchID string, req dto.StopBatchRequest) (*dto.BatchResponse, error)
	ListRecent(ctx context.Context, limit int) ([]dto.BatchResponse, error)
	ListToday(ctx context.Context, operatorEmail string) ([]dto.BatchResponse, error)
}

type batchService struct {
	repo repository.BatchRepository
}

func NewBatchService(repo repository.BatchRepository) BatchService {
	return &batchService{repo: repo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Start increments the persisted counter and creates the process row in one
// transaction. If anything fails the increment rolls back with it, so an
// identifier is never handed out without being durably recorded.
func (s *batchService) Start(ctx context.Context, req dto.StartBatchRequest) (*dto.BatchResponse, error) {
	var bp model.BatchProcess
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		num, err := s.repo.NextBatchNumberTx(ctx, tx)
		if err != nil {
			return err
		}
		bp = model.BatchProcess{
			ID:              uuid.New(),
			BatchID:         fmt.Sprintf("B%d", num),
			StartTime:       time.Now(),
			InitialMoisture: req.InitialMoisture,
			OperatorEmail:   req.OperatorEmail,
		}
		return s.repo.CreateProcessTx(tx, &bp)
	})
	if err != nil {
		return nil, err
	}
	return batchToResponse(&bp), nil
}

func (s *batchService) Stop(ctx context.Context, batchID string, req dto.StopBatchRequest) (*dto.BatchResponse, error) {
	bp, err := s.repo.FindByBatchID(ctx, batchID)
	if err != nil {
		return nil, errors.New("batch process not found")
	}

	now := time.Now()
	final := req.FinalMoisture
	bp.EndTime = &now
	bp.FinalMoisture = &final
	if err := s.repo.Update(ctx, bp); err != nil {
		return nil, err
	}
	return batchToResponse(bp), nil
}

func (s *batchService) ListRecent(ctx context.Context, limit int) ([]dto.BatchResponse, error) {
	procs, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return batchesToResponses(procs), nil
}

func (s *batchService) ListToday(ctx context.Context, operatorEmail string) ([]dto.BatchResponse, error) {
	procs, err := s.repo.ListToday(ctx, operatorEmail, 10)
	if err != nil {
		return nil, err
	}
	return batchesToResponses(procs), nil
}

func batchesToResponses(procs []model.BatchProcess) []dto.BatchResponse {
	out := make([]dto.BatchResponse, 0, len(procs))
	for i := range procs {
		out = append(out, *batchToResponse(&procs[i]))
	}
	return out
}

func batchToResponse(bp *model.BatchProcess) *dto.BatchResponse {
	resp := &dto.BatchResponse{
		ID:              bp.ID.String(),
		BatchID:         bp.BatchID,
		StartTime:       bp.StartTime.Format(time.RFC3339),
		InitialMoisture: bp.InitialMoisture,
		FinalMoisture:   bp.FinalMoisture,
		OperatorEmail:   bp.OperatorEmail,
	}
	if bp.EndTime != nil {
		end := bp.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	return resp
}
