package service

import (
	"context"
	"fmt"
	"time"

	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/ledger"
	"github.com/HIMS4RA/CocoPro/internal/model"
	"github.com/HIMS4RA/CocoPro/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductionService translates finished-product declarations into ledger
// consumption requests plus a persisted waste figure.
type ProductionService interface {
	RecordProduction(ctx context.Context, req dto.RecordProductionRequest) (*dto.ProductionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductionResponse, error)
	List(ctx context.Context, filter dto.ProductionFilter) (*dto.ProductionListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DailyProduction(ctx context.Context) (*dto.DailyProductionResponse, error)
}

type productionService struct {
	repo   repository.ProductionRepository
	engine *ledger.Engine
}

func NewProductionService(repo repository.ProductionRepository, engine *ledger.Engine) ProductionService {
	return &productionService{repo: repo, engine: engine}
}

// RecordProduction computes waste, consumes used + wasted raw material FIFO,
// and persists the run in one transaction. A run is never saved when the
// deduction cannot be satisfied; the whole declaration is rejected.
func (s *productionService) RecordProduction(ctx context.Context, req dto.RecordProductionRequest) (*dto.ProductionResponse, error) {
	if req.UsedQuantity.IsNegative() || req.ProducedQuantity.IsNegative() {
		return nil, ledger.ErrInvalidQuantity
	}

	// Waste never goes negative: produced exceeding used floors to zero.
	wasted := req.UsedQuantity.Sub(req.ProducedQuantity)
	if wasted.IsNegative() {
		wasted = decimal.Zero
	}
	totalRequired := req.UsedQuantity.Add(wasted)

	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}
	run := model.ProductionRun{
		ID:               uuid.New(),
		ProductName:      req.ProductName,
		Description:      req.Description,
		Unit:             unit,
		UsedQuantity:     req.UsedQuantity,
		WastedQuantity:   wasted,
		ProducedQuantity: req.ProducedQuantity,
	}

	var touched []model.StockItem
	err := s.engine.InTx(ctx, func(tx *gorm.DB) error {
		ok, items, err := s.engine.ConsumeTx(tx, totalRequired, &run.ID,
			fmt.Sprintf("Production of %s", run.ProductName))
		if err != nil {
			return err
		}
		if !ok {
			return ledger.ErrInsufficientStock
		}
		touched = items
		return s.repo.CreateTx(tx, &run)
	})
	if err != nil {
		return nil, err
	}

	s.engine.EmitAlerts(ctx, touched)

	run.CreatedAt = time.Now()
	return productionToResponse(&run), nil
}

func (s *productionService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductionResponse, error) {
	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productionToResponse(run), nil
}

func (s *productionService) List(ctx context.Context, filter dto.ProductionFilter) (*dto.ProductionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	runs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductionResponse, 0, len(runs))
	for i := range runs {
		data = append(data, *productionToResponse(&runs[i]))
	}
	return &dto.ProductionListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *productionService) DailyProduction(ctx context.Context) (*dto.DailyProductionResponse, error) {
	rows, err := s.repo.DailyProduction(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DailyProductionResponse{Data: rows}, nil
}

func productionToResponse(run *model.ProductionRun) *dto.ProductionResponse {
	return &dto.ProductionResponse{
		ID:               run.ID.String(),
		ProductName:      run.ProductName,
		Description:      run.Description,
		Unit:             run.Unit,
		UsedQuantity:     run.UsedQuantity,
		WastedQuantity:   run.WastedQuantity,
		ProducedQuantity: run.ProducedQuantity,
		CreatedAt:        run.CreatedAt.Format(time.RFC3339),
	}
}
