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
	"gorm.io/gorm"
)

// MaterialService covers the intake workflow and administrative stock
// management around the ledger engine.
type MaterialService interface {
	Create(ctx context.Context, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	List(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error)
	LowStock(ctx context.Context) ([]dto.MaterialResponse, error)
	Receive(ctx context.Context, id uuid.UUID, req dto.ReceiveStockRequest) (*dto.MaterialResponse, error)
	SetThreshold(ctx context.Context, id uuid.UUID, req dto.UpdateThresholdRequest) (*dto.MaterialResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListMovements(ctx context.Context, id uuid.UUID, limit int) ([]dto.MovementResponse, error)
}

type materialService struct {
	items     repository.StockItemRepository
	movements repository.StockMovementRepository
	engine    *ledger.Engine
}

func NewMaterialService(items repository.StockItemRepository, movements repository.StockMovementRepository, engine *ledger.Engine) MaterialService {
	return &materialService{items: items, movements: movements, engine: engine}
}

// Create registers a new receipt. The consumable balance starts at the
// received quantity, and the intake movement commits with the record.
func (s *materialService) Create(ctx context.Context, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, ledger.ErrInvalidQuantity
	}
	if req.Threshold.IsNegative() {
		return nil, ledger.ErrInvalidQuantity
	}

	receivedAt := time.Now()
	if req.ReceivedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid received_at: %w", err)
		}
		receivedAt = parsed
	}

	var supplierID *uuid.UUID
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		supplierID = &sid
	}

	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}

	item := &model.StockItem{
		ID:                uuid.New(),
		Name:              req.Name,
		Description:       req.Description,
		Unit:              unit,
		ReceivedQuantity:  req.Quantity,
		AvailableQuantity: req.Quantity,
		Threshold:         req.Threshold,
		SupplierID:        supplierID,
		ReceivedAt:        receivedAt,
	}

	err := s.engine.InTx(ctx, func(tx *gorm.DB) error {
		if tx == nil {
			if err := s.items.Create(ctx, item); err != nil {
				return err
			}
		} else if err := s.items.CreateTx(tx, item); err != nil {
			return err
		}
		return s.movements.CreateTx(tx, &model.StockMovement{
			StockItemID:   item.ID,
			Type:          ledger.MovementIntake,
			Quantity:      req.Quantity,
			BalanceBefore: item.AvailableQuantity.Sub(req.Quantity),
			BalanceAfter:  item.AvailableQuantity,
			Reason:        "initial receipt",
		})
	})
	if err != nil {
		return nil, err
	}

	// A receipt can arrive already below its configured threshold.
	s.engine.EmitAlerts(ctx, []model.StockItem{*item})

	return materialToResponse(item), nil
}

func (s *materialService) Get(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return materialToResponse(item), nil
}

func (s *materialService) List(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MaterialResponse, 0, len(items))
	for i := range items {
		data = append(data, *materialToResponse(&items[i]))
	}
	return &dto.MaterialListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *materialService) LowStock(ctx context.Context) ([]dto.MaterialResponse, error) {
	items, err := s.items.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MaterialResponse, 0, len(items))
	for i := range items {
		data = append(data, *materialToResponse(&items[i]))
	}
	return data, nil
}

func (s *materialService) Receive(ctx context.Context, id uuid.UUID, req dto.ReceiveStockRequest) (*dto.MaterialResponse, error) {
	if err := s.engine.Receive(ctx, id, req.Quantity); err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return materialToResponse(item), nil
}

func (s *materialService) SetThreshold(ctx context.Context, id uuid.UUID, req dto.UpdateThresholdRequest) (*dto.MaterialResponse, error) {
	if err := s.engine.SetThreshold(ctx, id, req.Threshold); err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return materialToResponse(item), nil
}

// Delete removes a receipt administratively. The ledger never deletes on its
// own; this exists for correcting bad intake entries.
func (s *materialService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.items.Delete(ctx, id)
}

func (s *materialService) ListMovements(ctx context.Context, id uuid.UUID, limit int) ([]dto.MovementResponse, error) {
	movements, err := s.movements.ListByItem(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp := dto.MovementResponse{
			ID:            m.ID.String(),
			StockItemID:   m.StockItemID.String(),
			Type:          m.Type,
			Quantity:      m.Quantity,
			BalanceBefore: m.BalanceBefore,
			BalanceAfter:  m.BalanceAfter,
			Reason:        m.Reason,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		}
		if m.ReferenceID != nil {
			ref := m.ReferenceID.String()
			resp.ReferenceID = &ref
		}
		data = append(data, resp)
	}
	return data, nil
}

func materialToResponse(item *model.StockItem) *dto.MaterialResponse {
	resp := &dto.MaterialResponse{
		ID:                item.ID.String(),
		Name:              item.Name,
		Description:       item.Description,
		Unit:              item.Unit,
		ReceivedQuantity:  item.ReceivedQuantity,
		AvailableQuantity: item.AvailableQuantity,
		Threshold:         item.Threshold,
		ReceivedAt:        item.ReceivedAt.Format(time.RFC3339),
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
	}
	if item.SupplierID != nil {
		sid := item.SupplierID.String()
		resp.SupplierID = &sid
	}
	return resp
}
