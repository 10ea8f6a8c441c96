package service

import (
	"context"

	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/infra"
	"github.com/HIMS4RA/CocoPro/internal/repository"
)

// ReportService aggregates intake and production figures for the back office.
type ReportService interface {
	DailyQuantities(ctx context.Context) (*dto.DailyQuantitiesResponse, error)
	DailyProduction(ctx context.Context) (*dto.DailyProductionResponse, error)
	// DailyProductionPDF renders the daily production aggregates to a PDF
	// file and returns its path.
	DailyProductionPDF(ctx context.Context) (string, error)
}

type reportService struct {
	items      repository.StockItemRepository
	production repository.ProductionRepository
	pdfPath    string
}

func NewReportService(items repository.StockItemRepository, production repository.ProductionRepository, pdfPath string) ReportService {
	return &reportService{items: items, production: production, pdfPath: pdfPath}
}

func (s *reportService) DailyQuantities(ctx context.Context) (*dto.DailyQuantitiesResponse, error) {
	rows, err := s.items.DailyQuantities(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.items.TotalAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DailyQuantitiesResponse{Data: rows, TotalAvailable: total}, nil
}

func (s *reportService) DailyProduction(ctx context.Context) (*dto.DailyProductionResponse, error) {
	rows, err := s.production.DailyProduction(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DailyProductionResponse{Data: rows}, nil
}

func (s *reportService) DailyProductionPDF(ctx context.Context) (string, error) {
	rows, err := s.production.DailyProduction(ctx)
	if err != nil {
		return "", err
	}
	return infra.GenerateProductionReportPDF(rows, s.pdfPath)
}
