package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeProductionService struct {
	recordErr error
	getErr    error
}

func (f *fakeProductionService) RecordProduction(ctx context.Context, req dto.RecordProductionRequest) (*dto.ProductionResponse, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	return &dto.ProductionResponse{ID: uuid.NewString(), ProductName: req.ProductName}, nil
}

func (f *fakeProductionService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductionResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &dto.ProductionResponse{ID: id.String()}, nil
}

func (f *fakeProductionService) List(ctx context.Context, filter dto.ProductionFilter) (*dto.ProductionListResponse, error) {
	return &dto.ProductionListResponse{}, nil
}

func (f *fakeProductionService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeProductionService) DailyProduction(ctx context.Context) (*dto.DailyProductionResponse, error) {
	return &dto.DailyProductionResponse{}, nil
}

func productionRouter(svc *fakeProductionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProductionHandler(svc)
	r := gin.New()
	r.POST("/v1/production", h.Record)
	r.GET("/v1/production/:id", h.Get)
	return r
}

func TestRecordProductionReturns201(t *testing.T) {
	r := productionRouter(&fakeProductionService{})

	body := `{"product_name":"coir brick","used_quantity":"100","produced_quantity":"90"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/production", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRecordProductionMissingNameReturns422(t *testing.T) {
	r := productionRouter(&fakeProductionService{})

	body := `{"used_quantity":"100","produced_quantity":"90"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/production", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ProductName")
}

func TestRecordProductionInsufficientStockReturns409(t *testing.T) {
	r := productionRouter(&fakeProductionService{recordErr: ledger.ErrInsufficientStock})

	body := `{"product_name":"coir brick","used_quantity":"100","produced_quantity":"90"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/production", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient stock")
}

func TestRecordProductionInvalidQuantityReturns422(t *testing.T) {
	r := productionRouter(&fakeProductionService{recordErr: ledger.ErrInvalidQuantity})

	body := `{"product_name":"coir brick","used_quantity":"1","produced_quantity":"1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/production", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetProductionNotFoundReturns404(t *testing.T) {
	r := productionRouter(&fakeProductionService{getErr: gorm.ErrRecordNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/production/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductionBadIDReturns400(t *testing.T) {
	r := productionRouter(&fakeProductionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/production/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
