package handler

import (
	"net/http"

	"github.com/HIMS4RA/CocoPro/internal/apierror"
	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductionHandler exposes finished-product declarations.
type ProductionHandler struct {
	production service.ProductionService
}

func NewProductionHandler(production service.ProductionService) *ProductionHandler {
	return &ProductionHandler{production: production}
}

// Record handles POST /v1/production
func (h *ProductionHandler) Record(c *gin.Context) {
	var req dto.RecordProductionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.production.RecordProduction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /v1/production/:id
func (h *ProductionHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.production.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List handles GET /v1/production
func (h *ProductionHandler) List(c *gin.Context) {
	var filter dto.ProductionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}
	resp, err := h.production.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Daily handles GET /v1/production/daily
func (h *ProductionHandler) Daily(c *gin.Context) {
	resp, err := h.production.DailyProduction(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /v1/production/:id
func (h *ProductionHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.production.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
