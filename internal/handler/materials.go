package handler

import (
	"net/http"

	"github.com/HIMS4RA/CocoPro/internal/apierror"
	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/service"

	"github.com/gin-gonic/gin"
)

// MaterialHandler exposes raw-material receipts, stock levels and thresholds.
type MaterialHandler struct {
	materials service.MaterialService
}

func NewMaterialHandler(materials service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materials: materials}
}

// Create handles POST /v1/materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req dto.CreateMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.materials.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /v1/materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.materials.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List handles GET /v1/materials
func (h *MaterialHandler) List(c *gin.Context) {
	var filter dto.MaterialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return
	}
	resp, err := h.materials.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock handles GET /v1/materials/low-stock
func (h *MaterialHandler) LowStock(c *gin.Context) {
	resp, err := h.materials.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Receive handles POST /v1/materials/:id/receive
func (h *MaterialHandler) Receive(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ReceiveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.materials.Receive(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetThreshold handles PUT /v1/materials/:id/threshold
func (h *MaterialHandler) SetThreshold(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateThresholdRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.materials.SetThreshold(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /v1/materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.materials.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Movements handles GET /v1/materials/:id/movements
func (h *MaterialHandler) Movements(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit := queryInt(c, "limit", 100)
	resp, err := h.materials.ListMovements(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
