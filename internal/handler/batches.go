package handler

import (
	"net/http"

	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/service"

	"github.com/gin-gonic/gin"
)

// BatchHandler exposes drying batch lifecycle operations.
type BatchHandler struct {
	batches service.BatchService
}

func NewBatchHandler(batches service.BatchService) *BatchHandler {
	return &BatchHandler{batches: batches}
}

// Start handles POST /v1/batches
func (h *BatchHandler) Start(c *gin.Context) {
	var req dto.StartBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.batches.Start(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Stop handles PUT /v1/batches/:batchId/stop
func (h *BatchHandler) Stop(c *gin.Context) {
	batchID := c.Param("batchId")
	var req dto.StopBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.batches.Stop(c.Request.Context(), batchID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recent handles GET /v1/batches/recent
func (h *BatchHandler) Recent(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	resp, err := h.batches.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Today handles GET /v1/batches/today
func (h *BatchHandler) Today(c *gin.Context) {
	operator := c.Query("operator")
	resp, err := h.batches.ListToday(c.Request.Context(), operator)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
