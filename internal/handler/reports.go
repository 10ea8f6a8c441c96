package handler

import (
	"net/http"

	"github.com/HIMS4RA/CocoPro/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves reporting aggregates and PDF exports.
type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// DailyQuantities handles GET /v1/reports/daily-quantities
func (h *ReportHandler) DailyQuantities(c *gin.Context) {
	resp, err := h.reports.DailyQuantities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DailyProduction handles GET /v1/reports/daily-production
func (h *ReportHandler) DailyProduction(c *gin.Context) {
	resp, err := h.reports.DailyProduction(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DailyProductionPDF handles GET /v1/reports/daily-production/pdf
func (h *ReportHandler) DailyProductionPDF(c *gin.Context) {
	path, err := h.reports.DailyProductionPDF(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "daily-production.pdf")
}
