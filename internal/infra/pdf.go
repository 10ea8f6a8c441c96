package infra

// pdf.go — daily production report rendering using go-pdf/fpdf.
// One table row per day: used, wasted, produced quantities.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/HIMS4RA/CocoPro/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateProductionReportPDF writes the daily production aggregates to
// storagePath/production_report_{date}.pdf and returns the file path.
func GenerateProductionReportPDF(rows []dto.DailyProductionRow, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("production_report_%s.pdf", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "CocoPro", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Daily Production Report", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	colDate := contentW * 0.28
	colQty := contentW * 0.24

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colDate, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 7, "Used", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colQty, 7, "Wasted", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colQty, 7, "Produced", "1", 1, "R", true, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.CellFormat(colDate, 6, row.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, row.UsedQuantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colQty, 6, row.WastedQuantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colQty, 6, row.ProducedQuantity.String(), "1", 1, "R", false, 0, "")
	}

	if len(rows) == 0 {
		pdf.CellFormat(contentW, 6, "No production recorded", "1", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write report: %w", err)
	}
	return filePath, nil
}
