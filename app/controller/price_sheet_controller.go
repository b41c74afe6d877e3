package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"commission-catalog/service"
)

// PriceSheetController serves the printable price list
type PriceSheetController struct {
	sheets *service.PriceSheetService
	log    *zap.SugaredLogger
}

// NewPriceSheetController creates a new PriceSheetController
func NewPriceSheetController(sheets *service.PriceSheetService, logger *zap.Logger) *PriceSheetController {
	return &PriceSheetController{sheets: sheets, log: orNop(logger)}
}

// GetHTML handles GET /api/price-sheet
// This is also the page headless Chrome prints for the PDF.
func (c *PriceSheetController) GetHTML(w http.ResponseWriter, r *http.Request) {
	html, err := c.sheets.RenderHTML(r.Context())
	if err != nil {
		writeError(w, c.log, "GetPriceSheetHTML", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// GetPDF handles GET /api/price-sheet.pdf
func (c *PriceSheetController) GetPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := c.sheets.GeneratePDF(r.Context())
	if err != nil {
		writeError(w, c.log, "GetPriceSheetPDF", err)
		return
	}

	filename := fmt.Sprintf("lista-de-precios-%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
