package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"spherical/internal/domain"
	"spherical/internal/export"
	"spherical/internal/workbench"
)

// AnalysisHandler handles combined-text analysis endpoints.
type AnalysisHandler struct {
	store *workbench.Store
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(store *workbench.Store) *AnalysisHandler {
	return &AnalysisHandler{store: store}
}

// Get handles GET /api/v1/analysis
// @Summary Get the current analysis
// @Description Combined text, extracted keywords, and the lexical statistics when computed
// @Tags analysis
// @Produce json
// @Success 200 {object} APIResponse "Analysis state"
// @Router /analysis [get]
func (h *AnalysisHandler) Get(c *gin.Context) {
	combined, keywords, result := h.store.Analysis()
	RespondOK(c, gin.H{
		"combined_text": combined,
		"keywords":      keywords,
		"result":        result,
	})
}

// FrequenciesCSV handles GET /api/v1/analysis/frequencies.csv
// @Summary Download the word-frequency table as CSV
// @Tags analysis
// @Produce text/csv
// @Success 200 {string} string "CSV body"
// @Failure 404 {object} APIResponse "No analysis result available"
// @Router /analysis/frequencies.csv [get]
func (h *AnalysisHandler) FrequenciesCSV(c *gin.Context) {
	_, _, result := h.store.Analysis()
	if result == nil {
		HandleError(c, domain.ErrNoAnalysis)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="word-frequencies.csv"`)
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(export.BOM); err != nil {
		return
	}
	w := export.NewWriter(c.Writer)
	if err := w.WriteFrequencies(result.WordFrequency); err != nil {
		log.Printf("handler.FrequenciesCSV: writing csv: %v", err)
		return
	}
	_ = w.Flush()
}
