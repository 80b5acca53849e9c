package handler

import (
	"github.com/gin-gonic/gin"

	"spherical/internal/workbench"
)

// OcrHandler handles per-document OCR endpoints.
type OcrHandler struct {
	store *workbench.Store
}

// NewOcrHandler creates a new OcrHandler.
func NewOcrHandler(store *workbench.Store) *OcrHandler {
	return &OcrHandler{store: store}
}

// Run handles POST /api/v1/documents/:id/ocr
// @Summary Run OCR on a document
// @Description Renders the document's pages and transcribes them in parallel. The committed batch replaces any previous run.
// @Tags ocr
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse "Ordered OCR results"
// @Failure 400 {object} APIResponse "Document has no source file"
// @Failure 404 {object} APIResponse "Document not found"
// @Failure 409 {object} APIResponse "OCR already running for this document"
// @Failure 502 {object} APIResponse "Page rendering failed"
// @Failure 503 {object} APIResponse "Oracle not configured"
// @Router /documents/{id}/ocr [post]
func (h *OcrHandler) Run(c *gin.Context) {
	results, err := h.store.RunOCR(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

// Results handles GET /api/v1/documents/:id/ocr
// @Summary Get OCR results for a document
// @Tags ocr
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse "Committed OCR batch, ordered by page number"
// @Router /documents/{id}/ocr [get]
func (h *OcrHandler) Results(c *gin.Context) {
	RespondOK(c, h.store.OcrResults(c.Param("id")))
}
