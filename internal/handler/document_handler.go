package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spherical/internal/ingest"
	"spherical/internal/workbench"
)

// DocumentHandler handles document ingestion and inventory endpoints.
type DocumentHandler struct {
	store *workbench.Store
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(store *workbench.Store) *DocumentHandler {
	return &DocumentHandler{store: store}
}

// Upload handles POST /api/v1/documents/upload
// @Summary Upload documents
// @Description Ingest one or more files as workbench documents. Unreadable files are skipped.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to ingest"
// @Success 201 {object} APIResponse "Ingested documents"
// @Failure 400 {object} APIResponse "No files in request"
// @Router /documents/upload [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "expected multipart form with files")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_FILES", "no files provided under the 'files' field")
		return
	}

	files := ingest.ReadMultipartBatch(headers)
	docs := h.store.Ingest(files)
	RespondCreated(c, docs)
}

// List handles GET /api/v1/documents
// @Summary List documents
// @Description Snapshot of all ingested documents
// @Tags documents
// @Produce json
// @Success 200 {object} APIResponse "Documents"
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	RespondOK(c, h.store.Documents())
}

// Get handles GET /api/v1/documents/:id
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse "Document"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.store.Document(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Description Removes the document and its OCR results
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse "Deleted"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": c.Param("id")})
}

// Combine handles POST /api/v1/documents/combine
// @Summary Combine all documents
// @Description Builds the combined text from all documents. A non-empty result switches the view to analysis.
// @Tags documents
// @Produce json
// @Success 200 {object} APIResponse "Combined text and resulting view"
// @Router /documents/combine [post]
func (h *DocumentHandler) Combine(c *gin.Context) {
	combined := h.store.Combine(c.Request.Context())
	RespondOK(c, gin.H{
		"combined_text": combined,
		"active_view":   h.store.ActiveView(),
	})
}
