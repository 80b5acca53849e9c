package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spherical/internal/domain"
	"spherical/internal/workbench"
)

// StateHandler exposes workbench session state: loading flags and active view.
type StateHandler struct {
	store *workbench.Store
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(store *workbench.Store) *StateHandler {
	return &StateHandler{store: store}
}

// Get handles GET /api/v1/state
// @Summary Get session state
// @Description Loading flags keyed by operation, the active view, and oracle availability
// @Tags state
// @Produce json
// @Success 200 {object} APIResponse "Session state"
// @Router /state [get]
func (h *StateHandler) Get(c *gin.Context) {
	RespondOK(c, gin.H{
		"loading":          h.store.LoadingStates(),
		"active_view":      h.store.ActiveView(),
		"oracle_available": h.store.OracleAvailable(),
	})
}

// SetView handles PUT /api/v1/view
// @Summary Select the active view
// @Description Idempotent. Switching to the analysis view evaluates the derived-analysis trigger.
// @Tags state
// @Accept json
// @Produce json
// @Param request body SetViewRequest true "Target view"
// @Success 200 {object} APIResponse "Active view"
// @Failure 400 {object} APIResponse "Unknown view"
// @Router /view [put]
func (h *StateHandler) SetView(c *gin.Context) {
	var req SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "view is required")
		return
	}

	if err := h.store.SetView(c.Request.Context(), domain.View(req.View)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"active_view": h.store.ActiveView()})
}

// SetViewRequest names the view to activate.
type SetViewRequest struct {
	View string `json:"view" binding:"required"`
}
