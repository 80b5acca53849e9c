package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"spherical/internal/report"
	"spherical/internal/workbench"
)

// DashboardHandler handles dashboard counters and workbook export.
type DashboardHandler struct {
	store *workbench.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store *workbench.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Get handles GET /api/v1/dashboard
// @Summary Get dashboard counters
// @Description Document, transcribed-page, agent-run and word counts
// @Tags dashboard
// @Produce json
// @Success 200 {object} APIResponse "Dashboard stats"
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	RespondOK(c, h.store.DashboardStats())
}

// Export handles GET /api/v1/dashboard/export
// @Summary Download the dashboard as an xlsx workbook
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} string "Workbook bytes"
// @Router /dashboard/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	_, _, result := h.store.Analysis()
	in := report.Input{
		Stats:        h.store.DashboardStats(),
		Documents:    h.store.Documents(),
		AgentResults: h.store.AgentHistory(),
	}
	if result != nil {
		in.Frequencies = result.WordFrequency
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="dashboard.xlsx"`)
	c.Status(http.StatusOK)

	if err := report.Write(c.Writer, in); err != nil {
		log.Printf("handler.Export: writing workbook: %v", err)
	}
}
