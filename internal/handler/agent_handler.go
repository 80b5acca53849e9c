package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"spherical/internal/domain"
	"spherical/internal/workbench"
)

// AgentHandler handles agent catalog and run endpoints.
type AgentHandler struct {
	store *workbench.Store
	md    goldmark.Markdown
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(store *workbench.Store) *AgentHandler {
	return &AgentHandler{store: store, md: goldmark.New()}
}

// List handles GET /api/v1/agents
// @Summary List the agent catalog
// @Tags agents
// @Produce json
// @Success 200 {object} APIResponse "Agents"
// @Router /agents [get]
func (h *AgentHandler) List(c *gin.Context) {
	RespondOK(c, h.store.Agents())
}

// Run handles POST /api/v1/agents/:id/run
// @Summary Run an agent against the combined text
// @Description Optional prompt and model overrides apply to this run only
// @Tags agents
// @Accept json
// @Produce json
// @Param id path string true "Agent ID"
// @Param request body RunAgentRequest false "Per-run overrides"
// @Success 200 {object} APIResponse "Completed agent result"
// @Failure 400 {object} APIResponse "No combined text"
// @Failure 404 {object} APIResponse "Agent not found"
// @Failure 409 {object} APIResponse "Agent already running"
// @Failure 502 {object} APIResponse "Agent execution failed"
// @Failure 503 {object} APIResponse "Oracle not configured"
// @Router /agents/{id}/run [post]
func (h *AgentHandler) Run(c *gin.Context) {
	var req RunAgentRequest
	// Body is optional; ignore binding errors on an empty body.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed override body")
			return
		}
	}

	result, err := h.store.RunAgent(c.Request.Context(), workbench.AgentRunInput{
		AgentID:        c.Param("id"),
		PromptOverride: req.Prompt,
		ModelOverride:  req.Model,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// RunAgentRequest carries optional per-run overrides.
type RunAgentRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

// History handles GET /api/v1/agents/results
// @Summary Get the agent run history
// @Description Most recent result first
// @Tags agents
// @Produce json
// @Success 200 {object} APIResponse "Agent results"
// @Router /agents/results [get]
func (h *AgentHandler) History(c *gin.Context) {
	RespondOK(c, h.store.AgentHistory())
}

// ResultHTML handles GET /api/v1/agents/results/:index/html
// @Summary Render one agent result's analysis as HTML
// @Description The analysis text is markdown; index 0 is the most recent result
// @Tags agents
// @Produce html
// @Param index path int true "Result index, 0 = most recent"
// @Success 200 {string} string "HTML body"
// @Failure 404 {object} APIResponse "No result at that index"
// @Router /agents/results/{index}/html [get]
func (h *AgentHandler) ResultHTML(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_INDEX", "index must be a non-negative integer")
		return
	}

	history := h.store.AgentHistory()
	if idx >= len(history) {
		HandleError(c, domain.ErrNotFound)
		return
	}

	var buf bytes.Buffer
	if err := h.md.Convert([]byte(history[idx].Analysis), &buf); err != nil {
		HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
