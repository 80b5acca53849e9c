package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spherical/internal/domain"
	"spherical/internal/handler"
	"spherical/internal/port"
	"spherical/internal/router"
	"spherical/internal/workbench"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubOracle answers every oracle call with fixed values.
type stubOracle struct {
	keywords []string
	analysis domain.AgentRunResult
}

func (o *stubOracle) TranscribePage(_ context.Context, page port.Page) string {
	return "transcribed"
}

func (o *stubOracle) ExtractKeywords(_ context.Context, _ string) []string {
	if o.keywords == nil {
		return []string{}
	}
	return o.keywords
}

func (o *stubOracle) Analyze(_ context.Context, _, _, _ string) domain.AgentRunResult {
	return o.analysis
}

func newTestServer(oracle port.AnalysisOracle) (*gin.Engine, *workbench.Store) {
	store := workbench.NewStore(oracle, nil, domain.DefaultAgents, 1)
	r := router.Setup(nil,
		handler.NewDocumentHandler(store),
		handler.NewOcrHandler(store),
		handler.NewAnalysisHandler(store),
		handler.NewAgentHandler(store),
		handler.NewDashboardHandler(store),
		handler.NewStateHandler(store),
		handler.NewHealthHandler(store),
	)
	return r, store
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestUpload(t *testing.T) {
	r, store := newTestServer(nil)

	body, contentType := multipartBody(t, map[string]string{
		"notes.txt": "some notes",
		"data.csv":  "a,b\n1,2",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Len(t, store.Documents(), 2)
}

func TestUploadNoFiles(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/documents/upload", strings.NewReader("not a form"))
	req.Header.Set("Content-Type", "text/plain")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
}

func TestDeleteNotFound(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/documents/missing", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DOCUMENT_NOT_FOUND", resp.Error.Code)
}

func TestCombineSwitchesView(t *testing.T) {
	r, store := newTestServer(nil)

	body, contentType := multipartBody(t, map[string]string{"notes.txt": "hello world"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/combine", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ViewAnalysis, store.ActiveView())
}

func TestCombineEmptyKeepsView(t *testing.T) {
	r, store := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/documents/combine", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ViewDocuments, store.ActiveView())
}

func TestSetViewInvalid(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/view", strings.NewReader(`{"view":"settings"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_VIEW", resp.Error.Code)
}

func TestSetView(t *testing.T) {
	r, store := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/view", strings.NewReader(`{"view":"dashboard"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ViewDashboard, store.ActiveView())
}

func TestState(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/state", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ActiveView      string          `json:"active_view"`
			OracleAvailable bool            `json:"oracle_available"`
			Loading         map[string]bool `json:"loading"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "documents", resp.Data.ActiveView)
	assert.False(t, resp.Data.OracleAvailable)
	assert.Empty(t, resp.Data.Loading)
}

func TestRunOcrWithoutOracle(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/documents/whatever/ocr", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ORACLE_UNAVAILABLE", resp.Error.Code)
}

func TestRunAgentWithoutCombinedText(t *testing.T) {
	r, _ := newTestServer(&stubOracle{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/agents/adverse-events/run", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NO_COMBINED_TEXT", resp.Error.Code)
}

func TestRunAgentUnknown(t *testing.T) {
	r, _ := newTestServer(&stubOracle{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/agents/nope/run", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunAgentAndHistoryHTML(t *testing.T) {
	oracle := &stubOracle{
		analysis: domain.AgentRunResult{
			Analysis:          "## Findings\n\nNo adverse events.",
			FollowUpQuestions: []string{"Which cohort?"},
		},
	}
	r, store := newTestServer(oracle)

	body, contentType := multipartBody(t, map[string]string{"notes.txt": "patient notes"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/combine", http.NoBody)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/agents/adverse-events/run", http.NoBody)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.AgentHistory(), 1)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/agents/results/0/html", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h2>Findings</h2>")
}

func TestAgentResultHTMLOutOfRange(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/agents/results/3/html", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFrequenciesCSVWithoutAnalysis(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/analysis/frequencies.csv", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NO_ANALYSIS", resp.Error.Code)
}

func TestDashboard(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/dashboard", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
}

func TestDashboardExport(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/dashboard/export", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
