package domain

// Content types accepted on upload. Anything else is ingested with the
// unsupported-type sentinel as its text content rather than rejected.
const (
	ContentTypePDF      = "application/pdf"
	ContentTypeText     = "text/plain"
	ContentTypeMarkdown = "text/markdown"
	ContentTypeCSV      = "text/csv"
	ContentTypeJSON     = "application/json"
)

// TextContentTypes are the types whose bytes are decoded directly as text.
var TextContentTypes = map[string]bool{
	ContentTypeText:     true,
	ContentTypeMarkdown: true,
	ContentTypeCSV:      true,
	ContentTypeJSON:     true,
}

// ExtensionContentTypes maps file extensions (without dot) to content types,
// used when ingesting from the inbox directory where no declared MIME exists.
var ExtensionContentTypes = map[string]string{
	"pdf":      ContentTypePDF,
	"txt":      ContentTypeText,
	"md":       ContentTypeMarkdown,
	"markdown": ContentTypeMarkdown,
	"csv":      ContentTypeCSV,
	"json":     ContentTypeJSON,
}

// View identifies one of the workbench's tabbed views.
type View string

const (
	ViewDocuments View = "documents"
	ViewOCR       View = "ocr"
	ViewAnalysis  View = "analysis"
	ViewAgents    View = "agents"
	ViewDashboard View = "dashboard"
)

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	switch v {
	case ViewDocuments, ViewOCR, ViewAnalysis, ViewAgents, ViewDashboard:
		return true
	}
	return false
}

// Loading-state operation keys. Per-document and per-agent keys are derived
// with the helpers below.
const (
	OpUpload   = "upload"
	OpAnalysis = "analysis"
)

// OcrOpKey returns the loading-state key for an OCR run on a document.
func OcrOpKey(documentID string) string { return "ocr-" + documentID }

// AgentOpKey returns the loading-state key for a run of an agent.
func AgentOpKey(agentID string) string { return "agent-" + agentID }

// Sentinel strings substituted for failures instead of propagating errors.
const (
	SentinelUnsupportedType = "File type not supported for direct text extraction."
	SentinelOcrFailed       = "OCR failed. Please check your API key and network connection."
	SentinelAgentFailed     = "Agent execution failed. Please check your API key and network connection. The model may have returned an invalid response."
)
