package domain

import (
	"fmt"
	"strings"
	"time"
)

// Document is an ingested file held in the workbench.
//
// SourceFile carries the raw bytes only for PDF documents; for every other
// content type it is nil. OcrPages is nil for non-PDF documents and for PDFs
// that have never been through OCR; an empty (non-nil) slice marks a PDF that
// is OCR-eligible but not yet transcribed.
type Document struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ContentType string      `json:"content_type"`
	TextContent string      `json:"text_content"`
	SourceFile  []byte      `json:"-"`
	OcrPages    []OcrResult `json:"ocr_pages,omitempty"`
	IngestedAt  time.Time   `json:"ingested_at"`
}

// IsPDF reports whether the document is OCR-eligible.
func (d *Document) IsPDF() bool {
	return d.ContentType == ContentTypePDF
}

// NewDocumentID derives a document ID from the file name and ingestion time.
// Collision-tolerant, not collision-proof: two same-named files ingested in
// the same nanosecond would collide.
func NewDocumentID(name string, at time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
	return fmt.Sprintf("%s-%d", slug, at.UnixNano())
}

// OcrResult is the transcription of a single rendered page. A batch of these
// is committed wholesale per OCR run; PageNumber is 1-based and unique within
// a document.
type OcrResult struct {
	DocumentID string `json:"document_id"`
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
	ImageURL   string `json:"image_url"`
}

// Agent is a catalog entry: a reusable prompt template plus model selection.
// Icon is an opaque presentation hint for clients; the catalog itself is
// never mutated, per-run overrides travel in the run request instead.
type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
	Model       string `json:"model"`
	Icon        string `json:"icon"`
}

// AgentRunResult is the oracle's answer to a single agent invocation.
type AgentRunResult struct {
	Analysis          string   `json:"analysis"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// AgentResult is one completed agent run in the history.
type AgentResult struct {
	AgentID           string    `json:"agent_id"`
	AgentName         string    `json:"agent_name"`
	Timestamp         time.Time `json:"timestamp"`
	Analysis          string    `json:"analysis"`
	FollowUpQuestions []string  `json:"follow_up_questions"`
}

// WordFrequency is one row of the frequency table.
type WordFrequency struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// AnalysisResult holds the lexical statistics of the combined text.
type AnalysisResult struct {
	WordCount     int             `json:"word_count"`
	CharCount     int             `json:"char_count"`
	SentenceCount int             `json:"sentence_count"`
	WordFrequency []WordFrequency `json:"word_frequency"`
}
