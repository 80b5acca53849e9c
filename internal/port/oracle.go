package port

import (
	"context"

	"spherical/internal/domain"
)

// AnalysisOracle abstracts the LLM-backed inference endpoint. Every method
// owns its own error handling: failures and malformed responses degrade to
// sentinel values, they are never returned as errors to the caller.
type AnalysisOracle interface {
	// TranscribePage performs OCR on one rendered page. On any failure it
	// returns the OCR failure sentinel text.
	TranscribePage(ctx context.Context, page Page) string

	// ExtractKeywords asks for the top keywords of text as a strict JSON
	// string array. On failure or schema violation it returns an empty slice.
	ExtractKeywords(ctx context.Context, text string) []string

	// Analyze runs a free-form agent prompt against the combined text and
	// asks for 3-5 follow-up questions. On failure or schema violation it
	// returns the agent failure sentinel with no questions.
	Analyze(ctx context.Context, prompt, contextText, model string) domain.AgentRunResult
}
