package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrNotOcrEligible    = errors.New("document has no source file to OCR")
	ErrOracleUnavailable = errors.New("analysis oracle is not configured")
	ErrNoCombinedText    = errors.New("no combined text; combine documents first")
	ErrOperationInFlight = errors.New("operation already in flight for this key")
	ErrAgentNotFound     = errors.New("agent not found")
	ErrInvalidView       = errors.New("unknown view")
	ErrAgentRunFailed    = errors.New("agent run failed")
	ErrRenderFailed      = errors.New("page rendering failed")
	ErrNoAnalysis        = errors.New("no analysis result available")
)
