package port

import "context"

// Page is one rendered page of a source document, ready for transcription.
// Number is 1-based. Data holds the page bytes (a single-page PDF blob) and
// DataURL a data: URL of the same bytes for presentation.
type Page struct {
	Number      int
	Data        []byte
	ContentType string
	DataURL     string
}

// PageRenderer converts a source file into an ordered sequence of pages.
// A rendering failure is fatal to the caller's run; no partial pages are
// returned alongside an error.
type PageRenderer interface {
	RenderPages(ctx context.Context, source []byte) ([]Page, error)
}
