package workbench

import (
	"context"
	"fmt"
	"log"
	"strings"

	"spherical/internal/domain"
	"spherical/internal/textstats"
)

// Combine concatenates every document's best-available text into the combined
// text, each section prefixed with a document header. OCR transcripts win
// over direct content when present and non-empty. The rebuilt text is always
// committed, even when empty: combining after deleting every document clears
// the combined text so agents stop seeing stale content. A changed text
// invalidates the memoized analysis so the derived trigger refires. Only a
// non-empty result switches the active view to Analysis; the trigger then
// runs detached from the calling request.
func (s *Store) Combine(ctx context.Context) string {
	s.mu.Lock()

	var b strings.Builder
	for _, doc := range s.documents {
		switch {
		case len(doc.OcrPages) > 0:
			fmt.Fprintf(&b, "--- Document: %s ---\n\n", doc.Name)
			for _, page := range doc.OcrPages {
				fmt.Fprintf(&b, "Page %d:\n%s\n\n", page.PageNumber, page.Text)
			}
		case doc.TextContent != "":
			fmt.Fprintf(&b, "--- Document: %s ---\n\n%s\n\n", doc.Name, doc.TextContent)
		}
	}

	text := b.String()
	if text != s.combinedText {
		s.combinedText = text
		s.analysisResult = nil
		s.keywords = nil
	}
	if text == "" {
		s.mu.Unlock()
		return ""
	}
	s.activeView = domain.ViewAnalysis
	s.mu.Unlock()

	go s.EnsureAnalysis(context.WithoutCancel(ctx))
	return text
}

// SetView switches the active view. Switching is idempotent and has no side
// effect beyond evaluating the derived-analysis trigger when landing on the
// Analysis view.
func (s *Store) SetView(ctx context.Context, v domain.View) error {
	if !v.Valid() {
		return domain.ErrInvalidView
	}
	s.mu.Lock()
	s.activeView = v
	s.mu.Unlock()

	if v == domain.ViewAnalysis {
		go s.EnsureAnalysis(context.WithoutCancel(ctx))
	}
	return nil
}

// EnsureAnalysis is the derived-analysis trigger: when the Analysis view is
// active, combined text exists, no result is memoized and no analysis is in
// flight, it fetches keywords from the oracle and computes the lexical
// statistics. Idempotent under repeated evaluation, and safe to run detached:
// the loading flag is check-and-set under the lock, and the commit keys off
// the combined text captured at the start, so a stale run never overwrites
// state derived from a newer combine.
func (s *Store) EnsureAnalysis(ctx context.Context) {
	s.mu.Lock()
	if s.activeView != domain.ViewAnalysis ||
		s.combinedText == "" ||
		s.analysisResult != nil ||
		s.loading[domain.OpAnalysis] ||
		s.oracle == nil {
		s.mu.Unlock()
		return
	}
	s.loading[domain.OpAnalysis] = true
	snapshot := s.combinedText
	s.mu.Unlock()

	defer s.endOp(domain.OpAnalysis)

	keywords := s.oracle.ExtractKeywords(ctx, snapshot)
	result := textstats.Analyze(snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.combinedText != snapshot {
		log.Printf("workbench.EnsureAnalysis: combined text changed mid-run, discarding stale result")
		return
	}
	s.keywords = keywords
	s.analysisResult = &result
}

// Analysis returns the combined text plus the memoized keywords and lexical
// statistics, if any.
func (s *Store) Analysis() (combined string, keywords []string, result *domain.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.combinedText, s.keywords, s.analysisResult
}
