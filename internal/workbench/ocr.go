package workbench

import (
	"context"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"spherical/internal/domain"
)

// RunOCR renders every page of a PDF document and transcribes the pages in
// parallel, committing the batch wholesale once all pages have settled.
//
// Failure isolation: a single page's transcription failure degrades that page
// to the OCR sentinel text (inside the oracle client) and never aborts
// sibling pages. A renderer failure is fatal to the whole run and leaves any
// previously committed batch untouched. The loading flag is cleared on every
// path.
func (s *Store) RunOCR(ctx context.Context, documentID string) ([]domain.OcrResult, error) {
	s.mu.Lock()
	if s.oracle == nil {
		s.mu.Unlock()
		return nil, domain.ErrOracleUnavailable
	}
	var source []byte
	found := false
	for _, d := range s.documents {
		if d.ID == documentID {
			found = true
			source = d.SourceFile
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return nil, domain.ErrDocumentNotFound
	}
	if len(source) == 0 {
		return nil, domain.ErrNotOcrEligible
	}

	opKey := domain.OcrOpKey(documentID)
	if err := s.beginOp(opKey); err != nil {
		return nil, err
	}
	defer s.endOp(opKey)

	pages, err := s.renderer.RenderPages(ctx, source)
	if err != nil {
		log.Printf("workbench.RunOCR: rendering %s: %v", documentID, err)
		return nil, err
	}

	// One transcription per page, in parallel. Results are indexed by slot so
	// page-number association survives arbitrary completion order, and the
	// oracle client never returns an error (failed pages carry the sentinel).
	batch := make([]domain.OcrResult, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.pageConcurrency)
	for i, page := range pages {
		g.Go(func() error {
			batch[i] = domain.OcrResult{
				DocumentID: documentID,
				PageNumber: page.Number,
				Text:       s.oracle.TranscribePage(gctx, page),
				ImageURL:   page.DataURL,
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(batch, func(i, j int) bool { return batch[i].PageNumber < batch[j].PageNumber })

	s.mu.Lock()
	defer s.mu.Unlock()

	// The document may have been deleted while transcription was in flight;
	// its results are discarded rather than resurrected.
	idx := -1
	for i, d := range s.documents {
		if d.ID == documentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Printf("workbench.RunOCR: document %s deleted mid-run, discarding %d page(s)", documentID, len(batch))
		return nil, domain.ErrDocumentNotFound
	}

	// Remove-then-append: a new run fully replaces the prior batch.
	kept := s.ocrResults[:0]
	for _, r := range s.ocrResults {
		if r.DocumentID != documentID {
			kept = append(kept, r)
		}
	}
	s.ocrResults = append(kept, batch...)
	s.documents[idx].OcrPages = batch

	log.Printf("workbench.RunOCR: committed %d page(s) for document %s", len(batch), documentID)
	return batch, nil
}
