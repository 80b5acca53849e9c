// Package workbench owns the document/result state machine. Every piece of
// shared mutable state (documents, OCR batches, combined text, analysis,
// agent history, loading flags, active view) lives behind the Store and is
// mutated only through its methods.
package workbench

import (
	"log"
	"sync"
	"time"

	"spherical/internal/domain"
	"spherical/internal/ingest"
	"spherical/internal/port"
)

// Store is the pipeline coordinator. A single mutex makes every state
// transition atomic from an observer's perspective; remote calls (oracle,
// renderer) always happen outside the lock, and their results are committed
// as single wholesale replaces.
type Store struct {
	oracle          port.AnalysisOracle // nil when the oracle is unconfigured
	renderer        port.PageRenderer
	agents          []domain.Agent
	pageConcurrency int

	mu             sync.Mutex
	documents      []domain.Document
	ocrResults     []domain.OcrResult
	combinedText   string
	keywords       []string
	analysisResult *domain.AnalysisResult
	agentResults   []domain.AgentResult
	activeView     domain.View
	loading        map[string]bool
}

// NewStore creates a coordinator. A nil oracle is the "service unavailable"
// condition: it is reported once here, and every oracle-dependent operation
// short-circuits with domain.ErrOracleUnavailable thereafter.
func NewStore(oracle port.AnalysisOracle, renderer port.PageRenderer, agents []domain.Agent, pageConcurrency int) *Store {
	if oracle == nil {
		log.Printf("workbench: no oracle API key configured; OCR, keyword and agent operations are disabled")
	}
	if pageConcurrency <= 0 {
		pageConcurrency = 8
	}
	return &Store{
		oracle:          oracle,
		renderer:        renderer,
		agents:          agents,
		pageConcurrency: pageConcurrency,
		activeView:      domain.ViewDocuments,
		loading:         map[string]bool{},
	}
}

// OracleAvailable reports whether oracle-dependent operations can run.
func (s *Store) OracleAvailable() bool {
	return s.oracle != nil
}

// Ingest appends one document per file. Per-file read isolation happens
// before this call; ingestion itself cannot fail a batch.
func (s *Store) Ingest(files []ingest.File) []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading[domain.OpUpload] = true
	defer delete(s.loading, domain.OpUpload)

	docs := ingest.Documents(files, time.Now())
	s.documents = append(s.documents, docs...)
	log.Printf("workbench.Ingest: added %d document(s), %d total", len(docs), len(s.documents))
	return docs
}

// Documents returns a snapshot of the document collection in ingestion order.
func (s *Store) Documents() []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// Document returns one document by ID.
func (s *Store) Document(id string) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.documents {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Document{}, domain.ErrDocumentNotFound
}

// Delete removes a document and cascades to its OCR results. In-flight OCR
// for the document is not canceled; its batch is discarded at commit time.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, d := range s.documents {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrDocumentNotFound
	}

	s.documents = append(s.documents[:idx], s.documents[idx+1:]...)
	kept := s.ocrResults[:0]
	for _, r := range s.ocrResults {
		if r.DocumentID != id {
			kept = append(kept, r)
		}
	}
	s.ocrResults = kept
	log.Printf("workbench.Delete: removed document %s", id)
	return nil
}

// OcrResults returns the committed OCR batch for a document, ordered by page
// number.
func (s *Store) OcrResults(documentID string) []domain.OcrResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.OcrResult
	for _, r := range s.ocrResults {
		if r.DocumentID == documentID {
			out = append(out, r)
		}
	}
	return out
}

// Agents returns the agent catalog.
func (s *Store) Agents() []domain.Agent {
	return s.agents
}

// AgentHistory returns the agent result history, most recent first.
func (s *Store) AgentHistory() []domain.AgentResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AgentResult, len(s.agentResults))
	copy(out, s.agentResults)
	return out
}

// ActiveView returns the current view.
func (s *Store) ActiveView() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeView
}

// LoadingStates returns a snapshot of the operation loading flags.
func (s *Store) LoadingStates() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.loading))
	for k, v := range s.loading {
		out[k] = v
	}
	return out
}

// Stats summarizes the workbench for the dashboard view.
type Stats struct {
	DocumentCount     int  `json:"document_count"`
	PagesTranscribed  int  `json:"pages_transcribed"`
	DistinctAgentsRun int  `json:"distinct_agents_run"`
	AgentRunCount     int  `json:"agent_run_count"`
	WordCount         int  `json:"word_count"`
	OracleAvailable   bool `json:"oracle_available"`
}

// DashboardStats computes the dashboard counters.
func (s *Store) DashboardStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	agents := map[string]bool{}
	for _, r := range s.agentResults {
		agents[r.AgentID] = true
	}
	stats := Stats{
		DocumentCount:     len(s.documents),
		PagesTranscribed:  len(s.ocrResults),
		DistinctAgentsRun: len(agents),
		AgentRunCount:     len(s.agentResults),
		OracleAvailable:   s.oracle != nil,
	}
	if s.analysisResult != nil {
		stats.WordCount = s.analysisResult.WordCount
	}
	return stats
}

// beginOp atomically sets the loading flag for key, enforcing at-most-one
// in-flight operation per key. Callers must already hold no lock.
func (s *Store) beginOp(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading[key] {
		return domain.ErrOperationInFlight
	}
	s.loading[key] = true
	return nil
}

// endOp clears the loading flag. Deferred on every path so a failure never
// leaves a frozen loading state.
func (s *Store) endOp(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loading, key)
}
