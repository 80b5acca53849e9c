package workbench

import (
	"context"
	"log"
	"time"

	"spherical/internal/domain"
)

// AgentRunInput carries a run request: the catalog agent plus optional
// per-run overrides that never mutate the catalog entry.
type AgentRunInput struct {
	AgentID        string
	PromptOverride string
	ModelOverride  string
}

// RunAgent invokes one agent against the current combined text. Distinct
// agents may run concurrently; a second run of the same agent while one is in
// flight is rejected. On success the result is prepended to the history, so
// ordering reflects completion order, most recent first. A failed run (the
// oracle degraded to its failure sentinel) is reported and leaves the history
// untouched.
func (s *Store) RunAgent(ctx context.Context, input AgentRunInput) (domain.AgentResult, error) {
	agent, ok := domain.FindAgent(s.agents, input.AgentID)
	if !ok {
		return domain.AgentResult{}, domain.ErrAgentNotFound
	}

	s.mu.Lock()
	if s.oracle == nil {
		s.mu.Unlock()
		return domain.AgentResult{}, domain.ErrOracleUnavailable
	}
	if s.combinedText == "" {
		s.mu.Unlock()
		return domain.AgentResult{}, domain.ErrNoCombinedText
	}
	snapshot := s.combinedText
	s.mu.Unlock()

	opKey := domain.AgentOpKey(agent.ID)
	if err := s.beginOp(opKey); err != nil {
		return domain.AgentResult{}, err
	}
	defer s.endOp(opKey)

	prompt := agent.Prompt
	if input.PromptOverride != "" {
		prompt = input.PromptOverride
	}
	model := agent.Model
	if input.ModelOverride != "" {
		model = input.ModelOverride
	}

	run := s.oracle.Analyze(ctx, prompt, snapshot, model)
	if run.Analysis == domain.SentinelAgentFailed {
		log.Printf("workbench.RunAgent: agent %s failed", agent.ID)
		return domain.AgentResult{}, domain.ErrAgentRunFailed
	}

	result := domain.AgentResult{
		AgentID:           agent.ID,
		AgentName:         agent.Name,
		Timestamp:         time.Now(),
		Analysis:          run.Analysis,
		FollowUpQuestions: run.FollowUpQuestions,
	}

	s.mu.Lock()
	s.agentResults = append([]domain.AgentResult{result}, s.agentResults...)
	s.mu.Unlock()

	log.Printf("workbench.RunAgent: agent %s completed, history size %d", agent.ID, len(s.AgentHistory()))
	return result, nil
}
