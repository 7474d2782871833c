package ai

import (
	"context"

	"jobmatch/internal/posting"
	"jobmatch/internal/profile"
	"jobmatch/internal/scoring"
)

// Result carries one scored candidate/job pair into an explainer.
type Result struct {
	Total     float64
	Breakdown scoring.Breakdown
	Matched   []string
	Missing   []string
}

// Explanation is the human-readable justification for a match.
type Explanation struct {
	Reason   string
	Evidence []string
}

// Explainer produces the justification text for a scored match. The ranking
// orchestrator ships a deterministic template implementation; an LLM-backed
// one can be injected instead. Explainers never influence the score itself.
type Explainer interface {
	Explain(ctx context.Context, candidate *profile.Profile, job *posting.Posting, result *Result) (*Explanation, error)
}
