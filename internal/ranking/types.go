package ranking

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"jobmatch/internal/scoring"
)

// RankedJob is one scored job in the ranked output. Instances are built once
// per ranking run and never mutated afterwards.
type RankedJob struct {
	ID                string            `json:"id"`
	Score             float64           `json:"score"`
	ScoreBreakdown    scoring.Breakdown `json:"score_breakdown"`
	Title             string            `json:"title"`
	Company           string            `json:"company"`
	Location          string            `json:"location"`
	Reason            string            `json:"reason"`
	MatchedSkills     []string          `json:"matched_skills"`
	MissingSkills     []string          `json:"missing_skills"`
	EvidenceSnippets  []string          `json:"evidence_snippets"`
	SuccessLikelihood string            `json:"success_likelihood"`
}

// Output is the ranked result set, ordered by descending score with input
// order preserved among ties.
type Output struct {
	RankedJobs []*RankedJob `json:"ranked_jobs"`
}

// Len returns the number of ranked jobs.
func (o *Output) Len() int {
	return len(o.RankedJobs)
}

// WriteFile serializes the output as indented JSON, creating parent
// directories as needed.
func (o *Output) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("encoding ranked jobs: %w", err)
	}

	return nil
}
