package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"jobmatch/internal/ai"
	"jobmatch/internal/metrics"
	"jobmatch/internal/posting"
	"jobmatch/internal/profile"
	"jobmatch/internal/scoring"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func testInputs() (*profile.Profile, *posting.Posting, *ai.Result) {
	candidate := &profile.Profile{
		Name:   "Test Candidate",
		Skills: []string{"Python", "Docker"},
	}
	job := &posting.Posting{
		ID:           "job1",
		Title:        "Senior Python Developer",
		Requirements: []string{"Python", "Docker"},
		Raw:          "full raw markdown",
	}
	result := &ai.Result{
		Total:     82.5,
		Breakdown: scoring.Breakdown{SkillMatch: 35, ExperienceAlignment: 25, SeniorityFit: 10, LocationLanguage: 5, SemanticAlignment: 7.5},
		Matched:   []string{"Python", "Docker"},
	}
	return candidate, job, result
}

func TestExplainerExplain(t *testing.T) {
	stub := &stubGenerator{response: `{"reason": "Strong overlap on Python and Docker.", "evidence": ["Python", "Docker"]}`}
	counters := metrics.New()
	explainer := NewExplainer(stub, zap.NewNop(), counters, 0)

	candidate, job, result := testInputs()

	explanation, err := explainer.Explain(context.Background(), candidate, job, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if explanation.Reason != "Strong overlap on Python and Docker." {
		t.Fatalf("unexpected reason: %s", explanation.Reason)
	}
	if len(explanation.Evidence) != 2 {
		t.Fatalf("unexpected evidence: %v", explanation.Evidence)
	}

	if stub.lastPrompt == "" {
		t.Fatalf("expected prompt to be sent")
	}
	if !strings.Contains(stub.lastPrompt, "Senior Python Developer") {
		t.Fatalf("expected job payload in prompt")
	}
	if strings.Contains(stub.lastPrompt, "full raw markdown") {
		t.Fatalf("raw posting text should not be sent in the prompt")
	}
	if counters.LLMCalls.Load() != 1 {
		t.Fatalf("expected 1 llm call, got %d", counters.LLMCalls.Load())
	}
}

func TestExplainerStripsMarkdownFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"reason\": \"Looks fine.\", \"evidence\": []}\n```"}
	explainer := NewExplainer(stub, zap.NewNop(), nil, 0)

	candidate, job, result := testInputs()

	explanation, err := explainer.Explain(context.Background(), candidate, job, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if explanation.Reason != "Looks fine." {
		t.Fatalf("unexpected reason: %s", explanation.Reason)
	}
}

func TestExplainerTruncatesEvidence(t *testing.T) {
	stub := &stubGenerator{response: `{"reason": "ok", "evidence": ["a","b","c","d","e","f","g"]}`}
	explainer := NewExplainer(stub, zap.NewNop(), nil, 0)

	candidate, job, result := testInputs()

	explanation, err := explainer.Explain(context.Background(), candidate, job, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(explanation.Evidence) != 5 {
		t.Fatalf("expected evidence capped at 5, got %d", len(explanation.Evidence))
	}
}

func TestExplainerPropagatesGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	explainer := NewExplainer(stub, zap.NewNop(), nil, 0)

	candidate, job, result := testInputs()

	if _, err := explainer.Explain(context.Background(), candidate, job, result); err == nil {
		t.Fatalf("expected error from failing generator")
	}
}

func TestExplainerRejectsMissingReason(t *testing.T) {
	stub := &stubGenerator{response: `{"evidence": ["a"]}`}
	explainer := NewExplainer(stub, zap.NewNop(), nil, 0)

	candidate, job, result := testInputs()

	if _, err := explainer.Explain(context.Background(), candidate, job, result); err == nil {
		t.Fatalf("expected error for missing reason")
	}
}
