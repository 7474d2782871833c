package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"jobmatch/internal/ai"
	"jobmatch/internal/metrics"
	"jobmatch/internal/posting"
	"jobmatch/internal/profile"
	"jobmatch/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	maxEvidence         = 5
)

// Explainer asks Gemini to phrase the justification for an already-scored
// match. The score itself never comes from the model; a failed call simply
// surfaces as an error so the caller can fall back to the deterministic
// template.
type Explainer struct {
	generator contentGenerator
	logger    *zap.Logger
	counters  *metrics.Counters
	maxLogLen int
}

// NewExplainer creates an Explainer on top of a content generator. Counters
// may be nil.
func NewExplainer(generator contentGenerator, logger *zap.Logger, counters *metrics.Counters, maxLogLength int) *Explainer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Explainer{
		generator: generator,
		logger:    logger,
		counters:  counters,
		maxLogLen: maxLogLength,
	}
}

// Explain builds the prompt from the candidate, job and computed score,
// sends it to Gemini and parses the JSON response.
func (e *Explainer) Explain(ctx context.Context, candidate *profile.Profile, job *posting.Posting, result *ai.Result) (*ai.Explanation, error) {
	if candidate == nil {
		return nil, fmt.Errorf("candidate profile is required")
	}
	if job == nil {
		return nil, fmt.Errorf("job posting is required")
	}
	if result == nil {
		return nil, fmt.Errorf("score result is required")
	}

	candidateJSON, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidate payload: %w", err)
	}

	// The raw posting text repeats everything the structured fields hold;
	// drop it from the prompt to keep it short.
	trimmed := *job
	trimmed.Raw = ""
	jobJSON, err := json.MarshalIndent(&trimmed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	resultJSON, err := json.MarshalIndent(map[string]any{
		"total":           result.Total,
		"score_breakdown": result.Breakdown,
		"matched_skills":  result.Matched,
		"missing_skills":  result.Missing,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result payload: %w", err)
	}

	prompt := buildPrompt(string(candidateJSON), string(jobJSON), string(resultJSON))

	e.logger.Debug("gemini explain request",
		zap.String("job_id", job.ID),
		zap.String("model", e.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	if e.counters != nil {
		e.counters.LLMCalls.Add(1)
	}

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini explain response",
		zap.String("job_id", job.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(candidateJSON, jobJSON, resultJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{CANDIDATE_JSON}}\n\nJob:\n{{JOB_JSON}}\n\nScore:\n{{RESULT_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{CANDIDATE_JSON}}", candidateJSON)
	prompt = strings.ReplaceAll(prompt, "{{JOB_JSON}}", jobJSON)
	prompt = strings.ReplaceAll(prompt, "{{RESULT_JSON}}", resultJSON)
	return prompt
}

func parseResponse(raw string) (*ai.Explanation, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	reason := coerceString(data["reason"])
	if reason == "" {
		return nil, fmt.Errorf("gemini response did not contain a reason")
	}

	evidence := coerceStrings(data["evidence"])
	if len(evidence) > maxEvidence {
		evidence = evidence[:maxEvidence]
	}

	return &ai.Explanation{
		Reason:   reason,
		Evidence: evidence,
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
