package ranking

import (
	"context"
	"fmt"
	"strings"

	"jobmatch/internal/ai"
	"jobmatch/internal/posting"
	"jobmatch/internal/profile"
)

const (
	maxEvidenceSnippets     = 5
	minEvidenceSentenceLen  = 20
	maxResponsibilityQuotes = 3
	maxRequirementQuotes    = 3
)

// TemplateExplainer builds the match justification from fixed sentences
// keyed on score thresholds. It is fully deterministic: the same scored pair
// always yields the same reason and evidence, which keeps ranking runs
// reproducible.
type TemplateExplainer struct{}

// NewTemplateExplainer returns the deterministic explanation strategy.
func NewTemplateExplainer() *TemplateExplainer {
	return &TemplateExplainer{}
}

// Explain renders the threshold-template reason and collects evidence
// snippets from the job text. It never fails.
func (t *TemplateExplainer) Explain(_ context.Context, _ *profile.Profile, job *posting.Posting, result *ai.Result) (*ai.Explanation, error) {
	return &ai.Explanation{
		Reason:   buildReason(result),
		Evidence: collectEvidence(job),
	}, nil
}

func buildReason(result *ai.Result) string {
	parts := make([]string, 0, 6)

	switch {
	case result.Total >= 75:
		parts = append(parts, "Excellent match with strong alignment across all criteria.")
	case result.Total >= 55:
		parts = append(parts, "Good match with solid alignment in key areas.")
	default:
		parts = append(parts, "Moderate match with some gaps to consider.")
	}

	matched := len(result.Matched)
	switch {
	case result.Breakdown.SkillMatch >= 30:
		parts = append(parts, fmt.Sprintf("Strong skill alignment (%d matched skills).", matched))
	case result.Breakdown.SkillMatch >= 20:
		parts = append(parts, fmt.Sprintf("Good skill coverage (%d matched skills).", matched))
	default:
		parts = append(parts, fmt.Sprintf("Limited skill overlap (only %d matched skills).", matched))
	}

	switch {
	case result.Breakdown.ExperienceAlignment >= 20:
		parts = append(parts, "Extensive relevant experience in the domain.")
	case result.Breakdown.ExperienceAlignment >= 15:
		parts = append(parts, "Solid experience relevant to the role.")
	default:
		parts = append(parts, "Some relevant experience but not perfectly aligned.")
	}

	switch {
	case result.Breakdown.SeniorityFit >= 8:
		parts = append(parts, "Seniority level matches role requirements.")
	case result.Breakdown.SeniorityFit >= 5:
		parts = append(parts, "Seniority level reasonably aligned.")
	default:
		parts = append(parts, "Seniority level may not be ideal fit.")
	}

	switch {
	case result.Breakdown.LocationLanguage >= 8:
		parts = append(parts, "Location and language requirements well met.")
	case result.Breakdown.LocationLanguage >= 5:
		parts = append(parts, "Location and language mostly aligned.")
	}

	if missing := len(result.Missing); missing > 0 {
		parts = append(parts, fmt.Sprintf("Note: Missing %d key requirements.", missing))
	}

	return strings.Join(parts, " ")
}

// collectEvidence quotes the first responsibilities sentences longer than
// minEvidenceSentenceLen, then the leading requirements, capped at
// maxEvidenceSnippets overall.
func collectEvidence(job *posting.Posting) []string {
	evidence := make([]string, 0, maxEvidenceSnippets)

	if job.Responsibilities != "" {
		sentences := strings.Split(job.Responsibilities, ".")
		if len(sentences) > maxResponsibilityQuotes {
			sentences = sentences[:maxResponsibilityQuotes]
		}
		for _, sentence := range sentences {
			if sentence = strings.TrimSpace(sentence); len(sentence) > minEvidenceSentenceLen {
				evidence = append(evidence, sentence+".")
			}
		}
	}

	for i, req := range job.Requirements {
		if i >= maxRequirementQuotes {
			break
		}
		evidence = append(evidence, req)
	}

	if len(evidence) > maxEvidenceSnippets {
		evidence = evidence[:maxEvidenceSnippets]
	}

	return evidence
}
