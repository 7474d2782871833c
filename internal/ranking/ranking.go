// Package ranking applies the scoring engine to a batch of job postings and
// packages the ordered result.
package ranking

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"jobmatch/internal/ai"
	"jobmatch/internal/metrics"
	"jobmatch/internal/posting"
	"jobmatch/internal/profile"
	"jobmatch/internal/scoring"
)

const (
	maxMatchedSkills = 10
	maxMissingSkills = 5
)

// Ranker orchestrates scoring and explanation for a batch of jobs.
type Ranker struct {
	engine    *scoring.Engine
	explainer ai.Explainer
	fallback  *TemplateExplainer
	logger    *zap.Logger
	counters  *metrics.Counters
}

// New creates a Ranker. A nil explainer gets the deterministic template
// strategy; a nil logger gets a no-op logger.
func New(engine *scoring.Engine, explainer ai.Explainer, logger *zap.Logger, counters *metrics.Counters) *Ranker {
	fallback := NewTemplateExplainer()
	if explainer == nil {
		explainer = fallback
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if counters == nil {
		counters = metrics.New()
	}
	return &Ranker{
		engine:    engine,
		explainer: explainer,
		fallback:  fallback,
		logger:    logger,
		counters:  counters,
	}
}

// Rank scores every job against the candidate and returns them ordered by
// descending score. The sort is stable: jobs with equal scores keep their
// input order. Malformed jobs are skipped with a warning; one bad posting
// never aborts the batch.
func (r *Ranker) Rank(ctx context.Context, candidate *profile.Profile, jobs []*posting.Posting) *Output {
	ranked := make([]*RankedJob, 0, len(jobs))

	for _, job := range jobs {
		if job == nil || job.ID == "" {
			r.logger.Warn("skipping malformed job posting")
			continue
		}

		total, breakdown, matched, missing := r.engine.Score(candidate, job)
		r.counters.MatchesComputed.Add(1)

		result := &ai.Result{
			Total:     total,
			Breakdown: breakdown,
			Matched:   matched,
			Missing:   missing,
		}

		explanation, err := r.explainer.Explain(ctx, candidate, job, result)
		if err != nil {
			r.logger.Warn("explainer failed, using deterministic template",
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
			explanation, _ = r.fallback.Explain(ctx, candidate, job, result)
		}

		ranked = append(ranked, &RankedJob{
			ID:                job.ID,
			Score:             total,
			ScoreBreakdown:    breakdown,
			Title:             job.Title,
			Company:           job.Company,
			Location:          job.Location,
			Reason:            explanation.Reason,
			MatchedSkills:     truncate(matched, maxMatchedSkills),
			MissingSkills:     truncate(missing, maxMissingSkills),
			EvidenceSnippets:  explanation.Evidence,
			SuccessLikelihood: scoring.Likelihood(total),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	r.logger.Info("ranking completed",
		zap.Int("jobs_in", len(jobs)),
		zap.Int("jobs_ranked", len(ranked)),
	)

	return &Output{RankedJobs: ranked}
}

func truncate(values []string, limit int) []string {
	if len(values) > limit {
		return values[:limit]
	}
	return values
}
