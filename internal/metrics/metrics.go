package metrics

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Counters tracks what a single pipeline run did. Instances are created by
// the caller and passed down explicitly so repeated or concurrent runs never
// share state.
type Counters struct {
	ResumesParsed   atomic.Int64
	JobsParsed      atomic.Int64
	MatchesComputed atomic.Int64
	CacheHits       atomic.Int64
	CacheMisses     atomic.Int64
	LLMCalls        atomic.Int64
}

// New returns a zeroed Counters.
func New() *Counters {
	return &Counters{}
}

// Fields renders the counters as zap fields for a summary log line.
func (c *Counters) Fields() []zap.Field {
	return []zap.Field{
		zap.Int64("resumes_parsed", c.ResumesParsed.Load()),
		zap.Int64("jobs_parsed", c.JobsParsed.Load()),
		zap.Int64("matches_computed", c.MatchesComputed.Load()),
		zap.Int64("cache_hits", c.CacheHits.Load()),
		zap.Int64("cache_misses", c.CacheMisses.Load()),
		zap.Int64("llm_calls", c.LLMCalls.Load()),
	}
}
