package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jobmatch/internal/ai"
	"jobmatch/internal/ai/gemini"
	"jobmatch/internal/cache"
	"jobmatch/internal/embedding"
	"jobmatch/internal/logger"
	"jobmatch/internal/metrics"
	"jobmatch/internal/posting"
	"jobmatch/internal/profile"
	"jobmatch/internal/ranking"
	"jobmatch/internal/scoring"
	"jobmatch/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	resumeCachePrefix = "resume"
	jobCachePrefix    = "job"
)

// pipeline bundles the pieces every command needs: parsed config, logger,
// counters and the optional on-disk cache.
type pipeline struct {
	config   *Config
	logger   *zap.Logger
	counters *metrics.Counters
	cache    *cache.Cache
}

func newPipeline(cmd *cobra.Command) *pipeline {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	applyFlagOverrides(cmd, config)

	p := &pipeline{
		config:   config,
		logger:   l,
		counters: metrics.New(),
	}

	if !config.Cache.Disabled {
		c, err := cache.New(config.Cache.Dir)
		if err != nil {
			l.Fatal("initializing cache", zap.String("dir", config.Cache.Dir), zap.Error(err))
		}
		p.cache = c
	}

	return p
}

// applyFlagOverrides lets per-command flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, config *Config) {
	if f := cmd.Flags().Lookup("resume"); f != nil && f.Changed {
		config.Resume = f.Value.String()
	}
	if f := cmd.Flags().Lookup("jobs-dir"); f != nil && f.Changed {
		config.JobsDir = f.Value.String()
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		config.Output = f.Value.String()
	}
	if f := cmd.Flags().Lookup("no-cache"); f != nil && f.Changed {
		config.Cache.Disabled = strings.EqualFold(f.Value.String(), "true")
	}
}

func (p *pipeline) parseResume() (*profile.Profile, error) {
	if p.cache != nil {
		var cached profile.Profile
		hit, err := p.cache.Get(p.config.Resume, resumeCachePrefix, &cached)
		if err != nil {
			p.logger.Warn("reading resume cache", zap.Error(err))
		}
		if hit {
			p.counters.CacheHits.Add(1)
			p.logger.Info("loaded resume from cache", zap.String("path", p.config.Resume))
			return &cached, nil
		}
		p.counters.CacheMisses.Add(1)
	}

	parsed, err := profile.Load(p.config.Resume)
	if err != nil {
		return nil, fmt.Errorf("parsing resume: %w", err)
	}
	p.counters.ResumesParsed.Add(1)

	if p.cache != nil {
		if err := p.cache.Set(p.config.Resume, resumeCachePrefix, parsed); err != nil {
			p.logger.Warn("writing resume cache", zap.Error(err))
		}
	}

	p.logger.Info("parsed resume",
		zap.String("name", parsed.Name),
		zap.Int("skills", len(parsed.Skills)),
		zap.Int("years_of_experience", parsed.YearsOfExperience),
	)

	return parsed, nil
}

func (p *pipeline) parseJobs() ([]*posting.Posting, error) {
	if p.cache == nil {
		jobs, err := posting.LoadDir(p.config.JobsDir, p.logger)
		if err != nil {
			return nil, err
		}
		p.counters.JobsParsed.Add(int64(len(jobs)))
		return jobs, nil
	}

	entries, err := os.ReadDir(p.config.JobsDir)
	if err != nil {
		return nil, fmt.Errorf("reading jobs directory %s: %w", p.config.JobsDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	jobs := make([]*posting.Posting, 0, len(names))
	for _, name := range names {
		path := filepath.Join(p.config.JobsDir, name)

		var cached posting.Posting
		hit, err := p.cache.Get(path, jobCachePrefix, &cached)
		if err != nil {
			p.logger.Warn("reading job cache", zap.String("path", path), zap.Error(err))
		}
		if hit {
			p.counters.CacheHits.Add(1)
			jobs = append(jobs, &cached)
			continue
		}
		p.counters.CacheMisses.Add(1)

		parsed, err := posting.Load(path)
		if err != nil {
			p.logger.Warn("skipping unreadable job posting", zap.String("path", path), zap.Error(err))
			continue
		}
		p.counters.JobsParsed.Add(1)

		if err := p.cache.Set(path, jobCachePrefix, parsed); err != nil {
			p.logger.Warn("writing job cache", zap.String("path", path), zap.Error(err))
		}

		jobs = append(jobs, parsed)
	}

	p.logger.Info("parsed job postings", zap.Int("count", len(jobs)), zap.String("dir", p.config.JobsDir))

	return jobs, nil
}

// newRanker assembles the scoring engine and, when enabled, the Gemini
// explainer. A failed explainer setup degrades to the deterministic
// template instead of aborting.
func (p *pipeline) newRanker(ctx context.Context) *ranking.Ranker {
	gen := embedding.New(p.config.Scoring.EmbeddingDimension)

	lexicon := p.config.Scoring.Lexicon
	if len(lexicon.Seniority) == 0 {
		lexicon = scoring.DefaultLexicon()
	}

	engine := scoring.New(gen, lexicon, p.logger)

	var explainer ai.Explainer
	if p.config.AI != nil && p.config.AI.Enabled {
		built, err := p.newAIExplainer(ctx)
		if err != nil {
			p.logger.Warn("skipping AI explainer", zap.Error(err))
		} else {
			explainer = built
		}
	}

	return ranking.New(engine, explainer, p.logger, p.counters)
}

func (p *pipeline) newAIExplainer(ctx context.Context) (ai.Explainer, error) {
	cfg := p.config.AI

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai explainer is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := p.logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewExplainer(generator, genLogger, p.counters, cfg.Gemini.MaxLogLength), nil
}

func registerInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resume", "r", "", "path to the resume markdown file")
	cmd.Flags().String("jobs-dir", "", "directory with job posting markdown files")
	cmd.Flags().Bool("no-cache", false, "bypass the on-disk parse cache")
}
