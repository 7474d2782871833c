package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobmatch/internal/ranking"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const topPreview = 3

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Parse the resume and job postings, rank every posting and write the report",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	registerInputFlags(runCmd)
	runCmd.Flags().StringP("output", "o", "", "path for the ranked report")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	p := newPipeline(cmd)
	logger := p.logger

	logger.Info("starting jobmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(p.config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	candidate, err := p.parseResume()
	if err != nil {
		logger.Fatal("parsing resume", zap.Error(err))
	}

	jobs, err := p.parseJobs()
	if err != nil {
		logger.Fatal("parsing job postings", zap.Error(err))
	}

	if len(jobs) == 0 {
		logger.Info("exiting", zap.String("reason", "no job postings found"))
		return
	}

	ranker := p.newRanker(ctx)

	output := ranker.Rank(ctx, candidate, jobs)

	if err := output.WriteFile(p.config.Output); err != nil {
		logger.Fatal("writing ranked report", zap.Error(err))
	}

	logger.Info("wrote ranked report",
		zap.String("path", p.config.Output),
		zap.Int("jobs", output.Len()),
	)

	printTop(output.RankedJobs, topPreview)

	logger.Info("run summary", p.counters.Fields()...)
}

func printTop(jobs []*ranking.RankedJob, limit int) {
	if limit > len(jobs) {
		limit = len(jobs)
	}

	fmt.Printf("Top %d matches:\n", limit)
	for i := 0; i < limit; i++ {
		job := jobs[i]
		fmt.Printf("%d. [%.1f] %s at %s (%s)\n", i+1, job.Score, job.Title, job.Company, job.SuccessLikelihood)
		if len(job.MissingSkills) > 0 {
			fmt.Printf("   missing: %s\n", strings.Join(job.MissingSkills, ", "))
		}
	}
}
