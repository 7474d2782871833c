package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobmatch/internal/ranking"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const PromptBack = "back"

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank job postings against the resume and browse the results",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	registerInputFlags(matchCmd)
	matchCmd.Flags().IntP("top", "t", 0, "print only the N best matches (0 means all)")
	matchCmd.Flags().BoolP("interactive", "i", false, "browse ranked jobs and inspect score breakdowns")
}

func match(cmd *cobra.Command) {
	ctx := context.Background()

	p := newPipeline(cmd)
	logger := p.logger

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

	output := p.newRanker(ctx).Rank(ctx, candidate, jobs)

	top, _ := cmd.Flags().GetInt("top")
	if top <= 0 || top > output.Len() {
		top = output.Len()
	}

	printTop(output.RankedJobs, top)

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		if err := browse(output.RankedJobs); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	logger.Info("match summary", p.counters.Fields()...)
}

// browse loops a selection prompt over the ranked jobs and prints the full
// record for whichever one is chosen.
func browse(jobs []*ranking.RankedJob) error {
	for {
		items := make([]string, 0, len(jobs)+1)
		for _, job := range jobs {
			items = append(items, fmt.Sprintf("%s %.1f %s / %s / %s",
				job.ID, job.Score, job.Title, job.Company, job.SuccessLikelihood,
			))
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		jobID := strings.Split(selected, " ")[0]

		job := findRanked(jobs, jobID)
		if job == nil {
			return fmt.Errorf("there is no such job id %s", jobID)
		}

		pretty, err := json.MarshalIndent(job, "", "  ")
		if err != nil {
			return fmt.Errorf("rendering job %s: %w", jobID, err)
		}

		fmt.Println(string(pretty))
	}
}

func findRanked(jobs []*ranking.RankedJob, id string) *ranking.RankedJob {
	for _, job := range jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}
