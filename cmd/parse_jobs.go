package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseJobsCmd = &cobra.Command{
	Use:   "parse-jobs",
	Short: "Parse every job posting in the jobs directory and print a summary",
	Run: func(cmd *cobra.Command, _ []string) {
		p := newPipeline(cmd)

		jobs, err := p.parseJobs()
		if err != nil {
			p.logger.Fatal("parsing job postings", zap.Error(err))
		}

		for _, job := range jobs {
			fmt.Printf("%s: %s at %s (%s, %d requirements)\n",
				job.ID, job.Title, job.Company, job.Seniority, len(job.Requirements),
			)
		}

		fmt.Printf("parsed %d job postings\n", len(jobs))
	},
}

func init() {
	rootCmd.AddCommand(parseJobsCmd)

	registerInputFlags(parseJobsCmd)
}
