package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse the resume into a structured profile and print it",
	Run: func(cmd *cobra.Command, _ []string) {
		p := newPipeline(cmd)

		candidate, err := p.parseResume()
		if err != nil {
			p.logger.Fatal("parsing resume", zap.Error(err))
		}

		pretty, err := json.MarshalIndent(candidate, "", "  ")
		if err != nil {
			p.logger.Fatal("rendering profile", zap.Error(err))
		}

		fmt.Println(string(pretty))
	},
}

func init() {
	rootCmd.AddCommand(parseResumeCmd)

	registerInputFlags(parseResumeCmd)
}
