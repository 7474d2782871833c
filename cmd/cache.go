package cmd

import (
	"fmt"

	"jobmatch/internal/cache"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk parse cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached parse results",
	Run: func(cmd *cobra.Command, _ []string) {
		p := newPipeline(cmd)

		prefix, _ := cmd.Flags().GetString("prefix")

		c := p.cache
		if c == nil {
			// clear works even when the cache is disabled for parsing
			var err error
			c, err = cache.New(p.config.Cache.Dir)
			if err != nil {
				p.logger.Fatal("opening cache", zap.String("dir", p.config.Cache.Dir), zap.Error(err))
			}
		}

		if err := c.Clear(prefix); err != nil {
			p.logger.Fatal("clearing cache", zap.Error(err))
		}

		fmt.Printf("cleared cache in %s\n", p.config.Cache.Dir)
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().String("prefix", "", "clear only entries with this prefix (resume or job)")
}
