package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jobmatch/internal/scoring"
)

const (
	app = "jobmatch"
)

type Config struct {
	Resume  string `mapstructure:"resume"`
	JobsDir string `mapstructure:"jobs-dir"`
	Output  string `mapstructure:"output"`
	Cache   *CacheConfig
	Scoring *ScoringConfig
	AI      *AIConfig `mapstructure:"ai"`
}

type CacheConfig struct {
	Dir      string `mapstructure:"dir"`
	Disabled bool   `mapstructure:"disabled"`
}

type ScoringConfig struct {
	EmbeddingDimension int             `mapstructure:"embedding-dimension"`
	Lexicon            scoring.Lexicon `mapstructure:"lexicon"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobmatch ranks job postings against a candidate profile with a deterministic scoring engine",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("resume", "resume.md")
	viper.SetDefault("jobs-dir", "JDs")
	viper.SetDefault("output", "output/ranked_jobs.json")
	viper.SetDefault("cache.dir", "cache")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional unless one was named explicitly; every
	// setting has a default or a flag.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Cache == nil {
		config.Cache = &CacheConfig{Dir: "cache"}
	}
	if config.Scoring == nil {
		config.Scoring = &ScoringConfig{}
	}

	return config, nil
}
