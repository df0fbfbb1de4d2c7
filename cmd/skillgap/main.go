// Package main provides the skillgap command: a web server and a one-shot
// analyzer comparing a job description with a list of skills.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/skillgap/internal/analysis"
	"github.com/jonathan/skillgap/internal/config"
	"github.com/jonathan/skillgap/internal/llm"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "skillgap",
	Short:         "Skill Gap Analyzer",
	Long:          "Skill Gap Analyzer compares a job description with your skills using Gemini and lists the skills you share and the ones to develop.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file (environment variables take precedence)")
}

// newAnalyzer builds the Gemini-backed analyzer. The returned close function
// releases the underlying client. Tests replace it with a stub.
var newAnalyzer = func(ctx context.Context, cfg *config.Config) (analysis.Analyzer, func() error, error) {
	llmConfig := llm.DefaultConfig().WithModel(llm.TierStandard, cfg.Model)

	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return analysis.NewClient(client, analysis.WithTier(llm.TierStandard)), client.Close, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
