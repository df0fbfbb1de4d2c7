package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jonathan/skillgap/internal/config"
	"github.com/jonathan/skillgap/internal/controller"
	"github.com/jonathan/skillgap/internal/ingestion"
	"github.com/jonathan/skillgap/internal/observability"
	"github.com/jonathan/skillgap/internal/types"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	job        string
	jobFile    string
	jobURL     string
	skills     string
	skillsFile string
	jsonOutput bool
	useBrowser bool
	verbose    bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the gap between a job description and your skills",
		Long: `Run one skill gap analysis from the terminal.

The job description comes from --job, --job-file or --job-url and the skills
from --skills or --skills-file. Results are printed as two lists, or as JSON
with --json.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.job, "job", "", "Job description text")
	cmd.Flags().StringVar(&opts.jobFile, "job-file", "", "Path to a text file containing the job description")
	cmd.Flags().StringVar(&opts.jobURL, "job-url", "", "URL of a job posting to fetch")
	cmd.Flags().StringVar(&opts.skills, "skills", "", "Your skills, comma or newline separated")
	cmd.Flags().StringVar(&opts.skillsFile, "skills-file", "", "Path to a text file listing your skills")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&opts.useBrowser, "use-browser", false, "Render --job-url in headless Chrome when the page text is too short")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print input summaries and fetch details")

	cmd.MarkFlagsMutuallyExclusive("job", "job-file", "job-url")
	cmd.MarkFlagsMutuallyExclusive("skills", "skills-file")

	return cmd
}

func init() {
	rootCmd.AddCommand(newAnalyzeCmd())
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opts.verbose = opts.verbose || cfg.Verbose
	ctx := cmd.Context()

	job, source, err := readJob(cmd, opts)
	if err != nil {
		return err
	}
	skills, err := readSkills(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	if opts.verbose {
		printer.PrintInput("job description", job)
		printer.PrintInput("your skills", skills)
	}

	analyzer, closeAnalyzer, err := newAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeAnalyzer() }()

	if cfg.AnalysisTimeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.AnalysisTimeout.Duration)
		defer cancel()
	}

	ctrl := controller.New(analyzer)
	if err := ctrl.RequestAnalysis(ctx, job, skills); err != nil {
		var validationErr *controller.ValidationError
		if errors.As(err, &validationErr) {
			return errors.New(controller.MessageMissingInput)
		}
		return errors.New(controller.MessageAnalysisFailed)
	}

	result := ctrl.Snapshot().Result
	if opts.jsonOutput {
		return writeJSON(out, analyzeOutput{AnalysisResult: result, Job: source})
	}
	printer.PrintAnalysis(result)
	return nil
}

// analyzeOutput is the --json document: the result fields plus, when the job
// description came from a file or URL, where it came from.
type analyzeOutput struct {
	*types.AnalysisResult
	Job *ingestion.Metadata `json:"job,omitempty"`
}

// readJob returns the job description and, for file and URL input, its metadata.
func readJob(cmd *cobra.Command, opts *analyzeOptions) (string, *ingestion.Metadata, error) {
	switch {
	case opts.jobURL != "":
		text, metadata, err := ingestion.FromURL(cmd.Context(), opts.jobURL, ingestion.URLOptions{
			UseBrowser: opts.useBrowser,
			Verbose:    opts.verbose,
		})
		if err != nil {
			return "", nil, fmt.Errorf("failed to ingest job posting: %w", err)
		}
		if opts.verbose {
			log.Printf("[analyze] job posting from %s: %d chars, platform %s, sha256 %s", metadata.URL, metadata.Chars, metadata.Platform, metadata.Hash)
		}
		return text, metadata, nil
	case opts.jobFile != "":
		text, metadata, err := ingestion.ReadFile(opts.jobFile)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read job description: %w", err)
		}
		return text, metadata, nil
	default:
		return strings.TrimSpace(opts.job), nil, nil
	}
}

func readSkills(opts *analyzeOptions) (string, error) {
	if opts.skillsFile != "" {
		text, _, err := ingestion.ReadFile(opts.skillsFile)
		if err != nil {
			return "", fmt.Errorf("failed to read skills: %w", err)
		}
		return text, nil
	}
	return strings.TrimSpace(opts.skills), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
