package main

import (
	"fmt"
	"log"
	"time"

	"github.com/jonathan/skillgap/internal/config"
	"github.com/jonathan/skillgap/internal/server"
	"github.com/spf13/cobra"
)

// sessionSweepInterval is how often idle sessions are evicted.
const sessionSweepInterval = time.Minute

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start an HTTP server with the skill gap form and a JSON API at /api/analyze.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	generatedKey := cfg.SessionSecret == ""
	sessionKey, err := cfg.SessionKey()
	if err != nil {
		return err
	}
	if generatedKey {
		log.Printf("[server] no %s configured, sessions will not survive a restart", config.EnvSessionSecret)
	}

	analyzer, closeAnalyzer, err := newAnalyzer(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeAnalyzer() }()

	srv, err := server.New(server.Config{
		Port:                 cfg.Port,
		Analyzer:             analyzer,
		SessionKey:           sessionKey,
		SessionTTL:           cfg.SessionTTL.Duration,
		SessionSweepInterval: sessionSweepInterval,
		AnalysisTimeout:      cfg.AnalysisTimeout.Duration,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}
