package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	logLevel   string
	aiProvider string
	modelName  string
	voiceID    string
	dbPath     string
	seed       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "vocalnotes",
	Short:   "Note taking with AI summaries, edits, dictation and read-aloud",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Logs go to stderr: stdout carries the MCP protocol.
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(logLevel),
		}))
		slog.SetDefault(logger)

		if err := godotenv.Load(); err != nil {
			slog.Debug("No .env file found, using environment variables")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	flags.StringVar(&aiProvider, "ai-provider", "gemini", "AI provider: gemini, openai, moonshot or anthropic")
	flags.StringVar(&modelName, "model", "", "Model identifier (defaults to the provider's default)")
	flags.StringVar(&voiceID, "voice", "", "ElevenLabs voice ID (defaults to Rachel)")
	flags.StringVar(&dbPath, "db", "vocal-notes.db", "Path to the SQLite operation log, empty to disable")
	flags.BoolVar(&seed, "seed", false, "Start with the sample notes")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
