package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campaign-speeches/backend/pkg/config"
	"campaign-speeches/backend/pkg/logger"
)

var (
	// Global flags
	dataPath    string
	outputDir   string
	lexiconPath string
	topN        int
	verbose     bool
	timeout     time.Duration

	cfg *config.Config
	log *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "speeches",
	Short: "Analyze the 2020 US election campaign speeches",
	Long: `speeches segments campaign speech transcripts by speaker and produces
the weekly, per-state and per-channel tables, word frequencies and the
candidate mention matrix.

Settings come from the environment (or a .env file); flags override them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(loaded)

		level := loaded.LogLevel
		if verbose {
			level = "debug"
		}
		if err := logger.Init(loaded.Env, level); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = loaded
		log = logger.Get()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "Speeches CSV (default: DATA_PATH)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "out", "o", "", "Output directory (default: OUTPUT_DIR)")
	rootCmd.PersistentFlags().StringVar(&lexiconPath, "lexicon", "", "Lexicon YAML (default: LEXICON_PATH or the built-in lexicon)")
	rootCmd.PersistentFlags().IntVarP(&topN, "top", "n", 0, "Number of top speakers (default: TOP_N)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "Operation timeout")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(graphCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlags lets non-empty flags override the environment
func applyFlags(c *config.Config) {
	if dataPath != "" {
		c.DataPath = dataPath
	}
	if outputDir != "" {
		c.OutputDir = outputDir
	}
	if lexiconPath != "" {
		c.LexiconPath = lexiconPath
	}
	if topN > 0 {
		c.TopN = topN
	}
}

// commandContext bounds a command by --timeout and cancels it on SIGINT or
// SIGTERM
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	d := timeout
	if d <= 0 {
		d = 10 * time.Minute
	}
	ctx, cancel := context.WithTimeout(parent, d)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stop()
		cancel()
	}
}
