package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campaign-speeches/backend/internal/adapter"
	"campaign-speeches/backend/internal/analysis"
	"campaign-speeches/backend/internal/lexicon"
	"campaign-speeches/backend/internal/report"
	"campaign-speeches/backend/internal/speech"
	apperrors "campaign-speeches/backend/pkg/errors"
)

var (
	excludeSelf    bool
	surnames       bool
	topWords       int
	withSummaries  bool
	pushToGraph    bool
	publishResults bool
)

// analyzeCmd runs the full analysis and writes the report
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the dataset and write the report",
	Long: `Load the speeches CSV, run every analysis and write the report files
(report.md, analysis.json, one CSV per table and mentions.dot) to the
output directory.

Optional steps:
  --summaries  ask the configured LLM for a topic sentence per top speaker
  --push       store the mention matrix in Neo4j
  --publish    post the report to the configured Discord channel`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&excludeSelf, "exclude-self", false, "Do not count speakers mentioning themselves")
	analyzeCmd.Flags().BoolVar(&surnames, "surnames", false, "Count mentions by surname instead of lexicon phrases")
	analyzeCmd.Flags().IntVar(&topWords, "words", 0, "Words kept per speaker (default 100)")
	analyzeCmd.Flags().BoolVar(&withSummaries, "summaries", false, "Add LLM topic summaries (needs LLM_BASE_URL)")
	analyzeCmd.Flags().BoolVar(&pushToGraph, "push", false, "Store the mention matrix in Neo4j (needs NEO4J_URI)")
	analyzeCmd.Flags().BoolVar(&publishResults, "publish", false, "Post the report to Discord (needs DISCORD_BOT_TOKEN and DISCORD_CHANNEL_ID)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	// Check optional integrations before spending time on the analysis
	if withSummaries && !cfg.LLMEnabled() {
		return apperrors.NewConfigMissing("LLM_BASE_URL")
	}
	if pushToGraph && !cfg.GraphEnabled() {
		return apperrors.NewConfigMissing("NEO4J_URI")
	}
	if publishResults && !cfg.DiscordEnabled() {
		return apperrors.NewConfigMissing("DISCORD_CHANNEL_ID")
	}

	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		return err
	}
	speeches, _, err := speech.Load(cfg.DataPath)
	if err != nil {
		return err
	}

	opts := analysis.Options{
		Lexicon:             lex,
		TopN:                cfg.TopN,
		TopWords:            topWords,
		ExcludeSelfMentions: excludeSelf,
		SurnameMentions:     surnames,
	}
	if withSummaries {
		opts.Summarizer = adapter.NewLLMAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	}

	res, err := analysis.Run(ctx, speeches, opts)
	if err != nil {
		return err
	}

	paths, err := report.NewWriter(cfg.OutputDir, lex.Color).WriteAll(res)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: %d speeches, top speakers %v\n", res.RunID, res.Speeches, res.Top)
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}

	if pushToGraph {
		if err := pushMentions(ctx, res, lex); err != nil {
			return err
		}
		fmt.Fprintf(out, "Stored mention graph for run %s\n", res.RunID)
	}
	if publishResults {
		if err := publishReport(ctx, cfg.OutputDir); err != nil {
			return err
		}
		fmt.Fprintf(out, "Published report to channel %s\n", cfg.DiscordChannelID)
	}
	return nil
}

// pushMentions stores the mention matrix of res in Neo4j
func pushMentions(ctx context.Context, res *analysis.Result, lex *lexicon.Lexicon) error {
	repo, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.SaveMentions(ctx, res.RunID, res.Mentions, lex); err != nil {
		return err
	}
	log.Info("Mention graph stored",
		zap.String("run_id", res.RunID),
		zap.Int("edges", len(res.Mentions.Edges())),
	)
	return nil
}
