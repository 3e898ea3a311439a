package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"campaign-speeches/backend/internal/constants"
	"campaign-speeches/backend/internal/graph"
	"campaign-speeches/backend/internal/lexicon"
	"campaign-speeches/backend/internal/report"
	apperrors "campaign-speeches/backend/pkg/errors"
)

// graphCmd manages mention graphs stored in Neo4j
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Manage mention graphs stored in Neo4j",
	Long: `Store and read mention matrices in Neo4j.

Available subcommands:
  push   - Store the mention matrix of the last analysis in the output directory
  show   - Print the mention matrix of a stored run as CSV
  list   - List stored runs
  delete - Remove a stored run`,
}

var graphPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Store the mention matrix from analysis.json",
	Args:  cobra.NoArgs,
	RunE:  runGraphPush,
}

var graphShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a stored mention matrix as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraphShow,
}

var graphListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs",
	Args:  cobra.NoArgs,
	RunE:  runGraphList,
}

var graphDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Remove a stored run and its edges",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraphDelete,
}

func init() {
	graphCmd.AddCommand(graphPushCmd)
	graphCmd.AddCommand(graphShowCmd)
	graphCmd.AddCommand(graphListCmd)
	graphCmd.AddCommand(graphDeleteCmd)
}

// openRepository connects to the configured Neo4j and ensures the schema
func openRepository(ctx context.Context) (*graph.Repository, error) {
	if !cfg.GraphEnabled() {
		return nil, apperrors.NewConfigMissing("NEO4J_URI")
	}
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return nil, err
	}
	repo := graph.NewRepository(driver)
	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}

func runGraphPush(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	f, err := os.Open(filepath.Join(cfg.OutputDir, report.JSONFile))
	if err != nil {
		return fmt.Errorf("failed to open analysis: %w", err)
	}
	defer f.Close()

	res, err := report.ReadJSON(f)
	if err != nil {
		return err
	}
	if res.Mentions == nil {
		return fmt.Errorf("analysis %s has no mention matrix", res.RunID)
	}
	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		return err
	}

	if err := pushMentions(ctx, res, lex); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored mention graph for run %s\n", res.RunID)
	return nil
}

func runGraphShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	repo, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	m, err := repo.FetchMentions(ctx, args[0])
	if err != nil {
		return err
	}
	return report.MatrixCSV(cmd.OutOrStdout(), m)
}

func runGraphList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	repo, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	runs, err := repo.ListRuns(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No stored runs")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s  %d edges  %s\n",
			r.ID, r.CreatedAt.Format(constants.DateLayout), r.Edges, strings.Join(r.Speakers, ", "))
	}
	return nil
}

func runGraphDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	repo, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.DeleteRun(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
	return nil
}
