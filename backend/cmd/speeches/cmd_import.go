package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campaign-speeches/backend/internal/constants"
	"campaign-speeches/backend/internal/speech"
)

var (
	importSpeaker  string
	importDate     string
	importLocation string
	importType     string
	importSelector string
)

// importCmd appends transcript pages to the dataset
var importCmd = &cobra.Command{
	Use:   "import <page.html|url>...",
	Short: "Append transcript pages to the speeches CSV",
	Long: `Parse HTML transcript pages, saved files or http(s) URLs, and append one
row per page to the speeches CSV. The speaker, date, location and type of
the row come from flags because the pages do not carry them in a reliable
form.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importSpeaker, "speaker", "", "Row speaker, e.g. \"Joe Biden\" or \"Donald Trump, Mike Pence\"")
	importCmd.Flags().StringVar(&importDate, "date", "", "Speech date, e.g. \"Oct 20, 2020\"")
	importCmd.Flags().StringVar(&importLocation, "location", "", "Speech location")
	importCmd.Flags().StringVar(&importType, "type", "", "Speech type, e.g. \"Campaign Speech\"")
	importCmd.Flags().StringVar(&importSelector, "selector", "", "CSS selector of transcript paragraphs")
}

func runImport(cmd *cobra.Command, args []string) error {
	meta := speech.PageMeta{
		Speaker:  strings.TrimSpace(importSpeaker),
		Location: importLocation,
		Type:     importType,
		Selector: importSelector,
	}
	if importDate != "" {
		d, err := time.Parse(constants.DateLayout, importDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q, expected e.g. %q: %w", importDate, constants.DateLayout, err)
		}
		meta.Date = d
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	speeches, err := loadOrEmpty(cfg.DataPath)
	if err != nil {
		return err
	}

	fetcher := speech.NewFetcher(nil)
	for _, path := range args {
		meta.Source = path
		var s speech.Speech
		if speech.IsURL(path) {
			s, err = fetcher.Fetch(ctx, path, meta)
		} else {
			s, err = importFile(path, meta)
		}
		if err != nil {
			return err
		}
		s.ID = len(speeches)
		speeches = append(speeches, s)
		log.Info("Transcript imported",
			zap.String("file", path),
			zap.String("title", s.Title),
			zap.Int("id", s.ID),
		)
	}

	if err := saveDataset(cfg.DataPath, speeches); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transcript(s) into %s (%d rows)\n", len(args), cfg.DataPath, len(speeches))
	return nil
}

func importFile(path string, meta speech.PageMeta) (speech.Speech, error) {
	f, err := os.Open(path)
	if err != nil {
		return speech.Speech{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return speech.ImportHTML(f, meta)
}

// loadOrEmpty reads the dataset, treating a missing file as empty
func loadOrEmpty(path string) ([]speech.Speech, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	speeches, _, err := speech.Load(path)
	return speeches, err
}

// saveDataset writes speeches to a temporary file next to path and renames
// it into place, so a failed write leaves the old dataset intact.
func saveDataset(path string, speeches []speech.Speech) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".speeches-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	tmp := f.Name()
	if err := speech.Write(f, speeches); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace dataset: %w", err)
	}
	return nil
}
