package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boettcherbikes/wiki-cli/internal/config"
)

// RunSearch performs a one-shot free-text search and prints the matches.
// The search itself is server-side; in paired mode the category narrows
// the result locally, matching the interactive view.
func RunSearch(out io.Writer, query, category string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// One-shot commands fail fast instead of hanging a script.
	client := NewAPIClient(cfg).WithTimeout(10 * time.Second)

	logger.Debug("running search",
		zap.String("query", query),
		zap.String("category", category),
		zap.Bool("paired", cfg.PairedAnswers))

	if cfg.PairedAnswers {
		pairs, err := client.SearchQuestions(query, nil)
		if err != nil {
			return err
		}
		hits := 0
		for _, p := range pairs {
			if category != "" && p.Question.Category != category {
				continue
			}
			hits++
			fmt.Fprintf(out, "[%s] %s\n", p.Question.Category, p.Question.QuestionText)
			if p.Answer != nil {
				fmt.Fprintf(out, "    %s\n", p.Answer.AnswerText)
			} else {
				fmt.Fprintln(out, "    (noch unbeantwortet)")
			}
		}
		if hits == 0 {
			fmt.Fprintln(out, "Keine Treffer.")
		}
		return nil
	}

	var cat *string
	if category != "" {
		cat = &category
	}
	entries, err := client.SearchEntries(query, cat)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Keine Treffer.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "[%s] %s\n", e.Category, e.Question)
		fmt.Fprintf(out, "    %s\n", e.Answer)
	}
	return nil
}

// SearchCmd returns the `bwiki search` command.
func SearchCmd() *cobra.Command {
	var category string
	c := &cobra.Command{
		Use:   "search [query]",
		Short: "Wissensarchiv durchsuchen",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return RunSearch(os.Stdout, strings.Join(args, " "), category)
		},
	}
	c.Flags().StringVarP(&category, "category", "c", "", "Nur eine Kategorie durchsuchen")
	return c
}
