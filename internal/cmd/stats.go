package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boettcherbikes/wiki-cli/internal/config"
)

// RunStats fetches and prints the wiki counters. FAQ wikis report an
// entry total, threaded wikis report the answered split; the mode comes
// from config, with non-zero question counters as a fallback signal.
func RunStats(out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := NewAPIClient(cfg).WithTimeout(10 * time.Second)

	stats, err := client.GetStats()
	if err != nil {
		return err
	}

	if health, err := client.GetHealth(); err == nil && health.Status != "" {
		fmt.Fprintf(out, "Status:        %s\n", health.Status)
	} else if err != nil {
		logger.Debug("health check failed", zap.Error(err))
	}

	// An empty wiki still gets its zeros printed. The configured mode
	// picks the line set; a threaded-looking payload overrides so a
	// stale config does not hide the answered split.
	paired := cfg.PairedAnswers ||
		stats.TotalQuestions > 0 || stats.AnsweredQuestions > 0 || stats.UnansweredQuestions > 0
	if paired {
		fmt.Fprintf(out, "Fragen gesamt: %d\n", stats.TotalQuestions)
		fmt.Fprintf(out, "Beantwortet:   %d\n", stats.AnsweredQuestions)
		fmt.Fprintf(out, "Offen:         %d\n", stats.UnansweredQuestions)
	} else {
		fmt.Fprintf(out, "Einträge:      %d\n", stats.TotalEntries)
	}
	fmt.Fprintf(out, "Kategorien:    %d\n", stats.CategoriesCount)
	return nil
}

// StatsCmd returns the `bwiki stats` command.
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Kennzahlen des Wissensarchivs anzeigen",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunStats(os.Stdout)
		},
	}
}
