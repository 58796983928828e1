package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/boettcherbikes/wiki-cli/internal/cmd"
	"github.com/boettcherbikes/wiki-cli/internal/config"
	"github.com/boettcherbikes/wiki-cli/internal/session"
	"github.com/boettcherbikes/wiki-cli/internal/store"
	"github.com/boettcherbikes/wiki-cli/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "bwiki",
		Short: "Böttcher Wiki - internes Wissensarchiv",
		Long:  "Böttcher Wiki CLI: Einträge nachschlagen, Fragen stellen und beantworten, Kennzahlen einsehen.",
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			// The TUI owns the terminal; no logger there.
			if c.Name() == "bwiki" {
				return nil
			}
			return cmd.SetupLogger(verbose)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			cmd.SyncLogger()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Ausführliche Protokollierung")

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.LogoutCmd())
	root.AddCommand(cmd.SearchCmd())
	root.AddCommand(cmd.StatsCmd())

	return root
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return fmt.Errorf("bwiki braucht ein Terminal; für Skripte gibt es 'bwiki search' und 'bwiki stats'")
	}

	client := cmd.NewAPIClient(cfg)
	st := store.New(client, store.Capabilities{
		RequiresAuth:  cfg.RequireAuth,
		PairedAnswers: cfg.PairedAnswers,
	})
	sess := session.New(client, config.Store{})

	p := tea.NewProgram(ui.NewApp(st, sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
