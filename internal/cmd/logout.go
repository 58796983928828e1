package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/boettcherbikes/wiki-cli/internal/config"
)

// RunLogout discards the persisted admin credential.
func RunLogout(out io.Writer) error {
	if err := (config.Store{}).ClearToken(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	logger.Debug("admin credential cleared")
	fmt.Fprintln(out, "Abgemeldet.")
	return nil
}

// LogoutCmd returns the `bwiki logout` command.
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Gespeicherte Admin-Anmeldung verwerfen",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunLogout(os.Stdout)
		},
	}
}
