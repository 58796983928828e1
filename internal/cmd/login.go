package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boettcherbikes/wiki-cli/internal/config"
)

// RunInteractiveLogin prompts for admin credentials, exchanges them for a
// bearer token and persists the token in the config file.
func RunInteractiveLogin(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Benutzername: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	if username == "" {
		return fmt.Errorf("username is required")
	}

	fmt.Fprint(out, "Passwort: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)

	if password == "" {
		return fmt.Errorf("password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := NewAPIClient(cfg)
	resp, err := client.Login(username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	logger.Debug("admin login succeeded", zap.String("username", resp.Username))

	if err := (config.Store{}).SaveToken(resp.AccessToken, resp.Username); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	fmt.Fprintf(out, "Angemeldet als %s\n", resp.Username)
	fmt.Fprintf(out, "Zugangsdaten gespeichert unter %s\n", config.Path())
	return nil
}

// LoginCmd returns the `bwiki login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Als Admin anmelden und Zugangsdaten speichern",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveLogin(os.Stdin, os.Stdout)
		},
	}
}
