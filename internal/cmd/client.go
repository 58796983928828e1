package cmd

import (
	"github.com/boettcherbikes/wiki-cli/internal/api"
	"github.com/boettcherbikes/wiki-cli/internal/config"
)

// NewAPIClient builds a client from the saved configuration. A server_url
// in the config wins over BWIKI_SERVER_URL and the built-in default.
func NewAPIClient(cfg *config.Config) *api.Client {
	if cfg.ServerURL != "" {
		return api.NewClient(cfg.ServerURL, cfg.Token)
	}
	return api.NewDefaultClient(cfg.Token)
}
