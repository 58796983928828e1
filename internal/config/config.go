package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds CLI configuration stored at ~/.bwiki/config.
//
// Token is the persisted admin bearer credential; it is empty for anonymous
// use. PairedAnswers switches the client between the FAQ collection and the
// threaded question/answer collection. RequireAuth hides write affordances
// behind an admin session.
type Config struct {
	ServerURL     string `yaml:"server_url,omitempty"`
	Token         string `yaml:"token,omitempty"`
	Username      string `yaml:"username,omitempty"`
	PairedAnswers bool   `yaml:"paired_answers,omitempty"`
	RequireAuth   bool   `yaml:"require_auth,omitempty"`
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bwiki", "config")
}

// Load reads and parses the config file. A missing file yields an empty
// config; an insecure or unparsable file is an error.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Store persists admin credentials through the config file. The zero value
// is ready to use.
type Store struct{}

// LoadToken reads the saved bearer token and username, if any.
func (Store) LoadToken() (token, username string, err error) {
	cfg, err := Load()
	if err != nil {
		return "", "", err
	}
	return cfg.Token, cfg.Username, nil
}

// SaveToken persists the bearer token, keeping other settings intact.
func (Store) SaveToken(token, username string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.Token = token
	cfg.Username = username
	return cfg.Save()
}

// ClearToken discards the persisted credential, keeping other settings.
func (Store) ClearToken() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	if cfg.Token == "" && cfg.Username == "" {
		return nil
	}
	cfg.Token = ""
	cfg.Username = ""
	return cfg.Save()
}
