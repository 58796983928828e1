package api

import (
	"os"
	"time"
)

// DefaultBaseURL is the single source of truth for the wiki API target.
const DefaultBaseURL = "http://localhost:8001"

// BaseURL resolves the API target: BWIKI_SERVER_URL wins over the default.
func BaseURL() string {
	if url := os.Getenv("BWIKI_SERVER_URL"); url != "" {
		return url
	}
	return DefaultBaseURL
}

// NewDefaultClient builds a client pointed at the resolved wiki API URL.
func NewDefaultClient(token string, timeout ...time.Duration) *Client {
	return NewClient(BaseURL(), token, timeout...)
}
