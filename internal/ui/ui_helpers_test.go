package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/boettcherbikes/wiki-cli/internal/api"
	"github.com/boettcherbikes/wiki-cli/internal/session"
	"github.com/boettcherbikes/wiki-cli/internal/store"
)

type memCreds struct {
	token    string
	username string
}

func (m *memCreds) LoadToken() (string, string, error) { return m.token, m.username, nil }

func (m *memCreds) SaveToken(token, username string) error {
	m.token = token
	m.username = username
	return nil
}

func (m *memCreds) ClearToken() error {
	m.token = ""
	m.username = ""
	return nil
}

func testWiki(t *testing.T, caps store.Capabilities, handler http.HandlerFunc) (*store.Store, *session.Manager) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, "")
	return store.New(client, caps), session.New(client, &memCreds{})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// drain runs a command and feeds every produced message back through the
// model, so async fetch results land like they would in a live program.
func drainBrowse(t *testing.T, m BrowseModel, cmd tea.Cmd) BrowseModel {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return m
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				m = drainBrowse(t, m, sub)
			}
			return m
		}
		m, cmd = m.Update(msg)
	}
	return m
}
