package session

import (
	"errors"
	"sync"

	"github.com/boettcherbikes/wiki-cli/internal/api"
)

// State is the admin session lifecycle.
type State int

const (
	// StateAnonymous means no valid credential is attached.
	StateAnonymous State = iota
	// StateAuthenticating means a login attempt is in flight.
	StateAuthenticating
	// StateAuthenticated means the backend accepted our credential.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// ErrLoginInFlight is returned when a login is attempted while another
// attempt is still running. Attempts are strictly serialized.
var ErrLoginInFlight = errors.New("login already in progress")

// CredentialStore persists the admin bearer token between runs.
type CredentialStore interface {
	LoadToken() (token, username string, err error)
	SaveToken(token, username string) error
	ClearToken() error
}

// Manager owns the admin session: it verifies persisted tokens at startup,
// runs logins against the backend, and keeps the API client's bearer token
// in sync with the session state.
type Manager struct {
	mu       sync.Mutex
	client   *api.Client
	creds    CredentialStore
	state    State
	username string
}

// New creates a manager in the anonymous state.
func New(client *api.Client, creds CredentialStore) *Manager {
	return &Manager{client: client, creds: creds}
}

// Bootstrap restores a persisted session. A missing token leaves the
// session anonymous without error; a rejected token is discarded from the
// credential store. Transport failures keep the token on disk so a later
// restart can retry.
func (m *Manager) Bootstrap() error {
	token, username, err := m.creds.LoadToken()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	m.client.SetToken(token)
	resp, err := m.client.Verify()
	if err != nil {
		m.client.SetToken("")
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.IsAuthRejected() {
			if clearErr := m.creds.ClearToken(); clearErr != nil {
				return clearErr
			}
		}
		return err
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.username = resp.Username
	if m.username == "" {
		m.username = username
	}
	m.mu.Unlock()
	return nil
}

// Login exchanges credentials for a bearer token and persists it. Only one
// attempt may run at a time; concurrent attempts get ErrLoginInFlight. The
// caller is expected to clear the password input regardless of outcome.
func (m *Manager) Login(username, password string) error {
	m.mu.Lock()
	if m.state == StateAuthenticating {
		m.mu.Unlock()
		return ErrLoginInFlight
	}
	prev := m.state
	m.state = StateAuthenticating
	m.mu.Unlock()

	resp, err := m.client.Login(username, password)
	if err != nil {
		m.mu.Lock()
		m.state = prev
		m.mu.Unlock()
		return err
	}

	m.client.SetToken(resp.AccessToken)
	if err := m.creds.SaveToken(resp.AccessToken, resp.Username); err != nil {
		// The session is live even if persisting failed.
		m.mu.Lock()
		m.state = StateAuthenticated
		m.username = resp.Username
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.username = resp.Username
	m.mu.Unlock()
	return nil
}

// Logout drops the session unconditionally: the in-memory token, the
// persisted one, and the state all reset even if the store write fails.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.state = StateAnonymous
	m.username = ""
	m.mu.Unlock()

	m.client.SetToken("")
	return m.creds.ClearToken()
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthorized reports whether mutating actions are allowed.
func (m *Manager) IsAuthorized() bool {
	return m.State() == StateAuthenticated
}

// Username returns the logged-in admin name, or "" when anonymous.
func (m *Manager) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.username
}
