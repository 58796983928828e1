package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/boettcherbikes/wiki-cli/internal/session"
	"github.com/boettcherbikes/wiki-cli/internal/store"
	"github.com/boettcherbikes/wiki-cli/internal/ui/components"
)

// --- Messages ---

type loginDoneMsg struct{ err error }
type logoutDoneMsg struct{ err error }

const (
	adminFieldUser = 0
	adminFieldPass = 1
)

// --- Admin Model ---

// AdminModel handles the admin session: login form when anonymous,
// session info and logout when authenticated.
type AdminModel struct {
	store   *store.Store
	session *session.Manager

	username textinput.Model
	password textinput.Model
	focus    int
	active   bool
	errText  string
	width    int
	height   int
}

// NewAdminModel builds the admin tab model.
func NewAdminModel(st *store.Store, sess *session.Manager) AdminModel {
	user := textinput.New()
	user.Placeholder = "admin"
	user.CharLimit = 64
	user.Width = 24
	user.Focus()

	pass := textinput.New()
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 128
	pass.Width = 24

	return AdminModel{
		store:    st,
		session:  sess,
		username: user,
		password: pass,
		active:   true,
	}
}

func (m AdminModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AdminModel) Update(msg tea.Msg) (AdminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		// The password field is cleared on success and failure alike.
		m.password.SetValue("")
		if msg.err != nil {
			if msg.err == session.ErrLoginInFlight {
				return m, nil
			}
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.username.SetValue("")
		return m, nil

	case logoutDoneMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.focus = adminFieldUser
		m.username.Focus()
		m.password.Blur()
		return m, nil

	case tea.KeyMsg:
		if m.session.IsAuthorized() {
			if isKey(msg, "l") {
				return m, m.logoutCmd()
			}
			return m, nil
		}
		if m.session.State() == session.StateAuthenticating {
			return m, nil
		}
		if !m.active {
			if isEnter(msg) || isDown(msg) {
				m.active = true
				m.focus = adminFieldUser
				m.username.Focus()
				return m, textinput.Blink
			}
			return m, nil
		}
		switch {
		case isBack(msg):
			m.active = false
			m.username.Blur()
			m.password.Blur()
			return m, nil
		case isKey(msg, "tab"), isDown(msg), isUp(msg), isKey(msg, "shift+tab"):
			if m.focus == adminFieldUser {
				m.focus = adminFieldPass
				m.username.Blur()
				m.password.Focus()
			} else {
				m.focus = adminFieldUser
				m.password.Blur()
				m.username.Focus()
			}
			return m, textinput.Blink
		case isEnter(msg):
			if m.focus == adminFieldUser {
				m.focus = adminFieldPass
				m.username.Blur()
				m.password.Focus()
				return m, textinput.Blink
			}
			return m.submit()
		}

		var cmd tea.Cmd
		if m.focus == adminFieldUser {
			m.username, cmd = m.username.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m AdminModel) submit() (AdminModel, tea.Cmd) {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.errText = "Benutzername und Passwort erforderlich"
		return m, nil
	}
	m.errText = ""
	return m, m.loginCmd(username, password)
}

func (m AdminModel) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{err: m.session.Login(username, password)}
	}
}

func (m AdminModel) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: m.session.Logout()}
	}
}

func (m AdminModel) View() string {
	var b strings.Builder

	switch m.session.State() {
	case session.StateAuthenticated:
		b.WriteString(BadgeStyle.Render("ADMIN") + "  " + SuccessStyle.Render("Angemeldet als "+m.session.Username()))
		b.WriteString("\n\n")
		b.WriteString(MutedStyle.Render("Einträge anlegen und Fragen beantworten sind freigeschaltet."))
		b.WriteString("\n\n")
		b.WriteString(MutedStyle.Render("[l] Abmelden"))
	case session.StateAuthenticating:
		b.WriteString(MutedStyle.Render("Anmeldung läuft..."))
	default:
		b.WriteString(MutedStyle.Render("Als Admin anmelden:"))
		b.WriteString("\n\n")
		b.WriteString(m.fieldCursor(adminFieldUser) + " Benutzer:  " + m.username.View())
		b.WriteString("\n")
		b.WriteString(m.fieldCursor(adminFieldPass) + " Passwort:  " + m.password.View())
		b.WriteString("\n\n")
		if m.errText != "" {
			b.WriteString(ErrorStyle.Render(m.errText))
		} else if !m.active {
			b.WriteString(MutedStyle.Render("enter Formular aktivieren"))
		} else {
			b.WriteString(MutedStyle.Render("enter anmelden · esc Formular verlassen"))
		}
	}

	return components.Indent(components.TitledBox("Admin", b.String(), m.width), 1)
}

func (m AdminModel) fieldCursor(field int) string {
	if m.focus == field {
		return SelectedStyle.Render(">")
	}
	return " "
}
