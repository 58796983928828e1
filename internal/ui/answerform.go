package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/boettcherbikes/wiki-cli/internal/api"
	"github.com/boettcherbikes/wiki-cli/internal/session"
	"github.com/boettcherbikes/wiki-cli/internal/store"
	"github.com/boettcherbikes/wiki-cli/internal/ui/components"
)

// --- Messages ---

type answerSavedMsg struct{}

// --- Answer Model ---

// AnswerModel lets an admin pick an open question and attach an answer.
// Only used when paired answers are enabled.
type AnswerModel struct {
	store   *store.Store
	session *session.Manager

	list    *components.List
	picked  *api.QuestionAnswer
	text    string
	saving  bool
	saved   bool
	errText string
	width   int
	height  int
}

// NewAnswerModel builds the answer form model.
func NewAnswerModel(st *store.Store, sess *session.Manager) AnswerModel {
	return AnswerModel{
		store:   st,
		session: sess,
		list:    components.NewList(8),
	}
}

func (m AnswerModel) Init() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.LoadCollection(); err != nil {
			return errMsg{err}
		}
		return collectionLoadedMsg{}
	}
}

func (m AnswerModel) gated() bool {
	return m.store.Capabilities().RequiresAuth && !m.session.IsAuthorized()
}

func (m AnswerModel) Update(msg tea.Msg) (AnswerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case collectionLoadedMsg:
		m.refreshList()
		return m, nil

	case answerSavedMsg:
		m.saving = false
		m.saved = true
		m.picked = nil
		m.text = ""
		m.refreshList()
		return m, nil

	case errMsg:
		m.saving = false
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.gated() || m.saving {
			return m, nil
		}
		m.saved = false
		if m.picked == nil {
			switch {
			case isDown(msg):
				m.list.Down()
			case isUp(msg):
				m.list.Up()
			case isEnter(msg):
				open := m.store.Unanswered()
				if idx := m.list.Selected(); idx < len(open) {
					picked := open[idx]
					m.picked = &picked
					m.errText = ""
				}
			}
			return m, nil
		}
		switch {
		case isBack(msg):
			m.picked = nil
			m.text = ""
			m.errText = ""
		case isKey(msg, "ctrl+s"):
			return m.submit()
		case isKey(msg, "backspace", "delete"):
			if len(m.text) > 0 {
				runes := []rune(m.text)
				m.text = string(runes[:len(runes)-1])
			}
		case isEnter(msg):
			m.text += "\n"
		default:
			ch := msg.String()
			if len([]rune(ch)) == 1 || ch == " " {
				m.text += ch
			}
		}
	}
	return m, nil
}

func (m AnswerModel) submit() (AnswerModel, tea.Cmd) {
	text := strings.TrimSpace(m.text)
	if text == "" {
		m.errText = "Antwort darf nicht leer sein"
		return m, nil
	}

	m.saving = true
	m.errText = ""
	questionID := m.picked.Question.ID
	author := m.session.Username()
	return m, func() tea.Msg {
		if _, err := m.store.AddAnswer(questionID, text, author); err != nil {
			return errMsg{err}
		}
		return answerSavedMsg{}
	}
}

func (m *AnswerModel) refreshList() {
	open := m.store.Unanswered()
	labels := make([]string, len(open))
	for i, p := range open {
		labels[i] = components.SanitizeOneLine(p.Question.QuestionText) + "  " + categoryBadge(p.Question.Category)
	}
	m.list.SetItemsKeepCursor(labels)
}

func (m AnswerModel) View() string {
	if m.gated() {
		content := WarningStyle.Render("Anmeldung erforderlich.") + "\n\n" +
			MutedStyle.Render("Im Admin-Tab anmelden, um Fragen zu beantworten.")
		return components.Indent(components.TitledBox("Antworten", content, m.width), 1)
	}

	var b strings.Builder
	if m.picked == nil {
		if m.list.Len() == 0 {
			b.WriteString(SuccessStyle.Render("Alle Fragen sind beantwortet."))
		} else {
			b.WriteString(MutedStyle.Render("Offene Fragen:"))
			b.WriteString("\n\n")
			visible := m.list.Visible()
			for i, label := range visible {
				absIdx := m.list.RelToAbs(i)
				if m.list.IsSelected(absIdx) {
					b.WriteString(SelectedStyle.Render("  > " + label))
				} else {
					b.WriteString(NormalStyle.Render("    " + label))
				}
				if i < len(visible)-1 {
					b.WriteString("\n")
				}
			}
		}
		if m.saved {
			b.WriteString("\n\n" + SuccessStyle.Render("Antwort gespeichert."))
		}
	} else {
		wrapWidth := components.BoxContentWidth(m.width) - 4
		b.WriteString(HeaderStyle.Render(components.SanitizeOneLine(m.picked.Question.QuestionText)))
		b.WriteString("\n")
		b.WriteString(components.InfoRow("Gefragt von", m.picked.Question.Author))
		b.WriteString("\n\n")
		b.WriteString(MutedStyle.Render("Antwort:"))
		b.WriteString("\n")
		b.WriteString(components.WrapText(m.text, wrapWidth) + AccentStyle.Render("█"))
		b.WriteString("\n\n")
		if m.errText != "" {
			b.WriteString(ErrorStyle.Render(m.errText))
		} else {
			b.WriteString(MutedStyle.Render("ctrl+s speichern · esc zurück"))
		}
	}

	if m.saving {
		b.WriteString("\n\n" + MutedStyle.Render("Speichere..."))
	}

	if m.picked != nil {
		// Highlighted border while an answer is being typed.
		return components.Indent(components.ActiveBox(b.String(), m.width), 1)
	}
	return components.Indent(components.TitledBox("Antworten", b.String(), m.width), 1)
}
