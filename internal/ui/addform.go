package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/boettcherbikes/wiki-cli/internal/session"
	"github.com/boettcherbikes/wiki-cli/internal/store"
	"github.com/boettcherbikes/wiki-cli/internal/ui/components"
)

// --- Messages ---

type entrySavedMsg struct{}

// Categories offered in the form before the server list has loaded.
var fallbackCategories = []string{
	"IT-Support",
	"Produktion",
	"Qualitätskontrolle",
	"Verwaltung",
	"Wartung",
}

type formField struct {
	label string
	value string
}

// Field indices for the FAQ form.
const (
	addFieldQuestion = 0
	addFieldAnswer   = 1
	addFieldTags     = 2
	addFieldCount    = 3
)

// --- Add Model ---

// AddModel is the form for new FAQ entries or new open questions,
// depending on the paired-answers capability.
type AddModel struct {
	store   *store.Store
	session *session.Manager

	fields  []formField
	focus   int
	catIdx  int
	active  bool
	saving  bool
	saved   bool
	errText string
	width   int
	height  int
}

// NewAddModel builds the add-entry form model.
func NewAddModel(st *store.Store, sess *session.Manager) AddModel {
	return AddModel{
		store:   st,
		session: sess,
		fields:  addFields(st.Capabilities().PairedAnswers),
		active:  true,
	}
}

func addFields(paired bool) []formField {
	if paired {
		return []formField{
			{label: "Frage"},
			{label: "Name"},
			{label: "Tags"},
		}
	}
	return []formField{
		{label: "Frage"},
		{label: "Antwort"},
		{label: "Tags"},
	}
}

func (m AddModel) Init() tea.Cmd {
	return nil
}

func (m AddModel) categories() []string {
	if cats := m.store.Categories(); len(cats) > 0 {
		return cats
	}
	return fallbackCategories
}

func (m AddModel) gated() bool {
	return m.store.Capabilities().RequiresAuth && !m.session.IsAuthorized()
}

func (m AddModel) Update(msg tea.Msg) (AddModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entrySavedMsg:
		m.saving = false
		m.saved = true
		m.errText = ""
		for i := range m.fields {
			m.fields[i].value = ""
		}
		m.focus = 0
		return m, nil

	case errMsg:
		// The draft stays as typed so the submit can be retried.
		m.saving = false
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.gated() || m.saving {
			return m, nil
		}
		if !m.active {
			if isEnter(msg) || isDown(msg) {
				m.active = true
			}
			return m, nil
		}
		m.saved = false
		switch {
		case isBack(msg):
			m.active = false
			return m, nil
		case isKey(msg, "ctrl+s"):
			return m.submit()
		case isKey(msg, "tab"), isDown(msg):
			m.focus = (m.focus + 1) % (addFieldCount + 1)
			return m, nil
		case isKey(msg, "shift+tab"), isUp(msg):
			m.focus = (m.focus - 1 + addFieldCount + 1) % (addFieldCount + 1)
			return m, nil
		case isKey(msg, "left"):
			if m.focus == addFieldCount {
				n := len(m.categories())
				m.catIdx = (m.catIdx - 1 + n) % n
			}
			return m, nil
		case isKey(msg, "right"):
			if m.focus == addFieldCount {
				m.catIdx = (m.catIdx + 1) % len(m.categories())
			}
			return m, nil
		case isKey(msg, "backspace", "delete"):
			if m.focus < addFieldCount {
				v := m.fields[m.focus].value
				if len(v) > 0 {
					runes := []rune(v)
					m.fields[m.focus].value = string(runes[:len(runes)-1])
				}
			}
			return m, nil
		case isEnter(msg):
			if m.focus == addFieldAnswer && !m.store.Capabilities().PairedAnswers {
				m.fields[m.focus].value += "\n"
			}
			return m, nil
		default:
			ch := msg.String()
			if m.focus < addFieldCount && (len([]rune(ch)) == 1 || ch == " ") {
				m.fields[m.focus].value += ch
			}
			return m, nil
		}
	}
	return m, nil
}

func (m AddModel) submit() (AddModel, tea.Cmd) {
	question := strings.TrimSpace(m.fields[addFieldQuestion].value)
	second := strings.TrimSpace(m.fields[addFieldAnswer].value)
	if question == "" || second == "" {
		m.errText = "Frage und " + m.fields[addFieldAnswer].label + " dürfen nicht leer sein"
		return m, nil
	}

	m.saving = true
	m.errText = ""
	category := m.categories()[m.catIdx]
	rawTags := m.fields[addFieldTags].value

	if m.store.Capabilities().PairedAnswers {
		draft := store.QuestionDraft{
			QuestionText: question,
			Category:     category,
			Author:       second,
			RawTags:      rawTags,
		}
		return m, func() tea.Msg {
			if _, err := m.store.AddQuestion(draft); err != nil {
				return errMsg{err}
			}
			return entrySavedMsg{}
		}
	}

	draft := store.EntryDraft{
		Question: question,
		Answer:   second,
		Category: category,
		RawTags:  rawTags,
	}
	return m, func() tea.Msg {
		if _, err := m.store.AddEntry(draft); err != nil {
			return errMsg{err}
		}
		return entrySavedMsg{}
	}
}

func (m AddModel) View() string {
	title := "Neuer Eintrag"
	if m.store.Capabilities().PairedAnswers {
		title = "Neue Frage"
	}

	if m.gated() {
		content := WarningStyle.Render("Anmeldung erforderlich.") + "\n\n" +
			MutedStyle.Render("Im Admin-Tab anmelden, um Einträge anzulegen.")
		return components.Indent(components.TitledBox(title, content, m.width), 1)
	}

	var b strings.Builder
	for i, f := range m.fields {
		cursor := " "
		if i == m.focus {
			cursor = SelectedStyle.Render(">")
		}
		value := components.SanitizeText(f.value)
		if i == m.focus {
			value += AccentStyle.Render("█")
		}
		b.WriteString(cursor + " " + MutedStyle.Render(f.label+":") + " " + value)
		b.WriteString("\n")
	}

	cursor := " "
	if m.focus == addFieldCount {
		cursor = SelectedStyle.Render(">")
	}
	b.WriteString(cursor + " " + MutedStyle.Render("Kategorie:") + " " + categoryBadge(m.categories()[m.catIdx]))
	if m.focus == addFieldCount {
		b.WriteString(MutedStyle.Render("  ←/→ wechseln"))
	}
	b.WriteString("\n")

	if m.saving {
		b.WriteString("\n" + MutedStyle.Render("Speichere..."))
	} else if m.saved {
		b.WriteString("\n" + SuccessStyle.Render("Gespeichert."))
	} else if m.errText != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.errText))
	} else if !m.active {
		b.WriteString("\n" + MutedStyle.Render("enter Formular aktivieren"))
	} else {
		b.WriteString("\n" + MutedStyle.Render("ctrl+s speichern · esc Formular verlassen"))
	}

	return components.Indent(components.TitledBox(title, b.String(), m.width), 1)
}
