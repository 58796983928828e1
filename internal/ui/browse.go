package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/boettcherbikes/wiki-cli/internal/api"
	"github.com/boettcherbikes/wiki-cli/internal/session"
	"github.com/boettcherbikes/wiki-cli/internal/store"
	"github.com/boettcherbikes/wiki-cli/internal/ui/components"
)

// --- Messages ---

type collectionLoadedMsg struct{}
type categoriesLoadedMsg struct{}
type questionDeletedMsg struct{}

// --- Browse Model ---

// BrowseModel is the main collection view: free-text search, category
// filter, and the entry list with expandable details.
type BrowseModel struct {
	store   *store.Store
	session *session.Manager

	search    textinput.Model
	searching bool
	catIdx    int
	list      *components.List
	loading   bool
	expanded  bool
	confirm   string // question ID pending delete confirmation
	width     int
	height    int
}

// NewBrowseModel builds the browse UI model.
func NewBrowseModel(st *store.Store, sess *session.Manager) BrowseModel {
	input := textinput.New()
	input.Placeholder = "Suchbegriff..."
	input.CharLimit = 120
	input.Width = 40
	return BrowseModel{
		store:   st,
		session: sess,
		search:  input,
		list:    components.NewList(10),
		loading: true,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.categoriesCmd())
}

func (m BrowseModel) Update(msg tea.Msg) (BrowseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case collectionLoadedMsg:
		m.loading = false
		m.refreshList()
		return m, nil

	case categoriesLoadedMsg:
		if m.catIdx > len(m.store.Categories()) {
			m.catIdx = 0
		}
		return m, nil

	case questionDeletedMsg:
		m.confirm = ""
		m.expanded = false
		m.refreshList()
		return m, nil

	case errMsg:
		m.loading = false
		m.confirm = ""
		return m, nil

	case tea.KeyMsg:
		if m.confirm != "" {
			switch {
			case isKey(msg, "y"):
				return m, m.deleteCmd(m.confirm)
			case isKey(msg, "n"), isBack(msg):
				m.confirm = ""
			}
			return m, nil
		}
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		switch {
		case isKey(msg, "/"):
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		case isKey(msg, "left"):
			return m.cycleCategory(-1)
		case isKey(msg, "right"):
			return m.cycleCategory(1)
		case isDown(msg):
			m.list.Down()
			m.expanded = false
		case isUp(msg):
			m.list.Up()
			m.expanded = false
		case isEnter(msg):
			if m.list.Len() > 0 {
				m.expanded = !m.expanded
			}
		case isBack(msg):
			if m.expanded {
				m.expanded = false
			} else if m.store.Query() != "" {
				m.search.SetValue("")
				return m, m.searchCmd("")
			}
		case isKey(msg, "d"):
			if m.store.Capabilities().PairedAnswers && m.session.IsAuthorized() {
				if pair := m.selectedPair(); pair != nil {
					m.confirm = pair.Question.ID
				}
			}
		case isKey(msg, "r"):
			m.loading = true
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m BrowseModel) handleSearchKeys(msg tea.KeyMsg) (BrowseModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		if m.store.Query() != "" {
			return m, m.searchCmd("")
		}
		return m, nil
	case isEnter(msg):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.searchCmd(m.search.Value()))
	}
	return m, cmd
}

func (m BrowseModel) cycleCategory(dir int) (BrowseModel, tea.Cmd) {
	categories := m.store.Categories()
	n := len(categories) + 1 // slot 0 is "Alle"
	m.catIdx = (m.catIdx + dir + n) % n
	target := ""
	if m.catIdx > 0 {
		target = categories[m.catIdx-1]
	}
	if !m.store.Capabilities().PairedAnswers {
		// Server-side filter discards the query.
		m.search.SetValue("")
	}
	m.expanded = false
	return m, m.setCategoryCmd(target)
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderFilterLine())
	b.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString("  🔍 " + m.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(MutedStyle.Render("Lade Einträge..."))
	case m.list.Len() == 0:
		b.WriteString(m.renderEmptyState())
	default:
		b.WriteString(m.renderList())
		if m.expanded {
			b.WriteString("\n\n")
			b.WriteString(m.renderDetail())
		}
	}

	if m.confirm != "" {
		b.WriteString("\n\n")
		b.WriteString(WarningStyle.Render("Frage wirklich löschen? [y/n]"))
	}

	return components.Indent(components.TitledBox(m.title(), b.String(), m.width), 1)
}

func (m BrowseModel) title() string {
	if m.store.Capabilities().PairedAnswers {
		return "Fragen & Antworten"
	}
	return "Wissensdatenbank"
}

func (m BrowseModel) renderFilterLine() string {
	categories := m.store.Categories()
	segments := make([]string, 0, len(categories)+1)
	for i := 0; i <= len(categories); i++ {
		label := "Alle"
		if i > 0 {
			label = categories[i-1]
		}
		if i == m.catIdx {
			segments = append(segments, SelectedStyle.Render("["+label+"]"))
		} else {
			segments = append(segments, MutedStyle.Render(label))
		}
	}
	return strings.Join(segments, "  ")
}

func (m BrowseModel) renderEmptyState() string {
	if m.store.Query() != "" {
		return MutedStyle.Render(fmt.Sprintf("Keine Treffer für %q.", m.store.Query()))
	}
	if m.store.Capabilities().PairedAnswers {
		return MutedStyle.Render("Noch keine Fragen. Mit [n] eine neue Frage stellen.")
	}
	return MutedStyle.Render("Noch keine Einträge.")
}

func (m BrowseModel) renderList() string {
	var b strings.Builder
	visible := m.list.Visible()
	maxWidth := components.BoxContentWidth(m.width) - 4
	for i, label := range visible {
		if maxWidth > 0 {
			label = components.ClampTextWidth(label, maxWidth)
		}
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
	return b.String()
}

func (m BrowseModel) renderDetail() string {
	wrapWidth := components.BoxContentWidth(m.width) - 4
	if m.store.Capabilities().PairedAnswers {
		pair := m.selectedPair()
		if pair == nil {
			return ""
		}
		var b strings.Builder
		b.WriteString(HeaderStyle.Render(components.SanitizeOneLine(pair.Question.QuestionText)))
		b.WriteString("\n")
		b.WriteString(components.InfoRow("Kategorie", pair.Question.Category))
		b.WriteString("\n")
		b.WriteString(components.InfoRow("Gefragt von", pair.Question.Author))
		if len(pair.Question.Tags) > 0 {
			b.WriteString("\n")
			b.WriteString(components.InfoRow("Tags", strings.Join(pair.Question.Tags, ", ")))
		}
		b.WriteString("\n\n")
		if pair.Answer != nil {
			b.WriteString(components.WrapText(pair.Answer.AnswerText, wrapWidth))
			b.WriteString("\n\n")
			b.WriteString(MutedStyle.Render("— " + pair.Answer.Author))
		} else {
			b.WriteString(WarningStyle.Render("Noch unbeantwortet."))
		}
		return b.String()
	}

	entry := m.selectedEntry()
	if entry == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(components.SanitizeOneLine(entry.Question)))
	b.WriteString("\n")
	b.WriteString(components.WrapText(entry.Answer, wrapWidth))
	if len(entry.Tags) > 0 {
		b.WriteString("\n\n")
		b.WriteString(components.InfoRow("Tags", strings.Join(entry.Tags, ", ")))
	}
	return b.String()
}

func (m *BrowseModel) selectedEntry() *api.Entry {
	entries := m.store.Visible()
	idx := m.list.Selected()
	if idx < 0 || idx >= len(entries) {
		return nil
	}
	return &entries[idx]
}

func (m *BrowseModel) selectedPair() *api.QuestionAnswer {
	pairs := m.store.VisiblePairs()
	idx := m.list.Selected()
	if idx < 0 || idx >= len(pairs) {
		return nil
	}
	return &pairs[idx]
}

func (m *BrowseModel) refreshList() {
	if m.store.Capabilities().PairedAnswers {
		pairs := m.store.VisiblePairs()
		labels := make([]string, len(pairs))
		for i, p := range pairs {
			marker := MutedStyle.Render("○")
			if p.Answer != nil {
				marker = SuccessStyle.Render("✓")
			}
			labels[i] = fmt.Sprintf("%s %s  %s",
				marker,
				components.SanitizeOneLine(p.Question.QuestionText),
				categoryBadge(p.Question.Category),
			)
		}
		m.list.SetItemsKeepCursor(labels)
		return
	}

	entries := m.store.Visible()
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = fmt.Sprintf("%s  %s",
			components.SanitizeOneLine(e.Question),
			categoryBadge(e.Category),
		)
	}
	m.list.SetItemsKeepCursor(labels)
}

// --- Commands ---

func (m BrowseModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.LoadCollection(); err != nil {
			return errMsg{err}
		}
		return collectionLoadedMsg{}
	}
}

func (m BrowseModel) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.Search(query); err != nil {
			return errMsg{err}
		}
		return collectionLoadedMsg{}
	}
}

func (m BrowseModel) setCategoryCmd(category string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.SetCategory(category); err != nil {
			return errMsg{err}
		}
		return collectionLoadedMsg{}
	}
}

func (m BrowseModel) categoriesCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.RefreshCategories(); err != nil {
			return errMsg{err}
		}
		return categoriesLoadedMsg{}
	}
}

func (m BrowseModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.DeleteQuestion(id); err != nil {
			return errMsg{err}
		}
		return questionDeletedMsg{}
	}
}
