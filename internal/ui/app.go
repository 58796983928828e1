package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/boettcherbikes/wiki-cli/internal/session"
	"github.com/boettcherbikes/wiki-cli/internal/store"
	"github.com/boettcherbikes/wiki-cli/internal/ui/components"
)

// --- Tabs ---

type tabID int

const (
	tabBrowse tabID = iota
	tabAdd
	tabAnswer
	tabStats
	tabAdmin
)

func tabLabel(id tabID, paired bool) string {
	switch id {
	case tabBrowse:
		return "Wissen"
	case tabAdd:
		if paired {
			return "Fragen"
		}
		return "Neu"
	case tabAnswer:
		return "Antworten"
	case tabStats:
		return "Statistik"
	case tabAdmin:
		return "Admin"
	}
	return ""
}

// --- Messages ---

type errMsg struct{ err error }
type clearToastMsg struct{}
type bootstrapDoneMsg struct{ err error }

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	store   *store.Store
	session *session.Manager

	tabs     []tabID
	tabIdx   int
	width    int
	height   int
	errText  string
	helpOpen bool
	toast    *appToast

	browse BrowseModel
	add    AddModel
	answer AnswerModel
	stats  StatsModel
	admin  AdminModel
}

// NewApp creates the root application model.
func NewApp(st *store.Store, sess *session.Manager) App {
	tabs := []tabID{tabBrowse, tabAdd}
	if st.Capabilities().PairedAnswers {
		tabs = append(tabs, tabAnswer)
	}
	tabs = append(tabs, tabStats, tabAdmin)

	return App{
		store:   st,
		session: sess,
		tabs:    tabs,
		browse:  NewBrowseModel(st, sess),
		add:     NewAddModel(st, sess),
		answer:  NewAnswerModel(st, sess),
		stats:   NewStatsModel(st),
		admin:   NewAdminModel(st, sess),
	}
}

func (a App) Init() tea.Cmd {
	// Collection, categories, stats, and session restore run as
	// independent fetches; any one of them failing leaves the rest alone.
	return tea.Batch(
		a.browse.Init(),
		a.stats.Init(),
		a.bootstrapCmd(),
	)
}

func (a App) bootstrapCmd() tea.Cmd {
	return func() tea.Msg {
		return bootstrapDoneMsg{err: a.session.Bootstrap()}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browse.width = msg.Width
		a.browse.height = msg.Height
		a.add.width = msg.Width
		a.add.height = msg.Height
		a.answer.width = msg.Width
		a.answer.height = msg.Height
		a.stats.width = msg.Width
		a.stats.height = msg.Height
		a.admin.width = msg.Width
		a.admin.height = msg.Height
		return a, nil

	case errMsg:
		a.errText = noticeText(store.Classify(msg.err))
		return a.delegate(msg)

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case bootstrapDoneMsg:
		if msg.err != nil {
			notice := store.Classify(msg.err)
			if notice.Kind == store.FailureAuth {
				return a, a.setToast("warn", "Gespeicherte Anmeldung ist abgelaufen.")
			}
			return a, a.setToast("warn", "Anmeldung konnte nicht geprüft werden: "+noticeText(notice))
		}
		if a.session.IsAuthorized() {
			return a, a.setToast("success", "Angemeldet als "+a.session.Username())
		}
		return a, nil

	case loginDoneMsg:
		model, cmd := a.delegate(msg)
		app := model.(App)
		if msg.err == nil && app.session.IsAuthorized() {
			toastCmd := app.setToast("success", "Angemeldet als "+app.session.Username())
			return app, tea.Batch(cmd, toastCmd)
		}
		return app, cmd

	case logoutDoneMsg:
		model, cmd := a.delegate(msg)
		app := model.(App)
		if msg.err == nil {
			toastCmd := app.setToast("info", "Abgemeldet.")
			return app, tea.Batch(cmd, toastCmd)
		}
		return app, cmd

	case tea.KeyMsg:
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.errText != "" {
			a.errText = ""
		}
		if isQuit(msg) {
			return a, tea.Quit
		}
		if !a.typingContext() {
			if isKey(msg, "?") {
				a.helpOpen = true
				return a, nil
			}
			if isKey(msg, "q") {
				return a, tea.Quit
			}
			for i := range a.tabs {
				if isTab(msg, i+1) {
					return a.switchTab(i)
				}
			}
		}
	}

	return a.delegate(msg)
}

// typingContext reports whether the active tab currently consumes
// printable keys, so global shortcuts must stay out of the way.
func (a App) typingContext() bool {
	switch a.tabs[a.tabIdx] {
	case tabBrowse:
		return a.browse.searching
	case tabAdd:
		return a.add.active && !a.add.gated()
	case tabAnswer:
		return a.answer.picked != nil
	case tabAdmin:
		return a.admin.active && !a.session.IsAuthorized()
	}
	return false
}

func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.tabs[a.tabIdx] {
	case tabBrowse:
		a.browse, cmd = a.browse.Update(msg)
	case tabAdd:
		a.add, cmd = a.add.Update(msg)
	case tabAnswer:
		a.answer, cmd = a.answer.Update(msg)
	case tabStats:
		a.stats, cmd = a.stats.Update(msg)
	case tabAdmin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

func (a App) switchTab(idx int) (tea.Model, tea.Cmd) {
	if idx == a.tabIdx {
		return a, nil
	}
	a.tabIdx = idx
	switch a.tabs[idx] {
	case tabBrowse:
		return a, a.browse.Init()
	case tabAnswer:
		return a, a.answer.Init()
	case tabStats:
		return a, a.stats.Init()
	case tabAdmin:
		return a, a.admin.Init()
	}
	return a, nil
}

func (a App) View() string {
	banner := centerBlock(RenderBanner(), a.width)
	tabs := centerBlock(a.renderTabs(), a.width)

	var content string
	if a.helpOpen {
		content = a.renderHelp()
	} else {
		switch a.tabs[a.tabIdx] {
		case tabBrowse:
			content = a.browse.View()
		case tabAdd:
			content = a.add.View()
		case tabAnswer:
			content = a.answer.View()
		case tabStats:
			content = a.stats.View()
		case tabAdmin:
			content = a.admin.View()
		}
	}
	content = centerBlock(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.errText != "" {
		feedback = "\n\n" + centerBlock(components.ErrorBox("Fehler", a.errText, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlock(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a App) renderTabs() string {
	paired := a.store.Capabilities().PairedAnswers
	segments := make([]string, 0, len(a.tabs))
	for i, id := range a.tabs {
		label := fmt.Sprintf("%d %s", i+1, tabLabel(id, paired))
		if i == a.tabIdx {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) renderHelp() string {
	help := []components.TableRow{
		{Label: "1-5", Value: "Tab wechseln"},
		{Label: "/", Value: "Suche"},
		{Label: "←/→", Value: "Kategorie wechseln"},
		{Label: "↑/↓", Value: "Auswahl bewegen"},
		{Label: "enter", Value: "Details auf/zu"},
		{Label: "ctrl+s", Value: "Formular speichern"},
		{Label: "r", Value: "Neu laden"},
		{Label: "q", Value: "Beenden"},
	}
	if a.store.Capabilities().PairedAnswers {
		help = append(help, components.TableRow{Label: "d", Value: "Frage löschen (Admin)"})
	}
	return components.Indent(components.Table("Hilfe", help, a.width), 1)
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	style := MutedStyle
	switch a.toast.level {
	case "success":
		style = SuccessStyle
	case "warn":
		style = WarningStyle
	}
	return components.Box(style.Render(a.toast.text), a.width)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{level: level, text: text}
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) statusHints() []string {
	if a.helpOpen {
		return []string{components.Hint("esc", "Zurück")}
	}
	switch a.tabs[a.tabIdx] {
	case tabBrowse:
		hints := []string{
			components.Hint("/", "Suchen"),
			components.Hint("←/→", "Kategorie"),
			components.Hint("enter", "Details"),
		}
		if a.store.Capabilities().PairedAnswers && a.session.IsAuthorized() {
			hints = append(hints, components.Hint("d", "Löschen"))
		}
		return append(hints, components.Hint("?", "Hilfe"))
	case tabAdd:
		return []string{
			components.Hint("tab", "Nächstes Feld"),
			components.Hint("ctrl+s", "Speichern"),
		}
	case tabAnswer:
		return []string{
			components.Hint("enter", "Frage wählen"),
			components.Hint("ctrl+s", "Speichern"),
			components.Hint("esc", "Zurück"),
		}
	case tabStats:
		return []string{
			components.Hint("r", "Neu laden"),
			components.Hint("q", "Beenden"),
		}
	case tabAdmin:
		if a.session.IsAuthorized() {
			return []string{components.Hint("l", "Abmelden")}
		}
		return []string{
			components.Hint("tab", "Feld wechseln"),
			components.Hint("enter", "Anmelden"),
		}
	}
	return []string{components.Hint("?", "Hilfe")}
}

func noticeText(n *store.Notice) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case store.FailureAuth:
		if n.Message != "" {
			return "Anmeldung abgelehnt: " + n.Message
		}
		return "Anmeldung abgelehnt"
	case store.FailureDecode:
		return "Unerwartete Antwort vom Server"
	default:
		if n.Message != "" {
			return "Server nicht erreichbar: " + n.Message
		}
		return "Server nicht erreichbar"
	}
}

func centerBlock(block string, width int) string {
	if width <= 0 {
		return block
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(block)
}
