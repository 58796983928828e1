package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/boettcherbikes/wiki-cli/internal/store"
	"github.com/boettcherbikes/wiki-cli/internal/ui/components"
)

type statsLoadedMsg struct{}

// StatsModel shows the wiki counters.
type StatsModel struct {
	store   *store.Store
	loading bool
	width   int
	height  int
}

// NewStatsModel builds the stats tab model.
func NewStatsModel(st *store.Store) StatsModel {
	return StatsModel{store: st, loading: true}
}

func (m StatsModel) Init() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.RefreshStats(); err != nil {
			return errMsg{err}
		}
		return statsLoadedMsg{}
	}
}

func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		m.loading = false
		return m, nil
	case errMsg:
		m.loading = false
		return m, nil
	case tea.KeyMsg:
		if isKey(msg, "r") {
			m.loading = true
			return m, m.Init()
		}
	}
	return m, nil
}

func (m StatsModel) View() string {
	stats := m.store.Stats()
	if stats == nil {
		text := MutedStyle.Render("Lade Statistik...")
		if !m.loading {
			text = MutedStyle.Render("Keine Statistik verfügbar. [r] neu laden")
		}
		return components.Indent(components.TitledBox("Statistik", text, m.width), 1)
	}

	rows := []components.TableRow{}
	if stats.TotalEntries > 0 {
		rows = append(rows, components.TableRow{Label: "Einträge", Value: fmt.Sprintf("%d", stats.TotalEntries)})
	}
	rows = append(rows,
		components.TableRow{Label: "Fragen gesamt", Value: fmt.Sprintf("%d", stats.TotalQuestions)},
		components.TableRow{Label: "Beantwortet", Value: fmt.Sprintf("%d", stats.AnsweredQuestions)},
		components.TableRow{Label: "Offen", Value: fmt.Sprintf("%d", stats.UnansweredQuestions)},
	)
	if stats.CategoriesCount > 0 {
		rows = append(rows, components.TableRow{Label: "Kategorien", Value: fmt.Sprintf("%d", stats.CategoriesCount)})
	}

	return components.Indent(components.Table("Statistik", rows, m.width), 1)
}
