package ui

import "github.com/charmbracelet/lipgloss"

// Category display metadata. Unknown categories fall back to a neutral
// icon and color so new server-side categories render without a release.

type categoryInfo struct {
	Icon  string
	Color lipgloss.Color
}

var defaultCategoryInfo = categoryInfo{Icon: "📋", Color: lipgloss.Color("#8f8a7a")}

func categoryMeta(name string) categoryInfo {
	switch name {
	case "IT-Support":
		return categoryInfo{Icon: "💻", Color: lipgloss.Color("#a9c4ff")}
	case "Produktion":
		return categoryInfo{Icon: "🔧", Color: lipgloss.Color("#c78854")}
	case "Qualitätskontrolle":
		return categoryInfo{Icon: "🔍", Color: lipgloss.Color("#c7a854")}
	case "Verwaltung":
		return categoryInfo{Icon: "📁", Color: lipgloss.Color("#6b8f71")}
	case "Wartung":
		return categoryInfo{Icon: "⚙️", Color: lipgloss.Color("#888ba4")}
	}
	return defaultCategoryInfo
}

func categoryBadge(name string) string {
	if name == "" {
		return ""
	}
	meta := categoryMeta(name)
	style := lipgloss.NewStyle().Foreground(meta.Color).Bold(true)
	return meta.Icon + " " + style.Render(name)
}
