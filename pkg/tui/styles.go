package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agentdeck/agentdeck/pkg/catalog"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)
)

// badgeStyles colors one badge per provenance category.
var badgeStyles = map[catalog.Source]lipgloss.Style{
	catalog.SourceProjectUniversal: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	catalog.SourceGlobalUniversal:  lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
	catalog.SourceProjectClaude:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	catalog.SourceGlobalClaude:     lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
	catalog.SourceProjectOther:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

func sourceBadge(source catalog.Source) string {
	style, ok := badgeStyles[source]
	if !ok {
		style = statusStyle
	}
	return style.Render("[" + string(source) + "]")
}
