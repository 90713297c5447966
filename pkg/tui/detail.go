package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentdeck/agentdeck/pkg/catalog"
	"github.com/agentdeck/agentdeck/pkg/events"
)

// DetailModel renders the full record of the most recently selected
// item. It consumes *.selected events forwarded by the deck; it never
// reads the list panels' state directly.
type DetailModel struct {
	item     *catalog.Item
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewDetailModel creates an empty detail panel.
func NewDetailModel() *DetailModel {
	return &DetailModel{}
}

// Init implements tea.Model.
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case busEventMsg:
		if msg.Type != events.TypeSkillSelected && msg.Type != events.TypeAgentSelected {
			return m, nil
		}
		payload, ok := msg.Payload.(SelectionPayload)
		if !ok {
			return m, nil
		}
		item := payload.Item
		m.item = &item
		m.viewport.SetContent(m.renderItem())
		m.viewport.GotoTop()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height
		}
		if m.item != nil {
			m.viewport.SetContent(m.renderItem())
		}
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m *DetailModel) View() string {
	if m.item == nil {
		return statusStyle.Render("Select an item to see its details")
	}
	if !m.ready {
		return m.renderItem()
	}
	return m.viewport.View()
}

func (m *DetailModel) renderItem() string {
	item := m.item

	var b strings.Builder
	b.WriteString(titleStyle.Render(item.Name))
	b.WriteString("  " + sourceBadge(item.Source))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  priority %d", item.Priority)))
	b.WriteString("\n\n")

	b.WriteString(descStyle.Render(item.Description))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(item.Path))
	b.WriteString("\n")

	if len(item.Capabilities) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Capabilities") + "\n")
		for _, capability := range item.Capabilities {
			b.WriteString("  • " + capability + "\n")
		}
	}

	m.renderStructure(&b)
	m.renderMetadata(&b)

	b.WriteString("\n" + sectionStyle.Render("Content") + "\n")
	b.WriteString(item.Content)

	return b.String()
}

func (m *DetailModel) renderStructure(b *strings.Builder) {
	item := m.item
	if !item.HasScripts && !item.HasReferences && !item.HasAssets {
		return
	}

	b.WriteString("\n" + sectionStyle.Render("Resources") + "\n")
	writeFileList(b, "scripts", item.ScriptFiles)
	writeFileList(b, "references", item.ReferenceFiles)
	writeFileList(b, "assets", item.AssetFiles)
}

func writeFileList(b *strings.Builder, label string, files []string) {
	if len(files) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("  %s: %s\n", label, strings.Join(files, ", ")))
}

func (m *DetailModel) renderMetadata(b *strings.Builder) {
	md := m.item.Metadata
	if md == nil {
		return
	}

	b.WriteString("\n" + sectionStyle.Render("Installed from") + "\n")
	if md.Repository != "" {
		b.WriteString("  repository: " + md.Repository + "\n")
	}
	if md.Origin != "" {
		b.WriteString("  origin: " + md.Origin + "\n")
	}
	if md.Branch != "" {
		b.WriteString("  branch: " + md.Branch + "\n")
	}
	if md.Commit != "" {
		b.WriteString("  commit: " + md.Commit + "\n")
	}
	if !md.InstalledAt.IsZero() {
		b.WriteString("  installed: " + md.InstalledAt.Format("2006-01-02 15:04") + "\n")
	}
}
