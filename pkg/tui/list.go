package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/agentdeck/agentdeck/pkg/catalog"
	"github.com/agentdeck/agentdeck/pkg/events"
	"github.com/agentdeck/agentdeck/pkg/filetree"
	"github.com/agentdeck/agentdeck/pkg/hostdata"
	"github.com/agentdeck/agentdeck/pkg/panel"
)

// ListModel is a list panel over one definition kind. It owns its
// filter and selection state exclusively; discovered items are rebuilt
// wholesale on every refresh.
type ListModel struct {
	ctx      context.Context
	kind     catalog.Kind
	deps     panel.Deps
	sourceID string

	generation int
	loading    bool
	loadErr    error
	items      []catalog.Item

	cursor     int
	selectedID string
	category   catalog.Category
	search     textinput.Model
	searching  bool
	spinner    spinner.Model

	width  int
	height int
}

// NewListModel creates a list panel for the given kind. sourceID tags
// the events the panel publishes.
func NewListModel(ctx context.Context, kind catalog.Kind, sourceID string, deps panel.Deps) *ListModel {
	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "/ "
	search.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &ListModel{
		ctx:      ctx,
		kind:     kind,
		deps:     deps,
		sourceID: sourceID,
		category: catalog.CategoryAll,
		search:   search,
		spinner:  sp,
	}
}

// Init starts the first discovery pass.
func (m *ListModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.spinner.Tick)
}

// refresh begins a new discovery pass under a fresh generation. The
// previous pass, if still in flight, is superseded: its result will
// carry a stale generation and be discarded on arrival.
func (m *ListModel) refresh() tea.Cmd {
	m.generation++
	m.loading = true
	m.loadErr = nil

	generation := m.generation
	ctx := m.ctx
	kind := m.kind
	deps := m.deps

	return func() tea.Msg {
		items, err := discoverPass(ctx, kind, deps)
		return discoveredMsg{
			kind:       kind,
			generation: generation,
			items:      items,
			err:        err,
		}
	}
}

// discoverPass runs stages 1+2 against the current file-tree slice and
// merges in the host-supplied global items.
func discoverPass(ctx context.Context, kind catalog.Kind, deps panel.Deps) ([]catalog.Item, error) {
	slice, ok := deps.Store.Get(hostdata.SliceFileTree)
	if !ok {
		return nil, errors.New("no repository loaded")
	}
	// A failed tree build must surface its cause, not the generic
	// no-repository message
	if slice.Err != nil {
		return nil, errors.Wrap(slice.Err, "file tree unavailable")
	}
	if slice.Data == nil {
		return nil, errors.New("no repository loaded")
	}

	snap, ok := slice.Data.(*filetree.Snapshot)
	if !ok {
		return nil, errors.New("file tree slice holds unexpected data")
	}

	result, err := catalog.Discover(ctx, snap, deps.Read, kind.Locations())
	if err != nil {
		return nil, err
	}

	var global []catalog.Item
	globalSlice := hostdata.SliceGlobalSkills
	if kind == catalog.KindAgents {
		globalSlice = hostdata.SliceGlobalAgents
	}
	if slice, ok := deps.Store.Get(globalSlice); ok {
		if items, ok := slice.Data.([]catalog.Item); ok {
			global = items
		}
	}

	return catalog.Merge(result.Items, global), nil
}

// Capturing reports whether the search box currently owns key input.
func (m *ListModel) Capturing() bool {
	return m.searching
}

// visible applies the category and text filters without touching the
// aggregated list.
func (m *ListModel) visible() []catalog.Item {
	return catalog.FilterQuery(catalog.FilterCategory(m.items, m.category), m.search.Value())
}

// Update implements tea.Model.
func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case discoveredMsg:
		if msg.kind != m.kind {
			return m, nil
		}
		if msg.generation != m.generation {
			// Superseded pass; drop its late result
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			m.items = nil
		} else {
			m.items = msg.items
		}
		m.clampCursor()
		return m, nil

	case refreshMsg:
		return m, m.refresh()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *ListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			if msg.String() == "esc" {
				m.search.SetValue("")
			}
			m.clampCursor()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.clampCursor()
			return m, cmd
		}
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "enter":
		return m, m.selectCurrent()
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "tab":
		m.category = m.category.Next()
		m.clampCursor()
	case "r":
		return m, tea.Batch(m.refresh(), m.spinner.Tick)
	}

	return m, nil
}

// selectCurrent records the highlighted item as selected and publishes
// exactly one selection event for companion panels. Fire-and-forget:
// there is no synchronous response.
func (m *ListModel) selectCurrent() tea.Cmd {
	visible := m.visible()
	if m.cursor >= len(visible) {
		return nil
	}

	item := visible[m.cursor]
	m.selectedID = item.ID

	eventType := events.TypeSkillSelected
	if m.kind == catalog.KindAgents {
		eventType = events.TypeAgentSelected
	}
	m.deps.Bus.Emit(eventType, m.sourceID, SelectionPayload{ID: item.ID, Item: item})
	return nil
}

func (m *ListModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m *ListModel) View() string {
	var b strings.Builder

	title := kindTitle(m.kind)
	visible := m.visible()

	header := titleStyle.Render(title)
	header += statusStyle.Render(fmt.Sprintf("  %d/%d  [%s]", len(visible), len(m.items), m.category))
	if m.loading {
		header += " " + m.spinner.View()
	}
	b.WriteString(header)
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	if m.loadErr != nil {
		// Inline banner; the rest of the panel stays interactive
		b.WriteString(errorStyle.Render("Error: " + m.loadErr.Error()))
		b.WriteString("\n")
	}

	if len(visible) == 0 && m.loadErr == nil && !m.loading {
		b.WriteString(statusStyle.Render("No " + string(m.kind) + " found"))
		b.WriteString("\n")
	}

	for i, item := range visible {
		prefix := "  "
		line := fmt.Sprintf("%s %s %s",
			nameStyle.Render(item.Name),
			sourceBadge(item.Source),
			descStyle.Render(truncate(item.Description, 48)),
		)
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		if item.ID == m.selectedID {
			line = selectedStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}

	b.WriteString(helpStyle.Render("enter select · / search · tab category · r refresh"))
	return b.String()
}

func kindTitle(kind catalog.Kind) string {
	if kind == catalog.KindAgents {
		return "Agents"
	}
	return "Skills"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
