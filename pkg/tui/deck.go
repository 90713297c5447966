package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentdeck/agentdeck/pkg/events"
	"github.com/agentdeck/agentdeck/pkg/filetree"
	"github.com/agentdeck/agentdeck/pkg/hostdata"
	"github.com/agentdeck/agentdeck/pkg/logger"
	"github.com/agentdeck/agentdeck/pkg/panel"
)

// DetailPanelID is the registry id reserved for the companion detail
// panel; every other registered panel becomes a switchable list tab.
const DetailPanelID = "detail"

// DeckModel composes the registered panels: list panels on the left,
// the detail panel on the right. Bus events and watcher notifications
// are funneled into the bubbletea loop and forwarded to every panel.
type DeckModel struct {
	ctx      context.Context
	deps     panel.Deps
	registry *panel.Registry

	tabs    []panel.Panel
	views   []tea.Model
	active  int
	detail  tea.Model
	mounted []panel.Panel

	busCh   chan events.Event
	unsubs  []func()
	watcher *filetree.Watcher

	width  int
	height int
}

// DeckOption configures a deck.
type DeckOption func(*DeckModel)

// WithWatcher wires a file-tree watcher: each debounced change rebuilds
// the fileTree slice and triggers a refresh in every list panel.
func WithWatcher(w *filetree.Watcher) DeckOption {
	return func(d *DeckModel) {
		d.watcher = w
	}
}

// NewDeck builds the deck from the registry. Panels are instantiated in
// registration order; the deck subscribes to selection events before
// any view can publish one.
func NewDeck(ctx context.Context, registry *panel.Registry, deps panel.Deps, opts ...DeckOption) *DeckModel {
	d := &DeckModel{
		ctx:      ctx,
		deps:     deps,
		registry: registry,
		busCh:    make(chan events.Event, 16),
	}

	for _, opt := range opts {
		opt(d)
	}

	forward := func(e events.Event) {
		select {
		case d.busCh <- e:
		default:
			logger.G(ctx).WithField("type", e.Type).Warn("Dropping bus event, deck channel full")
		}
	}
	d.unsubs = append(d.unsubs,
		deps.Bus.On(events.TypeSkillSelected, forward),
		deps.Bus.On(events.TypeAgentSelected, forward),
	)

	for _, p := range registry.List() {
		view := p.New(deps)
		if p.ID == DetailPanelID {
			d.detail = view
			continue
		}
		d.tabs = append(d.tabs, p)
		d.views = append(d.views, view)
	}

	return d
}

// Mount runs every registered panel's mount hook. Hook failures are
// logged and skipped, never fatal.
func (d *DeckModel) Mount() {
	for _, p := range d.registry.List() {
		if p.OnMount == nil {
			continue
		}
		if err := p.OnMount(d.ctx, d.deps.Nav); err != nil {
			logger.G(d.ctx).WithError(err).WithField("panel", p.ID).Warn("Panel mount hook failed")
			continue
		}
		d.mounted = append(d.mounted, p)
	}
}

// Unmount runs unmount hooks for successfully mounted panels and
// releases the deck's subscriptions and watcher.
func (d *DeckModel) Unmount() {
	for _, p := range d.mounted {
		if p.OnUnmount == nil {
			continue
		}
		if err := p.OnUnmount(d.ctx, d.deps.Nav); err != nil {
			logger.G(d.ctx).WithError(err).WithField("panel", p.ID).Warn("Panel unmount hook failed")
		}
	}
	for _, unsub := range d.unsubs {
		unsub()
	}
	if d.watcher != nil {
		_ = d.watcher.Close()
	}
}

// Init implements tea.Model.
func (d *DeckModel) Init() tea.Cmd {
	cmds := []tea.Cmd{d.waitForBusEvent()}
	for _, view := range d.views {
		cmds = append(cmds, view.Init())
	}
	if d.detail != nil {
		cmds = append(cmds, d.detail.Init())
	}
	if d.watcher != nil {
		cmds = append(cmds, d.waitForTreeChange())
	}
	return tea.Batch(cmds...)
}

func (d *DeckModel) waitForBusEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-d.busCh
		if !ok {
			return nil
		}
		return busEventMsg(event)
	}
}

func (d *DeckModel) waitForTreeChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-d.watcher.Changes(); !ok {
			return nil
		}
		return treeChangedMsg{}
	}
}

// rebuildTree refreshes the fileTree slice from disk after a watcher
// notification.
func (d *DeckModel) rebuildTree() {
	root := d.deps.Nav.RepoRoot
	if root == "" {
		return
	}

	snap, err := filetree.BuildSnapshot(root, filetree.DefaultIgnoreDirs)
	if err != nil {
		d.deps.Store.SetError(hostdata.SliceFileTree, err)
		return
	}
	d.deps.Store.Set(hostdata.SliceFileTree, snap, root)
}

// Update implements tea.Model.
func (d *DeckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return d, tea.Quit
		}

		// While the active view owns raw text input, every printable key
		// belongs to it, not to the global shortcuts
		if d.activeCapturing() {
			d.views[d.active], cmds = d.forward(d.views[d.active], msg, cmds)
			return d, tea.Batch(cmds...)
		}

		switch msg.String() {
		case "q":
			return d, tea.Quit
		case "[", "]":
			if len(d.views) > 0 {
				if msg.String() == "]" {
					d.active = (d.active + 1) % len(d.views)
				} else {
					d.active = (d.active - 1 + len(d.views)) % len(d.views)
				}
			}
			return d, nil
		}

		// Route remaining keys: navigation keys to the active list,
		// paging keys to the detail pane
		switch msg.String() {
		case "pgup", "pgdown":
			if d.detail != nil {
				d.detail, cmds = d.forward(d.detail, msg, cmds)
			}
		default:
			if len(d.views) > 0 {
				d.views[d.active], cmds = d.forward(d.views[d.active], msg, cmds)
			}
		}
		return d, tea.Batch(cmds...)

	case busEventMsg:
		d.detail, cmds = d.forwardAll(msg, cmds)
		cmds = append(cmds, d.waitForBusEvent())
		return d, tea.Batch(cmds...)

	case treeChangedMsg:
		d.rebuildTree()
		for i := range d.views {
			d.views[i], cmds = d.forward(d.views[i], refreshMsg{}, cmds)
		}
		cmds = append(cmds, d.waitForTreeChange())
		return d, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		listSize := tea.WindowSizeMsg{Width: msg.Width/2 - 4, Height: msg.Height - 2}
		detailSize := tea.WindowSizeMsg{Width: msg.Width - msg.Width/2 - 4, Height: msg.Height - 2}
		for i := range d.views {
			d.views[i], cmds = d.forward(d.views[i], listSize, cmds)
		}
		if d.detail != nil {
			d.detail, cmds = d.forward(d.detail, detailSize, cmds)
		}
		return d, tea.Batch(cmds...)
	}

	// Everything else (spinner ticks, discovery results) goes to all
	// panels; each filters by kind and generation itself
	for i := range d.views {
		d.views[i], cmds = d.forward(d.views[i], msg, cmds)
	}
	if d.detail != nil {
		d.detail, cmds = d.forward(d.detail, msg, cmds)
	}
	return d, tea.Batch(cmds...)
}

// textCapturer is implemented by views that sometimes own raw key
// input (an open search box). The deck suspends its global shortcuts
// while the active view is capturing.
type textCapturer interface {
	Capturing() bool
}

func (d *DeckModel) activeCapturing() bool {
	if len(d.views) == 0 {
		return false
	}
	view, ok := d.views[d.active].(textCapturer)
	return ok && view.Capturing()
}

func (d *DeckModel) forward(view tea.Model, msg tea.Msg, cmds []tea.Cmd) (tea.Model, []tea.Cmd) {
	updated, cmd := view.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return updated, cmds
}

func (d *DeckModel) forwardAll(msg tea.Msg, cmds []tea.Cmd) (tea.Model, []tea.Cmd) {
	for i := range d.views {
		d.views[i], cmds = d.forward(d.views[i], msg, cmds)
	}
	detail := d.detail
	if detail != nil {
		detail, cmds = d.forward(detail, msg, cmds)
	}
	return detail, cmds
}

// View implements tea.Model.
func (d *DeckModel) View() string {
	if len(d.views) == 0 {
		return statusStyle.Render("No panels registered")
	}

	left := activePaneStyle.Render(d.views[d.active].View())
	right := ""
	if d.detail != nil {
		right = paneStyle.Render(d.detail.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	tabBar := d.renderTabs()
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, body)
}

func (d *DeckModel) renderTabs() string {
	var tabs []string
	for i, p := range d.tabs {
		label := p.Icon + " " + p.Name
		if i == d.active {
			tabs = append(tabs, titleStyle.Render(label))
		} else {
			tabs = append(tabs, statusStyle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}
