package tui

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentdeck/agentdeck/pkg/catalog"
	"github.com/agentdeck/agentdeck/pkg/events"
	"github.com/agentdeck/agentdeck/pkg/filetree"
	"github.com/agentdeck/agentdeck/pkg/hostdata"
	"github.com/agentdeck/agentdeck/pkg/panel"
)

func listDeps(t *testing.T, contents map[string]string) panel.Deps {
	t.Helper()

	entries := make([]filetree.Entry, 0, len(contents))
	for rel := range contents {
		entries = append(entries, filetree.Entry{
			Name:         rel[strings.LastIndex(rel, "/")+1:],
			RelativePath: rel,
		})
	}
	snap := filetree.New("/repo", entries)

	store := hostdata.NewStore()
	store.Set(hostdata.SliceFileTree, snap, "/repo")

	read := func(_ context.Context, path string) ([]byte, error) {
		for rel, content := range contents {
			if snap.Abs(rel) == path {
				return []byte(content), nil
			}
		}
		return nil, errors.Errorf("no such file: %s", path)
	}

	return panel.Deps{
		Store: store,
		Bus:   events.NewBus(),
		Read:  read,
		Nav:   hostdata.NavContext{RepoRoot: "/repo"},
	}
}

func runDiscovery(t *testing.T, m *ListModel) *ListModel {
	t.Helper()
	cmd := m.refresh()
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	return updated.(*ListModel)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestListModelDiscovery(t *testing.T) {
	deps := listDeps(t, map[string]string{
		".claude/skills/alpha/SKILL.md": "# Alpha\n\nFirst skill.\n",
		".agents/skills/beta/SKILL.md":  "# Beta\n\nSecond skill.\n",
	})
	m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)

	m = runDiscovery(t, m)

	assert.False(t, m.loading)
	assert.NoError(t, m.loadErr)
	require.Len(t, m.items, 2)
	assert.Len(t, m.visible(), 2)
}

func TestListModelStaleGenerationDiscarded(t *testing.T) {
	deps := listDeps(t, map[string]string{
		".claude/skills/alpha/SKILL.md": "# Alpha\n\nFirst skill.\n",
	})
	m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)

	firstCmd := m.refresh()
	firstMsg := firstCmd()
	secondCmd := m.refresh()

	// The first pass finishes after being superseded; its result is late
	updated, _ := m.Update(firstMsg)
	m = updated.(*ListModel)
	assert.True(t, m.loading)
	assert.Empty(t, m.items)

	updated, _ = m.Update(secondCmd())
	m = updated.(*ListModel)
	assert.False(t, m.loading)
	assert.Len(t, m.items, 1)
}

func TestListModelWrongKindIgnored(t *testing.T) {
	deps := listDeps(t, nil)
	m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)
	m.refresh()

	updated, _ := m.Update(discoveredMsg{
		kind:       catalog.KindAgents,
		generation: m.generation,
		items:      []catalog.Item{{ID: "x"}},
	})
	m = updated.(*ListModel)
	assert.Empty(t, m.items)
	assert.True(t, m.loading)
}

func TestListModelErrorState(t *testing.T) {
	t.Run("no repository loaded", func(t *testing.T) {
		deps := listDeps(t, nil)
		deps.Store = hostdata.NewStore()
		m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)

		m = runDiscovery(t, m)

		require.Error(t, m.loadErr)
		assert.Contains(t, m.loadErr.Error(), "no repository loaded")
		assert.Contains(t, m.View(), "Error:")
	})

	t.Run("file tree slice error", func(t *testing.T) {
		deps := listDeps(t, nil)
		deps.Store.SetError(hostdata.SliceFileTree, errors.New("walk failed"))
		m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)

		m = runDiscovery(t, m)

		require.Error(t, m.loadErr)
		assert.Contains(t, m.loadErr.Error(), "file tree unavailable")
	})

	t.Run("build failure surfaces its cause even without data", func(t *testing.T) {
		deps := listDeps(t, nil)
		deps.Store = hostdata.NewStore()
		deps.Store.SetError(hostdata.SliceFileTree, errors.New("walk failed"))
		m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)

		m = runDiscovery(t, m)

		require.Error(t, m.loadErr)
		assert.Contains(t, m.loadErr.Error(), "walk failed")
		assert.NotContains(t, m.loadErr.Error(), "no repository loaded")
	})

	t.Run("error clears previous items and a refresh recovers", func(t *testing.T) {
		deps := listDeps(t, map[string]string{
			".claude/skills/alpha/SKILL.md": "# Alpha\n\nFirst skill.\n",
		})
		m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)
		m = runDiscovery(t, m)
		require.Len(t, m.items, 1)

		good, _ := deps.Store.Get(hostdata.SliceFileTree)
		deps.Store.Set(hostdata.SliceFileTree, "bogus", "/repo")
		m = runDiscovery(t, m)
		require.Error(t, m.loadErr)
		assert.Empty(t, m.items)

		deps.Store.Set(hostdata.SliceFileTree, good.Data, "/repo")
		m = runDiscovery(t, m)
		assert.NoError(t, m.loadErr)
		assert.Len(t, m.items, 1)
	})
}

func TestListModelMergesGlobalItems(t *testing.T) {
	deps := listDeps(t, map[string]string{
		".claude/skills/alpha/SKILL.md": "# Alpha\n\nLocal skill.\n",
	})
	deps.Store.Set(hostdata.SliceGlobalSkills, []catalog.Item{
		{ID: "global-universal:formatter", Name: "formatter", Source: catalog.SourceGlobalUniversal, Priority: 2},
	}, "global")

	m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)
	m = runDiscovery(t, m)

	require.Len(t, m.items, 2)
	assert.Equal(t, "alpha", m.items[0].Name)
	assert.Equal(t, "formatter", m.items[1].Name)

	t.Run("tab cycles the category filter", func(t *testing.T) {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(*ListModel)
		assert.Equal(t, catalog.CategoryProject, m.category)
		require.Len(t, m.visible(), 1)
		assert.Equal(t, "alpha", m.visible()[0].Name)

		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(*ListModel)
		assert.Equal(t, catalog.CategoryGlobal, m.category)
		require.Len(t, m.visible(), 1)
		assert.Equal(t, "formatter", m.visible()[0].Name)

		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(*ListModel)
		assert.Equal(t, catalog.CategoryAll, m.category)
	})
}

func TestListModelSelectEmitsOneEvent(t *testing.T) {
	deps := listDeps(t, map[string]string{
		".claude/skills/alpha/SKILL.md": "# Alpha\n\nFirst skill.\n",
		".claude/skills/beta/SKILL.md":  "# Beta\n\nSecond skill.\n",
	})

	var received []events.Event
	deps.Bus.On(events.TypeSkillSelected, func(e events.Event) {
		received = append(received, e)
	})
	deps.Bus.On(events.TypeAgentSelected, func(e events.Event) {
		t.Errorf("unexpected agent event: %+v", e)
	})

	m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)
	m = runDiscovery(t, m)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*ListModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*ListModel)

	require.Len(t, received, 1)
	assert.Equal(t, "skills", received[0].Source)

	payload, ok := received[0].Payload.(SelectionPayload)
	require.True(t, ok)
	assert.Equal(t, "beta", payload.Item.Name)
	assert.Equal(t, payload.Item.ID, payload.ID)
	assert.Equal(t, payload.ID, m.selectedID)

	t.Run("enter on an empty list emits nothing", func(t *testing.T) {
		empty := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)
		empty.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Len(t, received, 1)
	})
}

func TestListModelSearch(t *testing.T) {
	deps := listDeps(t, map[string]string{
		".claude/skills/alpha/SKILL.md": "# Alpha\n\nParses PDF files.\n",
		".claude/skills/beta/SKILL.md":  "# Beta\n\nReviews code.\n",
	})
	m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)
	m = runDiscovery(t, m)

	updated, _ := m.Update(key("/"))
	m = updated.(*ListModel)
	assert.True(t, m.searching)

	m.search.SetValue("pdf")
	assert.Len(t, m.visible(), 1)
	assert.Equal(t, "alpha", m.visible()[0].Name)

	t.Run("enter keeps the filter", func(t *testing.T) {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(*ListModel)
		assert.False(t, m.searching)
		assert.Equal(t, "pdf", m.search.Value())
	})

	t.Run("esc clears the filter", func(t *testing.T) {
		updated, _ := m.Update(key("/"))
		m = updated.(*ListModel)
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = updated.(*ListModel)
		assert.Empty(t, m.search.Value())
		assert.Len(t, m.visible(), 2)
	})
}

func TestListModelCursorClamping(t *testing.T) {
	deps := listDeps(t, map[string]string{
		".claude/skills/alpha/SKILL.md": "# Alpha\n\nFirst.\n",
		".claude/skills/beta/SKILL.md":  "# Beta\n\nSecond.\n",
	})
	m := NewListModel(context.Background(), catalog.KindSkills, "skills", deps)
	m = runDiscovery(t, m)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*ListModel)
	assert.Equal(t, 1, m.cursor)

	// Narrowing the list pulls the cursor back into range
	m.search.SetValue("alpha")
	m.clampCursor()
	assert.Equal(t, 0, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(*ListModel)
	assert.Equal(t, 0, m.cursor)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly", truncate("exactly", 7))
	assert.Equal(t, "longer ...", truncate("longer description", 10))

	t.Run("never splits a multibyte rune", func(t *testing.T) {
		got := truncate("日本語のテキストです", 8)
		assert.Equal(t, "日本語のテ...", got)
		assert.True(t, utf8.ValidString(got))

		assert.Equal(t, "héllo...", truncate("héllo wörld", 8))
	})
}
