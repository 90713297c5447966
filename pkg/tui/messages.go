// Package tui implements the agentdeck terminal interface: list panels
// for discovered skill and agent definitions and a companion detail
// panel, composed into a deck. Panels communicate through the event
// bus, never through shared state.
package tui

import (
	"github.com/agentdeck/agentdeck/pkg/catalog"
	"github.com/agentdeck/agentdeck/pkg/events"
)

// SelectionPayload is the payload carried by *.selected events.
type SelectionPayload struct {
	ID   string
	Item catalog.Item
}

// discoveredMsg delivers the outcome of one discovery pass to a list
// panel. generation identifies the pass; stale generations are
// discarded (latest generation wins).
type discoveredMsg struct {
	kind       catalog.Kind
	generation int
	items      []catalog.Item
	err        error
}

// busEventMsg forwards a bus event into the bubbletea loop.
type busEventMsg events.Event

// treeChangedMsg reports a debounced file-tree change from the watcher.
type treeChangedMsg struct{}

// refreshMsg asks list panels to start a new discovery pass.
type refreshMsg struct{}
