// Package panel defines the registration contract between the deck and
// its panels: a stable identifier, display metadata, declared
// data-slice dependencies, a view factory, and optional asynchronous
// mount/unmount lifecycle hooks.
package panel

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/agentdeck/agentdeck/pkg/catalog"
	"github.com/agentdeck/agentdeck/pkg/events"
	"github.com/agentdeck/agentdeck/pkg/hostdata"
)

// Deps is everything a panel view may depend on, injected explicitly.
type Deps struct {
	Store *hostdata.Store
	Bus   *events.Bus
	Read  catalog.ReadFunc
	Nav   hostdata.NavContext
}

// Hook is an asynchronous lifecycle callback receiving the current
// navigation context.
type Hook func(ctx context.Context, nav hostdata.NavContext) error

// Panel is a registerable view extension.
type Panel struct {
	// ID is the stable identifier; it doubles as the event source tag.
	ID          string
	Name        string
	Icon        string
	Description string

	// Slices are the data-slice names the view reads.
	Slices []string

	// New builds the renderable view.
	New func(deps Deps) tea.Model

	OnMount   Hook
	OnUnmount Hook
}

// Registry holds panels in registration order.
type Registry struct {
	mu     sync.Mutex
	panels []Panel
	byID   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]int),
	}
}

// Register adds a panel. IDs must be unique.
func (r *Registry) Register(p Panel) error {
	if p.ID == "" {
		return errors.New("panel id cannot be empty")
	}
	if p.New == nil {
		return errors.Errorf("panel %q has no view factory", p.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return errors.Errorf("panel %q is already registered", p.ID)
	}
	r.byID[p.ID] = len(r.panels)
	r.panels = append(r.panels, p)
	return nil
}

// Get returns the panel with the given id.
func (r *Registry) Get(id string) (Panel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[id]
	if !ok {
		return Panel{}, false
	}
	return r.panels[idx], true
}

// List returns the panels in registration order.
func (r *Registry) List() []Panel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Panel, len(r.panels))
	copy(out, r.panels)
	return out
}
