package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentdeck/agentdeck/pkg/catalog"
	"github.com/agentdeck/agentdeck/pkg/filetree"
	"github.com/agentdeck/agentdeck/pkg/logger"
	"github.com/agentdeck/agentdeck/pkg/panel"
	"github.com/agentdeck/agentdeck/pkg/presenter"
	"github.com/agentdeck/agentdeck/pkg/tui"
)

// BrowseConfig holds configuration for the browse command
type BrowseConfig struct {
	Watch      bool
	DebounceMs int
}

// NewBrowseConfig creates a BrowseConfig with default values
func NewBrowseConfig() *BrowseConfig {
	return &BrowseConfig{
		Watch:      false,
		DebounceMs: 500,
	}
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse skills and agents in the terminal UI",
	Long: `Open the deck: list panels for discovered skill and agent definitions on
the left, a companion detail panel on the right. Selecting an item publishes a
selection event that the detail panel renders.

With --watch, file changes under the repository root rebuild the file tree and
refresh the panels automatically.`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getBrowseConfigFromFlags(cmd)
		browse(cmd.Context(), config)
	},
}

func init() {
	defaults := NewBrowseConfig()
	browseCmd.Flags().BoolP("watch", "w", defaults.Watch, "Watch the repository and refresh on file changes")
	browseCmd.Flags().Int("debounce", defaults.DebounceMs, "Debounce time in milliseconds for watch events")
	viper.BindPFlag("watch.debounce_ms", browseCmd.Flags().Lookup("debounce"))
}

func getBrowseConfigFromFlags(cmd *cobra.Command) *BrowseConfig {
	config := NewBrowseConfig()
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		config.Watch = watch
	}
	if debounce, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.DebounceMs = debounce
	}
	return config
}

func browse(ctx context.Context, config *BrowseConfig) {
	if ctx == nil {
		ctx = context.Background()
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		presenter.Error(err, "Failed to prepare environment")
		return
	}

	registry := panel.NewRegistry()
	register := func(p panel.Panel) {
		if err := registry.Register(p); err != nil {
			logger.G(ctx).WithError(err).WithField("panel", p.ID).Warn("Skipping panel")
		}
	}

	register(panel.Panel{
		ID:          "skills",
		Name:        "Skills",
		Icon:        "⚡",
		Description: "Skill definitions discovered in the repository and global locations",
		Slices:      []string{"fileTree", "globalSkills"},
		New: func(deps panel.Deps) tea.Model {
			return tui.NewListModel(ctx, catalog.KindSkills, "skills", deps)
		},
	})
	register(panel.Panel{
		ID:          "agents",
		Name:        "Agents",
		Icon:        "🤖",
		Description: "Agent definitions discovered in the repository and global locations",
		Slices:      []string{"fileTree", "globalAgents"},
		New: func(deps panel.Deps) tea.Model {
			return tui.NewListModel(ctx, catalog.KindAgents, "agents", deps)
		},
	})
	register(panel.Panel{
		ID:          tui.DetailPanelID,
		Name:        "Detail",
		Icon:        "📄",
		Description: "Full record of the selected definition",
		New: func(panel.Deps) tea.Model {
			return tui.NewDetailModel()
		},
	})

	var opts []tui.DeckOption
	if config.Watch {
		watcher, err := filetree.NewWatcher(deps.Nav.RepoRoot, ignoreDirs(),
			time.Duration(config.DebounceMs)*time.Millisecond)
		if err != nil {
			presenter.Warning("File watching unavailable: " + err.Error())
		} else {
			watcher.Start(ctx)
			opts = append(opts, tui.WithWatcher(watcher))
		}
	}

	deck := tui.NewDeck(ctx, registry, deps, opts...)
	deck.Mount()
	defer deck.Unmount()

	program := tea.NewProgram(deck, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		presenter.Error(err, "Deck exited with an error")
	}
}
