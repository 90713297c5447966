package catalog

import (
	"context"
	"path/filepath"

	"github.com/agentdeck/agentdeck/pkg/filetree"
	"github.com/agentdeck/agentdeck/pkg/logger"
)

// Kind selects which definition family a discovery pass targets.
type Kind string

// Definition kinds.
const (
	KindSkills Kind = "skills"
	KindAgents Kind = "agents"
)

// Locations returns the fixed project conventions for the kind.
func (k Kind) Locations() Locations {
	if k == KindAgents {
		return AgentLocations()
	}
	return SkillLocations()
}

// globalRoots enumerates the user-global conventions, in priority
// order.
var globalRoots = []struct {
	dir    string // under the home directory
	source Source
}{
	{dir: ".agents", source: SourceGlobalUniversal},
	{dir: ".claude", source: SourceGlobalClaude},
}

// LoadGlobalItems discovers pre-parsed global items from the user's
// home directory conventions (~/.agents/<kind> and ~/.claude/<kind>).
// Missing directories are skipped silently; the result is ready to be
// merged verbatim after locally discovered items. Item IDs are
// prefixed with the source category so they stay unique within an
// aggregated list.
func LoadGlobalItems(ctx context.Context, homeDir string, read ReadFunc, kind Kind) []Item {
	var items []Item

	for _, root := range globalRoots {
		dir := filepath.Join(homeDir, root.dir, string(kind))

		snap, err := filetree.BuildSnapshot(dir, filetree.DefaultIgnoreDirs)
		if err != nil {
			// Directory might not exist, continue
			logger.G(ctx).WithField("dir", dir).Debug("Global definition directory not found, skipping")
			continue
		}

		locs := Locations{
			Marker:   string(kind),
			Patterns: []string{"**/*.md"},
		}

		result, err := Discover(ctx, snap, read, locs)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("dir", dir).Warn("Failed to discover global definitions")
			continue
		}

		for _, item := range result.Items {
			item.ID = string(root.source) + ":" + item.Path
			item.Source = root.source
			item.Priority = root.source.Priority()
			items = append(items, item)
		}
	}

	return items
}
