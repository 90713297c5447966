package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/agentdeck/agentdeck/pkg/filetree"
	"github.com/agentdeck/agentdeck/pkg/logger"
)

// MetadataFileName is the reserved side-file name excluded from
// discovery and read for installation provenance.
const MetadataFileName = ".metadata.json"

// ReadFunc asynchronously reads the text content at an absolute path.
// It is supplied by the caller; the catalog performs no direct I/O.
type ReadFunc func(ctx context.Context, absPath string) ([]byte, error)

// Locations describes where definitions of one kind live. Patterns are
// doublestar globs matched against slash-separated relative paths.
// Marker is the directory name that denotes a flat layout.
type Locations struct {
	Marker   string
	Patterns []string
}

// SkillLocations returns the fixed conventions for skill definitions.
func SkillLocations() Locations {
	return Locations{
		Marker: "skills",
		Patterns: []string{
			"**/.agents/skills/**/*.md",
			"**/.claude/skills/**/*.md",
			"**/SKILL.md",
		},
	}
}

// AgentLocations returns the fixed conventions for agent definitions.
func AgentLocations() Locations {
	return Locations{
		Marker: "agents",
		Patterns: []string{
			"**/.agents/agents/**/*.md",
			"**/.claude/agents/**/*.md",
		},
	}
}

// CandidatePaths filters the snapshot's flat entry list down to
// definition files: markdown files under one of the location patterns,
// excluding metadata files. An empty tree yields an empty result, not
// an error. Order follows snapshot order.
func CandidatePaths(snap *filetree.Snapshot, locs Locations) []string {
	if snap == nil {
		return nil
	}

	var paths []string
	for _, entry := range snap.Entries {
		if !strings.HasSuffix(entry.Name, ".md") {
			continue
		}
		if isMetadataFile(entry.Name) {
			continue
		}
		if !matchesAny(entry.RelativePath, locs.Patterns) {
			continue
		}
		paths = append(paths, entry.RelativePath)
	}
	return paths
}

// isMetadataFile reports whether a file name is reserved for metadata
// rather than a definition.
func isMetadataFile(name string) bool {
	return strings.HasPrefix(name, ".") || name == "README.md" || name == MetadataFileName
}

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// Result is the outcome of one discovery pass. Diags aggregates
// non-fatal per-item failures; Items contains every definition that
// parsed successfully, in candidate order.
type Result struct {
	Items []Item
	Diags error
}

// Discover runs one discovery pass over the snapshot: it selects
// candidate paths, reads them concurrently through read, and parses
// each into an item. A single item's read failure drops that item and
// is recorded in Result.Diags; it never aborts the pass. The returned
// item order is candidate order regardless of read completion order.
//
// A nil snapshot or missing read capability is a hard failure for the
// whole pass.
func Discover(ctx context.Context, snap *filetree.Snapshot, read ReadFunc, locs Locations) (*Result, error) {
	if snap == nil {
		return nil, errors.New("no file tree snapshot available")
	}
	if read == nil {
		return nil, errors.New("no read capability available")
	}

	candidates := CandidatePaths(snap, locs)

	type slot struct {
		item Item
		err  error
	}
	slots := make([]slot, len(candidates))

	var wg sync.WaitGroup
	for i, relPath := range candidates {
		wg.Add(1)
		go func(i int, relPath string) {
			defer wg.Done()

			content, err := read(ctx, snap.Abs(relPath))
			if err != nil {
				slots[i].err = errors.Wrapf(err, "failed to read %q", relPath)
				return
			}

			item := ParseItem(content, relPath, snap, locs.Marker)
			if item.FolderPath != "" {
				item.Metadata = LoadInstallMetadata(ctx, read, snap, item.FolderPath)
			}
			slots[i].item = item
		}(i, relPath)
	}
	wg.Wait()

	result := &Result{Items: make([]Item, 0, len(candidates))}
	for _, s := range slots {
		if s.err != nil {
			logger.G(ctx).WithError(s.err).Warn("Skipping unreadable definition")
			result.Diags = multierror.Append(result.Diags, s.err)
			continue
		}
		result.Items = append(result.Items, s.item)
	}

	return result, nil
}
