// Package catalog discovers, parses, and classifies markdown-described
// skill and agent definitions. Definitions live either in a
// repository's file tree (project items) or in user-global directories
// (global items). The package is pure data-shaping: all inputs (the
// file-tree snapshot, the read capability, global item lists) are
// passed explicitly by the caller.
package catalog

import "time"

// Source classifies where an item was discovered and by which
// directory convention. The set is closed; category-dependent logic
// switches exhaustively over these values.
type Source string

// The five provenance categories.
const (
	SourceProjectUniversal Source = "project-universal"
	SourceGlobalUniversal  Source = "global-universal"
	SourceProjectClaude    Source = "project-claude"
	SourceGlobalClaude     Source = "global-claude"
	SourceProjectOther     Source = "project-other"
)

// Priority returns the display rank for a source. It is fully
// determined by the source and used only for display and sorting,
// never for exclusion.
func (s Source) Priority() int {
	switch s {
	case SourceProjectUniversal:
		return 1
	case SourceGlobalUniversal:
		return 2
	case SourceProjectClaude:
		return 3
	case SourceGlobalClaude:
		return 4
	case SourceProjectOther:
		return 5
	default:
		return 5
	}
}

// IsGlobal reports whether the source denotes a user-global location.
func (s Source) IsGlobal() bool {
	return s == SourceGlobalUniversal || s == SourceGlobalClaude
}

// IsProject reports whether the source denotes an in-repository location.
func (s Source) IsProject() bool {
	return !s.IsGlobal()
}

// InstallMetadata is installation provenance read from an optional
// .metadata.json side file in the item's folder. Absence of the file
// is not an error.
type InstallMetadata struct {
	Origin      string    `json:"origin" yaml:"origin" mapstructure:"origin"`
	Repository  string    `json:"repository" yaml:"repository" mapstructure:"repository"`
	Branch      string    `json:"branch" yaml:"branch" mapstructure:"branch"`
	Commit      string    `json:"commit" yaml:"commit" mapstructure:"commit"`
	InstalledAt time.Time `json:"installedAt" yaml:"installedAt" mapstructure:"installedAt"`
	Files       []string  `json:"files,omitempty" yaml:"files,omitempty" mapstructure:"files"`
}

// Item is a discovered or externally supplied definition. Items are
// immutable once constructed; a refresh discards and rebuilds the whole
// local list rather than mutating in place.
type Item struct {
	// ID uniquely identifies the item within one aggregated list. For
	// local items it equals the relative path.
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`

	Description  string   `json:"description" yaml:"description"`
	Content      string   `json:"content" yaml:"content"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`

	// FolderPath is the directory holding the item and its auxiliary
	// resources; empty for standalone files directly under a marker
	// directory.
	FolderPath string `json:"folderPath,omitempty" yaml:"folderPath,omitempty"`

	HasScripts    bool `json:"hasScripts" yaml:"hasScripts"`
	HasReferences bool `json:"hasReferences" yaml:"hasReferences"`
	HasAssets     bool `json:"hasAssets" yaml:"hasAssets"`

	ScriptFiles    []string `json:"scriptFiles,omitempty" yaml:"scriptFiles,omitempty"`
	ReferenceFiles []string `json:"referenceFiles,omitempty" yaml:"referenceFiles,omitempty"`
	AssetFiles     []string `json:"assetFiles,omitempty" yaml:"assetFiles,omitempty"`

	Source   Source `json:"source" yaml:"source"`
	Priority int    `json:"priority" yaml:"priority"`

	Metadata *InstallMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
