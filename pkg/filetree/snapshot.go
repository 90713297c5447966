// Package filetree provides point-in-time, flattened snapshots of a
// repository's file tree. A snapshot carries a content-addressed version
// marker so consumers can cheaply detect that the tree changed between
// two discovery passes.
package filetree

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Entry is a single file in a snapshot. RelativePath is slash-separated
// and relative to the snapshot root.
type Entry struct {
	Name         string `json:"name"`
	RelativePath string `json:"relativePath"`
}

// Snapshot is an immutable, flattened listing of a repository's files.
type Snapshot struct {
	Root    string
	Entries []Entry

	version string
}

// New builds a snapshot from an already-collected entry list.
func New(root string, entries []Entry) *Snapshot {
	return &Snapshot{
		Root:    root,
		Entries: entries,
		version: computeVersion(entries),
	}
}

// DefaultIgnoreDirs are directory names excluded from snapshots.
var DefaultIgnoreDirs = []string{".git", "node_modules", "vendor"}

// BuildSnapshot walks root and collects every regular file into a flat
// entry list. Directories named in ignoreDirs are skipped entirely.
func BuildSnapshot(root string, ignoreDirs []string) (*Snapshot, error) {
	if root == "" {
		return nil, errors.New("snapshot root cannot be empty")
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat snapshot root %q", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("snapshot root %q is not a directory", root)
	}

	ignored := make(map[string]bool, len(ignoreDirs))
	for _, dir := range ignoreDirs {
		ignored[dir] = true
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && ignored[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		entries = append(entries, Entry{
			Name:         d.Name(),
			RelativePath: filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk snapshot root")
	}

	return New(root, entries), nil
}

// Version returns the content-addressed marker for this snapshot. Two
// snapshots with the same file list have the same version.
func (s *Snapshot) Version() string {
	return s.version
}

// Abs resolves a slash-separated relative path against the snapshot root.
func (s *Snapshot) Abs(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// Len returns the number of files in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Entries)
}

func computeVersion(entries []Entry) string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.RelativePath)
	}
	sort.Strings(paths)

	sum := sha256.Sum256([]byte(strings.Join(paths, "\n")))
	return hex.EncodeToString(sum[:])
}
