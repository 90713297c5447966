package catalog

import (
	"bytes"
	"path"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/agentdeck/agentdeck/pkg/filetree"
)

const (
	// NoDescription is substituted when a document has no description line.
	NoDescription = "No description available"

	maxCapabilities = 3
)

// Structure sub-resource directory names.
const (
	scriptsDir    = "scripts"
	referencesDir = "references"
	assetsDir     = "assets"
)

var bulletPattern = regexp.MustCompile(`^\s*[-*]\s+(.+)$`)

// ParseItem shapes raw markdown content into an item record. It
// performs no I/O; sibling lookups go through the provided snapshot,
// which may be nil when no structure analysis is wanted. marker is the
// top-level directory name ("skills" or "agents") that denotes a flat
// layout when the file sits directly inside it.
func ParseItem(content []byte, relPath string, snap *filetree.Snapshot, marker string) Item {
	fmName, fmDescription, body := splitFrontmatter(content)

	item := Item{
		ID:      relPath,
		Path:    relPath,
		Name:    deriveName(relPath, marker),
		Content: body,
	}

	// Frontmatter takes precedence over derived and scanned values
	if fmName != "" {
		item.Name = fmName
	}

	item.Description = extractDescription(body)
	if fmDescription != "" {
		item.Description = fmDescription
	}

	item.Capabilities = extractCapabilities(body)

	folder := itemFolder(relPath, marker)
	item.FolderPath = folder
	if folder != "" && snap != nil {
		item.ScriptFiles = filesUnder(snap, folder, scriptsDir)
		item.ReferenceFiles = filesUnder(snap, folder, referencesDir)
		item.AssetFiles = filesUnder(snap, folder, assetsDir)
		item.HasScripts = len(item.ScriptFiles) > 0
		item.HasReferences = len(item.ReferenceFiles) > 0
		item.HasAssets = len(item.AssetFiles) > 0
	}

	item.Source = ClassifySource(relPath)
	item.Priority = item.Source.Priority()

	return item
}

// ClassifySource maps a relative path onto a project provenance
// category by fixed directory conventions. Global items never pass
// through here; their source is assigned by the loader that built them.
func ClassifySource(relPath string) Source {
	p := "/" + strings.TrimPrefix(relPath, "/")
	switch {
	case strings.Contains(p, "/.agents/"):
		return SourceProjectUniversal
	case strings.Contains(p, "/.claude/"):
		return SourceProjectClaude
	default:
		return SourceProjectOther
	}
}

// splitFrontmatter separates optional YAML frontmatter from the body
// and extracts the name and description fields when present. Documents
// without frontmatter pass through untouched.
func splitFrontmatter(content []byte) (name, description, body string) {
	body = string(content)
	if !bytes.HasPrefix(content, []byte("---")) {
		return "", "", body
	}

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return "", "", body
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return "", "", body
	}

	name, _ = metaData["name"].(string)
	description, _ = metaData["description"].(string)
	return name, description, stripFrontmatter(body)
}

// stripFrontmatter removes the leading YAML frontmatter block.
func stripFrontmatter(content string) string {
	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return content
	}
	return strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n")
}

// deriveName derives the display name from the path. A file directly
// inside a directory literally named after the marker keeps its own
// base name; otherwise the parent directory names the item. Hyphens
// and underscores become spaces either way.
func deriveName(relPath, marker string) string {
	dir := path.Dir(relPath)
	base := strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))

	name := base
	if dir != "." && path.Base(dir) != marker {
		name = path.Base(dir)
	}

	return strings.NewReplacer("-", " ", "_", " ").Replace(name)
}

// itemFolder returns the directory holding the item's auxiliary
// resources, or "" for a standalone file directly under the marker
// directory or at the tree root.
func itemFolder(relPath, marker string) string {
	dir := path.Dir(relPath)
	if dir == "." || path.Base(dir) == marker {
		return ""
	}
	return dir
}

// extractDescription scans lines in order and returns the first
// non-empty, non-heading line after the first heading.
func extractDescription(body string) string {
	seenHeading := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			seenHeading = true
			continue
		}
		if seenHeading && trimmed != "" {
			return trimmed
		}
	}
	return NoDescription
}

// extractCapabilities collects bullet-list lines in document order,
// capped at maxCapabilities.
func extractCapabilities(body string) []string {
	var caps []string
	for _, line := range strings.Split(body, "\n") {
		m := bulletPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		caps = append(caps, strings.TrimSpace(m[1]))
		if len(caps) == maxCapabilities {
			break
		}
	}
	return caps
}

// filesUnder lists the names of snapshot entries directly or
// transitively under <folder>/<sub>/.
func filesUnder(snap *filetree.Snapshot, folder, sub string) []string {
	prefix := folder + "/" + sub + "/"

	var names []string
	for _, entry := range snap.Entries {
		if strings.HasPrefix(entry.RelativePath, prefix) {
			names = append(names, entry.Name)
		}
	}
	return names
}
