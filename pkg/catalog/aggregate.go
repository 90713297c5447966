package catalog

import "strings"

// Category is the three-way presentation filter over sources.
type Category string

// Category values.
const (
	CategoryAll     Category = "all"
	CategoryProject Category = "project"
	CategoryGlobal  Category = "global"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryAll, CategoryProject, CategoryGlobal:
		return true
	}
	return false
}

// Next cycles all -> project -> global -> all.
func (c Category) Next() Category {
	switch c {
	case CategoryAll:
		return CategoryProject
	case CategoryProject:
		return CategoryGlobal
	default:
		return CategoryAll
	}
}

// Merge concatenates locally discovered items with host-supplied global
// items. No de-duplication and no re-sorting: display order is
// discovery order followed by supplied order.
func Merge(local, global []Item) []Item {
	merged := make([]Item, 0, len(local)+len(global))
	merged = append(merged, local...)
	merged = append(merged, global...)
	return merged
}

// FilterCategory narrows a list to the given category without mutating
// the input. CategoryAll is a no-op.
func FilterCategory(items []Item, category Category) []Item {
	if category == CategoryAll {
		return items
	}

	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		switch category {
		case CategoryProject:
			if item.Source.IsProject() {
				filtered = append(filtered, item)
			}
		case CategoryGlobal:
			if item.Source.IsGlobal() {
				filtered = append(filtered, item)
			}
		}
	}
	return filtered
}

// MatchesQuery reports whether an item matches a free-text query:
// case-insensitive substring over name, description, each capability,
// and path. A blank query matches everything.
func MatchesQuery(item Item, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	if strings.Contains(strings.ToLower(item.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), q) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Path), q) {
		return true
	}
	for _, capability := range item.Capabilities {
		if strings.Contains(strings.ToLower(capability), q) {
			return true
		}
	}
	return false
}

// FilterQuery narrows a list to items matching the query without
// mutating the input.
func FilterQuery(items []Item, query string) []Item {
	if strings.TrimSpace(query) == "" {
		return items
	}

	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if MatchesQuery(item, query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FindByID returns the item with the given id, if present.
func FindByID(items []Item, id string) (Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
