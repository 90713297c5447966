package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func aggregateFixture() []Item {
	return []Item{
		{ID: "a", Name: "alpha", Source: SourceProjectUniversal, Priority: 1},
		{ID: "b", Name: "security audit", Source: SourceProjectClaude, Priority: 3,
			Capabilities: []string{"Check for insecure dependencies"}},
		{ID: "c", Name: "gamma", Source: SourceGlobalUniversal, Priority: 2},
		{ID: "d", Name: "delta", Source: SourceGlobalClaude, Priority: 4,
			Description: "Formats Go code"},
	}
}

func TestMerge(t *testing.T) {
	local := []Item{{ID: "a"}, {ID: "b"}}
	global := []Item{{ID: "c"}, {ID: "d"}}

	merged := Merge(local, global)

	ids := make([]string, 0, len(merged))
	for _, item := range merged {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)

	t.Run("does not mutate inputs", func(t *testing.T) {
		assert.Len(t, local, 2)
		assert.Len(t, global, 2)
	})

	t.Run("empty sides", func(t *testing.T) {
		assert.Len(t, Merge(nil, global), 2)
		assert.Len(t, Merge(local, nil), 2)
		assert.Empty(t, Merge(nil, nil))
	})
}

func TestFilterCategory(t *testing.T) {
	items := aggregateFixture()

	t.Run("all is a no-op", func(t *testing.T) {
		assert.Equal(t, items, FilterCategory(items, CategoryAll))
	})

	t.Run("project excludes global sources", func(t *testing.T) {
		filtered := FilterCategory(items, CategoryProject)
		assert.Len(t, filtered, 2)
		for _, item := range filtered {
			assert.True(t, item.Source.IsProject())
		}
	})

	t.Run("global keeps only global sources", func(t *testing.T) {
		filtered := FilterCategory(items, CategoryGlobal)
		assert.Len(t, filtered, 2)
		for _, item := range filtered {
			assert.True(t, item.Source.IsGlobal())
		}
	})

	t.Run("underlying list is retained", func(t *testing.T) {
		FilterCategory(items, CategoryGlobal)
		assert.Len(t, items, 4)
	})
}

func TestCategoryCycle(t *testing.T) {
	assert.Equal(t, CategoryProject, CategoryAll.Next())
	assert.Equal(t, CategoryGlobal, CategoryProject.Next())
	assert.Equal(t, CategoryAll, CategoryGlobal.Next())

	assert.True(t, CategoryAll.Valid())
	assert.False(t, Category("bogus").Valid())
}

func TestMatchesQuery(t *testing.T) {
	items := aggregateFixture()

	t.Run("case-insensitive capability substring", func(t *testing.T) {
		filtered := FilterQuery(items, "INSECURE")
		assert.Len(t, filtered, 1)
		assert.Equal(t, "b", filtered[0].ID)
	})

	t.Run("security query finds the audit item", func(t *testing.T) {
		filtered := FilterQuery(items, "security")
		assert.Len(t, filtered, 1)
		assert.Equal(t, []string{"Check for insecure dependencies"}, filtered[0].Capabilities)
	})

	t.Run("matches name description and path", func(t *testing.T) {
		assert.True(t, MatchesQuery(Item{Name: "My Skill"}, "my sk"))
		assert.True(t, MatchesQuery(Item{Description: "Formats Go code"}, "formats"))
		assert.True(t, MatchesQuery(Item{Path: ".claude/skills/x.md"}, "claude"))
		assert.False(t, MatchesQuery(Item{Name: "alpha"}, "zzz"))
	})

	t.Run("blank query matches everything", func(t *testing.T) {
		assert.Equal(t, items, FilterQuery(items, ""))
		assert.Equal(t, items, FilterQuery(items, "   "))
	})
}

func TestFindByID(t *testing.T) {
	items := aggregateFixture()

	item, ok := FindByID(items, "c")
	assert.True(t, ok)
	assert.Equal(t, "gamma", item.Name)

	_, ok = FindByID(items, "missing")
	assert.False(t, ok)
}
