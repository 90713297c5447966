package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatePaths(t *testing.T) {
	t.Run("selects markdown files under known locations", func(t *testing.T) {
		snap := testSnapshot(
			".claude/skills/pdf/SKILL.md",
			".agents/skills/review.md",
			"tools/random/SKILL.md",
			"nested/pkg/.agents/skills/fmt.md",
			"src/main.go",
			"docs/guide.md",
		)

		paths := CandidatePaths(snap, SkillLocations())
		assert.Equal(t, []string{
			".claude/skills/pdf/SKILL.md",
			".agents/skills/review.md",
			"tools/random/SKILL.md",
			"nested/pkg/.agents/skills/fmt.md",
		}, paths)
	})

	t.Run("excludes metadata files", func(t *testing.T) {
		snap := testSnapshot(
			".claude/skills/pdf/SKILL.md",
			".claude/skills/pdf/README.md",
			".claude/skills/pdf/.hidden.md",
		)

		paths := CandidatePaths(snap, SkillLocations())
		assert.Equal(t, []string{".claude/skills/pdf/SKILL.md"}, paths)
	})

	t.Run("empty tree yields empty result", func(t *testing.T) {
		snap := testSnapshot()
		assert.Empty(t, CandidatePaths(snap, SkillLocations()))
	})

	t.Run("nil snapshot yields empty result", func(t *testing.T) {
		assert.Empty(t, CandidatePaths(nil, SkillLocations()))
	})

	t.Run("agent locations ignore skill directories", func(t *testing.T) {
		snap := testSnapshot(
			".claude/agents/reviewer.md",
			".agents/agents/planner.md",
			".claude/skills/pdf/SKILL.md",
		)

		paths := CandidatePaths(snap, AgentLocations())
		assert.Equal(t, []string{
			".claude/agents/reviewer.md",
			".agents/agents/planner.md",
		}, paths)
	})
}

func TestDiscover(t *testing.T) {
	snap := testSnapshot(
		".claude/skills/alpha/SKILL.md",
		".claude/skills/beta/SKILL.md",
	)

	contents := map[string]string{
		"/repo/.claude/skills/alpha/SKILL.md": "# Alpha\n\nFirst skill.\n",
		"/repo/.claude/skills/beta/SKILL.md":  "# Beta\n\nSecond skill.\n",
	}
	read := func(_ context.Context, path string) ([]byte, error) {
		content, ok := contents[path]
		if !ok {
			return nil, errors.Errorf("no such file: %s", path)
		}
		return []byte(content), nil
	}

	t.Run("parses all candidates in discovery order", func(t *testing.T) {
		result, err := Discover(context.Background(), snap, read, SkillLocations())
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.NoError(t, result.Diags)

		assert.Equal(t, "alpha", result.Items[0].Name)
		assert.Equal(t, ".claude/skills/alpha/SKILL.md", result.Items[0].ID)
		assert.Equal(t, SourceProjectClaude, result.Items[0].Source)
		assert.Equal(t, "beta", result.Items[1].Name)
	})

	t.Run("result order is candidate order when reads finish out of order", func(t *testing.T) {
		slow := func(ctx context.Context, path string) ([]byte, error) {
			// Hold back the first candidate so the second one settles first
			if strings.Contains(path, "alpha") {
				time.Sleep(50 * time.Millisecond)
			}
			return read(ctx, path)
		}

		result, err := Discover(context.Background(), snap, slow, SkillLocations())
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "alpha", result.Items[0].Name)
		assert.Equal(t, "beta", result.Items[1].Name)
	})

	t.Run("single read failure drops only that item", func(t *testing.T) {
		failing := func(ctx context.Context, path string) ([]byte, error) {
			if strings.Contains(path, "alpha") {
				return nil, errors.New("permission denied")
			}
			return read(ctx, path)
		}

		result, err := Discover(context.Background(), snap, failing, SkillLocations())
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "beta", result.Items[0].Name)
		assert.Error(t, result.Diags)
	})

	t.Run("nil snapshot is a hard failure", func(t *testing.T) {
		_, err := Discover(context.Background(), nil, read, SkillLocations())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no file tree snapshot")
	})

	t.Run("missing read capability is a hard failure", func(t *testing.T) {
		_, err := Discover(context.Background(), snap, nil, SkillLocations())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no read capability")
	})

	t.Run("empty tree discovers nothing without error", func(t *testing.T) {
		result, err := Discover(context.Background(), testSnapshot(), read, SkillLocations())
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.NoError(t, result.Diags)
	})
}
