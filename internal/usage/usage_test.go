package usage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brooooooklyn/i18n-ally/internal/locale"
	"github.com/Brooooooklyn/i18n-ally/internal/usage"
)

func tree() *locale.Tree {
	return locale.Build([]locale.ParsedFile{{
		Locale: "en",
		Value:  map[string]any{"hello": "Hi", "bye": "Bye"},
	}})
}

func occurrence(key, file string, start int) usage.Occurrence {
	return usage.Occurrence{Keypath: key, Filepath: file, Start: start, End: start + len(key)}
}

func TestFind(t *testing.T) {
	t.Parallel()

	t.Run("active and idle", func(t *testing.T) {
		r := usage.Find(tree(), []usage.KeyUsage{
			{Keypath: "hello", Occurrences: []usage.Occurrence{occurrence("hello", "app.vue", 10)}},
		})
		assert.Equal(t, []string{"hello"}, usage.Keypaths(r.Active))
		assert.Equal(t, []string{"bye"}, usage.Keypaths(r.Idle))
		assert.Empty(t, r.Missing)
	})

	t.Run("used but undefined", func(t *testing.T) {
		r := usage.Find(tree(), []usage.KeyUsage{
			{Keypath: "greet", Occurrences: []usage.Occurrence{occurrence("greet", "app.vue", 3)}},
		})
		assert.Empty(t, r.Active)
		assert.Equal(t, []string{"greet"}, usage.Keypaths(r.Missing))
		assert.Equal(t, []string{"bye", "hello"}, usage.Keypaths(r.Idle))
	})

	t.Run("tree keys count as active", func(t *testing.T) {
		root := locale.Build([]locale.ParsedFile{{
			Locale: "en",
			Value:  map[string]any{"menu": map[string]any{"open": "Open"}},
		}})
		r := usage.Find(root, []usage.KeyUsage{{Keypath: "menu"}})
		assert.Equal(t, []string{"menu"}, usage.Keypaths(r.Active))
		assert.Equal(t, []string{"menu.open"}, usage.Keypaths(r.Idle))
	})

	t.Run("duplicate occurrences preserved", func(t *testing.T) {
		dup := occurrence("hello", "app.vue", 10)
		r := usage.Find(tree(), []usage.KeyUsage{
			{Keypath: "hello", Occurrences: []usage.Occurrence{dup, dup}},
		})
		require.Len(t, r.Active, 1)
		assert.Len(t, r.Active[0].Occurrences, 2)
	})

	t.Run("no usages", func(t *testing.T) {
		r := usage.Find(tree(), nil)
		assert.Empty(t, r.Active)
		assert.Empty(t, r.Missing)
		assert.Len(t, r.Idle, 2)
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()

	merged := usage.Merge([]usage.Occurrence{
		occurrence("b", "x.ts", 1),
		occurrence("a", "x.ts", 5),
		occurrence("b", "y.ts", 2),
		occurrence("b", "y.ts", 2),
	})
	require.Len(t, merged, 2)
	assert.Equal(t, "b", merged[0].Keypath)
	assert.Len(t, merged[0].Occurrences, 3)
	assert.Equal(t, "a", merged[1].Keypath)
	assert.Len(t, merged[1].Occurrences, 1)

	assert.Empty(t, usage.Merge(nil))
}

func TestFindFlatKeys(t *testing.T) {
	root := locale.Build([]locale.ParsedFile{{
		Locale: "en",
		Value:  map[string]any{"menu.title": "Menu", "menu.unused": "Unused"},
	}})

	r := usage.Find(root, []usage.KeyUsage{{
		Keypath:     "menu.title",
		Occurrences: []usage.Occurrence{occurrence("menu.title", "app.ts", 0)},
	}})
	assert.Equal(t, []string{"menu.title"}, usage.Keypaths(r.Active))
	assert.Equal(t, []string{"menu.unused"}, usage.Keypaths(r.Idle))
	assert.Empty(t, r.Missing)
}
