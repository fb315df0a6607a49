package locale_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brooooooklyn/i18n-ally/internal/locale"
)

func leaf(path, loc, value string) *locale.Node {
	return &locale.Node{
		Header: locale.NewHeader(path, "."),
		Locales: map[string]*locale.Record{
			loc: {Header: locale.NewHeader(path, "."), Locale: loc, Value: value},
		},
	}
}

func TestHeader(t *testing.T) {
	t.Parallel()

	t.Run("keyname defaults to last segment", func(t *testing.T) {
		h := locale.NewHeader("a.b.c", ".")
		assert.Equal(t, "c", h.Keyname)
	})

	t.Run("relative keypath strips namespace", func(t *testing.T) {
		h := locale.NewHeader("ns.a.b", ".")
		h.Namespace = "ns"
		assert.Equal(t, "a.b", h.RelativeKeypath())
	})

	t.Run("relative keypath without namespace", func(t *testing.T) {
		h := locale.NewHeader("ns.a.b", ".")
		assert.Equal(t, "ns.a.b", h.RelativeKeypath())
	})
}

func TestNodeValue(t *testing.T) {
	t.Parallel()

	n := leaf("hello", "en", "Hi")
	n.Locales["fr"] = &locale.Record{Locale: "fr", Value: "Salut"}

	v, ok := n.Value("en")
	require.True(t, ok)
	assert.Equal(t, "Hi", v)

	v, ok = n.Value("de")
	assert.False(t, ok)
	assert.Empty(t, v)

	assert.Equal(t, "Salut", n.DisplayValue(locale.Display{Locale: "fr"}))
	assert.Equal(t, "Hi", n.DisplayValue(locale.Display{Locale: "de", Fallback: "en"}))
	assert.Empty(t, n.DisplayValue(locale.Display{Locale: "de"}))
	assert.Equal(t, []string{"en", "fr"}, n.LocaleIDs())
	assert.Equal(t, []string{"de"}, n.MissingLocales([]string{"de", "en", "fr"}))
}

func TestTreeChildLookup(t *testing.T) {
	t.Parallel()

	t.Run("collection resolves numeric strings to indexes", func(t *testing.T) {
		tree := locale.NewTree("list", ".", true)
		tree.SetChild("0", leaf("list.0", "en", "x"))
		tree.SetChild("1", leaf("list.1", "en", "y"))

		byString, ok := tree.Child("1")
		require.True(t, ok)
		byIndex, ok := tree.ChildAt(1)
		require.True(t, ok)
		assert.Same(t, byString, byIndex)

		k, ok := tree.Resolve("1")
		require.True(t, ok)
		assert.True(t, k.IsIndexed())
		assert.EqualValues(t, 1, k.Index())

		_, ok = tree.Child("name")
		assert.False(t, ok)
	})

	t.Run("named key wins over index", func(t *testing.T) {
		tree := locale.NewTree("list", ".", false)
		named := leaf("list.1", "en", "named")
		tree.SetChild("1", named)
		tree.IsCollection = true
		indexed := leaf("list.1", "en", "indexed")
		tree.SetChild("1", indexed)

		got, ok := tree.Child("1")
		require.True(t, ok)
		assert.Same(t, named, got)
		got, ok = tree.ChildByKey(locale.Indexed(1))
		require.True(t, ok)
		assert.Same(t, indexed, got)
	})

	t.Run("object tree keeps numeric names", func(t *testing.T) {
		tree := locale.NewTree("obj", ".", false)
		tree.SetChild("2", leaf("obj.2", "en", "two"))

		_, ok := tree.ChildByKey(locale.Named("2"))
		assert.True(t, ok)
		_, ok = tree.ChildByKey(locale.Indexed(2))
		assert.False(t, ok)
		_, ok = tree.ChildAt(2)
		assert.True(t, ok)
	})

	t.Run("keys keep insertion order", func(t *testing.T) {
		tree := locale.NewTree("", ".", false)
		tree.SetChild("b", leaf("b", "en", "b"))
		tree.SetChild("a", leaf("a", "en", "a"))
		tree.SetChild("b", leaf("b", "en", "b2"))

		assert.Equal(t, []locale.ChildKey{locale.Named("b"), locale.Named("a")}, tree.Keys())
		assert.Equal(t, 2, tree.Len())
	})
}

func TestTreeLookup(t *testing.T) {
	t.Parallel()

	root := locale.Build([]locale.ParsedFile{{
		Locale: "en",
		Value: map[string]any{
			"menu": map[string]any{"file": map[string]any{"open": "Open"}},
			"list": []any{"x", "y"},
		},
	}})

	e, ok := root.Lookup("menu.file.open")
	require.True(t, ok)
	assert.Equal(t, locale.KindNode, e.Kind())

	e, ok = root.Lookup("menu.file")
	require.True(t, ok)
	assert.Equal(t, locale.KindTree, e.Kind())

	n, ok := root.Node("list.1")
	require.True(t, ok)
	v, _ := n.Value("en")
	assert.Equal(t, "y", v)

	_, ok = root.Lookup("menu.file.open.deeper")
	assert.False(t, ok)
	_, ok = root.Lookup("menu.edit")
	assert.False(t, ok)

	assert.Equal(t, []string{"list.0", "list.1", "menu.file.open"}, root.Keypaths())
	assert.Len(t, root.Flatten(), 3)
	assert.Len(t, root.Nodes(), 3)
}

func TestTreeWalkStops(t *testing.T) {
	t.Parallel()

	root := locale.Build([]locale.ParsedFile{{
		Locale: "en",
		Value:  map[string]any{"a": "1", "b": "2", "c": "3"},
	}})

	var seen []string
	root.Walk(func(n *locale.Node) bool {
		seen = append(seen, n.Keypath)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestTreeMarshalJSON(t *testing.T) {
	t.Parallel()

	root := locale.Build([]locale.ParsedFile{{
		Locale: "en",
		Value:  map[string]any{"list": []any{"x"}},
	}})
	list, ok := root.Lookup("list")
	require.True(t, ok)

	data, err := json.Marshal(list)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "list", got["keypath"])
	assert.Equal(t, true, got["isCollection"])
	children, ok := got["children"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, children, "0")
}
