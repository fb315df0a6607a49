package locale

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/Brooooooklyn/i18n-ally/internal/keypath"
)

// ChildKey addresses a child of a Tree: either a name or a list index.
type ChildKey struct {
	name    string
	index   uint32
	indexed bool
}

// Named returns the key for an object member.
func Named(name string) ChildKey { return ChildKey{name: name} }

// Indexed returns the key for a list element.
func Indexed(i uint32) ChildKey { return ChildKey{index: i, indexed: true} }

// IsIndexed reports whether k addresses a list element.
func (k ChildKey) IsIndexed() bool { return k.indexed }

// Index returns the list index of an indexed key.
func (k ChildKey) Index() uint32 { return k.index }

func (k ChildKey) String() string {
	if k.indexed {
		return strconv.FormatUint(uint64(k.index), 10)
	}
	return k.name
}

// parseIndex reports whether s is a non-negative integer list index.
func parseIndex(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// Tree is a keypath segment that has descendants.
type Tree struct {
	Header
	// Values holds leaf values that other files defined at this keypath,
	// keyed by locale.
	Values       map[string]any `json:"values,omitempty"`
	IsCollection bool           `json:"isCollection"`

	keys     []ChildKey
	children map[ChildKey]Entry
}

// NewTree returns an empty tree at path.
func NewTree(path, delimiter string, collection bool) *Tree {
	return &Tree{
		Header:       NewHeader(path, delimiter),
		Values:       make(map[string]any),
		IsCollection: collection,
		children:     make(map[ChildKey]Entry),
	}
}

func (t *Tree) Kind() Kind    { return KindTree }
func (t *Tree) Head() *Header { return &t.Header }
func (t *Tree) sealed()       {}

// Resolve maps a raw segment to the key its child is stored under. The
// named key wins; in a collection a numeric segment falls back to its index.
func (t *Tree) Resolve(key string) (ChildKey, bool) {
	if _, ok := t.children[Named(key)]; ok {
		return Named(key), true
	}
	if !t.IsCollection {
		return ChildKey{}, false
	}
	i, ok := parseIndex(key)
	if !ok {
		return ChildKey{}, false
	}
	if _, ok := t.children[Indexed(i)]; ok {
		return Indexed(i), true
	}
	return ChildKey{}, false
}

// Child returns the child for a raw segment.
func (t *Tree) Child(key string) (Entry, bool) {
	k, ok := t.Resolve(key)
	if !ok {
		return nil, false
	}
	return t.children[k], true
}

// ChildAt returns the list element at i.
func (t *Tree) ChildAt(i int) (Entry, bool) {
	if i < 0 {
		return nil, false
	}
	e, ok := t.children[Indexed(uint32(i))]
	if !ok {
		// Non-collection trees keep numeric segments as names.
		e, ok = t.children[Named(strconv.Itoa(i))]
	}
	return e, ok
}

// ChildByKey returns the child stored under k.
func (t *Tree) ChildByKey(k ChildKey) (Entry, bool) {
	e, ok := t.children[k]
	return e, ok
}

// normalize picks the key a raw segment is stored under.
func (t *Tree) normalize(key string) ChildKey {
	if t.IsCollection {
		if i, ok := parseIndex(key); ok {
			return Indexed(i)
		}
	}
	return Named(key)
}

// SetChild stores e under key, as an index when the tree is a collection
// and key is numeric.
func (t *Tree) SetChild(key string, e Entry) {
	k := t.normalize(key)
	if t.children == nil {
		t.children = make(map[ChildKey]Entry)
	}
	if _, exists := t.children[k]; !exists {
		t.keys = append(t.keys, k)
	}
	t.children[k] = e
}

// Keys returns child keys in insertion order.
func (t *Tree) Keys() []ChildKey {
	return append([]ChildKey(nil), t.keys...)
}

// Len returns the number of children.
func (t *Tree) Len() int { return len(t.keys) }

// Lookup resolves a keypath relative to t. The empty keypath is t itself.
func (t *Tree) Lookup(path string) (Entry, bool) {
	var cur Entry = t
	for _, seg := range keypath.Split(path, t.Delimiter()) {
		tree, ok := cur.(*Tree)
		if !ok {
			return nil, false
		}
		if cur, ok = tree.Child(seg); !ok {
			return nil, false
		}
	}
	return cur, true
}

// Node returns the Node at path.
func (t *Tree) Node(path string) (*Node, bool) {
	e, ok := t.Lookup(path)
	if !ok {
		return nil, false
	}
	n, ok := e.(*Node)
	return n, ok
}

// Walk visits every Node below t depth-first in child order until fn
// returns false.
func (t *Tree) Walk(fn func(*Node) bool) {
	t.walk(fn)
}

func (t *Tree) walk(fn func(*Node) bool) bool {
	for _, k := range t.keys {
		switch e := t.children[k].(type) {
		case *Node:
			if !fn(e) {
				return false
			}
		case *Tree:
			if !e.walk(fn) {
				return false
			}
		}
	}
	return true
}

// Nodes returns every Node below t in walk order.
func (t *Tree) Nodes() []*Node {
	var nodes []*Node
	t.Walk(func(n *Node) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}

// Keypaths returns the keypath of every Node below t in walk order.
func (t *Tree) Keypaths() []string {
	var paths []string
	t.Walk(func(n *Node) bool {
		paths = append(paths, n.Keypath)
		return true
	})
	return paths
}

// Flatten maps every Node keypath below t to its Node.
func (t *Tree) Flatten() map[string]*Node {
	flat := make(map[string]*Node)
	t.Walk(func(n *Node) bool {
		flat[n.Keypath] = n
		return true
	})
	return flat
}

// Locales returns every locale that has at least one record below t, sorted.
func (t *Tree) Locales() []string {
	seen := make(map[string]bool)
	t.Walk(func(n *Node) bool {
		for id := range n.Locales {
			seen[id] = true
		}
		return true
	})
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal reports whether t and other hold the same keypaths with the same
// per-locale values.
func (t *Tree) Equal(other *Tree) bool {
	a, b := t.Flatten(), other.Flatten()
	if len(a) != len(b) {
		return false
	}
	for path, n := range a {
		m, ok := b[path]
		if !ok || len(n.Locales) != len(m.Locales) {
			return false
		}
		for id, r := range n.Locales {
			if v, ok := m.Value(id); !ok || v != r.Value {
				return false
			}
		}
	}
	return true
}

// MarshalJSON includes the children, keyed by their segment.
func (t *Tree) MarshalJSON() ([]byte, error) {
	type plain Tree
	children := make(map[string]Entry, len(t.keys))
	for _, k := range t.keys {
		children[k.String()] = t.children[k]
	}
	return json.Marshal(struct {
		*plain
		Children map[string]Entry `json:"children"`
	}{(*plain)(t), children})
}
