package locale

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/Brooooooklyn/i18n-ally/internal/keypath"
)

// ParsedFile is one locale file after parsing. Value is the nested payload:
// map[string]any or []any containers with scalar leaves.
type ParsedFile struct {
	Filepath  string
	Locale    string
	Namespace string
	Readonly  bool
	Features  *Features
	Meta      *Meta
	Value     any
}

// BuildOption configures Build.
type BuildOption func(*builder)

// WithDelimiter sets the keypath segment separator.
func WithDelimiter(delimiter string) BuildOption {
	return func(b *builder) {
		if delimiter != "" {
			b.delimiter = delimiter
		}
	}
}

type builder struct {
	delimiter string
	locales   map[string]bool
}

// Build merges files, in order, into a single tree. The result depends only
// on the input sequence. When files disagree on whether a keypath is a leaf
// or a subtree, the first shape seen wins and the others are kept in
// Tree.Values or Node.Conflicts.
func Build(files []ParsedFile, opts ...BuildOption) *Tree {
	b := &builder{
		delimiter: keypath.DefaultDelimiter,
		locales:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(b)
	}

	root := NewTree("", b.delimiter, false)
	for i := range files {
		f := &files[i]
		b.locales[f.Locale] = true
		parent := root
		if f.Namespace != "" {
			parent = b.namespaceTree(root, f)
			if parent == nil {
				continue
			}
		}
		b.merge(parent, f, f.Value)
	}
	b.markShadows(root)
	return root
}

// namespaceTree returns the subtree a namespaced file is merged into.
func (b *builder) namespaceTree(root *Tree, f *ParsedFile) *Tree {
	segments := keypath.Split(f.Namespace, b.delimiter)
	tree := root
	for i, seg := range segments {
		collection := i == len(segments)-1 && isCollection(f.Value)
		switch e := b.ensureTree(tree, seg, f, collection).(type) {
		case *Tree:
			tree = e
		case *Node:
			e.recordConflict(f.Locale, f.Value)
			return nil
		}
	}
	return tree
}

// merge folds value into tree, which is the tree for the keypath value
// belongs to.
func (b *builder) merge(tree *Tree, f *ParsedFile, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sortSegments(keys)
		for _, k := range keys {
			parent, key := b.unflatten(tree, k, f, v[k])
			if parent == nil {
				continue
			}
			b.mergeChild(parent, key, f, v[k])
		}
	case []any:
		for i, item := range v {
			b.mergeChild(tree, strconv.Itoa(i), f, item)
		}
	default:
		// A scalar at the payload root has no keypath to live under.
		if tree.Keypath != "" {
			tree.recordConflict(f.Locale, value)
		}
	}
}

// unflatten resolves a flat key such as "menu.title" to the tree it
// belongs to and its last segment, creating intermediate trees. Keys with
// an empty segment stay literal. A nil tree means an intermediate segment
// is a Node; the value is recorded as a conflict on it.
func (b *builder) unflatten(tree *Tree, key string, f *ParsedFile, value any) (*Tree, string) {
	if !strings.Contains(key, b.delimiter) {
		return tree, key
	}
	segments := keypath.Split(key, b.delimiter)
	if slices.Contains(segments, "") {
		return tree, key
	}
	last := len(segments) - 1
	for i, seg := range segments[:last] {
		switch e := b.ensureTree(tree, seg, f, false).(type) {
		case *Tree:
			tree = e
		case *Node:
			rest := strings.Join(segments[i+1:], b.delimiter)
			e.recordConflict(f.Locale, map[string]any{rest: value})
			return nil, ""
		}
	}
	return tree, segments[last]
}

func (b *builder) mergeChild(tree *Tree, key string, f *ParsedFile, value any) {
	if isContainer(value) {
		switch e := b.ensureTree(tree, key, f, isCollection(value)).(type) {
		case *Tree:
			b.merge(e, f, value)
		case *Node:
			e.recordConflict(f.Locale, value)
		}
		return
	}

	switch e := b.lookupChild(tree, key).(type) {
	case *Tree:
		e.recordConflict(f.Locale, value)
	case *Node:
		e.Locales[f.Locale] = b.newRecord(e.Keypath, f, value)
	default:
		path := keypath.Join(b.delimiter, tree.Keypath, key)
		n := &Node{
			Header:  b.header(path, f),
			Locales: make(map[string]*Record),
		}
		n.Locales[f.Locale] = b.newRecord(path, f, value)
		tree.SetChild(key, n)
	}
}

// ensureTree returns the child of tree at key, creating a Tree when absent.
// An existing Node is returned as-is so the caller can record the conflict.
func (b *builder) ensureTree(tree *Tree, key string, f *ParsedFile, collection bool) Entry {
	if e := b.lookupChild(tree, key); e != nil {
		return e
	}
	child := &Tree{
		Header:       b.header(keypath.Join(b.delimiter, tree.Keypath, key), f),
		Values:       make(map[string]any),
		IsCollection: collection,
		children:     make(map[ChildKey]Entry),
	}
	tree.SetChild(key, child)
	return child
}

func (b *builder) lookupChild(tree *Tree, key string) Entry {
	if e, ok := tree.ChildByKey(tree.normalize(key)); ok {
		return e
	}
	return nil
}

func (b *builder) header(path string, f *ParsedFile) Header {
	h := NewHeader(path, b.delimiter)
	h.Filepath = f.Filepath
	h.Namespace = f.Namespace
	h.Readonly = f.Readonly
	h.Features = f.Features
	h.Meta = f.Meta
	return h
}

func (b *builder) newRecord(path string, f *ParsedFile, value any) *Record {
	return &Record{
		Header: b.header(path, f),
		Locale: f.Locale,
		Value:  scalarString(value),
	}
}

// markShadows flags nodes that lack a record for some locale of the build.
func (b *builder) markShadows(root *Tree) {
	root.Walk(func(n *Node) bool {
		n.Shadow = len(n.Locales) < len(b.locales)
		return true
	})
}

func (t *Tree) recordConflict(locale string, value any) {
	if t.Values == nil {
		t.Values = make(map[string]any)
	}
	t.Values[locale] = value
}

func (n *Node) recordConflict(locale string, value any) {
	if n.Conflicts == nil {
		n.Conflicts = make(map[string]any)
	}
	n.Conflicts[locale] = value
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

// isCollection reports whether v is list-shaped: a slice, or a non-empty map
// whose keys are all non-negative integers.
func isCollection(v any) bool {
	switch c := v.(type) {
	case []any:
		return true
	case map[string]any:
		if len(c) == 0 {
			return false
		}
		for k := range c {
			if _, ok := parseIndex(k); !ok {
				return false
			}
		}
		return true
	}
	return false
}

// sortSegments orders numeric segments numerically ahead of named ones.
func sortSegments(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, aok := parseIndex(keys[i])
		c, cok := parseIndex(keys[j])
		switch {
		case aok && cok:
			return a < c
		case aok != cok:
			return aok
		default:
			return keys[i] < keys[j]
		}
	})
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	default:
		return fmt.Sprint(s)
	}
}
