// Package locale models the merged translation tree: one Record per locale
// and keypath, one Node per keypath across locales, and Trees for every
// keypath segment that has descendants.
package locale

import (
	"sort"

	"github.com/Brooooooklyn/i18n-ally/internal/keypath"
)

// Kind tags the variant of an Entry.
type Kind int

const (
	KindRecord Kind = iota
	KindNode
	KindTree
)

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindNode:
		return "node"
	case KindTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Features are optional per-file capabilities.
type Features struct {
	VueSFC    bool `json:"vueSfc,omitempty"`
	Namespace bool `json:"namespace,omitempty"`
}

// Meta holds optional per-file positional data.
type Meta struct {
	VueSFCSectionIndex int `json:"vueSfcSectionIndex"`
}

// Header is the set of fields shared by Record, Node and Tree.
type Header struct {
	Keypath   string    `json:"keypath"`
	Keyname   string    `json:"keyname"`
	Filepath  string    `json:"filepath,omitempty"`
	Namespace string    `json:"namespace,omitempty"`
	Shadow    bool      `json:"shadow,omitempty"`
	Readonly  bool      `json:"readonly,omitempty"`
	Features  *Features `json:"features,omitempty"`
	Meta      *Meta     `json:"meta,omitempty"`

	delimiter string
}

// NewHeader returns a Header for keypath. Keyname defaults to the last
// keypath segment.
func NewHeader(path, delimiter string) Header {
	if delimiter == "" {
		delimiter = keypath.DefaultDelimiter
	}
	return Header{
		Keypath:   path,
		Keyname:   keypath.Keyname(path, delimiter),
		delimiter: delimiter,
	}
}

// RelativeKeypath is the keypath without its namespace prefix.
func (h *Header) RelativeKeypath() string {
	return keypath.Relative(h.Keypath, h.Namespace, h.delimiter)
}

// Delimiter is the keypath separator this entry was built with.
func (h *Header) Delimiter() string {
	if h.delimiter == "" {
		return keypath.DefaultDelimiter
	}
	return h.delimiter
}

// Entry is one of *Record, *Node or *Tree.
type Entry interface {
	Kind() Kind
	Head() *Header
	sealed()
}

// Record is a single locale's value for one keypath.
type Record struct {
	Header
	Locale string `json:"locale"`
	Value  string `json:"value"`
}

func (r *Record) Kind() Kind { return KindRecord }
func (r *Record) Head() *Header { return &r.Header }
func (r *Record) sealed() {}

// Display selects the locale used when a caller does not name one.
// Fallback is consulted when Locale has no record.
type Display struct {
	Locale   string
	Fallback string
}

// Node is one logical key across all locales.
type Node struct {
	Header
	Locales map[string]*Record `json:"locales"`
	// Conflicts holds subtrees that other files defined at this keypath,
	// keyed by locale.
	Conflicts map[string]any `json:"conflicts,omitempty"`
}

func (n *Node) Kind() Kind { return KindNode }
func (n *Node) Head() *Header { return &n.Header }
func (n *Node) sealed() {}

// Record returns the record for locale.
func (n *Node) Record(locale string) (*Record, bool) {
	r, ok := n.Locales[locale]
	return r, ok
}

// Value returns the translated value for locale. A missing translation
// reports false and is not an error.
func (n *Node) Value(locale string) (string, bool) {
	r, ok := n.Locales[locale]
	if !ok {
		return "", false
	}
	return r.Value, true
}

// DisplayValue resolves the value for d.Locale, then d.Fallback, and
// returns an empty string when neither has a record.
func (n *Node) DisplayValue(d Display) string {
	if v, ok := n.Value(d.Locale); ok {
		return v
	}
	if d.Fallback != "" {
		if v, ok := n.Value(d.Fallback); ok {
			return v
		}
	}
	return ""
}

// LocaleIDs returns the locales that have a record, sorted.
func (n *Node) LocaleIDs() []string {
	ids := make([]string, 0, len(n.Locales))
	for id := range n.Locales {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MissingLocales returns the members of all without a record on n.
func (n *Node) MissingLocales(all []string) []string {
	var missing []string
	for _, id := range all {
		if _, ok := n.Locales[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
