// Package usage cross-references keys found in source code against the
// keys defined in a locale tree.
package usage

import (
	"github.com/Brooooooklyn/i18n-ally/internal/locale"
)

// Occurrence records where a translation key is used.
type Occurrence struct {
	Keypath  string `json:"keypath"`
	Filepath string `json:"filepath"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Line     int    `json:"line,omitempty"`
}

// KeyUsage is a keypath with every place it is used.
type KeyUsage struct {
	Keypath     string       `json:"keypath"`
	Occurrences []Occurrence `json:"occurrences"`
}

// Report classifies keys as active (used and defined), idle (defined but
// unused) or missing (used but undefined).
type Report struct {
	Active  []KeyUsage `json:"active"`
	Idle    []KeyUsage `json:"idle"`
	Missing []KeyUsage `json:"missing"`
}

// Find classifies usages against root. Active and Missing keep the input
// order; Idle follows the tree's walk order.
func Find(root *locale.Tree, usages []KeyUsage) Report {
	r := Report{
		Active:  []KeyUsage{},
		Idle:    []KeyUsage{},
		Missing: []KeyUsage{},
	}
	used := make(map[string]bool, len(usages))
	for _, u := range usages {
		used[u.Keypath] = true
		if _, ok := root.Lookup(u.Keypath); ok && u.Keypath != "" {
			r.Active = append(r.Active, u)
		} else {
			r.Missing = append(r.Missing, u)
		}
	}
	root.Walk(func(n *locale.Node) bool {
		if !used[n.Keypath] {
			r.Idle = append(r.Idle, KeyUsage{Keypath: n.Keypath, Occurrences: []Occurrence{}})
		}
		return true
	})
	return r
}

// Merge groups occurrences by keypath, keeping the order in which keypaths
// first appear. Duplicate occurrences are kept.
func Merge(occurrences []Occurrence) []KeyUsage {
	var result []KeyUsage
	index := make(map[string]int)
	for _, o := range occurrences {
		i, ok := index[o.Keypath]
		if !ok {
			i = len(result)
			index[o.Keypath] = i
			result = append(result, KeyUsage{Keypath: o.Keypath})
		}
		result[i].Occurrences = append(result[i].Occurrences, o)
	}
	return result
}

// Keypaths returns the keypaths of usages in order.
func Keypaths(usages []KeyUsage) []string {
	paths := make([]string, 0, len(usages))
	for _, u := range usages {
		paths = append(paths, u.Keypath)
	}
	return paths
}
