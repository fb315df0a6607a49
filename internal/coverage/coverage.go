// Package coverage computes per-locale translation statistics over a
// locale tree.
package coverage

import (
	"sort"

	"github.com/Brooooooklyn/i18n-ally/internal/locale"
)

// Coverage is the translation status of every key for one locale.
// Empty values count as translated and are also listed in EmptyKeys.
type Coverage struct {
	Locale         string   `json:"locale"`
	Translated     int      `json:"translated"`
	Total          int      `json:"total"`
	Missing        int      `json:"missing"`
	TotalKeys      []string `json:"totalKeys"`
	TranslatedKeys []string `json:"translatedKeys"`
	MissingKeys    []string `json:"missingKeys"`
	EmptyKeys      []string `json:"emptyKeys"`
}

// Percent returns the translated share in the range [0, 100].
func (c Coverage) Percent() int {
	if c.Total == 0 {
		return 100
	}
	return c.Translated * 100 / c.Total
}

// Calculate walks root once and classifies every node for loc.
func Calculate(root *locale.Tree, loc string) Coverage {
	c := Coverage{
		Locale:         loc,
		TotalKeys:      []string{},
		TranslatedKeys: []string{},
		MissingKeys:    []string{},
		EmptyKeys:      []string{},
	}
	root.Walk(func(n *locale.Node) bool {
		c.TotalKeys = append(c.TotalKeys, n.Keypath)
		v, ok := n.Value(loc)
		switch {
		case !ok:
			c.MissingKeys = append(c.MissingKeys, n.Keypath)
		case v == "":
			c.EmptyKeys = append(c.EmptyKeys, n.Keypath)
			c.TranslatedKeys = append(c.TranslatedKeys, n.Keypath)
		default:
			c.TranslatedKeys = append(c.TranslatedKeys, n.Keypath)
		}
		return true
	})
	c.Total = len(c.TotalKeys)
	c.Translated = len(c.TranslatedKeys)
	c.Missing = len(c.MissingKeys)
	return c
}

// CalculateAll returns the coverage of each locale, sorted by locale.
func CalculateAll(root *locale.Tree, locales []string) []Coverage {
	sorted := append([]string(nil), locales...)
	sort.Strings(sorted)
	result := make([]Coverage, 0, len(sorted))
	for _, loc := range sorted {
		result = append(result, Calculate(root, loc))
	}
	return result
}
