// Package detect finds translation key references in source code.
package detect

import (
	"fmt"
	"regexp"
	"sort"
)

// LineRule extracts keys from lines that match When. It catches keys that
// are not written as a direct call, e.g. ternaries assigned to a *Key prop.
type LineRule struct {
	When    *regexp.Regexp
	Extract *regexp.Regexp
}

// Framework describes how one i18n library references keys.
type Framework struct {
	ID         string
	Display    string
	Extensions []string
	// KeyMatch patterns capture the key in group 1.
	KeyMatch  []*regexp.Regexp
	LineRules []LineRule
	// IndirectMatch patterns only count when the captured key is defined.
	IndirectMatch     []*regexp.Regexp
	RefactorTemplates func(keypath string) []string
}

var vue = &Framework{
	ID:         "vue",
	Display:    "Vue",
	Extensions: []string{".vue", ".js", ".ts"},
	KeyMatch: []*regexp.Regexp{
		regexp.MustCompile(`(?:i18n[ (]path=|v-t=['"\x60{]|(?:this\.|\$|i18n\.)(?:(?:d|n)\(.*?,|(?:t|tc|te)\()\s*)['"\x60]([\w\d\. \-\[\]]*?)['"\x60]`),
	},
	RefactorTemplates: func(keypath string) []string {
		return []string{
			fmt.Sprintf("{{$t('%s')}}", keypath),
			fmt.Sprintf("this.$t('%s')", keypath),
			fmt.Sprintf(`$t("%s")`, keypath),
			fmt.Sprintf("i18n.t('%s')", keypath),
			keypath,
		}
	},
}

var react = &Framework{
	ID:         "react",
	Display:    "React i18next",
	Extensions: []string{".js", ".jsx", ".ts", ".tsx"},
	KeyMatch: []*regexp.Regexp{
		regexp.MustCompile(`(?m)(?:^|[^\w$.])(?:i18n\.|i18next\.)?t\(\s*['"\x60]([\w\d\. \-:]+?)['"\x60]`),
		regexp.MustCompile(`i18nKey=['"]([\w\d\. \-:]+?)['"]`),
	},
	RefactorTemplates: func(keypath string) []string {
		return []string{
			fmt.Sprintf("{t('%s')}", keypath),
			fmt.Sprintf("t('%s')", keypath),
			fmt.Sprintf(`<Trans i18nKey="%s" />`, keypath),
			keypath,
		}
	},
}

var general = &Framework{
	ID:         "general",
	Display:    "General",
	Extensions: []string{".vue", ".ts", ".js"},
	KeyMatch: []*regexp.Regexp{
		// t('...'), t("..."), t(`...`), also this.t(...) and $t(...)
		regexp.MustCompile(`(?m)(?:^|[^a-zA-Z])t\(['"\x60]([a-zA-Z0-9_.]+)['"\x60]`),
		// titleKey/descriptionKey/labelKey properties with string literal values.
		regexp.MustCompile(`(?:titleKey|descriptionKey|labelKey):\s*['"]([a-zA-Z0-9_.]+)['"]`),
		// Vue template attributes ending in -key (e.g. label-key, no-rows-key).
		regexp.MustCompile(`[a-z]+-key="([a-zA-Z0-9_.]+)"`),
		// v-t directive: v-t="'key'" in Vue templates.
		regexp.MustCompile(`v-t="'([a-zA-Z0-9_.]+)'"`),
	},
	LineRules: []LineRule{{
		// Lines containing a Key property may use ternaries; extract all dotted keys.
		When:    regexp.MustCompile(`(?:titleKey|descriptionKey|labelKey)[:\s=]`),
		Extract: regexp.MustCompile(`['"]([a-z][a-zA-Z0-9]*(?:\.[a-z][a-zA-Z0-9]*)+)['"]`),
	}},
	IndirectMatch: []*regexp.Regexp{
		// Property values that look like keys, later passed to t() elsewhere.
		regexp.MustCompile(`(?:\b\w+|'[^']+'):\s+['"]([a-z][a-zA-Z0-9]*(?:\.[a-z][a-zA-Z0-9]*)+)['"]`),
	},
	RefactorTemplates: func(keypath string) []string {
		return []string{
			fmt.Sprintf("t('%s')", keypath),
			keypath,
		}
	},
}

var registry = map[string]*Framework{
	vue.ID:     vue,
	react.ID:   react,
	general.ID: general,
}

// IDs returns the IDs of the built-in frameworks, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the frameworks with the given IDs.
func Lookup(ids ...string) ([]*Framework, error) {
	frameworks := make([]*Framework, 0, len(ids))
	for _, id := range ids {
		f, ok := registry[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFramework, id)
		}
		frameworks = append(frameworks, f)
	}
	return frameworks, nil
}

// Extensions returns the union of the frameworks' source file extensions.
func Extensions(frameworks []*Framework) []string {
	seen := make(map[string]bool)
	var exts []string
	for _, f := range frameworks {
		for _, e := range f.Extensions {
			if !seen[e] {
				seen[e] = true
				exts = append(exts, e)
			}
		}
	}
	sort.Strings(exts)
	return exts
}
