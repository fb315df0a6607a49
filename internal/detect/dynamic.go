package detect

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DynamicKey is a template literal that builds a keypath at run time,
// e.g. `options.${ name }.label`. Pattern replaces each interpolation
// with "{}".
type DynamicKey struct {
	Pattern  string `json:"pattern"`
	Filepath string `json:"filepath"`
	Line     int    `json:"line"`

	re *regexp.Regexp
}

// Match reports whether key can be produced by the template.
func (d DynamicKey) Match(key string) bool {
	if d.re == nil {
		d.re = PatternRegexp(d.Pattern)
	}
	return d.re.MatchString(key)
}

var (
	// Template literals with a static dotted prefix and at least one
	// interpolation.
	dynamicKeyLiteral = regexp.MustCompile("`([a-zA-Z_][a-zA-Z0-9_]*(?:\\.[a-zA-Z0-9_]+)*\\.\\$\\{[^}`]*\\}[^`]*)`")
	interpolation     = regexp.MustCompile(`\$\{[^}]*\}`)
)

// ExtractDynamic returns the dynamic key templates on one line.
func ExtractDynamic(line string) []DynamicKey {
	var out []DynamicKey
	for _, m := range dynamicKeyLiteral.FindAllStringSubmatch(line, -1) {
		pattern := interpolation.ReplaceAllString(m[1], "{}")
		out = append(out, DynamicKey{Pattern: pattern, re: PatternRegexp(pattern)})
	}
	return out
}

// PatternRegexp compiles a "{}" pattern into an anchored regexp in which
// each placeholder matches exactly one non-empty keypath segment part.
func PatternRegexp(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "{}")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, `[^.]+`) + "$")
}

// ScanDynamic returns the dynamic key templates below dirs, one entry per
// distinct pattern at its first location, sorted by pattern.
func (s *Scanner) ScanDynamic(ctx context.Context, dirs ...string) ([]DynamicKey, error) {
	files, err := s.Files(dirs...)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var found []DynamicKey
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		relPath := file
		if s.root != "" {
			if rel, err := filepath.Rel(s.root, file); err == nil {
				relPath = rel
			}
		}
		for i, line := range strings.Split(string(data), "\n") {
			for _, d := range ExtractDynamic(line) {
				if seen[d.Pattern] {
					continue
				}
				seen[d.Pattern] = true
				d.Filepath = relPath
				d.Line = i + 1
				found = append(found, d)
			}
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Pattern < found[j].Pattern })
	return found, nil
}
