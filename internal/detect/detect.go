package detect

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Brooooooklyn/i18n-ally/internal/usage"
)

// KeyInDocument is a key reference found in a document, as byte offsets
// of the key text.
type KeyInDocument struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Key   string `json:"key"`
}

// Known reports whether a key is defined. Indirect matches are dropped
// when it is nil or returns false.
type Known func(key string) bool

// Detect returns the key references in text, ordered by offset.
func Detect(text string, frameworks []*Framework, known Known) []KeyInDocument {
	seen := make(map[KeyInDocument]bool)
	var keys []KeyInDocument
	add := func(k KeyInDocument) {
		if k.Key == "" || seen[k] {
			return
		}
		seen[k] = true
		keys = append(keys, k)
	}

	for _, f := range frameworks {
		for _, re := range f.KeyMatch {
			for _, k := range matches(re, text, 0) {
				add(k)
			}
		}
		if known != nil {
			for _, re := range f.IndirectMatch {
				for _, k := range matches(re, text, 0) {
					if known(k.Key) {
						add(k)
					}
				}
			}
		}
		if len(f.LineRules) == 0 {
			continue
		}
		offset := 0
		for _, line := range strings.SplitAfter(text, "\n") {
			for _, rule := range f.LineRules {
				if rule.When.MatchString(line) {
					for _, k := range matches(rule.Extract, line, offset) {
						add(k)
					}
				}
			}
			offset += len(line)
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].Start != keys[j].Start {
			return keys[i].Start < keys[j].Start
		}
		return keys[i].End < keys[j].End
	})
	return keys
}

func matches(re *regexp.Regexp, text string, offset int) []KeyInDocument {
	var keys []KeyInDocument
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		if len(m) < 4 || m[2] < 0 {
			continue
		}
		keys = append(keys, KeyInDocument{
			Start: offset + m[2],
			End:   offset + m[3],
			Key:   strings.TrimSpace(text[m[2]:m[3]]),
		})
	}
	return keys
}

// Scanner walks source trees for key references.
type Scanner struct {
	frameworks []*Framework
	exts       map[string]bool
	ignore     map[string]bool
	known      Known
	root       string
}

// DefaultIgnoreDirs are skipped while walking source trees.
var DefaultIgnoreDirs = []string{"node_modules", ".git", "dist", "vendor", "__tests__"}

// NewScanner returns a Scanner for frameworks. Occurrence paths are made
// relative to root when root is set.
func NewScanner(root string, frameworks []*Framework, known Known, ignoreDirs ...string) *Scanner {
	if len(ignoreDirs) == 0 {
		ignoreDirs = DefaultIgnoreDirs
	}
	s := &Scanner{
		frameworks: frameworks,
		exts:       make(map[string]bool),
		ignore:     make(map[string]bool, len(ignoreDirs)),
		known:      known,
		root:       root,
	}
	for _, e := range Extensions(frameworks) {
		s.exts[e] = true
	}
	for _, d := range ignoreDirs {
		s.ignore[d] = true
	}
	return s
}

// Files returns the source files below dirs that some framework handles.
func (s *Scanner) Files(dirs ...string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if s.ignore[name] {
					return filepath.SkipDir
				}
				return nil
			}
			if s.exts[filepath.Ext(name)] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// Scan returns the key usages in every source file below dirs. Unreadable
// files are skipped.
func (s *Scanner) Scan(ctx context.Context, dirs ...string) ([]usage.KeyUsage, error) {
	files, err := s.Files(dirs...)
	if err != nil {
		return nil, err
	}

	var occurrences []usage.Occurrence
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		occurrences = append(occurrences, s.scanText(file, string(data))...)
	}
	return usage.Merge(occurrences), nil
}

func (s *Scanner) scanText(file, text string) []usage.Occurrence {
	frameworks := s.frameworksFor(file)
	if len(frameworks) == 0 {
		return nil
	}
	relPath := file
	if s.root != "" {
		if rel, err := filepath.Rel(s.root, file); err == nil {
			relPath = rel
		}
	}

	lineStarts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	var occurrences []usage.Occurrence
	for _, k := range Detect(text, frameworks, s.known) {
		line := sort.Search(len(lineStarts), func(i int) bool { return lineStarts[i] > k.Start })
		occurrences = append(occurrences, usage.Occurrence{
			Keypath:  k.Key,
			Filepath: relPath,
			Start:    k.Start,
			End:      k.End,
			Line:     line,
		})
	}
	return occurrences
}

func (s *Scanner) frameworksFor(file string) []*Framework {
	ext := filepath.Ext(file)
	var frameworks []*Framework
	for _, f := range s.frameworks {
		for _, e := range f.Extensions {
			if e == ext {
				frameworks = append(frameworks, f)
				break
			}
		}
	}
	return frameworks
}
