// Package parser turns locale files into nested key/value payloads and
// locates keys inside their raw text.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// KeyStyle tells how a dotted keypath is laid out in a file.
type KeyStyle string

const (
	// KeyStyleNested stores "a.b" as b inside a.
	KeyStyleNested KeyStyle = "nested"
	// KeyStyleFlat stores "a.b" as a single literal key.
	KeyStyleFlat KeyStyle = "flat"
	// KeyStyleAuto tries nested first, then flat.
	KeyStyleAuto KeyStyle = "auto"
)

// Valid reports whether s is a known key style.
func (s KeyStyle) Valid() bool {
	switch s {
	case KeyStyleNested, KeyStyleFlat, KeyStyleAuto:
		return true
	}
	return false
}

// Range is a byte span inside a file.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Parser reads one locale file format.
type Parser interface {
	ID() string
	Extensions() []string
	Parse(data []byte) (any, error)
	// NavigateToKey returns the span of the value stored under keypath.
	NavigateToKey(text []byte, keypath, delimiter string, style KeyStyle) (Range, bool)
}

// All returns the built-in parsers.
func All() []Parser {
	return []Parser{JSON{}, YAML{}, TOML{}}
}

// ForFile returns the parser for path's extension.
func ForFile(path string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, p := range All() {
		for _, e := range p.Extensions() {
			if e == ext {
				return p, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Supported reports whether some parser handles path.
func Supported(path string) bool {
	_, err := ForFile(path)
	return err == nil
}

// normalize converts decoder output into map[string]any, []any and scalars.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}

// payload normalizes a decoded document, treating an empty one as an
// empty object.
func payload(v any) any {
	if v == nil {
		return map[string]any{}
	}
	return normalize(v)
}
