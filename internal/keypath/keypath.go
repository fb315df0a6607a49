// Package keypath holds helpers for dotted translation keypaths.
package keypath

import "strings"

// DefaultDelimiter separates keypath segments unless configured otherwise.
const DefaultDelimiter = "."

// Keyname returns the last segment of keypath.
func Keyname(keypath, delimiter string) string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	if i := strings.LastIndex(keypath, delimiter); i >= 0 {
		return keypath[i+len(delimiter):]
	}
	return keypath
}

// Relative strips the "namespace + delimiter" prefix from keypath. The
// keypath is returned unchanged when namespace is empty or is not a prefix.
func Relative(keypath, namespace, delimiter string) string {
	if namespace == "" {
		return keypath
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	prefix := namespace + delimiter
	if !strings.HasPrefix(keypath, prefix) {
		return keypath
	}
	return keypath[len(prefix):]
}

// Join concatenates non-empty segments with delimiter.
func Join(delimiter string, segments ...string) string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, delimiter)
}

// Split breaks keypath into its segments. An empty keypath has no segments.
func Split(keypath, delimiter string) []string {
	if keypath == "" {
		return nil
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return strings.Split(keypath, delimiter)
}

// IsValid reports whether s looks like a dotted translation key
// (e.g., "action.refresh", "containerEngine.tabs.general").
func IsValid(s, delimiter string) bool {
	parts := Split(s, delimiter)
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
		for _, c := range part {
			if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-') {
				return false
			}
		}
	}
	return true
}
