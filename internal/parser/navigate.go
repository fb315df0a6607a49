package parser

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	yamlparser "github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/Brooooooklyn/i18n-ally/internal/keypath"
)

// navigate finds keypath in YAML or JSON text and returns the span of its
// value node.
func navigate(text []byte, path, delimiter string, style KeyStyle) (Range, bool) {
	if path == "" {
		return Range{}, false
	}
	file, err := yamlparser.ParseBytes(text, 0)
	if err != nil || len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return Range{}, false
	}

	body := file.Docs[0].Body
	var node ast.Node
	switch style {
	case KeyStyleFlat:
		node = find(body, []string{path})
	case KeyStyleNested:
		node = find(body, keypath.Split(path, delimiter))
	default:
		node = findMixed(body, keypath.Split(path, delimiter), delimiter)
	}
	if node == nil {
		return Range{}, false
	}
	return span(text, node)
}

// findMixed matches segments against keys that may hold several segments
// joined by delimiter, such as "file.open" under "menu". Shorter keys are
// tried first.
func findMixed(node ast.Node, segments []string, delimiter string) ast.Node {
	if len(segments) == 0 {
		return node
	}
	node = unwrap(node)
	for i := 1; i <= len(segments); i++ {
		next := child(node, strings.Join(segments[:i], delimiter))
		if next == nil {
			continue
		}
		if found := findMixed(next, segments[i:], delimiter); found != nil {
			return found
		}
	}
	return nil
}

func find(node ast.Node, segments []string) ast.Node {
	for _, seg := range segments {
		node = child(unwrap(node), seg)
		if node == nil {
			return nil
		}
	}
	return node
}

func unwrap(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

func child(node ast.Node, seg string) ast.Node {
	switch n := node.(type) {
	case *ast.MappingNode:
		for _, mv := range n.Values {
			if keyName(mv.Key) == seg {
				return mv.Value
			}
		}
	case *ast.MappingValueNode:
		if keyName(n.Key) == seg {
			return n.Value
		}
	case *ast.SequenceNode:
		i, err := strconv.Atoi(seg)
		if err == nil && i >= 0 && i < len(n.Values) {
			return n.Values[i]
		}
	}
	return nil
}

func keyName(key ast.Node) string {
	if key == nil {
		return ""
	}
	tok := key.GetToken()
	if tok == nil {
		return ""
	}
	return tok.Value
}

// span converts a node's token position into a byte range. Quoted scalars
// include their quotes.
func span(text []byte, node ast.Node) (Range, bool) {
	tok := node.GetToken()
	if tok == nil || tok.Position == nil {
		return Range{}, false
	}
	start := offsetOf(text, tok.Position.Line, tok.Position.Column)
	if start < 0 {
		return Range{}, false
	}

	if tok.Type == token.DoubleQuoteType || tok.Type == token.SingleQuoteType {
		if start > 0 && !isQuote(text[start]) && isQuote(text[start-1]) {
			start--
		}
		if start < len(text) && isQuote(text[start]) {
			return Range{Start: start, End: closingQuote(text, start)}, true
		}
	}

	end := start + len(tok.Value)
	if end > len(text) {
		end = len(text)
	}
	return Range{Start: start, End: end}, true
}

// offsetOf maps a 1-based line and column to a byte offset.
func offsetOf(text []byte, line, column int) int {
	if line < 1 || column < 1 {
		return -1
	}
	offset := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(text[offset:], '\n')
		if i < 0 {
			return -1
		}
		offset += i + 1
	}
	offset += column - 1
	if offset >= len(text) {
		return -1
	}
	return offset
}

func isQuote(c byte) bool { return c == '"' || c == '\'' }

// closingQuote returns the offset just past the quote closing the string
// that opens at start.
func closingQuote(text []byte, start int) int {
	q := text[start]
	for i := start + 1; i < len(text); i++ {
		switch {
		case q == '"' && text[i] == '\\':
			i++
		case text[i] == q:
			if q == '\'' && i+1 < len(text) && text[i+1] == '\'' {
				i++
				continue
			}
			return i + 1
		}
	}
	return len(text)
}
