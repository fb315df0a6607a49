package parser

import (
	"encoding/json"
	"fmt"
)

// JSON parses .json locale files.
type JSON struct{}

func (JSON) ID() string { return "json" }

func (JSON) Extensions() []string { return []string{".json"} }

func (JSON) Parse(data []byte) (any, error) {
	var raw any
	if len(data) == 0 {
		return payload(nil), nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}
	return payload(raw), nil
}

// NavigateToKey works on JSON through the YAML AST, JSON being a subset
// of YAML flow syntax.
func (JSON) NavigateToKey(text []byte, keypath, delimiter string, style KeyStyle) (Range, bool) {
	return navigate(text, keypath, delimiter, style)
}
