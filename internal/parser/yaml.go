package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML parses .yaml and .yml locale files.
type YAML struct{}

func (YAML) ID() string { return "yaml" }

func (YAML) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAML) Parse(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}
	return payload(raw), nil
}

func (YAML) NavigateToKey(text []byte, keypath, delimiter string, style KeyStyle) (Range, bool) {
	return navigate(text, keypath, delimiter, style)
}
