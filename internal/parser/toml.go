package parser

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TOML parses .toml locale files.
type TOML struct{}

func (TOML) ID() string { return "toml" }

func (TOML) Extensions() []string { return []string{".toml"} }

func (TOML) Parse(data []byte) (any, error) {
	raw := make(map[string]any)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}
	return payload(raw), nil
}

// NavigateToKey is not supported for TOML: the decoder keeps no positions.
func (TOML) NavigateToKey([]byte, string, string, KeyStyle) (Range, bool) {
	return Range{}, false
}
