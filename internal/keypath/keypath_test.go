package keypath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Brooooooklyn/i18n-ally/internal/keypath"
)

func TestKeyname(t *testing.T) {
	tests := []struct {
		keypath   string
		delimiter string
		want      string
	}{
		{"hello", ".", "hello"},
		{"a.b.c", ".", "c"},
		{"a/b", "/", "b"},
		{"a.b", "", "b"},
		{"", ".", ""},
	}
	for _, tc := range tests {
		t.Run(tc.keypath, func(t *testing.T) {
			assert.Equal(t, tc.want, keypath.Keyname(tc.keypath, tc.delimiter))
		})
	}
}

func TestRelative(t *testing.T) {
	tests := []struct {
		name      string
		keypath   string
		namespace string
		want      string
	}{
		{"namespaced", "ns.a.b", "ns", "a.b"},
		{"no namespace", "ns.a.b", "", "ns.a.b"},
		{"namespace not a prefix", "other.a", "ns", "other.a"},
		{"partial segment is not a prefix", "nsx.a", "ns", "nsx.a"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, keypath.Relative(tc.keypath, tc.namespace, "."))
		})
	}
}

func TestJoinSplit(t *testing.T) {
	assert.Equal(t, "a.b.c", keypath.Join(".", "a", "", "b", "c"))
	assert.Equal(t, "a/b", keypath.Join("/", "a", "b"))
	assert.Equal(t, []string{"a", "b", "c"}, keypath.Split("a.b.c", "."))
	assert.Nil(t, keypath.Split("", "."))
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"action.refresh", true},
		{"containerEngine.tabs.general", true},
		{"a_b.c-d", true},
		{"single", false},
		{"a..b", false},
		{"a.b c", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, keypath.IsValid(tc.input, "."))
		})
	}
}
