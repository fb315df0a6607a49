package detect_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brooooooklyn/i18n-ally/internal/detect"
)

func TestExtractDynamic(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantPattern string // empty means no match expected
	}{
		{
			"direct t() with interpolation",
			"this.t(`containerEngine.options.${ x }.label`)",
			"containerEngine.options.{}.label",
		},
		{
			"two interpolations",
			"const key = `asyncButton.${ this.mode }.${ this.phase }`;",
			"asyncButton.{}.{}",
		},
		{
			"interpolation with suffix",
			"const key = `asyncButton.${ this.mode }.${ this.phase }Icon`;",
			"asyncButton.{}.{}Icon",
		},
		{
			"no interpolation",
			"t(`action.refresh`)",
			"",
		},
		{
			"no dot prefix",
			"`${ prefix }.key`",
			"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			found := detect.ExtractDynamic(tc.line)
			if tc.wantPattern == "" {
				assert.Empty(t, found)
				return
			}
			require.NotEmpty(t, found)
			assert.Equal(t, tc.wantPattern, found[0].Pattern)
		})
	}
}

func TestDynamicKeyMatch(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		matches bool
	}{
		{"containerEngine.options.{}.label", "containerEngine.options.moby.label", true},
		{"containerEngine.options.{}.label", "containerEngine.options.label", false},
		{"containerEngine.options.{}.label", "containerEngine.label", false},
		{"asyncButton.{}.{}", "asyncButton.edit.action", true},
		{"asyncButton.{}.{}", "asyncButton.edit", false},
		{"asyncButton.{}.{}Icon", "asyncButton.edit.actionIcon", true},
		{"asyncButton.{}.{}Icon", "asyncButton.edit.action", false},
		{"snapshots.dialog.{}.actions.ok", "snapshots.info.create.success", false},
	}

	for _, tc := range tests {
		t.Run(tc.pattern+"→"+tc.key, func(t *testing.T) {
			d := detect.DynamicKey{Pattern: tc.pattern}
			assert.Equal(t, tc.matches, d.Match(tc.key))
		})
	}
}

func TestScanDynamic(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.ts"),
		[]byte("x\nthis.t(`menu.${ id }.label`)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.ts"),
		[]byte("t(`menu.${ other }.label`)\nt(`alpha.${ x }`)\n"), 0o644))

	found, err := detect.NewScanner(root, frameworks(t, "general"), nil).ScanDynamic(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "alpha.{}", found[0].Pattern)
	assert.Equal(t, "menu.{}.label", found[1].Pattern)
	assert.Equal(t, "a.ts", found[1].Filepath)
	assert.Equal(t, 2, found[1].Line)
	assert.True(t, found[1].Match("menu.file.label"))
}
