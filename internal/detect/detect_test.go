package detect_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brooooooklyn/i18n-ally/internal/detect"
	"github.com/Brooooooklyn/i18n-ally/internal/usage"
)

func frameworks(t *testing.T, ids ...string) []*detect.Framework {
	t.Helper()
	fs, err := detect.Lookup(ids...)
	require.NoError(t, err)
	return fs
}

func keys(found []detect.KeyInDocument) []string {
	var out []string
	for _, k := range found {
		out = append(out, k.Key)
	}
	return out
}

func TestGeneralPatterns(t *testing.T) {
	general := frameworks(t, "general")

	tests := []struct {
		name    string
		line    string
		wantKey string // empty means no match expected
	}{
		{"t single quotes", `t('action.refresh')`, "action.refresh"},
		{"t double quotes", `t("action.refresh")`, "action.refresh"},
		{"t backtick", "t(`action.refresh`)", "action.refresh"},
		{"this.t", `this.t('app.title')`, "app.title"},
		{"$t", `$t('nav.home')`, "nav.home"},
		{"preceded by space", ` t('key.name')`, "key.name"},
		{"not preceded by letter", `xt('key.name')`, ""},

		{"titleKey", `titleKey: 'page.title'`, "page.title"},
		{"labelKey double", `labelKey: "tab.label"`, "tab.label"},
		{"descriptionKey", `descriptionKey: 'desc.key'`, "desc.key"},

		{"label-key attr", `label-key="menu.item"`, "menu.item"},
		{"no-rows-key attr", `no-rows-key="volumes.sortableTables.noRows"`, "volumes.sortableTables.noRows"},

		{"v-t directive", `<span v-t="'sortableTable.noActions'" />`, "sortableTable.noActions"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			found := detect.Detect(tc.line, general, nil)
			if tc.wantKey == "" {
				assert.Empty(t, found)
				return
			}
			require.NotEmpty(t, found)
			assert.Equal(t, tc.wantKey, found[0].Key)
			assert.Equal(t, tc.wantKey, tc.line[found[0].Start:found[0].End])
		})
	}
}

func TestGeneralLineRules(t *testing.T) {
	general := frameworks(t, "general")

	found := detect.Detect(`titleKey: isAdmin ? 'admin.title' : 'user.title'`, general, nil)
	assert.Equal(t, []string{"admin.title", "user.title"}, keys(found))

	found = detect.Detect("const a = 1;\nlabelKey = cond ? 'a.b' : 'c.d'\n", general, nil)
	assert.Equal(t, []string{"a.b", "c.d"}, keys(found))
	assert.Equal(t, 13+len("labelKey = cond ? '"), found[0].Start)
}

func TestGeneralIndirectKeys(t *testing.T) {
	general := frameworks(t, "general")
	line := `bar: 'product.kubernetesVersion', path: 'spec.containers'`

	known := func(k string) bool { return k == "product.kubernetesVersion" }
	assert.Equal(t, []string{"product.kubernetesVersion"}, keys(detect.Detect(line, general, known)))
	assert.Empty(t, detect.Detect(line, general, nil))
}

func TestVuePatterns(t *testing.T) {
	vue := frameworks(t, "vue")

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"$t call", `{{ $t('hello.world') }}`, []string{"hello.world"}},
		{"this.$t", `this.$t("menu.open")`, []string{"menu.open"}},
		{"tc plural", `$tc('items.count', 2)`, []string{"items.count"}},
		{"i18n.t", `i18n.t('app.name')`, []string{"app.name"}},
		{"v-t directive", `<p v-t="'greeting'"></p>`, []string{"greeting"}},
		{"path attribute", `<i18n path="terms.body" tag="p">`, []string{"terms.body"}},
		{"date format", `$d(new Date(), 'short')`, []string{"short"}},
		{"plain string", `const x = 'not.a.call'`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, keys(detect.Detect(tc.text, vue, nil)))
		})
	}
}

func TestReactPatterns(t *testing.T) {
	react := frameworks(t, "react")

	found := detect.Detect("const a = t('home.title');\n<Trans i18nKey=\"home.body\" />\ni18next.t('ns:key')", react, nil)
	assert.Equal(t, []string{"home.title", "home.body", "ns:key"}, keys(found))
}

func TestDetectDeduplicatesAcrossFrameworks(t *testing.T) {
	both := frameworks(t, "vue", "general")
	found := detect.Detect(`$t('nav.home')`, both, nil)
	assert.Equal(t, []string{"nav.home"}, keys(found))
}

func TestLookup(t *testing.T) {
	_, err := detect.Lookup("angular")
	require.ErrorIs(t, err, detect.ErrUnknownFramework)
	assert.Equal(t, []string{"general", "react", "vue"}, detect.IDs())

	vue := frameworks(t, "vue")
	assert.Contains(t, vue[0].RefactorTemplates("a.b"), "{{$t('a.b')}}")
	assert.Equal(t, []string{".js", ".ts", ".vue"}, detect.Extensions(vue))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	write := func(rel, content string) {
		path := filepath.Join(src, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("App.vue", "<template>\n  <h1>{{ t('app.title') }}</h1>\n</template>\n")
	write("main.ts", "t('app.title')\nt('app.missing')\n")
	write("node_modules/lib/index.js", "t('lib.key')\n")
	write("README.md", "t('doc.key')\n")

	s := detect.NewScanner(root, frameworks(t, "general"), nil)
	usages, err := s.Scan(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, usages, 2)
	assert.Equal(t, "app.title", usages[0].Keypath)
	require.Len(t, usages[0].Occurrences, 2)
	assert.Equal(t, usage.Occurrence{
		Keypath:  "app.title",
		Filepath: filepath.Join("src", "App.vue"),
		Start:    23,
		End:      32,
		Line:     2,
	}, usages[0].Occurrences[0])
	assert.Equal(t, filepath.Join("src", "main.ts"), usages[0].Occurrences[1].Filepath)

	assert.Equal(t, "app.missing", usages[1].Keypath)
	assert.Equal(t, 2, usages[1].Occurrences[0].Line)
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.ts"), []byte("t('a.b')"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := detect.NewScanner(root, frameworks(t, "general"), nil).Scan(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
}
