package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brooooooklyn/i18n-ally/internal/watch"
)

type recorder struct {
	mu     sync.Mutex
	bursts [][]string
}

func (r *recorder) record(_ context.Context, changed []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bursts = append(r.bursts, changed)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.bursts...)
}

func start(t *testing.T, w *watch.Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	// give the watcher time to register its directories
	time.Sleep(50 * time.Millisecond)
}

func TestCoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	start(t, watch.New([]string{dir}, rec.record,
		watch.WithDebounce(200*time.Millisecond),
		watch.WithFilter(func(p string) bool { return strings.HasSuffix(p, ".json") })))

	en := filepath.Join(dir, "en.json")
	de := filepath.Join(dir, "de.json")
	require.NoError(t, os.WriteFile(en, []byte(`{"a": "A"}`), 0o644))
	require.NoError(t, os.WriteFile(en, []byte(`{"a": "AA"}`), 0o644))
	require.NoError(t, os.WriteFile(de, []byte(`{"a": "Ä"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 },
		2*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{de, en}, rec.snapshot()[0])

	time.Sleep(300 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}

func TestWatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	start(t, watch.New([]string{dir}, rec.record, watch.WithDebounce(50*time.Millisecond)))

	sub := filepath.Join(dir, "fr")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(100 * time.Millisecond)
	file := filepath.Join(sub, "common.json")
	require.NoError(t, os.WriteFile(file, []byte(`{}`), 0o644))

	require.Eventually(t, func() bool {
		for _, burst := range rec.snapshot() {
			for _, name := range burst {
				if name == file {
					return true
				}
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}

func TestRunMissingDir(t *testing.T) {
	w := watch.New([]string{filepath.Join(t.TempDir(), "missing")}, func(context.Context, []string) {})
	require.Error(t, w.Run(context.Background()))
}

func TestDirectoryMovedIn(t *testing.T) {
	root := t.TempDir()
	locales := filepath.Join(root, "locales")
	staging := filepath.Join(root, "staging", "de")
	require.NoError(t, os.MkdirAll(locales, 0o755))
	require.NoError(t, os.MkdirAll(staging, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "common.json"), []byte(`{"a": "A"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "README.txt"), []byte("x"), 0o644))

	rec := &recorder{}
	start(t, watch.New([]string{locales}, rec.record,
		watch.WithDebounce(50*time.Millisecond),
		watch.WithFilter(func(p string) bool { return strings.HasSuffix(p, ".json") })))

	require.NoError(t, os.Rename(staging, filepath.Join(locales, "de")))

	moved := filepath.Join(locales, "de", "common.json")
	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 },
		2*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{moved}, rec.snapshot()[0])

	// files in the moved directory are watched from now on
	require.NoError(t, os.WriteFile(moved, []byte(`{"a": "B"}`), 0o644))
	require.Eventually(t, func() bool { return len(rec.snapshot()) > 1 },
		2*time.Second, 20*time.Millisecond)
}
