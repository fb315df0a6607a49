// Package index owns the locale tree of a project. Each rebuild produces
// an immutable Snapshot that is published atomically, so readers always
// see a complete tree.
package index

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Brooooooklyn/i18n-ally/internal/coverage"
	"github.com/Brooooooklyn/i18n-ally/internal/keypath"
	"github.com/Brooooooklyn/i18n-ally/internal/loader"
	"github.com/Brooooooklyn/i18n-ally/internal/locale"
	"github.com/Brooooooklyn/i18n-ally/internal/parser"
	"github.com/Brooooooklyn/i18n-ally/internal/usage"
)

// Index rebuilds and serves the project's locale tree.
type Index struct {
	loader    *loader.Loader
	delimiter string
	keyStyle  parser.KeyStyle
	logger    *slog.Logger

	mu      sync.Mutex // serializes rebuilds
	current atomic.Pointer[Snapshot]
}

// Option configures an Index.
type Option func(*Index)

// WithDelimiter sets the keypath separator.
func WithDelimiter(delimiter string) Option {
	return func(ix *Index) {
		if delimiter != "" {
			ix.delimiter = delimiter
		}
	}
}

// WithKeyStyle sets how keypaths are located inside locale files.
func WithKeyStyle(style parser.KeyStyle) Option {
	return func(ix *Index) { ix.keyStyle = style }
}

// WithLogger sets the logger for rebuilds.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// New returns an Index over the files found by l. It serves an empty
// snapshot until the first Rebuild.
func New(l *loader.Loader, opts ...Option) *Index {
	ix := &Index{
		loader:    l,
		delimiter: keypath.DefaultDelimiter,
		keyStyle:  parser.KeyStyleAuto,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ix)
	}
	ix.current.Store(ix.snapshot(locale.Build(nil, locale.WithDelimiter(ix.delimiter)), nil))
	return ix
}

// Snapshot returns the most recently published snapshot.
func (ix *Index) Snapshot() *Snapshot {
	return ix.current.Load()
}

// Rebuild loads every locale file and publishes a new snapshot. On error
// the previous snapshot stays current.
func (ix *Index) Rebuild(ctx context.Context) (*Snapshot, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	start := time.Now()
	files, errs, err := ix.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("rebuilding index: %w", err)
	}
	s := ix.snapshot(locale.Build(files, locale.WithDelimiter(ix.delimiter)), errs)
	ix.current.Store(s)
	ix.logger.Debug("index rebuilt",
		"files", len(files),
		"errors", len(errs),
		"keys", len(s.keypaths),
		"duration", time.Since(start))
	return s, nil
}

func (ix *Index) snapshot(root *locale.Tree, errs []*loader.FileError) *Snapshot {
	return &Snapshot{
		Root:      root,
		Errors:    errs,
		Built:     time.Now(),
		keyStyle:  ix.keyStyle,
		delimiter: ix.delimiter,
		keypaths:  root.Keypaths(),
	}
}

// Snapshot is one immutable build of the locale tree.
type Snapshot struct {
	Root   *locale.Tree
	Errors []*loader.FileError
	Built  time.Time

	keyStyle  parser.KeyStyle
	delimiter string
	keypaths  []string
}

// Lookup resolves keypath to a node or tree.
func (s *Snapshot) Lookup(path string) (locale.Entry, bool) {
	if path == "" {
		return nil, false
	}
	return s.Root.Lookup(path)
}

// Has reports whether keypath resolves.
func (s *Snapshot) Has(path string) bool {
	_, ok := s.Lookup(path)
	return ok
}

// Locales lists the locales present in the snapshot.
func (s *Snapshot) Locales() []string {
	return s.Root.Locales()
}

// Keypaths lists every node keypath in walk order.
func (s *Snapshot) Keypaths() []string {
	return append([]string(nil), s.keypaths...)
}

// Coverage computes the coverage of loc.
func (s *Snapshot) Coverage(loc string) coverage.Coverage {
	return coverage.Calculate(s.Root, loc)
}

// CoverageAll computes the coverage of every locale in the snapshot.
func (s *Snapshot) CoverageAll() []coverage.Coverage {
	return coverage.CalculateAll(s.Root, s.Locales())
}

// FindUsage classifies usages against the snapshot.
func (s *Snapshot) FindUsage(usages []usage.KeyUsage) usage.Report {
	return usage.Find(s.Root, usages)
}

// FilepathByKey returns the file defining keypath for loc. An empty loc
// returns the file that first defined the key.
func (s *Snapshot) FilepathByKey(path, loc string) (string, bool) {
	e, ok := s.Lookup(path)
	if !ok {
		return "", false
	}
	if n, isNode := e.(*locale.Node); isNode && loc != "" {
		r, ok := n.Record(loc)
		if !ok {
			return "", false
		}
		return r.Filepath, r.Filepath != ""
	}
	fp := e.Head().Filepath
	return fp, fp != ""
}

// Location is where a key's value sits in a locale file.
type Location struct {
	Filepath string       `json:"filepath"`
	Range    parser.Range `json:"range"`
	Line     int          `json:"line"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d-%d", l.Filepath, l.Line, l.Range.Start, l.Range.End)
}

// Definition locates the value of keypath in the file defining it for loc.
func (s *Snapshot) Definition(path, loc string) (Location, error) {
	e, ok := s.Lookup(path)
	if !ok {
		return Location{}, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}
	head := e.Head()
	if n, isNode := e.(*locale.Node); isNode && loc != "" {
		r, ok := n.Record(loc)
		if !ok {
			return Location{}, fmt.Errorf("%w: %s in %s", ErrKeyNotFound, path, loc)
		}
		head = &r.Header
	}
	if head.Filepath == "" {
		return Location{}, fmt.Errorf("%w: %s has no file", ErrNoDefinition, path)
	}

	p, err := parser.ForFile(head.Filepath)
	if err != nil {
		return Location{}, err
	}
	text, err := os.ReadFile(head.Filepath)
	if err != nil {
		return Location{}, fmt.Errorf("reading %s: %w", head.Filepath, err)
	}
	r, ok := p.NavigateToKey(text, head.RelativeKeypath(), s.delimiter, s.keyStyle)
	if !ok {
		return Location{}, fmt.Errorf("%w: %s in %s", ErrNoDefinition, path, head.Filepath)
	}
	return Location{
		Filepath: head.Filepath,
		Range:    r,
		Line:     bytes.Count(text[:r.Start], []byte("\n")) + 1,
	}, nil
}
