// Package loader discovers locale files on disk and parses them into
// payloads for locale.Build.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/Brooooooklyn/i18n-ally/internal/keypath"
	"github.com/Brooooooklyn/i18n-ally/internal/locale"
	"github.com/Brooooooklyn/i18n-ally/internal/parser"
)

// Structure is the layout of a locale directory.
type Structure string

const (
	// StructureFile is <dir>/<locale>.<ext>.
	StructureFile Structure = "file"
	// StructureDir is <dir>/<locale>/<name>.<ext>.
	StructureDir Structure = "dir"
	// StructureAuto picks dir when the directory has locale subdirectories.
	StructureAuto Structure = "auto"
)

// Valid reports whether s is a known structure.
func (s Structure) Valid() bool {
	switch s {
	case StructureFile, StructureDir, StructureAuto:
		return true
	}
	return false
}

// FileInfo describes a discovered locale file.
type FileInfo struct {
	Path      string
	Locale    string
	Namespace string
	Readonly  bool
}

// Loader reads the locale files of a project.
type Loader struct {
	dirs        []string
	structure   Structure
	namespaces  bool
	readonly    []string
	delimiter   string
	concurrency int
	logger      *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithStructure sets the directory layout.
func WithStructure(s Structure) Option {
	return func(l *Loader) { l.structure = s }
}

// WithNamespaces derives a namespace from file names in dir layouts.
func WithNamespaces(enabled bool) Option {
	return func(l *Loader) { l.namespaces = enabled }
}

// WithReadonly marks files inside the given directories, or matching the
// given glob patterns, as read-only.
func WithReadonly(patterns ...string) Option {
	return func(l *Loader) { l.readonly = append(l.readonly, patterns...) }
}

// WithDelimiter sets the separator used to join nested namespace names.
func WithDelimiter(delimiter string) Option {
	return func(l *Loader) {
		if delimiter != "" {
			l.delimiter = delimiter
		}
	}
}

// WithConcurrency limits how many files are parsed at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithLogger sets the logger for skipped files.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns a Loader for the given locale directories.
func New(dirs []string, opts ...Option) *Loader {
	l := &Loader{
		dirs:        dirs,
		structure:   StructureAuto,
		delimiter:   keypath.DefaultDelimiter,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dirs returns the configured locale directories.
func (l *Loader) Dirs() []string {
	return append([]string(nil), l.dirs...)
}

// Discover lists locale files in a stable order: by directory, then path.
func (l *Loader) Discover() ([]FileInfo, error) {
	if len(l.dirs) == 0 {
		return nil, ErrNoLocaleDirs
	}
	if !l.structure.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStructure, l.structure)
	}

	var files []FileInfo
	for _, dir := range l.dirs {
		found, err := l.discoverDir(dir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func (l *Loader) discoverDir(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("locale directory not found", "dir", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	structure := l.structure
	if structure == StructureAuto {
		structure = StructureFile
		for _, e := range entries {
			if e.IsDir() && isLocale(e.Name()) {
				structure = StructureDir
				break
			}
		}
	}

	var files []FileInfo
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case structure == StructureFile && !e.IsDir():
			name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			if !parser.Supported(path) || !isLocale(name) {
				continue
			}
			files = append(files, l.fileInfo(path, name, ""))
		case structure == StructureDir && e.IsDir() && isLocale(e.Name()):
			found, err := l.discoverLocaleDir(path, e.Name())
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// discoverLocaleDir collects every supported file below a locale directory.
func (l *Loader) discoverLocaleDir(dir, loc string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !parser.Supported(path) {
			return nil
		}
		var namespace string
		if l.namespaces {
			rel, _ := filepath.Rel(dir, path)
			rel = strings.TrimSuffix(rel, filepath.Ext(rel))
			namespace = strings.Join(strings.Split(filepath.ToSlash(rel), "/"), l.delimiter)
		}
		files = append(files, l.fileInfo(path, loc, namespace))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}

func (l *Loader) fileInfo(path, loc, namespace string) FileInfo {
	return FileInfo{
		Path:      path,
		Locale:    loc,
		Namespace: namespace,
		Readonly:  l.isReadonly(path),
	}
}

func (l *Loader) isReadonly(path string) bool {
	for _, pattern := range l.readonly {
		dir := filepath.Clean(pattern)
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Load discovers and parses every locale file. Files that fail to read or
// parse are returned as FileErrors and left out of the result; only
// discovery failures and cancellation are returned as err.
func (l *Loader) Load(ctx context.Context) ([]locale.ParsedFile, []*FileError, error) {
	infos, err := l.Discover()
	if err != nil {
		return nil, nil, err
	}

	parsed := make([]*locale.ParsedFile, len(infos))
	failures := make([]*FileError, len(infos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, info := range infos {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := l.parseFile(info)
			if err != nil {
				failures[i] = &FileError{Path: info.Path, Err: err}
				return nil
			}
			parsed[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	files := make([]locale.ParsedFile, 0, len(infos))
	var errs []*FileError
	for i := range infos {
		if failures[i] != nil {
			l.logger.Warn("skipping locale file", "file", infos[i].Path, "error", failures[i].Err)
			errs = append(errs, failures[i])
			continue
		}
		files = append(files, *parsed[i])
	}
	l.logger.Debug("locale files loaded", "files", len(files), "skipped", len(errs))
	return files, errs, nil
}

func (l *Loader) parseFile(info FileInfo) (*locale.ParsedFile, error) {
	p, err := parser.ForFile(info.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(info.Path)
	if err != nil {
		return nil, err
	}
	value, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	var features *locale.Features
	if info.Namespace != "" {
		features = &locale.Features{Namespace: true}
	}
	return &locale.ParsedFile{
		Filepath:  info.Path,
		Locale:    info.Locale,
		Namespace: info.Namespace,
		Readonly:  info.Readonly,
		Features:  features,
		Value:     value,
	}, nil
}

// WatchDirs returns the directories whose changes can affect Load.
func (l *Loader) WatchDirs() ([]string, error) {
	var dirs []string
	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	}
	return dirs, nil
}

// isLocale reports whether name is a well-formed BCP 47 tag such as
// "en", "en-us" or "zh_Hant".
func isLocale(name string) bool {
	if name == "" {
		return false
	}
	_, err := language.Parse(name)
	return err == nil
}
