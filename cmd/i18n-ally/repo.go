package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/Brooooooklyn/i18n-ally/internal/config"
	"github.com/Brooooooklyn/i18n-ally/internal/detect"
	"github.com/Brooooooklyn/i18n-ally/internal/index"
	"github.com/Brooooooklyn/i18n-ally/internal/loader"
	"github.com/Brooooooklyn/i18n-ally/internal/usage"
)

// project ties the configuration of a repository to its locale index.
type project struct {
	cfg    *config.Config
	logger *slog.Logger
	loader *loader.Loader
	index  *index.Index
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the --config file, or discovers the project root by
// walking up from the current directory.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	if opts.configPath != "" {
		return config.Load(opts.configPath)
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Discover(dir)
}

func newProject(cfg *config.Config, logger *slog.Logger) *project {
	l := loader.New(cfg.Abs(cfg.LocalesPaths),
		loader.WithStructure(cfg.DirStructure),
		loader.WithNamespaces(cfg.Namespace),
		loader.WithReadonly(cfg.Abs(cfg.ReadonlyPaths)...),
		loader.WithDelimiter(cfg.Delimiter),
		loader.WithLogger(logger))
	return &project{
		cfg:    cfg,
		logger: logger,
		loader: l,
		index: index.New(l,
			index.WithDelimiter(cfg.Delimiter),
			index.WithKeyStyle(cfg.KeyStyle),
			index.WithLogger(logger)),
	}
}

// openProject loads the configuration and builds the first snapshot.
func openProject(ctx context.Context, opts *globalOptions, stderr io.Writer) (*project, *index.Snapshot, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	p := newProject(cfg, newLogger(stderr, opts.verbose))
	snap, err := p.index.Rebuild(ctx)
	if err != nil {
		return nil, nil, err
	}
	return p, snap, nil
}

func (p *project) scanner(snap *index.Snapshot) (*detect.Scanner, error) {
	frameworks, err := detect.Lookup(p.cfg.Frameworks...)
	if err != nil {
		return nil, err
	}
	return detect.NewScanner(p.cfg.Root, frameworks, snap.Has, p.cfg.IgnoreDirs...), nil
}

// usages scans the source directories for key references.
func (p *project) usages(ctx context.Context, snap *index.Snapshot) ([]usage.KeyUsage, error) {
	s, err := p.scanner(snap)
	if err != nil {
		return nil, err
	}
	found, err := s.Scan(ctx, p.cfg.Abs(p.cfg.SourcePaths)...)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("source scanned", "keys", len(found))
	return found, nil
}

// dynamicKeys scans the source directories for template-literal keys.
func (p *project) dynamicKeys(ctx context.Context, snap *index.Snapshot) ([]detect.DynamicKey, error) {
	s, err := p.scanner(snap)
	if err != nil {
		return nil, err
	}
	return s.ScanDynamic(ctx, p.cfg.Abs(p.cfg.SourcePaths)...)
}
