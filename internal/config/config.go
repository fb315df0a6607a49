// Package config loads the project settings from .i18n-ally.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Brooooooklyn/i18n-ally/internal/detect"
	"github.com/Brooooooklyn/i18n-ally/internal/keypath"
	"github.com/Brooooooklyn/i18n-ally/internal/loader"
	"github.com/Brooooooklyn/i18n-ally/internal/locale"
	"github.com/Brooooooklyn/i18n-ally/internal/parser"
)

// FileName is the config file looked up in the project root.
const FileName = ".i18n-ally.toml"

// Config holds the project settings.
type Config struct {
	LocalesPaths  []string         `toml:"locales_paths"`
	SourcePaths   []string         `toml:"source_paths"`
	SourceLocale  string           `toml:"source_locale"`
	DisplayLocale string           `toml:"display_locale"`
	KeyStyle      parser.KeyStyle  `toml:"key_style"`
	Delimiter     string           `toml:"delimiter"`
	DirStructure  loader.Structure `toml:"dir_structure"`
	Namespace     bool             `toml:"namespace"`
	ReadonlyPaths []string         `toml:"readonly_paths"`
	Frameworks    []string         `toml:"frameworks"`
	IgnoreDirs    []string         `toml:"ignore_dirs"`
	Debounce      Duration         `toml:"debounce"`

	// Root is the directory relative paths are resolved against.
	Root string `toml:"-"`
}

// Duration wraps time.Duration for TOML string values such as "500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the settings used for omitted fields.
func Default() Config {
	return Config{
		LocalesPaths: []string{"locales"},
		SourcePaths:  []string{"src"},
		SourceLocale: "en",
		KeyStyle:     parser.KeyStyleAuto,
		Delimiter:    keypath.DefaultDelimiter,
		DirStructure: loader.StructureAuto,
		Frameworks:   []string{"general"},
		IgnoreDirs:   detect.DefaultIgnoreDirs,
		Debounce:     Duration{500 * time.Millisecond},
	}
}

// Load reads path, applies defaults for omitted fields and resolves
// relative paths against the file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.Root = abs
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover walks up from dir to the first directory holding FileName or
// package.json and loads the config from there. A project without a
// config file gets the defaults.
func Discover(dir string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(filepath.Join(dir, FileName))
		}
		if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
			cfg := Default()
			cfg.Root = dir
			cfg.fill()
			return &cfg, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("%w: no %s or package.json found", ErrConfigNotFound, FileName)
		}
		dir = parent
	}
}

func (c *Config) fill() {
	if c.DisplayLocale == "" {
		c.DisplayLocale = c.SourceLocale
	}
	if c.Delimiter == "" {
		c.Delimiter = keypath.DefaultDelimiter
	}
	if c.KeyStyle == "" {
		c.KeyStyle = parser.KeyStyleAuto
	}
	if c.DirStructure == "" {
		c.DirStructure = loader.StructureAuto
	}
}

// Validate rejects unknown enumerations and empty required fields.
func (c *Config) Validate() error {
	if len(c.LocalesPaths) == 0 {
		return fmt.Errorf("%w: locales_paths is empty", ErrInvalidConfig)
	}
	if c.SourceLocale == "" {
		return fmt.Errorf("%w: source_locale is empty", ErrInvalidConfig)
	}
	if !c.KeyStyle.Valid() {
		return fmt.Errorf("%w: unknown key_style %q", ErrInvalidConfig, c.KeyStyle)
	}
	if !c.DirStructure.Valid() {
		return fmt.Errorf("%w: unknown dir_structure %q", ErrInvalidConfig, c.DirStructure)
	}
	if _, err := detect.Lookup(c.Frameworks...); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return nil
}

// Abs resolves paths against Root.
func (c *Config) Abs(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Root, p)
		}
		out = append(out, p)
	}
	return out
}

// Display is the locale context for values shown without an explicit
// locale.
func (c *Config) Display() locale.Display {
	return locale.Display{Locale: c.DisplayLocale, Fallback: c.SourceLocale}
}
