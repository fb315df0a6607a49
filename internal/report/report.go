// Package report renders query results for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/Brooooooklyn/i18n-ally/internal/coverage"
	"github.com/Brooooooklyn/i18n-ally/internal/usage"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatText || f == FormatJSON
}

// Printer writes reports to w.
type Printer struct {
	w      io.Writer
	format Format

	green, yellow, red, dim, bold *color.Color
}

// New returns a Printer for w. Text output is colored only when w is a
// terminal.
func New(w io.Writer, format Format) *Printer {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return NewColored(w, format, colored)
}

// NewColored returns a Printer with coloring forced on or off.
func NewColored(w io.Writer, format Format, colored bool) *Printer {
	p := &Printer{
		w:      w,
		format: format,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		dim:    color.New(color.Faint),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.green, p.yellow, p.red, p.dim, p.bold} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Strings prints a list of strings in text or JSON format.
func (p *Printer) Strings(items []string, label string) error {
	if p.format == FormatJSON {
		if items == nil {
			items = []string{}
		}
		return p.JSON(items)
	}

	if len(items) == 0 {
		fmt.Fprintf(p.w, "No %s found.\n", label)
		return nil
	}

	fmt.Fprintf(p.w, "Found %d %s:\n", len(items), label)
	for _, item := range items {
		fmt.Fprintf(p.w, "  %s\n", item)
	}
	return nil
}

// Coverage prints one row per locale with a progress bar.
func (p *Printer) Coverage(covs []coverage.Coverage) error {
	if p.format == FormatJSON {
		if covs == nil {
			covs = []coverage.Coverage{}
		}
		return p.JSON(covs)
	}
	if len(covs) == 0 {
		fmt.Fprintln(p.w, "No locales found.")
		return nil
	}

	width := 0
	for _, c := range covs {
		width = max(width, len(c.Locale))
	}
	for _, c := range covs {
		fmt.Fprintf(p.w, "  %-*s %s  %d/%d translated", width, c.Locale, p.progressBar(c.Percent(), 20), c.Translated, c.Total)
		if c.Missing > 0 {
			fmt.Fprintf(p.w, ", %s", p.yellow.Sprintf("%d missing", c.Missing))
		}
		if n := len(c.EmptyKeys); n > 0 {
			fmt.Fprintf(p.w, ", %s", p.dim.Sprintf("%d empty", n))
		}
		fmt.Fprintln(p.w)
	}
	return nil
}

// progressBar renders a bar such as ████████░░░░  75%.
func (p *Printer) progressBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	filled := width * percent / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	c := p.green
	switch {
	case percent < 50:
		c = p.red
	case percent < 100:
		c = p.yellow
	}
	return fmt.Sprintf("%s %3d%%", c.Sprint(bar), percent)
}

// Usages prints each key with its file:line occurrences.
func (p *Printer) Usages(usages []usage.KeyUsage, label string) error {
	if p.format == FormatJSON {
		if usages == nil {
			usages = []usage.KeyUsage{}
		}
		return p.JSON(usages)
	}
	if len(usages) == 0 {
		fmt.Fprintf(p.w, "No %s found.\n", label)
		return nil
	}

	fmt.Fprintf(p.w, "Found %d %s:\n", len(usages), label)
	for _, u := range usages {
		fmt.Fprintf(p.w, "  %s\n", p.bold.Sprint(u.Keypath))
		for _, o := range u.Occurrences {
			fmt.Fprintf(p.w, "    %s\n", p.dim.Sprintf("%s:%d", o.Filepath, o.Line))
		}
	}
	return nil
}

// Values prints keypath followed by one "locale: value" line per locale.
// Locales without a value are marked missing.
func (p *Printer) Values(keypath string, locales []string, value func(loc string) (string, bool)) error {
	if p.format == FormatJSON {
		out := make(map[string]*string, len(locales))
		for _, loc := range locales {
			if v, ok := value(loc); ok {
				out[loc] = &v
			} else {
				out[loc] = nil
			}
		}
		return p.JSON(map[string]any{"keypath": keypath, "values": out})
	}

	fmt.Fprintln(p.w, p.bold.Sprint(keypath))
	width := 0
	for _, loc := range locales {
		width = max(width, len(loc))
	}
	for _, loc := range locales {
		if v, ok := value(loc); ok {
			fmt.Fprintf(p.w, "  %-*s  %s\n", width, loc, v)
		} else {
			fmt.Fprintf(p.w, "  %-*s  %s\n", width, loc, p.red.Sprint("(missing)"))
		}
	}
	return nil
}

// Diff prints a KeyDiff result with added lines green and removed lines
// red.
func (p *Printer) Diff(diff string) {
	if diff == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(p.w, p.green.Sprint(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(p.w, p.red.Sprint(line))
		default:
			fmt.Fprintln(p.w, line)
		}
	}
}
