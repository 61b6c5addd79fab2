// Package output formats indexctl results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"content-indexer/domain"

	"github.com/fatih/color"
)

// ColorMode selects when colors are used.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses auto, always or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to color output. In auto mode NO_COLOR and
// TERM=dumb turn colors off.
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		return os.Getenv("TERM") != "dumb"
	}
}

// Printer writes human readable messages. Errors and warnings go to the
// error stream; everything else to out.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
	quiet     bool
}

func NewPrinter(out, errOut io.Writer, useColors, quiet bool) *Printer {
	return &Printer{out: out, err: errOut, useColors: useColors, quiet: quiet}
}

// Out is the writer for regular output, used by tables.
func (p *Printer) Out() io.Writer {
	return p.out
}

func (p *Printer) IsQuiet() bool {
	return p.quiet
}

func (p *Printer) Info(format string, args ...any) {
	if p.quiet {
		return
	}
	p.colored(p.out, color.FgCyan, "", format, args...)
}

func (p *Printer) Success(format string, args ...any) {
	if p.quiet {
		return
	}
	if p.useColors {
		p.colored(p.out, color.FgGreen, "✓ ", format, args...)
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

func (p *Printer) Warning(format string, args ...any) {
	if p.quiet {
		return
	}
	if p.useColors {
		p.colored(p.err, color.FgYellow, "⚠ ", format, args...)
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

// Error is printed even in quiet mode.
func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		p.colored(p.err, color.FgRed, "✗ ", format, args...)
		return
	}
	fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
}

func (p *Printer) Print(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Header(title string) {
	if p.quiet {
		return
	}
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		color.New(color.FgWhite).Fprintf(p.out, "%s\n", strings.Repeat("─", len([]rune(title))))
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

// JSON writes v indented. It ignores quiet mode since it is the requested output.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) Bold(text string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

// Score formats a similarity score, green for matches in both title and fields.
func (p *Printer) Score(score float64) string {
	s := fmt.Sprintf("%.1f", score)
	if !p.useColors {
		return s
	}
	switch {
	case score >= domain.BothMatchScore:
		return color.GreenString(s)
	case score >= domain.TitleMatchScore:
		return color.CyanString(s)
	default:
		return color.YellowString(s)
	}
}

// EventBadge colors a change event type.
func (p *Printer) EventBadge(eventType string) string {
	if !p.useColors {
		return fmt.Sprintf("[%s]", eventType)
	}
	switch eventType {
	case "entry.upserted":
		return color.GreenString(eventType)
	case "entry.removed", "index.cleared":
		return color.RedString(eventType)
	default:
		return color.WhiteString(eventType)
	}
}

func (p *Printer) colored(w io.Writer, attr color.Attribute, prefix, format string, args ...any) {
	if p.useColors {
		color.New(attr).Fprintf(w, prefix+format+"\n", args...)
		return
	}
	fmt.Fprintf(w, prefix+format+"\n", args...)
}
