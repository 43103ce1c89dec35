package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when diagnostics are colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts "", auto, always or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

type fdWriter interface {
	Fd() uintptr
}

// Reporter writes diagnostics to a sink and remembers which categories it
// has seen.
type Reporter struct {
	out    io.Writer
	static *color.Color
	rt     *color.Color
	counts map[Category]int
}

func NewReporter(out io.Writer, mode ColorMode) *Reporter {
	r := &Reporter{
		out:    out,
		static: color.New(color.FgYellow, color.Bold),
		rt:     color.New(color.FgRed, color.Bold),
		counts: make(map[Category]int),
	}
	if useColor(out, mode) {
		r.static.EnableColor()
		r.rt.EnableColor()
	} else {
		r.static.DisableColor()
		r.rt.DisableColor()
	}
	return r
}

func useColor(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := out.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Report prints err. Lists are flattened so each diagnostic gets its own line.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}
	var list ErrorList
	if errors.As(err, &list) {
		for _, inner := range list {
			r.Report(inner)
		}
		return
	}
	category, known := CategoryOf(err)
	if known {
		r.counts[category]++
	}
	paint := r.static
	if known && category == CategoryRuntime {
		paint = r.rt
	}
	fmt.Fprintln(r.out, paint.Sprint(err.Error()))
}

// Count returns how many diagnostics of the category were reported.
func (r *Reporter) Count(category Category) int {
	return r.counts[category]
}

// HadError reports whether any front-end or static diagnostic was seen.
func (r *Reporter) HadError() bool {
	return r.counts[CategoryScan]+r.counts[CategoryParse]+r.counts[CategoryResolver] > 0
}

// HadRuntimeError reports whether a runtime diagnostic was seen.
func (r *Reporter) HadRuntimeError() bool {
	return r.counts[CategoryRuntime] > 0
}

// Reset clears the counters; the sink is kept.
func (r *Reporter) Reset() {
	r.counts = make(map[Category]int)
}
