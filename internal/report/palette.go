package report

import (
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Colour labels used besides the severity names.
const (
	labelFailed  = "failed"
	labelNoColor = "no_color"
)

// Palette holds the console colours and indicator glyphs keyed by label:
// the severity names plus "failed" for summary counts.
type Palette struct {
	// Colors maps a label to its SGR attributes.
	Colors map[string][]color.Attribute

	// Indicators maps a severity label to the glyph printed before a line.
	Indicators map[string]string
}

// ExtendedPalette uses 256-colour codes and UTF-8 glyphs.
func ExtendedPalette() Palette {
	return Palette{
		Colors: map[string][]color.Attribute{
			"critical":  {38, 5, 9},
			"major":     {38, 5, 208},
			"minor":     {color.Reset, color.FgCyan},
			labelFailed: {38, 5, 9},
			"passed":    {38, 5, 41},
			"skipped":   {38, 5, 247},
		},
		Indicators: map[string]string{
			"critical":  "×",
			"major":     "∅",
			"minor":     "⊚",
			labelFailed: "×",
			"skipped":   "↺",
			"passed":    "✔",
			"unknown":   "?",
		},
	}
}

// BasicPalette uses bold basic colours and bracketed tags, for terminals
// with poor extended colour and UTF-8 support.
func BasicPalette() Palette {
	return Palette{
		Colors: map[string][]color.Attribute{
			"critical":  {color.Reset, color.Bold, color.FgRed},
			"major":     {color.Reset, color.Bold, color.FgRed},
			"minor":     {color.Reset, color.FgCyan},
			labelFailed: {color.Reset, color.Bold, color.FgRed},
			"passed":    {color.Reset, color.Bold, color.FgGreen},
			"skipped":   {color.Reset, color.FgWhite},
		},
		Indicators: map[string]string{
			"critical":  "[CRIT]",
			"major":     "[MAJR]",
			"minor":     "[MINR]",
			labelFailed: "[FAIL]",
			"skipped":   "[SKIP]",
			"passed":    "[PASS]",
			"unknown":   "[UNKN]",
		},
	}
}

// DefaultPalette returns BasicPalette on Windows and ExtendedPalette elsewhere.
func DefaultPalette() Palette {
	if runtime.GOOS == "windows" {
		return BasicPalette()
	}
	return ExtendedPalette()
}

// painter wraps text in palette colours. Colour objects are forced on or off
// individually so output does not depend on whether stdout is a terminal.
type painter struct {
	enabled bool
	colors  map[string]*color.Color
	reset   *color.Color
}

func newPainter(p Palette, enabled bool) *painter {
	pt := &painter{
		enabled: enabled,
		colors:  make(map[string]*color.Color, len(p.Colors)),
		reset:   color.New(color.Reset),
	}
	pt.reset.EnableColor()
	for label, attrs := range p.Colors {
		c := color.New(attrs...)
		c.EnableColor()
		pt.colors[label] = c
	}
	return pt
}

// paint returns text wrapped in the colour of label followed by a reset.
// Text is returned unchanged when colour is off or the label has no colour.
func (p *painter) paint(label, text string) string {
	if !p.enabled {
		return text
	}
	c, ok := p.colors[label]
	if !ok {
		return text
	}
	var b strings.Builder
	c.SetWriter(&b)
	b.WriteString(text)
	p.reset.SetWriter(&b)
	return b.String()
}
