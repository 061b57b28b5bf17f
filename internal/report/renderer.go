package report

import (
	"errors"
	"fmt"

	"github.com/nao1215/complyreport/internal/config"
	"github.com/nao1215/complyreport/internal/model"
)

var (
	// ErrRendererUnavailable is returned by New for valid reporter names that
	// have no renderer in this build.
	ErrRendererUnavailable = errors.New("reporter has no renderer in this build")

	// ErrUnknownRenderer is returned by New for names outside the reporter set.
	ErrUnknownRenderer = errors.New("unknown renderer")
)

// Renderer turns a run into one serialized report.
//
// Renderers must not modify the run. The interface is sealed: only the
// renderers in this package implement it.
type Renderer interface {
	// Name returns the reporter name the renderer was created for.
	Name() string

	// Render serializes the run.
	Render(run *model.RunResult) ([]byte, error)

	sealed()
}

// Option configures renderers created by New.
type Option func(*options)

type options struct {
	// color enables ANSI colours in the console report.
	color bool

	// target is the scanned system shown in the console profile header.
	target string

	// palette selects console colours and indicators.
	palette Palette
}

// WithColor enables or disables colours in the console report.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

// WithTarget sets the target description shown in the console header.
func WithTarget(target string) Option {
	return func(o *options) {
		o.target = target
	}
}

// WithPalette overrides the platform palette of the console report.
func WithPalette(p Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// New creates the renderer for a reporter name.
func New(name string, opts ...Option) (Renderer, error) {
	o := options{palette: DefaultPalette()}
	for _, opt := range opts {
		opt(&o)
	}

	switch name {
	case config.ReporterCLI:
		return newConsoleRenderer(o), nil
	case config.ReporterJSON:
		return &jsonRenderer{}, nil
	case config.ReporterJSONMin:
		return &jsonMinRenderer{}, nil
	case config.ReporterDocumentation:
		return &markdownRenderer{}, nil
	case config.ReporterJUnit:
		return &junitRenderer{}, nil
	case config.ReporterAutomate, config.ReporterHTML, config.ReporterJSONRSpec, config.ReporterProgress:
		return nil, fmt.Errorf("%w: %s", ErrRendererUnavailable, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRenderer, name)
	}
}
