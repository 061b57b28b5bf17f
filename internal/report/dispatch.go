package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/complyreport/internal/config"
	"github.com/nao1215/complyreport/internal/model"
)

// Output is one rendered report and where it was written.
type Output struct {
	// Reporter is the reporter name.
	Reporter string

	// Data is the rendered report.
	Data []byte

	// Stdout is true when Data was written to standard output.
	Stdout bool

	// File is the path Data was written to, or "".
	File string
}

// Dispatcher renders every configured reporter and routes each report to
// standard output or its file.
//
// Rendering runs concurrently over the same run snapshot. Report files are
// then staged as temporary files and renamed into place in reporter name
// order once every one of them was written, so a failed render or file write
// leaves no report files behind. A failing rename can still leave the reports
// renamed before it.
type Dispatcher struct {
	fs          afero.Fs
	stdout      io.Writer
	logger      *slog.Logger
	concurrency int
	renderOpts  []Option
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithFs sets the filesystem report files are written to.
func WithFs(fs afero.Fs) DispatcherOption {
	return func(d *Dispatcher) {
		d.fs = fs
	}
}

// WithStdout sets the writer used for the standard output reporter.
func WithStdout(w io.Writer) DispatcherOption {
	return func(d *Dispatcher) {
		d.stdout = w
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithConcurrency limits how many renderers run at once.
// The default is the number of CPUs.
func WithConcurrency(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithRendererOptions sets the options passed to every renderer.
func WithRendererOptions(opts ...Option) DispatcherOption {
	return func(d *Dispatcher) {
		d.renderOpts = append(d.renderOpts, opts...)
	}
}

// NewDispatcher creates a Dispatcher writing to the OS filesystem and os.Stdout.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		fs:          afero.NewOsFs(),
		stdout:      os.Stdout,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Dispatch renders run once per reporter and writes the reports.
// Reporters without a renderer are skipped with a warning. The reporter map
// must already be validated, so at most one reporter writes to stdout.
func (d *Dispatcher) Dispatch(ctx context.Context, reporters map[string]config.ReporterConfig, run *model.RunResult) ([]Output, error) {
	names := config.SortedReporterNames(reporters)

	renderers := make([]Renderer, 0, len(names))
	for _, name := range names {
		r, err := New(name, d.renderOpts...)
		if err != nil {
			if errors.Is(err, ErrRendererUnavailable) {
				d.logger.Warn("skipping reporter without renderer", "reporter", name)
				continue
			}
			return nil, err
		}
		renderers = append(renderers, r)
	}

	outputs := make([]Output, len(renderers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, r := range renderers {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			data, err := r.Render(run)
			if err != nil {
				return fmt.Errorf("failed to render %s report: %w", r.Name(), err)
			}
			rc := reporters[r.Name()]
			outputs[i] = Output{
				Reporter: r.Name(),
				Data:     data,
				Stdout:   rc.Stdout,
				File:     rc.File,
			}
			d.logger.Debug("rendered report", "reporter", r.Name(), "bytes", len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := d.write(outputs); err != nil {
		return nil, err
	}
	return outputs, nil
}

// write stages every report file next to its target and renames the staged
// files into place only once all of them were written. The stdout report is
// written last.
func (d *Dispatcher) write(outputs []Output) error {
	staged := make([]string, len(outputs))
	for i, out := range outputs {
		if out.File == "" {
			continue
		}
		tmp, err := d.stage(out)
		if err != nil {
			d.discard(staged)
			return err
		}
		staged[i] = tmp
	}

	for i, out := range outputs {
		if staged[i] == "" {
			continue
		}
		if err := d.fs.Rename(staged[i], out.File); err != nil {
			d.discard(staged[i:])
			return fmt.Errorf("failed to move %s report into place: %w", out.Reporter, err)
		}
		d.logger.Debug("report written", "reporter", out.Reporter, "file", out.File)
	}

	for _, out := range outputs {
		if !out.Stdout {
			continue
		}
		if _, err := d.stdout.Write(out.Data); err != nil {
			return fmt.Errorf("failed to write %s report to stdout: %w", out.Reporter, err)
		}
	}
	return nil
}

// stage writes out.Data to a hidden temporary file in the report directory
// and returns its path.
func (d *Dispatcher) stage(out Output) (string, error) {
	dir := filepath.Dir(out.File)
	if err := d.fs.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := afero.TempFile(d.fs, dir, "."+filepath.Base(out.File)+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create %s report file: %w", out.Reporter, err)
	}
	if _, err := f.Write(out.Data); err != nil {
		_ = f.Close()             //nolint:errcheck // write error takes precedence
		_ = d.fs.Remove(f.Name()) //nolint:errcheck // write error takes precedence
		return "", fmt.Errorf("failed to write %s report file: %w", out.Reporter, err)
	}
	if err := f.Close(); err != nil {
		_ = d.fs.Remove(f.Name()) //nolint:errcheck // close error takes precedence
		return "", fmt.Errorf("failed to close %s report file: %w", out.Reporter, err)
	}
	return f.Name(), nil
}

// discard removes staged files that were not moved into place.
func (d *Dispatcher) discard(staged []string) {
	for _, name := range staged {
		if name == "" {
			continue
		}
		if err := d.fs.Remove(name); err != nil {
			d.logger.Warn("failed to remove staged report file", "file", name, "error", err)
		}
	}
}
