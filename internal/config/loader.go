package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// StdinSource is the configuration path that reads the document from
// standard input.
const StdinSource = "-"

// Loader reads configuration documents from a filesystem or standard input.
type Loader struct {
	fs     afero.Fs
	stdin  io.Reader
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFs sets the filesystem configuration files are read from.
// Tests use afero.NewMemMapFs().
func WithFs(fs afero.Fs) LoaderOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithStdin sets the reader used for the "-" source.
func WithStdin(r io.Reader) LoaderOption {
	return func(l *Loader) {
		l.stdin = r
	}
}

// WithLoaderLogger sets the logger used for the interactive-stdin warning.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader reading from the OS filesystem and os.Stdin.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the configuration document at path. An empty path yields no
// options. The path "-" reads standard input, warning first when standard
// input is an interactive terminal because the read would block on the user.
//
// Files ending in .yaml or .yml are decoded as YAML; everything else is JSON.
// A document that does not decode into an object returns a
// *MalformedConfigError holding the raw text.
func (l *Loader) Load(path string) (Options, error) {
	if path == "" {
		return Options{}, nil
	}

	var (
		data []byte
		err  error
	)
	if path == StdinSource {
		if f, ok := l.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // Fd fits in int on supported platforms
			l.logger.Warn("reading JSON config from standard input, but standard input is a terminal")
		}
		data, err = io.ReadAll(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration from standard input: %w", err)
		}
	} else {
		data, err = afero.ReadFile(l.fs, path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
		}
	}

	doc, err := decodeDocument(path, data)
	if err != nil {
		return nil, &MalformedConfigError{Source: path, Raw: string(data), Err: err}
	}
	return doc, nil
}

// Find returns the configuration file to load. An explicit path is returned
// unchanged. Otherwise the default file in the XDG config directory is used
// when it exists, and "" when it does not.
func (l *Loader) Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if exists, err := afero.Exists(l.fs, candidate); err == nil && exists {
		return candidate
	}
	return ""
}

func decodeDocument(path string, data []byte) (Options, error) {
	var doc map[string]any
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	} else {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	if doc == nil {
		return nil, errors.New("configuration document must be an object")
	}
	return Options(doc), nil
}
