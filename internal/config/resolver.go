package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// requiredValueOptions must carry a value whenever they are present.
var requiredValueOptions = []string{"password", "sudo_password"}

// validLogLevels are the accepted values of the log_level option.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// ResolveOption configures Resolve.
type ResolveOption func(*resolver)

type resolver struct {
	logger *slog.Logger
}

// WithLogger sets the logger that receives deprecation notices.
func WithLogger(logger *slog.Logger) ResolveOption {
	return func(r *resolver) {
		r.logger = logger
	}
}

// Resolve merges the defaults of mode, the configuration document and the
// invocation options into one Config and validates it.
//
// Keys are merged independently, later sources winning. When either the
// document or the invocation sets the legacy "format" option, the reporter
// list merged so far (defaults and document) is dropped so that legacy and
// modern reporter configuration never combine silently.
func Resolve(mode Mode, document, invocation Options, opts ...ResolveOption) (*Config, error) {
	r := &resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	document = document.normalized()
	invocation = invocation.normalized()

	merged := DefaultOptions(mode)
	merged["type"] = string(mode)
	merged.Merge(document)
	if document.Has("format") || invocation.Has("format") {
		delete(merged, "reporter")
	}
	merged.Merge(invocation)

	for _, key := range requiredValueOptions {
		if v, ok := merged.String(key); ok && v == MissingValue {
			flag := "--" + strings.ReplaceAll(key, "_", "-")
			return nil, fmt.Errorf("%w: please provide a value for %s. For example: %s=hello", ErrMissingOptionValue, flag, flag)
		}
	}

	reporters, err := ParseReporters(merged, r.logger)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Mode:      mode,
		Reporters: reporters,
		LogLevel:  DefaultLogLevel,
		Options:   merged,
	}
	cfg.Color, _ = merged.Bool("color")
	cfg.Target, _ = merged.String("target")
	cfg.LogFormat, _ = merged.String("log_format")
	cfg.LogLocation, _ = merged.String("log_location")
	cfg.Diagnose, _ = merged.Bool("diagnose")
	if level, ok := merged.String("log_level"); ok && validLogLevels[strings.ToLower(level)] {
		cfg.LogLevel = strings.ToLower(level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
