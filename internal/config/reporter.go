package config

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Reporter names.
const (
	ReporterAutomate      = "automate"
	ReporterCLI           = "cli"
	ReporterDocumentation = "documentation"
	ReporterHTML          = "html"
	ReporterJSON          = "json"
	ReporterJSONMin       = "json-min"
	ReporterJSONRSpec     = "json-rspec"
	ReporterJUnit         = "junit"
	ReporterProgress      = "progress"
)

// stdoutTarget is the reporter target that explicitly selects standard output.
const stdoutTarget = "-"

// ReporterConfig says where one reporter writes.
type ReporterConfig struct {
	// Stdout is true when the reporter writes to standard output.
	Stdout bool

	// File is the output path, or "" when the reporter writes no file.
	File string

	// Settings holds reporter specific sub-options, such as the automate
	// token and url.
	Settings Options
}

// ParseReporterString parses one element of the reporter mini-language:
// "name" or "name:target". A missing target or "-" selects standard output;
// any other target is a file path. Only the first colon separates the name,
// so targets may contain colons.
func ParseReporterString(s string) (string, ReporterConfig) {
	name, target, found := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	target = strings.TrimSpace(target)
	if !found || target == "" || target == stdoutTarget {
		return name, ReporterConfig{Stdout: true}
	}
	return name, ReporterConfig{File: target}
}

// ParseReporters turns the merged options into a reporter map.
//
// A legacy "format" option without a "reporter" option is converted into a
// one-element reporter list (with the legacy "output" path as its target)
// and a deprecation notice is logged. Without either option the reporter
// list defaults to "cli". opts is modified in place: "format" and "output"
// are removed once converted and "reporter" is left as the parsed list.
func ParseReporters(opts Options, logger *slog.Logger) (map[string]ReporterConfig, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if format, ok := opts.String("format"); ok && !opts.Has("reporter") {
		logger.Warn("[DEPRECATED] The option --format is being deprecated. Please use --reporter")
		if output, ok := opts.String("output"); ok && output != "" {
			logger.Warn("[DEPRECATED] The option 'output' is being deprecated. Please use --reporter name:path")
			format = format + ":" + output
			delete(opts, "output")
		}
		opts["reporter"] = []string{format}
		delete(opts, "format")
	} else if opts.Has("format") {
		logger.Warn("ignoring legacy --format because --reporter is set", "format", opts["format"])
	}

	if !opts.Has("reporter") {
		opts["reporter"] = []string{DefaultReporter}
	}

	raw := opts["reporter"]
	if list, ok := toStrings(raw); ok {
		reporters := make(map[string]ReporterConfig, len(list))
		for _, s := range list {
			name, rc := ParseReporterString(s)
			reporters[name] = rc
		}
		return reporters, nil
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of reporter strings or an object, got %T", ErrInvalidReporterSpec, raw)
	}

	reporters := make(map[string]ReporterConfig, len(m))
	for name, v := range m {
		rc, err := reporterFromMap(name, v)
		if err != nil {
			return nil, err
		}
		reporters[name] = rc
	}
	return reporters, nil
}

// reporterFromMap builds a ReporterConfig from one entry of a reporter
// object. An entry that sets neither "stdout" nor "file" writes to
// standard output, except automate which ships its report to its url.
func reporterFromMap(name string, v any) (ReporterConfig, error) {
	rc := ReporterConfig{Settings: Options{}}
	if v == nil {
		rc.Stdout = true
		return rc, nil
	}

	entry, ok := v.(map[string]any)
	if !ok {
		return rc, fmt.Errorf("%w: reporter %q must be an object, got %T", ErrInvalidReporterSpec, name, v)
	}

	stdoutSet := false
	for key, value := range entry {
		switch key {
		case "stdout":
			b, ok := value.(bool)
			if !ok {
				return rc, fmt.Errorf("%w: reporter %q: stdout must be a boolean", ErrInvalidReporterSpec, name)
			}
			rc.Stdout = b
			stdoutSet = true
		case "file":
			s, ok := value.(string)
			if !ok {
				return rc, fmt.Errorf("%w: reporter %q: file must be a string", ErrInvalidReporterSpec, name)
			}
			rc.File = s
		default:
			rc.Settings[key] = value
		}
	}

	if !stdoutSet && rc.File == "" && name != ReporterAutomate {
		rc.Stdout = true
	}
	return rc, nil
}

// SortedReporterNames returns the reporter names in lexical order.
func SortedReporterNames(reporters map[string]ReporterConfig) []string {
	names := make([]string, 0, len(reporters))
	for name := range reporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
