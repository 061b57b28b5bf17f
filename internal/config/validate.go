package config

import "fmt"

// knownReporters is the fixed set of reporter names a configuration may use.
var knownReporters = map[string]bool{
	ReporterAutomate:      true,
	ReporterCLI:           true,
	ReporterDocumentation: true,
	ReporterHTML:          true,
	ReporterJSON:          true,
	ReporterJSONMin:       true,
	ReporterJSONRSpec:     true,
	ReporterJUnit:         true,
	ReporterProgress:      true,
}

// automateRequired lists the automate settings that must be non-null.
var automateRequired = []string{"token", "url"}

// IsKnownReporter reports whether name is a valid reporter type.
func IsKnownReporter(name string) bool {
	return knownReporters[name]
}

// ValidateReporters checks a resolved reporter map. It is a no-op for an
// empty map. Reporters are checked in name order: each name must be known
// and automate must carry a token and url. Finally, at most one reporter may
// write to standard output.
func ValidateReporters(reporters map[string]ReporterConfig) error {
	if len(reporters) == 0 {
		return nil
	}

	for _, name := range SortedReporterNames(reporters) {
		if !knownReporters[name] {
			return fmt.Errorf("'%s' is %w", name, ErrInvalidReporter)
		}
		if name == ReporterAutomate {
			rc := reporters[name]
			for _, option := range automateRequired {
				if !rc.Settings.Has(option) {
					return fmt.Errorf("%w: you must specify a automate %s via the json-config", ErrMissingReporterOption, option)
				}
			}
		}
	}

	stdout := 0
	for _, rc := range reporters {
		if rc.Stdout {
			stdout++
		}
	}
	if stdout > 1 {
		return ErrMultipleStdoutReporters
	}

	return nil
}
