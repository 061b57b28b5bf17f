package config

// Mode is the kind of invocation the options are resolved for.
type Mode string

const (
	// ModeExec renders the reports of a completed run.
	ModeExec Mode = "exec"

	// ModeShell is the interactive mode; it only carries a default reporter.
	ModeShell Mode = "shell"
)

// DefaultReporter is used when no reporter or legacy format is configured.
const DefaultReporter = "cli"

// DefaultOptions returns a fresh copy of the defaults for mode.
// Unknown modes have no defaults.
func DefaultOptions(mode Mode) Options {
	switch mode {
	case ModeExec:
		return Options{
			"reporter":        []string{DefaultReporter},
			"show_progress":   false,
			"color":           true,
			"create_lockfile": true,
			"backend_cache":   true,
		}
	case ModeShell:
		return Options{
			"reporter": []string{DefaultReporter},
		}
	default:
		return Options{}
	}
}
