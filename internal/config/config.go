package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "complyreport"

	// DefaultConfigFile is the configuration file searched for in the XDG
	// config directory when no --json-config is given.
	DefaultConfigFile = "complyreport.json"

	// DefaultLogLevel is used when the configured level is not recognized.
	DefaultLogLevel = "info"
)

// machineReadableReporters write formats that must not be interleaved with
// log output when they own standard output.
var machineReadableReporters = []string{
	ReporterJSON,
	ReporterJSONMin,
	ReporterJSONRSpec,
	ReporterJUnit,
	ReporterHTML,
}

// Config is the effective configuration of one invocation. It is built once
// by Resolve before any work starts and is not modified afterwards.
type Config struct {
	// Mode is the invocation mode the options were resolved for.
	Mode Mode

	// Reporters maps reporter names to their output destinations.
	// At most one entry writes to standard output.
	Reporters map[string]ReporterConfig

	// Color enables ANSI colours in the console reporter.
	Color bool

	// Target describes the scanned system, shown in the console header.
	Target string

	// LogLevel is one of debug, info, warn, error or fatal.
	LogLevel string

	// LogFormat is "json" for JSON log lines; anything else selects text.
	LogFormat string

	// LogLocation is a file receiving log output. When empty, logs go to
	// stderr or stdout as decided by SuppressLogOutput.
	LogLocation string

	// Diagnose prints the option sources and the merged result.
	Diagnose bool

	// Options holds every merged option, including those without a
	// dedicated field.
	Options Options
}

// Get returns a merged option by key.
func (c *Config) Get(key string) (any, bool) {
	return c.Options.Get(key)
}

// Validate checks the reporter map.
func (c *Config) Validate() error {
	return ValidateReporters(c.Reporters)
}

// ReporterNames returns the configured reporter names in lexical order.
func (c *Config) ReporterNames() []string {
	return SortedReporterNames(c.Reporters)
}

// StdoutReporter returns the reporter that writes to standard output, if any.
func (c *Config) StdoutReporter() (string, bool) {
	for _, name := range c.ReporterNames() {
		if c.Reporters[name].Stdout {
			return name, true
		}
	}
	return "", false
}

// SuppressLogOutput reports whether a machine-readable reporter writes to
// standard output, in which case log lines must go elsewhere.
func (c *Config) SuppressLogOutput() bool {
	for _, name := range machineReadableReporters {
		if rc, ok := c.Reporters[name]; ok && rc.Stdout {
			return true
		}
	}
	return false
}

// XDGDataDir returns the XDG data directory for complyreport.
// On Linux: ~/.local/share/complyreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for complyreport.
// On Linux: ~/.config/complyreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
