package model

import "strings"

// AnonymousControlPrefix marks controls synthesized from a single inline
// expectation rather than an authored control block.
const AnonymousControlPrefix = "(generated from "

// Status is the outcome of one assertion.
type Status string

const (
	// StatusPassed means the assertion held.
	StatusPassed Status = "passed"

	// StatusFailed means the assertion did not hold.
	StatusFailed Status = "failed"

	// StatusSkipped means the assertion was not evaluated.
	StatusSkipped Status = "skipped"
)

// RunResult is the complete result tree for one test run.
// It is produced once by the execution engine and is read-only while
// reports are rendered; no reporter may modify it.
type RunResult struct {
	// Version is the version of the runner that produced the results.
	Version string `json:"version"`

	// Platform describes the target the checks ran against, if known.
	Platform *Platform `json:"platform,omitempty"`

	// Profiles holds one entry per executed profile, in execution order.
	Profiles []ProfileResult `json:"profiles"`

	// Statistics holds run-wide measurements.
	Statistics Statistics `json:"statistics"`

	Extra Extra `json:"-"`
}

// Platform identifies the operating system of the scanned target.
type Platform struct {
	Name    string `json:"name"`
	Release string `json:"release"`
	Extra   Extra  `json:"-"`
}

// Statistics holds run-wide measurements.
type Statistics struct {
	// Duration is the wall-clock time of the run in seconds.
	Duration float64 `json:"duration"`

	Extra Extra `json:"-"`
}

// ProfileResult holds the results of one profile.
type ProfileResult struct {
	Name       string          `json:"name"`
	Title      *string         `json:"title,omitempty"`
	Version    *string         `json:"version,omitempty"`
	Summary    *string         `json:"summary,omitempty"`
	Maintainer *string         `json:"maintainer,omitempty"`
	License    *string         `json:"license,omitempty"`
	Controls   []ControlRecord `json:"controls"`
	Extra      Extra           `json:"-"`
}

// ControlRecord is one control and the results of its assertions.
type ControlRecord struct {
	ID     string   `json:"id"`
	Title  *string  `json:"title,omitempty"`
	Desc   *string  `json:"desc,omitempty"`
	Impact *float64 `json:"impact,omitempty"`

	// Tags are free-form author metadata.
	Tags map[string]any `json:"tags,omitempty"`

	SourceLocation *SourceLocation   `json:"source_location,omitempty"`
	Results        []AssertionResult `json:"results"`
	Extra          Extra             `json:"-"`
}

// SourceLocation points at the file and line that defined a control.
type SourceLocation struct {
	Ref   string `json:"ref"`
	Line  int    `json:"line"`
	Extra Extra  `json:"-"`
}

// AssertionResult is the outcome of one assertion inside a control.
// Authored controls describe themselves through CodeDesc, anonymous
// controls through ExpectationMessage.
type AssertionResult struct {
	Status             Status   `json:"status"`
	CodeDesc           *string  `json:"code_desc,omitempty"`
	Message            *string  `json:"message,omitempty"`
	SkipMessage        *string  `json:"skip_message,omitempty"`
	ExpectationMessage *string  `json:"expectation_message,omitempty"`
	ResourceTitle      *string  `json:"resource_title,omitempty"`
	RunTime            *float64 `json:"run_time,omitempty"`
	StartTime          *string  `json:"start_time,omitempty"`
	Exception          *string  `json:"exception,omitempty"`
	Backtrace          []string `json:"backtrace,omitempty"`
	Extra              Extra    `json:"-"`
}

// IsAnonymous reports whether the control was synthesized from an inline
// expectation.
func (c *ControlRecord) IsAnonymous() bool {
	return strings.HasPrefix(c.ID, AnonymousControlPrefix)
}

// AllResults reports whether every result has the given status.
// A control without results satisfies any status.
func (c *ControlRecord) AllResults(status Status) bool {
	for _, r := range c.Results {
		if r.Status != status {
			return false
		}
	}
	return true
}

// CountResults returns the number of results with the given status.
func (c *ControlRecord) CountResults(status Status) int {
	n := 0
	for _, r := range c.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr returns a pointer to v. It is a convenience for building optional
// fields of the result tree.
func Ptr[T any](v T) *T {
	return &v
}
