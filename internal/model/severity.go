package model

// Severity is the label the console reporter attaches to a control header
// or to a single result line. It covers both impact grades (minor, major,
// critical) and outcome labels (passed, skipped, unknown).
type Severity int

const (
	// SeverityNone is used for anonymous controls, which carry no label.
	SeverityNone Severity = iota

	// SeverityUnknown is used when a failing control has no impact.
	SeverityUnknown

	// SeveritySkipped is used when every result of the control was skipped.
	SeveritySkipped

	// SeverityPassed is used for passing controls and passing results.
	SeverityPassed

	// SeverityMinor grades a failure with impact below 0.4.
	SeverityMinor

	// SeverityMajor grades a failure with impact in [0.4, 0.7).
	SeverityMajor

	// SeverityCritical grades a failure with impact of 0.7 or more.
	SeverityCritical
)

// Impact thresholds, inclusive.
const (
	CriticalImpact = 0.7
	MajorImpact    = 0.4
)

// String returns the label used for colours, indicators and summaries.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return ""
	case SeverityUnknown:
		return "unknown"
	case SeveritySkipped:
		return "skipped"
	case SeverityPassed:
		return "passed"
	case SeverityMinor:
		return "minor"
	case SeverityMajor:
		return "major"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ClassifyImpact grades an impact value into minor, major or critical.
func ClassifyImpact(impact float64) Severity {
	switch {
	case impact >= CriticalImpact:
		return SeverityCritical
	case impact >= MajorImpact:
		return SeverityMajor
	default:
		return SeverityMinor
	}
}

// ClassifyControl returns the label for a control header.
//
// The first matching rule wins: anonymous controls have no label, a missing
// impact is unknown, an all-skipped control is skipped, an all-passed or
// empty control is passed, and anything else is graded by impact.
func ClassifyControl(c *ControlRecord) Severity {
	switch {
	case c.IsAnonymous():
		return SeverityNone
	case c.Impact == nil:
		return SeverityUnknown
	case len(c.Results) > 0 && c.AllResults(StatusSkipped):
		return SeveritySkipped
	case c.AllResults(StatusPassed):
		return SeverityPassed
	default:
		return ClassifyImpact(*c.Impact)
	}
}

// ClassifyResult returns the label for one result line of control c.
// A fully skipped control labels every line skipped; otherwise a passing
// result is passed even inside a failing control.
func ClassifyResult(c *ControlRecord, r *AssertionResult) Severity {
	switch {
	case c.AllResults(StatusSkipped):
		return SeveritySkipped
	case r.Status == StatusPassed:
		return SeverityPassed
	case c.Impact == nil:
		return SeverityUnknown
	default:
		return ClassifyImpact(*c.Impact)
	}
}
