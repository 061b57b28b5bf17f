package model

import "testing"

// TestSeverityString tests the String method of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityNone, ""},
		{SeverityUnknown, "unknown"},
		{SeveritySkipped, "skipped"},
		{SeverityPassed, "passed"},
		{SeverityMinor, "minor"},
		{SeverityMajor, "major"},
		{SeverityCritical, "critical"},
		{Severity(999), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

// TestClassifyImpact tests the impact thresholds including both boundaries.
func TestClassifyImpact(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		impact   float64
		expected Severity
	}{
		{1.0, SeverityCritical},
		{0.7, SeverityCritical},
		{0.6999, SeverityMajor},
		{0.5, SeverityMajor},
		{0.4, SeverityMajor},
		{0.3999, SeverityMinor},
		{0.1, SeverityMinor},
		{0.0, SeverityMinor},
	}

	for _, tc := range testCases {
		if got := ClassifyImpact(tc.impact); got != tc.expected {
			t.Errorf("ClassifyImpact(%v) = %v, expected %v", tc.impact, got, tc.expected)
		}
	}
}

func results(statuses ...Status) []AssertionResult {
	out := make([]AssertionResult, len(statuses))
	for i, s := range statuses {
		out[i] = AssertionResult{Status: s}
	}
	return out
}

// TestClassifyControl tests the control-level precedence rules.
func TestClassifyControl(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		control  ControlRecord
		expected Severity
	}{
		{
			name:     "anonymous control has no label",
			control:  ControlRecord{ID: "(generated from test.rb:1 abc)", Impact: Ptr(0.9), Results: results(StatusFailed)},
			expected: SeverityNone,
		},
		{
			name:     "missing impact is unknown even when passing",
			control:  ControlRecord{ID: "c1", Results: results(StatusPassed)},
			expected: SeverityUnknown,
		},
		{
			name:     "all skipped is skipped regardless of impact",
			control:  ControlRecord{ID: "c1", Impact: Ptr(1.0), Results: results(StatusSkipped, StatusSkipped)},
			expected: SeveritySkipped,
		},
		{
			name:     "all passed is passed regardless of impact",
			control:  ControlRecord{ID: "c1", Impact: Ptr(1.0), Results: results(StatusPassed, StatusPassed)},
			expected: SeverityPassed,
		},
		{
			name:     "zero results is passed",
			control:  ControlRecord{ID: "c1", Impact: Ptr(0.9)},
			expected: SeverityPassed,
		},
		{
			name:     "failure with high impact is critical",
			control:  ControlRecord{ID: "c1", Impact: Ptr(0.7), Results: results(StatusPassed, StatusFailed)},
			expected: SeverityCritical,
		},
		{
			name:     "failure with medium impact is major",
			control:  ControlRecord{ID: "c1", Impact: Ptr(0.4), Results: results(StatusFailed)},
			expected: SeverityMajor,
		},
		{
			name:     "failure with low impact is minor",
			control:  ControlRecord{ID: "c1", Impact: Ptr(0.1), Results: results(StatusFailed)},
			expected: SeverityMinor,
		},
		{
			name:     "skipped mixed with passed is graded by impact",
			control:  ControlRecord{ID: "c1", Impact: Ptr(0.5), Results: results(StatusPassed, StatusSkipped)},
			expected: SeverityMajor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyControl(&tt.control); got != tt.expected {
				t.Errorf("ClassifyControl() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// TestClassifyResult tests the result-level precedence rules.
func TestClassifyResult(t *testing.T) {
	t.Parallel()

	t.Run("all skipped control labels every line skipped", func(t *testing.T) {
		t.Parallel()
		c := ControlRecord{ID: "c1", Impact: Ptr(0.9), Results: results(StatusSkipped, StatusSkipped)}
		for i := range c.Results {
			if got := ClassifyResult(&c, &c.Results[i]); got != SeveritySkipped {
				t.Errorf("result %d: got %v, expected skipped", i, got)
			}
		}
	})

	t.Run("passing line in failing control is passed", func(t *testing.T) {
		t.Parallel()
		c := ControlRecord{ID: "c1", Impact: Ptr(0.9), Results: results(StatusPassed, StatusFailed)}
		if got := ClassifyResult(&c, &c.Results[0]); got != SeverityPassed {
			t.Errorf("got %v, expected passed", got)
		}
		if got := ClassifyResult(&c, &c.Results[1]); got != SeverityCritical {
			t.Errorf("got %v, expected critical", got)
		}
	})

	t.Run("failing line without impact is unknown", func(t *testing.T) {
		t.Parallel()
		c := ControlRecord{ID: "c1", Results: results(StatusFailed)}
		if got := ClassifyResult(&c, &c.Results[0]); got != SeverityUnknown {
			t.Errorf("got %v, expected unknown", got)
		}
	})

	t.Run("passing line without impact is passed", func(t *testing.T) {
		t.Parallel()
		c := ControlRecord{ID: "c1", Results: results(StatusPassed, StatusFailed)}
		if got := ClassifyResult(&c, &c.Results[0]); got != SeverityPassed {
			t.Errorf("got %v, expected passed", got)
		}
	})

	t.Run("skipped line in mixed control is graded by impact", func(t *testing.T) {
		t.Parallel()
		c := ControlRecord{ID: "c1", Impact: Ptr(0.2), Results: results(StatusSkipped, StatusFailed)}
		if got := ClassifyResult(&c, &c.Results[0]); got != SeverityMinor {
			t.Errorf("got %v, expected minor", got)
		}
	})
}
