package model

import "fmt"

// ControlView is a read-only projection over one control record.
// It never modifies the record it wraps.
type ControlView struct {
	control *ControlRecord
}

// NewControlView wraps a control record.
func NewControlView(c *ControlRecord) ControlView {
	return ControlView{control: c}
}

// ID returns the control identifier.
func (v ControlView) ID() string {
	return v.control.ID
}

// Title returns the control title, or "" when it has none.
func (v ControlView) Title() string {
	return StringValue(v.control.Title)
}

// Impact returns the control impact and whether one was set.
func (v ControlView) Impact() (float64, bool) {
	if v.control.Impact == nil {
		return 0, false
	}
	return *v.control.Impact, true
}

// Results returns the results of the control.
func (v ControlView) Results() []AssertionResult {
	return v.control.Results
}

// IsAnonymous reports whether the control was generated from an inline expectation.
func (v ControlView) IsAnonymous() bool {
	return v.control.IsAnonymous()
}

// FailureCount returns the number of failed results.
func (v ControlView) FailureCount() int {
	return v.control.CountResults(StatusFailed)
}

// Severity returns the control-level label.
func (v ControlView) Severity() Severity {
	return ClassifyControl(v.control)
}

// ResultSeverity returns the label of one result of this control.
func (v ControlView) ResultSeverity(r *AssertionResult) Severity {
	return ClassifyResult(v.control, r)
}

// TitleForReport returns the header text for the control.
//
// Anonymous controls use the resource title of their first result.
// Authored controls use "{id}: {title}", suffixed with " ({n} failed)"
// when the control has more than one result and more than one failure.
func (v ControlView) TitleForReport() string {
	if v.IsAnonymous() {
		if len(v.control.Results) == 0 {
			return v.control.ID
		}
		return StringValue(v.control.Results[0].ResourceTitle)
	}

	title := fmt.Sprintf("%s: %s", v.ID(), v.Title())
	if len(v.control.Results) <= 1 {
		return title
	}
	if failed := v.FailureCount(); failed > 1 {
		title += fmt.Sprintf(" (%d failed)", failed)
	}
	return title
}
