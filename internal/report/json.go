package report

import (
	"encoding/json"

	"github.com/nao1215/complyreport/internal/model"
)

// jsonRenderer writes the run tree verbatim. Decoding its output yields a
// tree identical to the input, so it is the format for follow-on tooling.
type jsonRenderer struct{}

func (r *jsonRenderer) sealed() {}

// Name returns "json".
func (r *jsonRenderer) Name() string {
	return "json"
}

// Render marshals the run.
func (r *jsonRenderer) Render(run *model.RunResult) ([]byte, error) {
	return marshalLine(run)
}

// MinimalReport is the document written by the json-min reporter.
type MinimalReport struct {
	Version    string           `json:"version"`
	Controls   []MinimalControl `json:"controls"`
	Statistics model.Statistics `json:"statistics"`
}

// MinimalControl is one control result flattened with its control and
// profile identifiers.
type MinimalControl struct {
	ID        string       `json:"id"`
	ProfileID string       `json:"profile_id"`
	Status    model.Status `json:"status"`

	// CodeDesc is always written, as null when the result has none.
	CodeDesc *string `json:"code_desc"`

	// Message is written only when the result carries one.
	Message *string `json:"message,omitempty"`
}

// jsonMinRenderer flattens every (control, result) pair into one record.
type jsonMinRenderer struct{}

func (r *jsonMinRenderer) sealed() {}

// Name returns "json-min".
func (r *jsonMinRenderer) Name() string {
	return "json-min"
}

// Render writes a MinimalReport in profile, control, result order.
func (r *jsonMinRenderer) Render(run *model.RunResult) ([]byte, error) {
	return marshalLine(NewMinimalReport(run))
}

// NewMinimalReport flattens run into a MinimalReport.
func NewMinimalReport(run *model.RunResult) *MinimalReport {
	report := &MinimalReport{
		Version:    run.Version,
		Controls:   []MinimalControl{},
		Statistics: run.Statistics,
	}
	for _, p := range run.Profiles {
		for _, c := range p.Controls {
			for _, res := range c.Results {
				report.Controls = append(report.Controls, MinimalControl{
					ID:        c.ID,
					ProfileID: p.Name,
					Status:    res.Status,
					CodeDesc:  res.CodeDesc,
					Message:   res.Message,
				})
			}
		}
	}
	return report
}

// marshalLine marshals v and appends a trailing newline for terminal output.
func marshalLine(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
