package model

// ProfileSummary counts controls by outcome across all profiles.
// Anonymous controls are not counted.
type ProfileSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Skipped int `json:"skipped"`

	// Failed counts failing controls; the graded fields split that count by impact.
	Failed   int `json:"failed"`
	Critical int `json:"critical"`
	Major    int `json:"major"`
	Minor    int `json:"minor"`
}

// TestSummary counts individual results by status across all profiles.
type TestSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// controlKey identifies a control within a run. A control shared between
// profiles through a dependency is reported once per profile name.
type controlKey struct {
	profile string
	id      string
}

// uniqueControls walks the run in order and yields each control once.
func (r *RunResult) uniqueControls(fn func(*ControlRecord)) {
	seen := make(map[controlKey]bool)
	for pi := range r.Profiles {
		p := &r.Profiles[pi]
		for ci := range p.Controls {
			c := &p.Controls[ci]
			key := controlKey{profile: p.Name, id: c.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			fn(c)
		}
	}
}

// ProfileSummary classifies every authored control as failed when any
// result failed, skipped when any result was skipped, and passed otherwise.
func (r *RunResult) ProfileSummary() ProfileSummary {
	var s ProfileSummary
	r.uniqueControls(func(c *ControlRecord) {
		if c.IsAnonymous() {
			return
		}
		switch {
		case c.CountResults(StatusFailed) > 0:
			s.Failed++
			impact := 0.0
			if c.Impact != nil {
				impact = *c.Impact
			}
			switch ClassifyImpact(impact) {
			case SeverityCritical:
				s.Critical++
			case SeverityMajor:
				s.Major++
			default:
				s.Minor++
			}
		case c.CountResults(StatusSkipped) > 0:
			s.Skipped++
		default:
			s.Passed++
		}
	})
	s.Total = s.Passed + s.Failed + s.Skipped
	return s
}

// TestSummary counts every result of every control, anonymous ones included.
// Results with a status other than failed or skipped count as passed.
func (r *RunResult) TestSummary() TestSummary {
	var s TestSummary
	r.uniqueControls(func(c *ControlRecord) {
		for _, res := range c.Results {
			switch res.Status {
			case StatusFailed:
				s.Failed++
			case StatusSkipped:
				s.Skipped++
			default:
				s.Passed++
			}
		}
	})
	s.Total = s.Passed + s.Failed + s.Skipped
	return s
}

// WorstFailure returns the highest graded severity among failing authored
// controls, or SeverityNone when nothing failed.
func (r *RunResult) WorstFailure() Severity {
	s := r.ProfileSummary()
	switch {
	case s.Critical > 0:
		return SeverityCritical
	case s.Major > 0:
		return SeverityMajor
	case s.Minor > 0:
		return SeverityMinor
	default:
		return SeverityNone
	}
}
