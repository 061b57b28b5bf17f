package report

import "github.com/nao1215/complyreport/internal/model"

// createTestRun creates a run with one profile holding a passing, a
// failing, a skipped and an anonymous control.
func createTestRun() *model.RunResult {
	return &model.RunResult{
		Version:  "1.2.3",
		Platform: &model.Platform{Name: "ubuntu", Release: "22.04"},
		Profiles: []model.ProfileResult{
			{
				Name:    "baseline",
				Title:   model.Ptr("Baseline"),
				Version: model.Ptr("1.0.0"),
				Controls: []model.ControlRecord{
					{
						ID:     "c-1",
						Title:  model.Ptr("Root login"),
						Impact: model.Ptr(1.0),
						Tags:   map[string]any{"cis": "5.2.8"},
						Results: []model.AssertionResult{
							{Status: model.StatusPassed, CodeDesc: model.Ptr("root login disabled"), RunTime: model.Ptr(0.25)},
						},
					},
					{
						ID:     "c-2",
						Title:  model.Ptr("Protocol"),
						Impact: model.Ptr(0.5),
						Results: []model.AssertionResult{
							{Status: model.StatusFailed, CodeDesc: model.Ptr("protocol is 2"), Message: model.Ptr("expected 2\ngot 1")},
							{Status: model.StatusFailed, CodeDesc: model.Ptr("ciphers strong"), Message: model.Ptr("weak")},
							{Status: model.StatusPassed, CodeDesc: model.Ptr("port 22")},
						},
					},
					{
						ID:     "c-3",
						Title:  model.Ptr("Banner"),
						Impact: model.Ptr(0.1),
						Results: []model.AssertionResult{
							{Status: model.StatusSkipped, SkipMessage: model.Ptr("no banner")},
						},
					},
					{
						ID: "(generated from controls/x.rb:1 abc)",
						Results: []model.AssertionResult{
							{
								Status:             model.StatusPassed,
								CodeDesc:           model.Ptr("File /etc should be directory"),
								ExpectationMessage: model.Ptr("is expected to be directory"),
								ResourceTitle:      model.Ptr("File /etc"),
							},
						},
					},
				},
			},
		},
		Statistics: model.Statistics{Duration: 0.5},
	}
}

// createPassingRun creates a run where every control passed.
func createPassingRun() *model.RunResult {
	return &model.RunResult{
		Version: "1.2.3",
		Profiles: []model.ProfileResult{
			{
				Name: "ok",
				Controls: []model.ControlRecord{
					{
						ID:     "ok-1",
						Title:  model.Ptr("Fine"),
						Impact: model.Ptr(0.7),
						Results: []model.AssertionResult{
							{Status: model.StatusPassed, CodeDesc: model.Ptr("all good")},
							{Status: model.StatusPassed, CodeDesc: model.Ptr("still good")},
						},
					},
				},
			},
		},
	}
}
