package report

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/nao1215/complyreport/internal/model"
)

// junitTestSuites is the root element of a JUnit report.
type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Skipped  int              `xml:"skipped,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

// junitTestSuite holds the results of one profile.
type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

// junitTestCase is one control result.
type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr,omitempty"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr,omitempty"`
	Text    string `xml:",chardata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// junitRenderer writes JUnit XML: one test suite per profile and one test
// case per control result, named after the result's code description.
type junitRenderer struct{}

func (r *junitRenderer) sealed() {}

// Name returns "junit".
func (r *junitRenderer) Name() string {
	return "junit"
}

// Render marshals the run as indented JUnit XML.
func (r *junitRenderer) Render(run *model.RunResult) ([]byte, error) {
	doc := junitTestSuites{
		Time:   formatSeconds(run.Statistics.Duration),
		Suites: make([]junitTestSuite, 0, len(run.Profiles)),
	}

	for _, p := range run.Profiles {
		suite := junitTestSuite{Name: p.Name}
		for _, c := range p.Controls {
			for _, res := range c.Results {
				tc := junitTestCase{
					Name:      junitCaseName(&c, &res),
					ClassName: c.ID,
				}
				if res.RunTime != nil {
					tc.Time = formatSeconds(*res.RunTime)
				}
				switch res.Status {
				case model.StatusFailed:
					tc.Failure = &junitFailure{
						Message: model.StringValue(res.Message),
						Type:    model.StringValue(res.Exception),
						Text:    model.StringValue(res.Message),
					}
					suite.Failures++
				case model.StatusSkipped:
					tc.Skipped = &junitSkipped{Message: model.StringValue(res.SkipMessage)}
					suite.Skipped++
				}
				suite.Tests++
				suite.Cases = append(suite.Cases, tc)
			}
		}
		doc.Tests += suite.Tests
		doc.Failures += suite.Failures
		doc.Skipped += suite.Skipped
		doc.Suites = append(doc.Suites, suite)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal junit report: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	return append(out, '\n'), nil
}

// junitCaseName prefers the code description, then the expectation, then
// the control title.
func junitCaseName(c *model.ControlRecord, res *model.AssertionResult) string {
	switch {
	case res.CodeDesc != nil:
		return *res.CodeDesc
	case res.ExpectationMessage != nil:
		return *res.ExpectationMessage
	case c.Title != nil:
		return *c.Title
	default:
		return c.ID
	}
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 6, 64)
}
