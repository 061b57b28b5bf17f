package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/complyreport/internal/model"
)

// severityIcons decorates severity labels in tables.
var severityIcons = map[model.Severity]string{
	model.SeverityCritical: "🔴",
	model.SeverityMajor:    "🟠",
	model.SeverityMinor:    "🔵",
	model.SeverityPassed:   "✅",
	model.SeveritySkipped:  "⏭️",
	model.SeverityUnknown:  "❔",
}

// markdownRenderer writes the documentation report: a Markdown document
// with run metadata, control and test summaries, a pie chart of result
// statuses and one control table per profile.
type markdownRenderer struct{}

func (r *markdownRenderer) sealed() {}

// Name returns "documentation".
func (r *markdownRenderer) Name() string {
	return "documentation"
}

// Render builds the Markdown document.
func (r *markdownRenderer) Render(run *model.RunResult) ([]byte, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	r.writeHeader(md, run)
	r.writeSummary(md, run)
	for pi := range run.Profiles {
		r.writeProfile(md, &run.Profiles[pi])
	}
	r.writeFooter(md)

	if err := md.Build(); err != nil {
		return nil, fmt.Errorf("failed to build markdown report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *markdownRenderer) writeHeader(md *markdown.Markdown, run *model.RunResult) {
	md.H1("Compliance Report")
	md.PlainText("")

	platform := "-"
	if run.Platform != nil {
		platform = strings.TrimSpace(run.Platform.Name + " " + run.Platform.Release)
	}
	version := run.Version
	if version == "" {
		version = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Runner Version", version},
			{"Platform", platform},
			{"Profiles", strconv.Itoa(len(run.Profiles))},
			{"Duration", strconv.FormatFloat(run.Statistics.Duration, 'f', 3, 64) + "s"},
		},
	})
	md.PlainText("")
}

func (r *markdownRenderer) writeSummary(md *markdown.Markdown, run *model.RunResult) {
	controls := run.ProfileSummary()
	tests := run.TestSummary()

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"", "Passed", "Failed", "Skipped", "Total"},
		Rows: [][]string{
			{"Controls", strconv.Itoa(controls.Passed), strconv.Itoa(controls.Failed), strconv.Itoa(controls.Skipped), strconv.Itoa(controls.Total)},
			{"Tests", strconv.Itoa(tests.Passed), strconv.Itoa(tests.Failed), strconv.Itoa(tests.Skipped), strconv.Itoa(tests.Total)},
		},
	})
	md.PlainText("")

	if controls.Failed > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Failed Severity", "Controls"},
			Rows: [][]string{
				{severityLabel(model.SeverityCritical), strconv.Itoa(controls.Critical)},
				{severityLabel(model.SeverityMajor), strconv.Itoa(controls.Major)},
				{severityLabel(model.SeverityMinor), strconv.Itoa(controls.Minor)},
			},
		})
		md.PlainText("")
	}

	if tests.Total > 0 {
		r.writePieChart(md, tests)
	}
	r.writeAlert(md, run.WorstFailure(), controls)
}

// writePieChart writes a mermaid pie chart of result statuses.
func (r *markdownRenderer) writePieChart(md *markdown.Markdown, s model.TestSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Test Results"),
		piechart.WithShowData(true),
	)
	if s.Passed > 0 {
		chart.LabelAndIntValue("Passed", uint64(s.Passed)) //nolint:gosec // count is non-negative
	}
	if s.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(s.Failed)) //nolint:gosec // count is non-negative
	}
	if s.Skipped > 0 {
		chart.LabelAndIntValue("Skipped", uint64(s.Skipped)) //nolint:gosec // count is non-negative
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert keyed on the worst failing severity.
func (r *markdownRenderer) writeAlert(md *markdown.Markdown, worst model.Severity, s model.ProfileSummary) {
	switch {
	case worst == model.SeverityCritical:
		md.Cautionf("%d critical control(s) failed and require immediate attention.", s.Critical)
	case worst == model.SeverityMajor:
		md.Warningf("%d major control(s) failed.", s.Major)
	case worst == model.SeverityMinor:
		md.Importantf("%d minor control(s) failed.", s.Minor)
	case s.Total == 0:
		md.Note("No controls were reported.")
	case s.Skipped > 0:
		md.Notef("All executed controls passed; %d control(s) were skipped.", s.Skipped)
	default:
		md.Tip("All controls passed.")
	}
	md.PlainText("")
}

func (r *markdownRenderer) writeProfile(md *markdown.Markdown, p *model.ProfileResult) {
	md.H2(profileDisplayName(p))
	md.PlainText("")

	if p.Version != nil {
		md.PlainTextf("Version: %s", *p.Version)
		md.PlainText("")
	}
	if p.Summary != nil {
		md.PlainText(*p.Summary)
		md.PlainText("")
	}

	rows := make([][]string, 0, len(p.Controls))
	var details []model.ControlView
	for ci := range p.Controls {
		v := model.NewControlView(&p.Controls[ci])
		if v.IsAnonymous() && len(v.Results()) == 0 {
			continue
		}
		sev := v.Severity()
		label := "-"
		if sev != model.SeverityNone {
			label = severityLabel(sev)
		}
		rows = append(rows, []string{
			escapeCell(v.TitleForReport()),
			label,
			resultCounts(v),
		})
		if v.FailureCount() > 0 {
			details = append(details, v)
		}
	}

	if len(rows) == 0 {
		md.PlainText("No controls.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Control", "Severity", "Results"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, v := range details {
		md.Details(v.TitleForReport(), failureText(v))
	}
	if len(details) > 0 {
		md.PlainText("")
	}
}

func (r *markdownRenderer) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by complyreport*")
}

// severityLabel returns the icon and title-cased name of a severity.
func severityLabel(s model.Severity) string {
	return severityIcons[s] + " " + cases.Title(language.English).String(s.String())
}

// resultCounts summarizes the results of a control, e.g. "2 passed, 1 failed".
func resultCounts(v model.ControlView) string {
	var parts []string
	for _, st := range []model.Status{model.StatusPassed, model.StatusFailed, model.StatusSkipped} {
		n := 0
		for _, res := range v.Results() {
			if res.Status == st {
				n++
			}
		}
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, st))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// failureText lists the failed results of a control with their messages.
func failureText(v model.ControlView) string {
	var lines []string
	for _, res := range v.Results() {
		if res.Status != model.StatusFailed {
			continue
		}
		line := "- " + model.StringValue(res.CodeDesc)
		if res.Message != nil {
			line += ": " + strings.ReplaceAll(*res.Message, "\n", " ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// escapeCell keeps pipes and newlines from breaking a table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
