package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/nao1215/complyreport/internal/model"
)

const (
	// headerIndent is the indentation of control header lines.
	headerIndent = 2

	// resultIndent is the indentation of result lines.
	resultIndent = 5
)

// Summary message keys. The English catalog selects the singular or plural
// form from the count.
const (
	msgSuccessfulControls = "%d successful controls"
	msgControlFailures    = "%d control failures"
	msgControlsSkipped    = "%d controls skipped"
	msgSuccessfulTests    = "%d successful"
	msgTestFailures       = "%d failures"
	msgTestsSkipped       = "%d skipped"
)

// summaryPrinter formats the summary counts with English plural rules.
var summaryPrinter = newSummaryPrinter()

func newSummaryPrinter() *message.Printer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(key, one, other string) {
		if err := b.Set(language.English, key, plural.Selectf(1, "%d", "=1", one, "other", other)); err != nil {
			panic(fmt.Sprintf("report: invalid summary message %q: %v", key, err))
		}
	}
	set(msgSuccessfulControls, "1 successful control", "%d successful controls")
	set(msgControlFailures, "1 control failure", "%d control failures")
	set(msgControlsSkipped, "1 control skipped", "%d controls skipped")
	set(msgSuccessfulTests, "%d successful", "%d successful")
	set(msgTestFailures, "1 failure", "%d failures")
	set(msgTestsSkipped, "%d skipped", "%d skipped")
	return message.NewPrinter(language.English, message.Catalog(b))
}

// consoleRenderer writes the human-readable report.
//
// Each profile gets a header block followed by its authored controls and
// then the results of its anonymous controls. Every control header and
// result line carries an indicator and colour derived from its severity.
// Profile and test summaries close the report.
type consoleRenderer struct {
	target  string
	palette Palette
	painter *painter
}

func newConsoleRenderer(o options) *consoleRenderer {
	return &consoleRenderer{
		target:  o.target,
		palette: o.palette,
		painter: newPainter(o.palette, o.color),
	}
}

func (r *consoleRenderer) sealed() {}

// Name returns "cli".
func (r *consoleRenderer) Name() string {
	return "cli"
}

// Render writes the console report.
func (r *consoleRenderer) Render(run *model.RunResult) ([]byte, error) {
	var sb strings.Builder

	for pi := range run.Profiles {
		profile := &run.Profiles[pi]
		sb.WriteString("\n")
		r.writeProfileHeader(&sb, profile)
		r.writeStandardControls(&sb, profile)
		r.writeAnonymousControls(&sb, profile)
	}

	sb.WriteString("\n")
	r.writeProfileSummary(&sb, run.ProfileSummary())
	r.writeTestSummary(&sb, run.TestSummary())

	return []byte(sb.String()), nil
}

func (r *consoleRenderer) writeProfileHeader(sb *strings.Builder, p *model.ProfileResult) {
	fmt.Fprintf(sb, "Profile: %s\n", profileDisplayName(p))

	version := "(not specified)"
	if p.Version != nil {
		version = *p.Version
	}
	fmt.Fprintf(sb, "Version: %s\n", version)

	if r.target != "" {
		fmt.Fprintf(sb, "Target: %s\n", r.target)
	}
	sb.WriteString("\n")
}

// profileDisplayName combines title and name when both exist.
func profileDisplayName(p *model.ProfileResult) string {
	name := p.Name
	if name == "" {
		name = "unknown"
	}
	if p.Title == nil {
		return name
	}
	return fmt.Sprintf("%s (%s)", *p.Title, name)
}

func (r *consoleRenderer) writeStandardControls(sb *strings.Builder, p *model.ProfileResult) {
	for ci := range p.Controls {
		c := &p.Controls[ci]
		if c.IsAnonymous() {
			continue
		}
		r.writeControl(sb, model.NewControlView(c), false)
	}
}

func (r *consoleRenderer) writeAnonymousControls(sb *strings.Builder, p *model.ProfileResult) {
	for ci := range p.Controls {
		c := &p.Controls[ci]
		if !c.IsAnonymous() || len(c.Results) == 0 {
			continue
		}
		r.writeControl(sb, model.NewControlView(c), true)
	}
}

func (r *consoleRenderer) writeControl(sb *strings.Builder, v model.ControlView, anonymous bool) {
	sb.WriteString(r.formatMessage(v.Severity(), v.TitleForReport(), headerIndent))
	sb.WriteString("\n")

	results := v.Results()
	for i := range results {
		res := &results[i]
		sb.WriteString(r.formatMessage(v.ResultSeverity(res), resultMessage(res, anonymous), resultIndent))
		sb.WriteString("\n")
	}
}

// resultMessage picks the text of a result line: the skip message for
// skipped results, the expectation for anonymous controls, and the code
// description otherwise. A failure message follows on its own line.
func resultMessage(res *model.AssertionResult, anonymous bool) string {
	var msg string
	switch {
	case res.Status == model.StatusSkipped:
		msg = model.StringValue(res.SkipMessage)
	case anonymous:
		msg = model.StringValue(res.ExpectationMessage)
	default:
		msg = model.StringValue(res.CodeDesc)
	}
	if res.Message != nil {
		msg += "\n" + *res.Message
	}
	return msg
}

// formatMessage prefixes message with the severity indicator, indents every
// line and colours the whole block. SeverityNone has neither indicator nor colour.
func (r *consoleRenderer) formatMessage(sev model.Severity, message string, indent int) string {
	label := sev.String()

	var text string
	if sev != model.SeverityNone {
		text = r.palette.Indicators[label] + "  "
	}
	text += message

	return r.painter.paint(label, indentLines(text, indent))
}

// indentLines prefixes every line of s with indent spaces.
func indentLines(s string, indent int) string {
	pad := strings.Repeat(" ", indent)
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(pad)
		b.WriteString(line)
	}
	return b.String()
}

func (r *consoleRenderer) writeProfileSummary(sb *strings.Builder, s model.ProfileSummary) {
	if s.Total == 0 {
		return
	}
	fmt.Fprintf(sb, "Profile Summary: %s, %s, %s\n",
		r.paintCount("passed", s.Passed, summaryPrinter.Sprintf(msgSuccessfulControls, s.Passed)),
		r.paintCount(labelFailed, s.Failed, summaryPrinter.Sprintf(msgControlFailures, s.Failed)),
		r.paintCount("skipped", s.Skipped, summaryPrinter.Sprintf(msgControlsSkipped, s.Skipped)),
	)
}

func (r *consoleRenderer) writeTestSummary(sb *strings.Builder, s model.TestSummary) {
	fmt.Fprintf(sb, "Test Summary: %s, %s, %s\n",
		r.paintCount("passed", s.Passed, summaryPrinter.Sprintf(msgSuccessfulTests, s.Passed)),
		r.paintCount(labelFailed, s.Failed, summaryPrinter.Sprintf(msgTestFailures, s.Failed)),
		r.paintCount("skipped", s.Skipped, summaryPrinter.Sprintf(msgTestsSkipped, s.Skipped)),
	)
}

// paintCount colours text only when count is non-zero.
func (r *consoleRenderer) paintCount(label string, count int, text string) string {
	if count == 0 {
		label = labelNoColor
	}
	return r.painter.paint(label, text)
}
