// Package sink routes step log messages to both the console and the report of the scenario that
// is currently running.
package sink

import (
	"fmt"
	"html"
	"strings"

	"github.com/bookstore-qa/ui-test-harness/framework"
)

// ReportFallbackMessage is written to the console when a message could not be added to the
// scenario report.
const ReportFallbackMessage = "Test step status is not updated in scenario report"

var reportReplacer = strings.NewReplacer("\t", "&emsp;", "\n", "<br>") //nolint:gochecknoglobals

// Report is the scenario report a Sink appends to. The text it receives is already escaped for
// HTML rendering.
type Report interface {
	AppendReport(text string)
}

// Sink is bound to one scenario for the scenario's lifetime. A Sink with no report logs to the
// console only.
type Sink struct {
	console framework.Logger
	report  Report
}

func New(console framework.Logger, report Report) *Sink {
	if console == nil {
		console = framework.NullLogger()
	}
	return &Sink{console: console, report: report}
}

// Info records an informational message.
func (s *Sink) Info(message string) {
	s.appendReport("\t" + message)
	s.console.Println(message)
}

func (s *Sink) Infof(format string, args ...interface{}) {
	s.Info(fmt.Sprintf(format, args...))
}

// Pass records a successful check. It has no effect on the outcome.
func (s *Sink) Pass(message string) {
	s.appendReport("\t" + message)
	s.console.Println(message)
}

// Fail records a failure and returns the failed step result carrying the message. A step that
// calls Fail should return its result immediately.
func (s *Sink) Fail(message string) framework.StepResult {
	s.appendReport("\tFailed: " + message)
	s.console.Println(message)
	return framework.Failed(message)
}

func (s *Sink) Failf(format string, args ...interface{}) framework.StepResult {
	return s.Fail(fmt.Sprintf(format, args...))
}

// EscapeReportText makes a message safe to embed in report markup, preserving tabs and line
// breaks as their HTML equivalents.
func EscapeReportText(message string) string {
	return reportReplacer.Replace(html.EscapeString(message))
}

func (s *Sink) appendReport(message string) {
	if s.report == nil {
		s.console.Println(ReportFallbackMessage)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.console.Println(ReportFallbackMessage)
		}
	}()
	s.report.AppendReport(EscapeReportText(message))
}
