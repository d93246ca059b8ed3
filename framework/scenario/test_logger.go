package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/bookstore-qa/ui-test-harness/framework"

	"github.com/fatih/color"
)

var consoleScenarioErrorColor = color.New(color.FgYellow)              //nolint:gochecknoglobals
var consoleScenarioFailedColor = color.New(color.FgRed)                //nolint:gochecknoglobals
var consoleScenarioSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
var consoleDebugOutputColor = color.New(color.Faint)                   //nolint:gochecknoglobals
var allScenariosPassedColor = color.New(color.FgGreen)                 //nolint:gochecknoglobals

type TestLogger interface {
	ScenarioStarted(id ID)
	StepFinished(id ID, outcome StepOutcome)
	ScenarioError(id ID, err error)
	ScenarioFinished(id ID, result ScenarioResult, debugOutput framework.CapturedOutput)
	ScenarioSkipped(id ID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) ScenarioStarted(ID)                                            {}
func (n nullTestLogger) StepFinished(ID, StepOutcome)                                  {}
func (n nullTestLogger) ScenarioError(ID, error)                                       {}
func (n nullTestLogger) ScenarioFinished(ID, ScenarioResult, framework.CapturedOutput) {}
func (n nullTestLogger) ScenarioSkipped(ID, string)                                    {}

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c ConsoleTestLogger) ScenarioStarted(id ID) {
	fmt.Printf("[%s]\n", id)
}

func (c ConsoleTestLogger) StepFinished(id ID, outcome StepOutcome) {
	switch outcome.Result.Status {
	case framework.StepSkipped:
		_, _ = consoleScenarioSkippedColor.Printf("  - %s (skipped)\n", outcome.Text)
	case framework.StepFailed:
		_, _ = consoleScenarioFailedColor.Printf("  x %s\n", outcome.Text)
	default:
		fmt.Printf("  - %s\n", outcome.Text)
	}
}

func (c ConsoleTestLogger) ScenarioError(id ID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		_, _ = consoleScenarioErrorColor.Printf("  %s\n", line)
	}
}

func (c ConsoleTestLogger) ScenarioFinished(id ID, result ScenarioResult, debugOutput framework.CapturedOutput) {
	failed := result.Failed()
	if failed {
		_, _ = consoleScenarioFailedColor.Printf("  FAILED: %s\n", id)
		for _, a := range result.Attachments {
			_, _ = consoleScenarioFailedColor.Printf("  attached %s (%s)\n", a.Name, a.MediaType)
		}
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		_, _ = consoleDebugOutputColor.Println(debugOutput.ToString("    DEBUG "))
	}
}

func (c ConsoleTestLogger) ScenarioSkipped(id ID, reason string) {
	if reason == "" {
		_, _ = consoleScenarioSkippedColor.Printf("  SKIPPED: %s\n", id)
	} else {
		_, _ = consoleScenarioSkippedColor.Printf("  SKIPPED: %s (%s)\n", id, reason)
	}
}

// MultiTestLogger forwards every event to each of its loggers in order.
type MultiTestLogger []TestLogger

func (m MultiTestLogger) ScenarioStarted(id ID) {
	for _, l := range m {
		l.ScenarioStarted(id)
	}
}

func (m MultiTestLogger) StepFinished(id ID, outcome StepOutcome) {
	for _, l := range m {
		l.StepFinished(id, outcome)
	}
}

func (m MultiTestLogger) ScenarioError(id ID, err error) {
	for _, l := range m {
		l.ScenarioError(id, err)
	}
}

func (m MultiTestLogger) ScenarioFinished(id ID, result ScenarioResult, debugOutput framework.CapturedOutput) {
	for _, l := range m {
		l.ScenarioFinished(id, result, debugOutput)
	}
}

func (m MultiTestLogger) ScenarioSkipped(id ID, reason string) {
	for _, l := range m {
		l.ScenarioSkipped(id, reason)
	}
}

func PrintResults(results Results) {
	if results.OK() {
		_, _ = allScenariosPassedColor.Printf("All scenarios passed (%d run, %d skipped)\n",
			len(results.Scenarios), len(results.Skipped))
	} else {
		_, _ = consoleScenarioFailedColor.Fprintf(os.Stderr, "FAILED SCENARIOS (%d):\n", len(results.Failures))
		for _, f := range results.Failures {
			_, _ = consoleScenarioFailedColor.Fprintf(os.Stderr, "  * %s\n", f.ID)
		}
	}
}
