package scenario

import (
	"strings"
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework"
)

// ID identifies a scenario by its feature and scenario names.
type ID []string

func (id ID) String() string {
	return strings.Join(id, "/")
}

func (id ID) Plus(name string) ID {
	return append(append(ID(nil), id...), name)
}

// Name returns the last component of the ID.
func (id ID) Name() string {
	if len(id) == 0 {
		return ""
	}
	return id[len(id)-1]
}

// StepOutcome is what the after-step hooks and test loggers see for each step.
type StepOutcome struct {
	Index    int
	Text     string
	Result   framework.StepResult
	Duration time.Duration
}

// Failed is true if this step itself failed.
func (o StepOutcome) Failed() bool { return o.Result.IsFailed() }

// Attachment is an artifact attached to a scenario's record, such as a failure screenshot.
type Attachment struct {
	Name      string
	MediaType string
	Data      []byte
}

type ScenarioResult struct {
	ID          ID
	RunID       string
	State       State
	Steps       []StepOutcome
	Errors      []error
	Attachments []Attachment
	Duration    time.Duration
}

func (r ScenarioResult) Failed() bool { return r.State == Failed }

type Results struct {
	Scenarios []ScenarioResult
	Failures  []ScenarioResult
	Skipped   []ID
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}
