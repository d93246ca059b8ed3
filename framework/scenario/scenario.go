package scenario

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework"
	"github.com/bookstore-qa/ui-test-harness/framework/sink"

	"github.com/google/uuid"
)

// State is the lifecycle state of a Scenario.
type State int

const (
	Started State = iota
	Passed
	Failed
	Closed
)

func (s State) String() string {
	switch s {
	case Started:
		return "started"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Scenario is the context of the scenario that is currently running. It is passed explicitly to
// every step and hook.
type Scenario struct {
	env         *environment
	id          ID
	runID       string
	state       State
	outcome     State
	debugLogger framework.CapturingLogger
	sink        *sink.Sink
	report      []string
	steps       []StepOutcome
	errors      []error
	attachments []Attachment
	cleanups    []func()
	skipReason  string
}

func newScenario(env *environment, id ID) *Scenario {
	sc := &Scenario{env: env, id: id, runID: uuid.NewString(), state: Started}
	var console framework.Logger = &sc.debugLogger
	if env.config.Console != nil {
		console = framework.MultiLogger(env.config.Console, &sc.debugLogger)
	}
	sc.sink = sink.New(console, sc)
	return sc
}

func (sc *Scenario) run(action func(*Scenario)) (result ScenarioResult) {
	start := time.Now()
	defer func() {
		sc.runAfterScenarioHooks()
		for i := len(sc.cleanups) - 1; i >= 0; i-- {
			sc.cleanups[i]()
		}
		sc.outcome = sc.state
		sc.state = Closed
		result = ScenarioResult{
			ID:          sc.id,
			RunID:       sc.runID,
			State:       sc.outcome,
			Steps:       append([]StepOutcome(nil), sc.steps...),
			Errors:      sc.errors,
			Attachments: append([]Attachment(nil), sc.attachments...),
			Duration:    time.Since(start),
		}
	}()

	for _, h := range sc.env.config.Hooks {
		if h.BeforeScenario == nil {
			continue
		}
		if err := h.BeforeScenario(sc); err != nil {
			sc.fail(fmt.Errorf("before-scenario hook failed: %w", err))
			return
		}
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				sc.fail(fmt.Errorf("unexpected panic in scenario: %+v\n%s", r, string(debug.Stack())))
			}
		}()
		action(sc)
	}()
	if sc.state == Started {
		sc.state = Passed
	}
	return
}

// ID returns the feature/scenario name of the scenario.
func (sc *Scenario) ID() ID { return sc.id }

// RunID is unique to this execution of the scenario.
func (sc *Scenario) RunID() string { return sc.runID }

// State returns Started while steps are running, Passed or Failed once the body has finished,
// and Closed after the after-scenario hooks.
func (sc *Scenario) State() State { return sc.state }

// Failed is true once any step has failed.
func (sc *Scenario) Failed() bool {
	return sc.state == Failed || (sc.state == Closed && sc.outcome == Failed)
}

// Log returns the logging sink bound to this scenario.
func (sc *Scenario) Log() *sink.Sink { return sc.sink }

// Debug writes a message to the scenario's debug output only.
func (sc *Scenario) Debug(message string, args ...interface{}) {
	sc.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the scenario's debug output.
func (sc *Scenario) DebugLogger() framework.Logger { return &sc.debugLogger }

// AppendReport adds a line to the scenario report. The sink calls this with text that is
// already escaped.
func (sc *Scenario) AppendReport(text string) {
	sc.report = append(sc.report, text)
}

// Report returns the report lines written so far.
func (sc *Scenario) Report() []string {
	return append([]string(nil), sc.report...)
}

// Attach adds an artifact to the scenario's record.
func (sc *Scenario) Attach(data []byte, mediaType, name string) {
	sc.attachments = append(sc.attachments, Attachment{Name: name, MediaType: mediaType, Data: data})
	sc.Debug("Attached %s (%s, %d bytes)", name, mediaType, len(data))
}

func (sc *Scenario) Attachments() []Attachment {
	return append([]Attachment(nil), sc.attachments...)
}

// Steps returns the outcomes of the steps run so far.
func (sc *Scenario) Steps() []StepOutcome {
	return append([]StepOutcome(nil), sc.steps...)
}

// Defer schedules a cleanup function which is called when the scenario ends for any reason,
// after the after-scenario hooks.
func (sc *Scenario) Defer(cleanupFn func()) {
	sc.cleanups = append(sc.cleanups, cleanupFn)
}

// Step runs one step and returns its result. If an earlier step failed or asked to skip the
// scenario, the step is not executed and no after-step hook runs for it. A panic inside the step
// is recovered and reported as a failure.
func (sc *Scenario) Step(text string, fn func(*Scenario) framework.StepResult) framework.StepResult {
	outcome := StepOutcome{Index: len(sc.steps) + 1, Text: text}
	if sc.state != Started || sc.skipReason != "" {
		outcome.Result = framework.Skipped("an earlier step did not pass")
		sc.steps = append(sc.steps, outcome)
		sc.env.config.TestLogger.StepFinished(sc.id, outcome)
		return outcome.Result
	}

	start := time.Now()
	outcome.Result = sc.runStep(fn)
	outcome.Duration = time.Since(start)
	sc.steps = append(sc.steps, outcome)

	switch outcome.Result.Status {
	case framework.StepFailed:
		sc.fail(StepError{Index: outcome.Index, Text: text, Reason: outcome.Result.Reason})
	case framework.StepSkipped:
		sc.skipReason = outcome.Result.Reason
		if sc.skipReason == "" {
			sc.skipReason = "skipped by step: " + text
		}
	}
	sc.env.config.TestLogger.StepFinished(sc.id, outcome)
	sc.runAfterStepHooks(outcome)
	return outcome.Result
}

func (sc *Scenario) runStep(fn func(*Scenario) framework.StepResult) (result framework.StepResult) {
	defer func() {
		if r := recover(); r != nil {
			sc.Debug("%s", debug.Stack())
			result = sc.sink.Fail(fmt.Sprintf("unexpected panic in step: %+v", r))
		}
	}()
	return fn(sc)
}

func (sc *Scenario) fail(err error) {
	sc.state = Failed
	sc.errors = append(sc.errors, err)
	sc.env.config.TestLogger.ScenarioError(sc.id, err)
}

func (sc *Scenario) runAfterStepHooks(outcome StepOutcome) {
	for _, h := range sc.env.config.Hooks {
		if h.AfterStep != nil {
			sc.guardHook("after-step", func() { h.AfterStep(sc, outcome) })
		}
	}
}

func (sc *Scenario) runAfterScenarioHooks() {
	hooks := sc.env.config.Hooks
	for i := len(hooks) - 1; i >= 0; i-- {
		if h := hooks[i]; h.AfterScenario != nil {
			sc.guardHook("after-scenario", func() { h.AfterScenario(sc) })
		}
	}
}

func (sc *Scenario) guardHook(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			sc.Debug("%s hook panicked: %+v", kind, r)
		}
	}()
	fn()
}
