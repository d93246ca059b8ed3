package scenario

import (
	"errors"
	"testing"

	"github.com/bookstore-qa/ui-test-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) ScenarioStarted(id ID) {
	r.events = append(r.events, "start "+id.String())
}
func (r *recordingTestLogger) StepFinished(id ID, o StepOutcome) {
	r.events = append(r.events, "step "+o.Text+" "+o.Result.Status.String())
}
func (r *recordingTestLogger) ScenarioError(id ID, err error) { r.events = append(r.events, "error") }
func (r *recordingTestLogger) ScenarioFinished(id ID, result ScenarioResult, _ framework.CapturedOutput) {
	r.events = append(r.events, "finish "+result.State.String())
}
func (r *recordingTestLogger) ScenarioSkipped(id ID, reason string) {
	r.events = append(r.events, "skip "+reason)
}

func pass(*Scenario) framework.StepResult { return framework.Passed() }

func TestPassingScenario(t *testing.T) {
	var states []State
	results := Run(Configuration{}, func(s *Suite) {
		s.Feature("login", func(s *Suite) {
			s.Scenario("valid", func(sc *Scenario) {
				states = append(states, sc.State())
				sc.Step("open login page", pass)
				sc.Step("log in", pass)
				states = append(states, sc.State())
			})
		})
	})
	assert.True(t, results.OK())
	require.Len(t, results.Scenarios, 1)
	r := results.Scenarios[0]
	assert.Equal(t, ID{"login", "valid"}, r.ID)
	assert.Equal(t, Passed, r.State)
	assert.Len(t, r.Steps, 2)
	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, []State{Started, Started}, states)
}

func TestStepsAfterFailureAreSkippedWithoutHooks(t *testing.T) {
	var hookCalls []int
	executed := 0
	logger := &recordingTestLogger{}
	config := Configuration{
		TestLogger: logger,
		Hooks: []Hooks{{AfterStep: func(sc *Scenario, o StepOutcome) {
			hookCalls = append(hookCalls, o.Index)
		}}},
	}
	results := Run(config, func(s *Suite) {
		s.Scenario("broken", func(sc *Scenario) {
			sc.Step("one", pass)
			r := sc.Step("two", func(sc *Scenario) framework.StepResult {
				executed++
				return sc.Log().Fail("boom")
			})
			assert.True(t, r.IsFailed())
			assert.True(t, sc.Failed())
			sc.Step("three", func(*Scenario) framework.StepResult {
				executed++
				return framework.Passed()
			})
		})
	})
	assert.False(t, results.OK())
	assert.Equal(t, 1, executed)
	assert.Equal(t, []int{1, 2}, hookCalls)
	require.Len(t, results.Failures, 1)
	f := results.Failures[0]
	assert.Equal(t, framework.StepSkipped, f.Steps[2].Result.Status)
	assert.Equal(t, []error{StepError{Index: 2, Text: "two", Reason: "boom"}}, f.Errors)
	assert.Equal(t, []string{
		"start broken",
		"step one passed",
		"error",
		"step two failed",
		"step three skipped",
		"finish failed",
	}, logger.events)
}

func TestPanicInStepBecomesFailure(t *testing.T) {
	results := Run(Configuration{}, func(s *Suite) {
		s.Scenario("panics", func(sc *Scenario) {
			sc.Step("explode", func(*Scenario) framework.StepResult {
				panic("kaboom")
			})
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Steps[0].Result.Reason, "kaboom")
}

func TestPanicOutsideStepBecomesFailure(t *testing.T) {
	executed := false
	results := Run(Configuration{}, func(s *Suite) {
		s.Scenario("panics", func(sc *Scenario) { panic("outside") })
		s.Scenario("next", func(sc *Scenario) { executed = true })
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "outside")
	assert.True(t, executed)
}

func TestHookPanicsDoNotChangeOutcome(t *testing.T) {
	config := Configuration{Hooks: []Hooks{{
		AfterStep:     func(*Scenario, StepOutcome) { panic("hook") },
		AfterScenario: func(*Scenario) { panic("hook") },
	}}}
	results := Run(config, func(s *Suite) {
		s.Scenario("ok", func(sc *Scenario) { sc.Step("fine", pass) })
	})
	assert.True(t, results.OK())
}

func TestHookOrder(t *testing.T) {
	var calls []string
	hooks := func(name string) Hooks {
		return Hooks{
			BeforeScenario: func(*Scenario) error { calls = append(calls, "before "+name); return nil },
			AfterScenario:  func(sc *Scenario) { calls = append(calls, "after "+name+" "+sc.State().String()) },
		}
	}
	var deferredState State
	var captured *Scenario
	Run(Configuration{Hooks: []Hooks{hooks("a"), hooks("b")}}, func(s *Suite) {
		s.Scenario("x", func(sc *Scenario) {
			captured = sc
			sc.Defer(func() { calls = append(calls, "deferred"); deferredState = sc.State() })
			sc.Step("fails", func(sc *Scenario) framework.StepResult { return framework.Failed("no") })
		})
	})
	assert.Equal(t, []string{"before a", "before b", "after b failed", "after a failed", "deferred"}, calls)
	assert.Equal(t, Failed, deferredState)
	assert.Equal(t, Closed, captured.State())
	assert.True(t, captured.Failed())
}

func TestBeforeScenarioErrorFailsWithoutRunning(t *testing.T) {
	executed := false
	afterCalled := false
	config := Configuration{Hooks: []Hooks{{
		BeforeScenario: func(*Scenario) error { return errors.New("browser did not start") },
		AfterScenario:  func(*Scenario) { afterCalled = true },
	}}}
	results := Run(config, func(s *Suite) {
		s.Scenario("x", func(sc *Scenario) { executed = true })
	})
	assert.False(t, executed)
	assert.True(t, afterCalled)
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "browser did not start")
}

func TestFilterSkipsScenario(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("login/valid"))
	executed := false
	logger := &recordingTestLogger{}
	results := Run(Configuration{Filter: filters, TestLogger: logger}, func(s *Suite) {
		s.Feature("login", func(s *Suite) {
			s.Scenario("valid", func(sc *Scenario) { executed = true })
		})
	})
	assert.False(t, executed)
	assert.Equal(t, []ID{{"login", "valid"}}, results.Skipped)
	assert.Equal(t, []string{"start login/valid", "skip excluded by filter parameters"}, logger.events)
}

func TestSkippedStepSkipsScenario(t *testing.T) {
	results := Run(Configuration{}, func(s *Suite) {
		s.Scenario("x", func(sc *Scenario) {
			sc.Step("needs edge", func(*Scenario) framework.StepResult { return framework.Skipped("edge only") })
			sc.Step("never", func(*Scenario) framework.StepResult {
				t.Fatal("should not run")
				return framework.Passed()
			})
		})
	})
	assert.True(t, results.OK())
	assert.Len(t, results.Scenarios, 0)
	assert.Equal(t, []ID{{"x"}}, results.Skipped)
}

func TestSinkWritesToReportAndConsole(t *testing.T) {
	var console framework.CapturingLogger
	var report []string
	Run(Configuration{Console: &console}, func(s *Suite) {
		s.Scenario("x", func(sc *Scenario) {
			sc.Log().Info("searching\tbooks")
			report = sc.Report()
		})
	})
	assert.Equal(t, []string{"&emsp;searching&emsp;books"}, report)
	require.Len(t, console.Output(), 1)
	assert.Equal(t, "searching\tbooks", console.Output()[0].Message)
}
