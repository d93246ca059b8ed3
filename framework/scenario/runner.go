package scenario

import (
	"github.com/bookstore-qa/ui-test-harness/framework"
)

// Hooks are reactions to the scenario lifecycle. Any of the functions may be nil. When several
// Hooks are configured, before-scenario hooks run in order and after-scenario hooks run in
// reverse order.
type Hooks struct {
	// BeforeScenario runs before the scenario's body. An error fails the scenario without
	// running it.
	BeforeScenario func(*Scenario) error

	// AfterStep runs after every step that was executed. It is not called for steps skipped
	// because of an earlier failure. A panic in the hook is logged and otherwise ignored.
	AfterStep func(*Scenario, StepOutcome)

	// AfterScenario runs after the body, whether or not it passed. A panic in the hook is logged
	// and otherwise ignored.
	AfterScenario func(*Scenario)
}

// Configuration contains options for the entire run.
type Configuration struct {
	// Filter is an optional filter for deciding which scenarios to run.
	Filter Filter

	// TestLogger receives status information about each scenario.
	TestLogger TestLogger

	Hooks []Hooks

	// Console, if set, receives everything logged through each scenario's sink, in addition to
	// the scenario's own debug output.
	Console framework.Logger
}

type environment struct {
	config  Configuration
	results Results
}

// Suite groups scenarios into features.
type Suite struct {
	env     *environment
	feature ID
}

// Run runs a suite and returns the results of every scenario it defined.
func Run(config Configuration, action func(*Suite)) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{config: config}
	action(&Suite{env: env})
	return env.results
}

// Feature runs a group of scenarios whose IDs share the feature name.
func (s *Suite) Feature(name string, action func(*Suite)) {
	action(&Suite{env: s.env, feature: s.feature.Plus(name)})
}

// Scenario runs one scenario, unless it is excluded by the filter.
func (s *Suite) Scenario(name string, action func(*Scenario)) {
	id := s.feature.Plus(name)
	logger := s.env.config.TestLogger
	logger.ScenarioStarted(id)
	if s.env.config.Filter != nil && !s.env.config.Filter.Match(id) {
		s.env.results.Skipped = append(s.env.results.Skipped, id)
		logger.ScenarioSkipped(id, "excluded by filter parameters")
		return
	}
	sc := newScenario(s.env, id)
	result := sc.run(action)
	if sc.skipReason != "" {
		s.env.results.Skipped = append(s.env.results.Skipped, id)
		logger.ScenarioSkipped(id, sc.skipReason)
		return
	}
	s.env.results.Scenarios = append(s.env.results.Scenarios, result)
	if result.Failed() {
		s.env.results.Failures = append(s.env.results.Failures, result)
	}
	logger.ScenarioFinished(id, result, sc.debugLogger.Output())
}
