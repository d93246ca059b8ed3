// Package scenario runs acceptance-test scenarios made of steps, and reports their results.
//
// A Scenario is the per-scenario context: it owns the logging sink for the scenario's report,
// records step outcomes and attachments, and drives the before-scenario, after-step, and
// after-scenario hooks. Nothing here is global, so independent workers can run their own suites.
package scenario
