package harness

import (
	"fmt"
	"strings"

	"github.com/bookstore-qa/ui-test-harness/framework"
	"github.com/bookstore-qa/ui-test-harness/framework/browser"
	"github.com/bookstore-qa/ui-test-harness/framework/interact"
	"github.com/bookstore-qa/ui-test-harness/framework/scenario"
)

// SessionScope says how long a browser session lives.
type SessionScope string

const (
	// ScopeRun starts one session for the whole run.
	ScopeRun SessionScope = "run"
	// ScopeScenario starts a fresh session before every scenario and closes it afterward.
	ScopeScenario SessionScope = "scenario"
)

func ParseSessionScope(s string) (SessionScope, error) {
	switch SessionScope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeRun:
		return ScopeRun, nil
	case ScopeScenario:
		return ScopeScenario, nil
	default:
		return "", fmt.Errorf("unknown session scope %q (expected run or scenario)", s)
	}
}

// Options are the settings a TestHarness is created with.
type Options struct {
	Browser       browser.Config
	SessionScope  SessionScope
	BaseURL       string
	ScreenshotDir string
	Actions       []interact.Option
}

// TestHarness is the main component that ties a test run together: it owns the browser session
// manager, the interaction verbs, and the hooks that a scenario run needs.
//
// It contains no domain-specific test logic, but only provides a general mechanism for test suites
// to build on.
type TestHarness struct {
	options Options
	manager *browser.Manager
	actions *interact.Actions
	capture scenario.FileCapture
	logger  framework.Logger
}

// NewTestHarness validates the browser configuration and, for run-scoped sessions, starts the
// browser. A *browser.ConfigError is returned before anything is launched.
func NewTestHarness(
	options Options,
	launcher browser.Launcher,
	logger framework.Logger,
) (*TestHarness, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if _, err := browser.BuildLaunchOptions(options.Browser); err != nil {
		return nil, err
	}
	if options.SessionScope == "" {
		options.SessionScope = ScopeRun
	}
	h := &TestHarness{
		options: options,
		manager: browser.NewManager(launcher, logger),
		actions: interact.New(append([]interact.Option{interact.WithLogger(logger)}, options.Actions...)...),
		capture: scenario.FileCapture{Dir: options.ScreenshotDir},
		logger:  logger,
	}
	if options.SessionScope == ScopeRun {
		if err := h.StartSession(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Session returns the running browser session, or nil between per-scenario sessions.
func (h *TestHarness) Session() *browser.Session { return h.manager.Current() }

func (h *TestHarness) Actions() *interact.Actions { return h.actions }

func (h *TestHarness) Logger() framework.Logger { return h.logger }

// BaseURL returns the root URL of the application under test.
func (h *TestHarness) BaseURL() string { return h.options.BaseURL }

// URL joins a path onto the base URL.
func (h *TestHarness) URL(path string) string {
	return strings.TrimSuffix(h.options.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

func (h *TestHarness) StartSession() error {
	_, err := h.manager.Start(h.options.Browser)
	return err
}

func (h *TestHarness) CloseSession() error {
	return h.manager.Close()
}

// CaptureScreenshot writes a named screenshot of the current page to the screenshot directory and
// returns its path.
func (h *TestHarness) CaptureScreenshot(name string) (string, error) {
	return h.capture.Capture(h.currentScreen(), name)
}

// ScenarioHooks returns the hooks a scenario run needs: session start and stop for per-scenario
// sessions, and a screenshot attached to every failing step.
func (h *TestHarness) ScenarioHooks() []scenario.Hooks {
	var hooks []scenario.Hooks
	if h.options.SessionScope == ScopeScenario {
		hooks = append(hooks, scenario.Hooks{
			BeforeScenario: func(sc *scenario.Scenario) error {
				if err := h.StartSession(); err != nil {
					return err
				}
				sc.Debug("Browser session %s started", h.Session().ID())
				return nil
			},
			AfterScenario: func(sc *scenario.Scenario) {
				if err := h.CloseSession(); err != nil {
					sc.Debug("Error closing browser session: %s", err)
				}
			},
		})
	}
	hooks = append(hooks, scenario.ScreenshotOnFailure(h.currentScreen))
	return hooks
}

func (h *TestHarness) currentScreen() scenario.Screen {
	if s := h.manager.Current(); s != nil {
		return s
	}
	return nil
}

// Close ends the run's browser session, if any.
func (h *TestHarness) Close() error {
	return h.manager.Close()
}
