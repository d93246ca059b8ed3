// Package interact provides the verbs that step implementations use on UI elements. Every verb
// first waits for a condition appropriate to the action and only then performs it, which is what
// makes steps tolerant of a page that is still rendering.
package interact

import (
	"errors"
	"fmt"
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework"
	"github.com/bookstore-qa/ui-test-harness/framework/browser"
	"github.com/bookstore-qa/ui-test-harness/framework/helpers"
	"github.com/bookstore-qa/ui-test-harness/framework/wait"
)

// InterceptPollInterval is the default interval for ClickTolerating; intercepting overlays are
// usually short animations, so the retry is faster than a regular fluent wait.
const InterceptPollInterval = time.Second

// Handle is anything that resolves to a browser element; *browser.ElementHandle is the usual
// implementation.
type Handle = wait.Target[browser.Element]

// Settings are the wait parameters shared by all verbs of an Actions instance.
type Settings struct {
	Timeout               time.Duration
	PollInterval          time.Duration
	FluentPollInterval    time.Duration
	InterceptPollInterval time.Duration
	Logger                framework.Logger
}

type Option = helpers.ConfigOption[Settings]

func WithTimeout(d time.Duration) Option {
	return helpers.OptionFunc[Settings](func(s *Settings) error {
		s.Timeout = d
		return nil
	})
}

func WithPollInterval(d time.Duration) Option {
	return helpers.OptionFunc[Settings](func(s *Settings) error {
		s.PollInterval = d
		return nil
	})
}

func WithFluentPollInterval(d time.Duration) Option {
	return helpers.OptionFunc[Settings](func(s *Settings) error {
		s.FluentPollInterval = d
		return nil
	})
}

func WithInterceptPollInterval(d time.Duration) Option {
	return helpers.OptionFunc[Settings](func(s *Settings) error {
		s.InterceptPollInterval = d
		return nil
	})
}

func WithLogger(logger framework.Logger) Option {
	return helpers.OptionFunc[Settings](func(s *Settings) error {
		s.Logger = logger
		return nil
	})
}

// Actions implements the interaction verbs. It holds no per-page state; page objects keep a
// reference to one Actions and pass it their handles.
type Actions struct {
	settings Settings
}

func New(options ...Option) *Actions {
	s := Settings{
		Timeout:               wait.DefaultTimeout,
		PollInterval:          wait.DefaultPollInterval,
		FluentPollInterval:    wait.FluentPollInterval,
		InterceptPollInterval: InterceptPollInterval,
		Logger:                framework.NullLogger(),
	}
	_ = helpers.ApplyOptions(&s, options...)
	return &Actions{settings: s}
}

func (a *Actions) Settings() Settings { return a.settings }

func (a *Actions) await(h Handle, c wait.Condition) (browser.Element, error) {
	return wait.Await(wait.For(h, c,
		wait.Timeout(a.settings.Timeout), wait.PollEvery(a.settings.PollInterval)))
}

func (a *Actions) fluent(h Handle, c wait.Condition) (browser.Element, error) {
	return wait.Await(wait.Fluent(h, c,
		wait.Timeout(a.settings.Timeout), wait.PollEvery(a.settings.FluentPollInterval)))
}

func (a *Actions) WaitVisible(h Handle) (browser.Element, error) { return a.await(h, wait.Visible) }

func (a *Actions) WaitClickable(h Handle) (browser.Element, error) {
	return a.await(h, wait.Clickable)
}

// WaitInvisible succeeds once the element is hidden or gone.
func (a *Actions) WaitInvisible(h Handle) error {
	_, err := a.await(h, wait.Invisible)
	return err
}

func (a *Actions) WaitSelected(h Handle) error {
	_, err := a.await(h, wait.Selected)
	return err
}

func (a *Actions) FluentWaitVisible(h Handle) (browser.Element, error) {
	return a.fluent(h, wait.Visible)
}

func (a *Actions) FluentWaitClickable(h Handle) (browser.Element, error) {
	return a.fluent(h, wait.Clickable)
}

// SendText replaces the content of an input field.
func (a *Actions) SendText(h Handle, text string) error {
	e, err := a.WaitVisible(h)
	if err != nil {
		return fmt.Errorf("entering text into %s: %w", h, err)
	}
	if err := e.Fill(text); err != nil {
		return fmt.Errorf("entering text into %s: %w", h, err)
	}
	return nil
}

func (a *Actions) Click(h Handle) error {
	e, err := a.WaitClickable(h)
	if err != nil {
		return fmt.Errorf("clicking %s: %w", h, err)
	}
	if err := e.Click(); err != nil {
		return fmt.Errorf("clicking %s: %w", h, err)
	}
	return nil
}

// ScrollIntoViewAndClick brings the element into the viewport before clicking it, for targets
// that are rendered below the fold.
func (a *Actions) ScrollIntoViewAndClick(h Handle) error {
	e, err := a.WaitVisible(h)
	if err != nil {
		return fmt.Errorf("scrolling to %s: %w", h, err)
	}
	if err := e.ScrollIntoView(); err != nil {
		return fmt.Errorf("scrolling to %s: %w", h, err)
	}
	return a.Click(h)
}

// ClickTolerating clicks an element that may intercept clicks while it animates. Each attempt
// waits for the element to be clickable and clicks it; attempts failing with one of the ignorable
// errors are retried at InterceptPollInterval until the timeout. With no ignorable errors given,
// browser.ErrClickIntercepted is used.
func (a *Actions) ClickTolerating(h Handle, ignorable ...error) error {
	if len(ignorable) == 0 {
		ignorable = []error{browser.ErrClickIntercepted}
	}
	err := wait.Until(fmt.Sprintf("%s to accept a click", h), func() (bool, error) {
		e, err := h.Resolve()
		if err != nil {
			return false, err
		}
		if ok, err := wait.Clickable.Check(e); !ok || err != nil {
			return false, err
		}
		if err := e.Click(); err != nil {
			return false, err
		}
		return true, nil
	},
		wait.Timeout(a.settings.Timeout),
		wait.PollEvery(a.settings.InterceptPollInterval),
		wait.Ignoring(ignorable...),
	)
	if err != nil {
		return fmt.Errorf("clicking %s: %w", h, err)
	}
	return nil
}

// IsDisplayed reports whether the element becomes visible within the timeout. It never fails:
// anything other than a timeout is logged and answered with false.
func (a *Actions) IsDisplayed(h Handle) bool {
	_, err := a.WaitVisible(h)
	if err == nil {
		return true
	}
	if !errors.Is(err, wait.ErrTimeout) {
		a.settings.Logger.Printf("Could not determine whether %s is displayed: %s", h, err)
	}
	return false
}

func (a *Actions) GetText(h Handle) (string, error) {
	e, err := a.WaitVisible(h)
	if err != nil {
		return "", fmt.Errorf("reading text of %s: %w", h, err)
	}
	text, err := e.Text()
	if err != nil {
		return "", fmt.Errorf("reading text of %s: %w", h, err)
	}
	return text, nil
}

func (a *Actions) Clear(h Handle) error {
	e, err := a.WaitVisible(h)
	if err != nil {
		return fmt.Errorf("clearing %s: %w", h, err)
	}
	if err := e.Clear(); err != nil {
		return fmt.Errorf("clearing %s: %w", h, err)
	}
	return nil
}
