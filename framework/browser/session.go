package browser

import (
	"fmt"

	"github.com/bookstore-qa/ui-test-harness/framework"

	"github.com/google/uuid"
)

// State is the lifecycle state of a Session.
type State int

const (
	Unstarted State = iota
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Running:
		return "running"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is one live browser automation handle. It is created by a Manager and must not be
// shared between workers.
type Session struct {
	id      string
	options LaunchOptions
	driver  Driver
	state   State
	logger  framework.Logger
}

func newSession(options LaunchOptions, logger framework.Logger) *Session {
	return &Session{id: uuid.NewString(), options: options, logger: logger}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State { return s.state }

// Active is true while the session is running.
func (s *Session) Active() bool { return s != nil && s.state == Running && s.driver != nil }

// Options returns the launch options the session was started with.
func (s *Session) Options() LaunchOptions { return s.options }

// Navigate loads a URL in the session's page.
func (s *Session) Navigate(url string) error {
	if !s.Active() {
		return ErrNoActiveSession
	}
	if err := s.driver.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Find returns a handle for the locator. Nothing is looked up until the handle is resolved.
func (s *Session) Find(loc Locator) *ElementHandle {
	return &ElementHandle{session: s, locator: loc}
}

// FindAll returns one handle per element currently matching the locator.
func (s *Session) FindAll(loc Locator) ([]*ElementHandle, error) {
	if !s.Active() {
		return nil, ErrNoActiveSession
	}
	n, err := s.driver.Count(loc)
	if err != nil {
		return nil, err
	}
	handles := make([]*ElementHandle, 0, n)
	for i := 0; i < n; i++ {
		handles = append(handles, s.Find(loc.Nth(i)))
	}
	return handles, nil
}

// Screenshot captures the current page as PNG.
func (s *Session) Screenshot() ([]byte, error) {
	if !s.Active() {
		return nil, ErrNoActiveSession
	}
	return s.driver.Screenshot()
}

// Close releases the browser. Closing a session that is not running is logged and ignored.
func (s *Session) Close() error {
	if !s.Active() {
		s.logger.Printf("Browser session %s is not running (%s); nothing to close", s.id, s.state)
		return nil
	}
	err := s.driver.Close()
	s.state = Closed
	s.driver = nil
	if err != nil {
		return &SessionError{Op: "close", Err: err}
	}
	s.logger.Printf("Closed %s session %s", s.options.Kind, s.id)
	return nil
}

// ElementHandle is a possibly stale reference to a UI node. Every Resolve looks the locator up
// again through the session, so a handle survives navigation and DOM replacement.
type ElementHandle struct {
	session *Session
	locator Locator
}

func (h *ElementHandle) Locator() Locator { return h.locator }

func (h *ElementHandle) Resolve() (Element, error) {
	if !h.session.Active() {
		return nil, ErrNoActiveSession
	}
	return h.session.driver.Resolve(h.locator)
}

func (h *ElementHandle) String() string { return h.locator.String() }
