package browser

import (
	"errors"
	"fmt"

	"github.com/bookstore-qa/ui-test-harness/framework/wait"
)

var (
	// ErrNoActiveSession is returned by any operation that needs a running session when there is
	// none, or when the handle's session has been closed.
	ErrNoActiveSession = errors.New("no active browser session")

	// ErrClickIntercepted means another element (an overlay, an animation in progress) received
	// the click instead of the target.
	ErrClickIntercepted = errors.New("click intercepted by another element")

	ErrElementNotFound = wait.ErrElementNotFound
	ErrStaleElement    = wait.ErrStaleElement
)

// ConfigError reports browser settings that cannot be turned into a session. It is fatal: the
// run stops before any browser is started.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid browser configuration: %s=%q: %s", e.Field, e.Value, e.Reason)
}

// SessionError wraps a failure from the underlying driver while starting or stopping a session.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("browser session %s failed: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
