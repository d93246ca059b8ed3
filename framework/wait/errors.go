package wait

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is matched by every *TimeoutError.
var ErrTimeout = errors.New("timed out waiting for condition")

// TimeoutError is returned when a condition did not hold before the deadline. LastIgnored is the
// most recent ignorable error seen while polling, if any. It is not unwrapped: errors.Is matches
// only ErrTimeout.
type TimeoutError struct {
	Description string
	Timeout     time.Duration
	Attempts    int
	LastIgnored error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s (%d attempts)", e.Timeout, e.Description, e.Attempts)
	if e.LastIgnored != nil {
		msg += "; last error: " + e.LastIgnored.Error()
	}
	return msg
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// IgnoredErrorExhausted is true if the wait ran out of time while its last evaluation was still
// failing with an ignorable error, as opposed to a condition that evaluated cleanly to false.
func (e *TimeoutError) IgnoredErrorExhausted() bool { return e.LastIgnored != nil }

func isIgnorable(err error, ignorable []error) bool {
	for _, candidate := range ignorable {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
