package wait

import (
	"fmt"
	"time"
)

// Spec describes a wait for a condition on a target. It is built by For or Fluent and executed by
// Await; it holds no state between executions.
type Spec[E Element] struct {
	Target    Target[E]
	Condition Condition
	Settings  Settings
}

// For builds a bounded wait: DefaultTimeout, DefaultPollInterval, and only element lookup errors
// ignored unless options say otherwise.
func For[E Element](target Target[E], condition Condition, options ...Option) Spec[E] {
	return Spec[E]{Target: target, Condition: condition, Settings: boundedSettings(options)}
}

// Fluent builds a wait with the coarser FluentPollInterval. Callers usually add Ignoring options
// for errors that are transient in their context.
func Fluent[E Element](target Target[E], condition Condition, options ...Option) Spec[E] {
	return Spec[E]{Target: target, Condition: condition, Settings: fluentSettings(options)}
}

func (s Spec[E]) String() string {
	return fmt.Sprintf("%s to be %s", s.Target, s.Condition)
}

// Await polls until the condition holds and returns the element that satisfied it. For the
// Invisible condition the returned element may be the zero value, since an absent element also
// satisfies it.
//
// A non-ignorable error from resolving or checking the target ends the wait immediately and is
// returned as is. When the deadline passes, the result is a *TimeoutError.
func Await[E Element](spec Spec[E]) (E, error) {
	var found E
	err := poll(spec.String(), spec.Settings, func() (bool, error) {
		e, err := spec.Target.Resolve()
		if err != nil {
			if spec.Condition.satisfiedByAbsence() && isNotFound(err) {
				var zero E
				found = zero
				return true, nil
			}
			return false, err
		}
		ok, err := spec.Condition.Check(e)
		if ok && err == nil {
			found = e
		}
		return ok, err
	})
	if err != nil {
		var zero E
		return zero, err
	}
	return found, nil
}

// Until polls an arbitrary predicate with fluent defaults. The predicate may perform an action
// and report whether it succeeded, which lets a caller retry an interaction rather than only
// observe state.
func Until(description string, predicate func() (bool, error), options ...Option) error {
	return poll(description, fluentSettings(options), predicate)
}

func poll(description string, settings Settings, evaluate func() (bool, error)) error {
	timeoutErr := &TimeoutError{Description: description, Timeout: settings.Timeout}
	if settings.Timeout <= 0 {
		return timeoutErr
	}
	interval := settings.PollInterval
	if interval < minPollInterval {
		interval = minPollInterval
	}
	deadline := time.Now().Add(settings.Timeout)
	for {
		timeoutErr.Attempts++
		ok, err := evaluate()
		switch {
		case err == nil && ok:
			return nil
		case err == nil:
			timeoutErr.LastIgnored = nil
		case isIgnorable(err, settings.Ignorable):
			timeoutErr.LastIgnored = err
		default:
			return err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return timeoutErr
		}
		if remaining > interval {
			remaining = interval
		}
		time.Sleep(remaining)
	}
}

func isNotFound(err error) bool {
	return isIgnorable(err, []error{ErrElementNotFound})
}
