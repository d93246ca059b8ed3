package wait

import (
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework/helpers"
)

const (
	// DefaultTimeout is used by both wait flavors when no Timeout option is given.
	DefaultTimeout = 10 * time.Second

	// DefaultPollInterval is the interval of a bounded wait.
	DefaultPollInterval = 500 * time.Millisecond

	// FluentPollInterval is the interval of a fluent wait.
	FluentPollInterval = 5 * time.Second

	minPollInterval = time.Millisecond
)

// Settings holds the parameters of one wait.
type Settings struct {
	Timeout      time.Duration
	PollInterval time.Duration
	Ignorable    []error
}

// Option is a wait parameter passed to For, Fluent, or Until.
type Option = helpers.ConfigOption[Settings]

// Timeout sets the overall deadline. A value of zero or less makes the wait fail without
// evaluating the condition at all.
func Timeout(d time.Duration) Option {
	return helpers.OptionFunc[Settings](func(s *Settings) error {
		s.Timeout = d
		return nil
	})
}

// PollEvery sets the pause between evaluations.
func PollEvery(d time.Duration) Option {
	return helpers.OptionFunc[Settings](func(s *Settings) error {
		if d < minPollInterval {
			d = minPollInterval
		}
		s.PollInterval = d
		return nil
	})
}

// Ignoring adds errors that count as "not satisfied yet" instead of ending the wait. Matching uses
// errors.Is, so wrapped errors are recognized.
func Ignoring(errs ...error) Option {
	return helpers.OptionFunc[Settings](func(s *Settings) error {
		s.Ignorable = append(s.Ignorable, errs...)
		return nil
	})
}

// Both flavors tolerate a target that has not been rendered yet or whose node was swapped out
// between lookup and inspection; anything else is the caller's decision.
func defaultIgnorable() []error {
	return []error{ErrElementNotFound, ErrStaleElement}
}

func boundedSettings(options []Option) Settings {
	s := Settings{
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
		Ignorable:    defaultIgnorable(),
	}
	_ = helpers.ApplyOptions(&s, options...)
	return s
}

func fluentSettings(options []Option) Settings {
	s := Settings{
		Timeout:      DefaultTimeout,
		PollInterval: FluentPollInterval,
		Ignorable:    defaultIgnorable(),
	}
	_ = helpers.ApplyOptions(&s, options...)
	return s
}
