package wait

import "errors"

var (
	// ErrElementNotFound means the locator did not match any node at the time it was resolved.
	ErrElementNotFound = errors.New("element not found")

	// ErrStaleElement means a node was detached from the page between being resolved and being
	// inspected.
	ErrStaleElement = errors.New("element is no longer attached to the page")
)

// Element is the part of a UI node that conditions inspect.
type Element interface {
	IsVisible() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)
}

// Target produces a fresh Element each time it is resolved. Implementations must not cache the
// result across calls.
type Target[E Element] interface {
	Resolve() (E, error)
	String() string
}

type targetFunc[E Element] struct {
	description string
	resolve     func() (E, error)
}

// TargetFunc builds a Target from a resolver function.
func TargetFunc[E Element](description string, resolve func() (E, error)) Target[E] {
	return targetFunc[E]{description: description, resolve: resolve}
}

func (t targetFunc[E]) Resolve() (E, error) { return t.resolve() }

func (t targetFunc[E]) String() string { return t.description }
