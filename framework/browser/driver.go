package browser

import "github.com/bookstore-qa/ui-test-harness/framework/wait"

// Element is a resolved UI node. An Element may go stale at any moment; callers hold an
// ElementHandle instead and resolve it again for every use.
type Element interface {
	wait.Element
	Fill(text string) error
	Click() error
	Clear() error
	Text() (string, error)
	ScrollIntoView() error
}

// Driver is one live browser session as seen by the rest of the framework.
type Driver interface {
	Navigate(url string) error
	// Resolve returns the element the locator currently points to, or an error wrapping
	// ErrElementNotFound if there is none.
	Resolve(loc Locator) (Element, error)
	Count(loc Locator) (int, error)
	Screenshot() ([]byte, error)
	Close() error
}

// Launcher starts browser sessions.
type Launcher interface {
	Launch(options LaunchOptions) (Driver, error)
}
