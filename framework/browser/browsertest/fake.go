// Package browsertest provides in-memory implementations of the browser Launcher, Driver, and
// Element interfaces, for testing code that drives a browser without starting one.
package browsertest

import (
	"fmt"
	"sync"

	"github.com/bookstore-qa/ui-test-harness/framework/browser"
)

// PNG is the payload returned by FakeDriver.Screenshot.
var PNG = []byte("\x89PNG\r\n\x1a\n") //nolint:gochecknoglobals

// FakeElement is a scriptable UI node. A new element is visible and enabled.
type FakeElement struct {
	lock      sync.Mutex
	visible   bool
	enabled   bool
	selected  bool
	text      string
	value     string
	clicks    int
	scrolled  bool
	clickErrs []error
	onClick   func()
}

func NewElement() *FakeElement {
	return &FakeElement{visible: true, enabled: true}
}

// WithText returns a new visible element with the given text.
func WithText(text string) *FakeElement {
	e := NewElement()
	e.text = text
	return e
}

func (e *FakeElement) SetVisible(visible bool) *FakeElement {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.visible = visible
	return e
}

func (e *FakeElement) SetEnabled(enabled bool) *FakeElement {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.enabled = enabled
	return e
}

func (e *FakeElement) SetSelected(selected bool) *FakeElement {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.selected = selected
	return e
}

func (e *FakeElement) SetText(text string) *FakeElement {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.text = text
	return e
}

// FailClicks makes the next len(errs) calls to Click return these errors in order.
func (e *FakeElement) FailClicks(errs ...error) *FakeElement {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.clickErrs = append(e.clickErrs, errs...)
	return e
}

// OnClick sets a function that runs after every successful click, outside the element's lock, so
// that it can change the page.
func (e *FakeElement) OnClick(fn func()) *FakeElement {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.onClick = fn
	return e
}

func (e *FakeElement) Value() string {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.value
}

// Clicks returns the number of clicks that succeeded.
func (e *FakeElement) Clicks() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.clicks
}

func (e *FakeElement) Scrolled() bool {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.scrolled
}

func (e *FakeElement) IsVisible() (bool, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.visible, nil
}

func (e *FakeElement) IsEnabled() (bool, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.enabled, nil
}

func (e *FakeElement) IsSelected() (bool, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.selected, nil
}

func (e *FakeElement) Fill(text string) error {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.value = text
	return nil
}

func (e *FakeElement) Click() error {
	e.lock.Lock()
	if len(e.clickErrs) > 0 {
		err := e.clickErrs[0]
		e.clickErrs = e.clickErrs[1:]
		e.lock.Unlock()
		return err
	}
	e.clicks++
	onClick := e.onClick
	e.lock.Unlock()
	if onClick != nil {
		onClick()
	}
	return nil
}

func (e *FakeElement) Clear() error {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.value = ""
	return nil
}

func (e *FakeElement) Text() (string, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.text, nil
}

func (e *FakeElement) ScrollIntoView() error {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.scrolled = true
	return nil
}

// FakeDriver is an in-memory page. Elements are registered per locator; a locator with no
// registered elements does not resolve.
type FakeDriver struct {
	// OnNavigate, if set, is called after every navigation, typically to swap the page's elements.
	OnNavigate func(d *FakeDriver, url string)

	// ScreenshotErr, if set, is returned by Screenshot.
	ScreenshotErr error

	// CloseErr, if set, is returned by Close. The driver still counts as closed.
	CloseErr error

	lock        sync.Mutex
	elements    map[string][]*FakeElement
	urls        []string
	screenshots int
	closed      bool
}

func NewDriver() *FakeDriver {
	return &FakeDriver{elements: make(map[string][]*FakeElement)}
}

// Put replaces whatever the locator currently matches with the given elements.
func (d *FakeDriver) Put(loc browser.Locator, elements ...*FakeElement) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.elements[loc.Query()] = elements
}

// Remove makes the locator match nothing.
func (d *FakeDriver) Remove(loc browser.Locator) {
	d.lock.Lock()
	defer d.lock.Unlock()
	delete(d.elements, loc.Query())
}

// Reset removes every element, as a full page load would.
func (d *FakeDriver) Reset() {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.elements = make(map[string][]*FakeElement)
}

func (d *FakeDriver) Navigate(url string) error {
	d.lock.Lock()
	d.urls = append(d.urls, url)
	hook := d.OnNavigate
	d.lock.Unlock()
	if hook != nil {
		hook(d, url)
	}
	return nil
}

func (d *FakeDriver) Resolve(loc browser.Locator) (browser.Element, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	matches := d.elements[loc.Query()]
	index := loc.Index().OrElse(0)
	if index >= len(matches) {
		return nil, fmt.Errorf("%s: %w", loc, browser.ErrElementNotFound)
	}
	return matches[index], nil
}

func (d *FakeDriver) Count(loc browser.Locator) (int, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.elements[loc.Query()]), nil
}

func (d *FakeDriver) Screenshot() ([]byte, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.ScreenshotErr != nil {
		return nil, d.ScreenshotErr
	}
	d.screenshots++
	return PNG, nil
}

func (d *FakeDriver) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.closed = true
	return d.CloseErr
}

// URLs returns every URL navigated to, in order.
func (d *FakeDriver) URLs() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.urls...)
}

func (d *FakeDriver) Screenshots() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.screenshots
}

func (d *FakeDriver) Closed() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.closed
}

// FakeLauncher records launches and returns a new FakeDriver for each one.
type FakeLauncher struct {
	// Setup, if set, is applied to every new driver before it is returned.
	Setup func(d *FakeDriver)

	// Err, if set, makes every launch fail.
	Err error

	Launched []browser.LaunchOptions
	Drivers  []*FakeDriver
}

func (l *FakeLauncher) Launch(options browser.LaunchOptions) (browser.Driver, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	d := NewDriver()
	if l.Setup != nil {
		l.Setup(d)
	}
	l.Launched = append(l.Launched, options)
	l.Drivers = append(l.Drivers, d)
	return d, nil
}

// Last returns the most recently launched driver, or nil.
func (l *FakeLauncher) Last() *FakeDriver {
	if len(l.Drivers) == 0 {
		return nil
	}
	return l.Drivers[len(l.Drivers)-1]
}
