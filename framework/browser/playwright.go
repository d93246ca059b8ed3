package browser

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DefaultActionTimeout bounds a single driver call. Waiting for a condition is the job of the
// wait package, so driver calls should fail fast and let the poller retry.
const DefaultActionTimeout = 2 * time.Second

const selectedScript = "el => el.checked === true || el.selected === true"

// PlaywrightLauncher launches Chrome or Edge through Playwright with a persistent profile, so
// that profile preferences take effect. The Playwright driver process is started on first use
// and shared by every session the launcher creates.
type PlaywrightLauncher struct {
	ActionTimeout time.Duration

	once   sync.Once
	pw     *playwright.Playwright
	runErr error
}

func (l *PlaywrightLauncher) Launch(options LaunchOptions) (Driver, error) {
	l.once.Do(func() {
		l.pw, l.runErr = playwright.Run()
	})
	if l.runErr != nil {
		return nil, fmt.Errorf("could not start playwright: %w", l.runErr)
	}

	dirs, err := prepareLaunchDirs(options, "")
	if err != nil {
		return nil, err
	}
	launched := false
	defer func() {
		if !launched {
			dirs.release()
		}
	}()

	launchOptions := playwright.BrowserTypeLaunchPersistentContextOptions{
		Channel:         playwright.String(options.Channel),
		Headless:        playwright.Bool(options.Headless),
		Args:            options.Args,
		AcceptDownloads: playwright.Bool(true),
		NoViewport:      playwright.Bool(true),
	}
	if options.DownloadDir != "" {
		launchOptions.DownloadsPath = playwright.String(options.DownloadDir)
	}
	bc, err := l.pw.Chromium.LaunchPersistentContext(dirs.profileDir, launchOptions)
	if err != nil {
		return nil, err
	}

	var page playwright.Page
	if pages := bc.Pages(); len(pages) > 0 {
		page = pages[0]
	} else if page, err = bc.NewPage(); err != nil {
		_ = bc.Close()
		return nil, err
	}

	timeout := l.ActionTimeout
	if timeout <= 0 {
		timeout = DefaultActionTimeout
	}
	launched = true
	return &playwrightDriver{
		context:     bc,
		page:        page,
		profileDir:  dirs.profileDir,
		ownsProfile: dirs.ownsProfile,
		timeout:     float64(timeout.Milliseconds()),
	}, nil
}

// launchDirs are the directories a launch writes to. A profile directory created for the launch
// is owned by it and removed again by release.
type launchDirs struct {
	profileDir  string
	ownsProfile bool
}

func (d launchDirs) release() {
	if d.ownsProfile {
		_ = os.RemoveAll(d.profileDir)
	}
}

// prepareLaunchDirs creates the profile directory (a new one under tempRoot if none is
// configured), writes the preferences into it, and creates the download directory. Nothing it
// created is left behind when it fails.
func prepareLaunchDirs(options LaunchOptions, tempRoot string) (dirs launchDirs, err error) {
	dirs.profileDir = options.ProfileDir
	if dirs.profileDir == "" {
		dir, err := os.MkdirTemp(tempRoot, "ui-harness-profile-")
		if err != nil {
			return launchDirs{}, err
		}
		dirs.profileDir, dirs.ownsProfile = dir, true
	}
	defer func() {
		if err != nil {
			dirs.release()
			dirs = launchDirs{}
		}
	}()
	if err := WritePreferences(dirs.profileDir, options.Preferences); err != nil {
		return dirs, fmt.Errorf("could not write browser preferences: %w", err)
	}
	if options.DownloadDir != "" {
		if err := os.MkdirAll(options.DownloadDir, 0o755); err != nil {
			return dirs, fmt.Errorf("could not create download directory: %w", err)
		}
	}
	return dirs, nil
}

// Stop shuts down the Playwright driver process. Sessions must be closed first.
func (l *PlaywrightLauncher) Stop() error {
	if l.pw == nil {
		return nil
	}
	return l.pw.Stop()
}

type playwrightDriver struct {
	context     playwright.BrowserContext
	page        playwright.Page
	profileDir  string
	ownsProfile bool
	timeout     float64
}

func (d *playwrightDriver) Navigate(url string) error {
	_, err := d.page.Goto(url)
	return err
}

func (d *playwrightDriver) locator(loc Locator) playwright.Locator {
	base := d.page.Locator(loc.Query())
	if loc.Index().IsDefined() {
		return base.Nth(loc.Index().Value())
	}
	return base.First()
}

func (d *playwrightDriver) Resolve(loc Locator) (Element, error) {
	n, err := d.page.Locator(loc.Query()).Count()
	if err != nil {
		return nil, mapPlaywrightError(err)
	}
	if n == 0 || loc.Index().OrElse(0) >= n {
		return nil, fmt.Errorf("%s: %w", loc, ErrElementNotFound)
	}
	return &playwrightElement{locator: d.locator(loc), timeout: d.timeout}, nil
}

func (d *playwrightDriver) Count(loc Locator) (int, error) {
	n, err := d.page.Locator(loc.Query()).Count()
	return n, mapPlaywrightError(err)
}

func (d *playwrightDriver) Screenshot() ([]byte, error) {
	return d.page.Screenshot(playwright.PageScreenshotOptions{FullPage: playwright.Bool(true)})
}

func (d *playwrightDriver) Close() error {
	err := d.context.Close()
	if d.ownsProfile {
		if rmErr := os.RemoveAll(d.profileDir); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}

type playwrightElement struct {
	locator playwright.Locator
	timeout float64
}

func (e *playwrightElement) IsVisible() (bool, error) {
	visible, err := e.locator.IsVisible()
	return visible, mapPlaywrightError(err)
}

func (e *playwrightElement) IsEnabled() (bool, error) {
	enabled, err := e.locator.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: &e.timeout})
	return enabled, mapPlaywrightError(err)
}

func (e *playwrightElement) IsSelected() (bool, error) {
	result, err := e.locator.Evaluate(selectedScript, nil, playwright.LocatorEvaluateOptions{Timeout: &e.timeout})
	if err != nil {
		return false, mapPlaywrightError(err)
	}
	selected, _ := result.(bool)
	return selected, nil
}

func (e *playwrightElement) Fill(text string) error {
	return mapPlaywrightError(e.locator.Fill(text, playwright.LocatorFillOptions{Timeout: &e.timeout}))
}

func (e *playwrightElement) Click() error {
	return mapPlaywrightError(e.locator.Click(playwright.LocatorClickOptions{Timeout: &e.timeout}))
}

func (e *playwrightElement) Clear() error {
	return mapPlaywrightError(e.locator.Clear(playwright.LocatorClearOptions{Timeout: &e.timeout}))
}

func (e *playwrightElement) Text() (string, error) {
	text, err := e.locator.InnerText(playwright.LocatorInnerTextOptions{Timeout: &e.timeout})
	return text, mapPlaywrightError(err)
}

func (e *playwrightElement) ScrollIntoView() error {
	return mapPlaywrightError(e.locator.ScrollIntoViewIfNeeded(
		playwright.LocatorScrollIntoViewIfNeededOptions{Timeout: &e.timeout}))
}

// Playwright reports most failures as plain errors whose text describes the cause, so the
// classification is by message.
func mapPlaywrightError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "intercepts pointer events"):
		return fmt.Errorf("%w: %s", ErrClickIntercepted, msg)
	case strings.Contains(msg, "not attached to the DOM"), strings.Contains(msg, "Element is detached"):
		return fmt.Errorf("%w: %s", ErrStaleElement, msg)
	case strings.Contains(msg, "waiting for locator") && strings.Contains(msg, "Timeout"):
		return fmt.Errorf("%w: %s", ErrElementNotFound, msg)
	case strings.Contains(msg, "Target page, context or browser has been closed"):
		return fmt.Errorf("%w: %s", ErrNoActiveSession, msg)
	default:
		return err
	}
}

var _ Launcher = (*PlaywrightLauncher)(nil)
