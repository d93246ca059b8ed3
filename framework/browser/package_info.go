// Package browser owns the browser session used by a test run: it turns declarative settings
// into launch arguments and profile preferences, starts and stops the session, and hands out
// element handles that are re-resolved through the session every time they are used.
//
// The actual automation transport is behind the Launcher and Driver interfaces. The production
// implementation drives Chrome or Edge through Playwright; tests substitute the fakes in
// browsertest.
package browser
