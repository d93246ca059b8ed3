// Package pages contains page objects for the book store application. Each page object names the
// elements of one page and exposes the user-level operations on them; all waiting is done by the
// interaction verbs it is built on.
package pages

import (
	"github.com/bookstore-qa/ui-test-harness/framework/browser"
	"github.com/bookstore-qa/ui-test-harness/framework/interact"
)

// Page holds what every page object needs. It is bound to one browser session, so page objects
// are created per scenario.
type Page struct {
	session *browser.Session
	actions *interact.Actions
}

func newPage(session *browser.Session, actions *interact.Actions) Page {
	return Page{session: session, actions: actions}
}

func (p Page) find(loc browser.Locator) *browser.ElementHandle {
	return p.session.Find(loc)
}

// Open loads a URL in the page's session.
func (p Page) Open(url string) error {
	return p.session.Navigate(url)
}
