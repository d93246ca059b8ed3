package pages

import (
	"fmt"

	"github.com/bookstore-qa/ui-test-harness/framework/browser"
	"github.com/bookstore-qa/ui-test-harness/framework/interact"
)

var (
	SearchBox      = browser.ID("searchBox")                                //nolint:gochecknoglobals
	BookTitleLinks = browser.XPath("//div[@class='action-buttons']/span/a") //nolint:gochecknoglobals
	LogoutButton   = browser.XPath("//button[@id='submit']")                //nolint:gochecknoglobals
)

type BookStorePage struct {
	Page
}

func NewBookStorePage(session *browser.Session, actions *interact.Actions) *BookStorePage {
	return &BookStorePage{Page: newPage(session, actions)}
}

func (p *BookStorePage) IsSearchBoxDisplayed() bool {
	return p.actions.IsDisplayed(p.find(SearchBox))
}

// BookTitles waits for the book list to render and returns the titles in page order.
func (p *BookStorePage) BookTitles() ([]string, error) {
	if _, err := p.actions.WaitVisible(p.find(BookTitleLinks)); err != nil {
		return nil, fmt.Errorf("waiting for book list: %w", err)
	}
	handles, err := p.session.FindAll(BookTitleLinks)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(handles))
	for _, h := range handles {
		text, err := p.actions.GetText(h)
		if err != nil {
			return nil, err
		}
		titles = append(titles, text)
	}
	return titles, nil
}

func (p *BookStorePage) IsLoggedIn() bool {
	return p.actions.IsDisplayed(p.find(LogoutButton))
}

func (p *BookStorePage) ClickLogout() error {
	return p.actions.Click(p.find(LogoutButton))
}

// WaitForLogout waits until the logout button has gone away.
func (p *BookStorePage) WaitForLogout() error {
	return p.actions.WaitInvisible(p.find(LogoutButton))
}
