// Package pagestest simulates the book store application on a browsertest.FakeDriver, so that page
// objects and suites can be tested without a browser.
package pagestest

import (
	"net/url"
	"sync"
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework/browser"
	"github.com/bookstore-qa/ui-test-harness/framework/browser/browsertest"
	"github.com/bookstore-qa/ui-test-harness/mockapp"
	"github.com/bookstore-qa/ui-test-harness/pages"
)

// BookStore swaps the fake driver's elements the way the real application's pages change in
// response to navigation and clicks.
type BookStore struct {
	Username string
	Password string
	Books    []string

	// RenderDelay, if set, makes every page's elements invisible until this long after it loads.
	RenderDelay time.Duration

	driver   *browsertest.FakeDriver
	lock     sync.Mutex
	page     string
	loggedIn bool
}

// Install makes the driver serve the book store. Navigating to "/" shows the home page, "/books"
// the book list, and "/login" the login form.
func Install(d *browsertest.FakeDriver, username, password string) *BookStore {
	s := &BookStore{Username: username, Password: password, Books: mockapp.DefaultBooks, driver: d}
	d.OnNavigate = func(_ *browsertest.FakeDriver, rawURL string) {
		path := "/"
		if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
			path = u.Path
		}
		switch path {
		case "/books":
			s.showBooks()
		case "/login":
			s.showLogin("")
		default:
			s.showHome()
		}
	}
	return s
}

// Page returns the name of the page currently shown: "home", "books", or "login".
func (s *BookStore) Page() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.page
}

func (s *BookStore) LoggedIn() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.loggedIn
}

func (s *BookStore) setPage(name string) {
	s.lock.Lock()
	s.page = name
	s.lock.Unlock()
	s.driver.Reset()
}

func (s *BookStore) put(loc browser.Locator, elements ...*browsertest.FakeElement) {
	if s.RenderDelay > 0 {
		for _, e := range elements {
			e.SetVisible(false)
			e := e
			time.AfterFunc(s.RenderDelay, func() { e.SetVisible(true) })
		}
	}
	s.driver.Put(loc, elements...)
}

func (s *BookStore) showHome() {
	s.setPage("home")
	s.put(pages.BookStoreApplicationCard, browsertest.WithText("Book Store Application").OnClick(s.showBooks))
	s.put(pages.LoginMenuItem, browsertest.WithText("Login").OnClick(func() { s.showLogin("") }))
}

func (s *BookStore) showBooks() {
	s.setPage("books")
	s.put(pages.SearchBox, browsertest.NewElement())
	titles := make([]*browsertest.FakeElement, 0, len(s.Books))
	for _, b := range s.Books {
		titles = append(titles, browsertest.WithText(b))
	}
	s.put(pages.BookTitleLinks, titles...)
	s.put(pages.LoginMenuItem, browsertest.WithText("Login").OnClick(func() { s.showLogin("") }))
	if s.LoggedIn() {
		s.put(pages.LogoutButton, browsertest.WithText("Log out").OnClick(s.logout))
	} else {
		s.put(pages.LoginButton, browsertest.WithText("Login").OnClick(func() { s.showLogin("") }))
	}
}

func (s *BookStore) showLogin(errorMessage string) {
	if s.LoggedIn() {
		s.showBooks()
		return
	}
	s.setPage("login")
	username, password := browsertest.NewElement(), browsertest.NewElement()
	s.put(pages.UsernameInput, username)
	s.put(pages.PasswordInput, password)
	s.put(pages.LoginButton, browsertest.WithText("Login").OnClick(func() {
		s.submit(username.Value(), password.Value())
	}))
	if errorMessage != "" {
		s.put(pages.LoginErrorText, browsertest.WithText(errorMessage))
	}
}

func (s *BookStore) submit(username, password string) {
	if username == "" || username != s.Username || password != s.Password {
		s.showLogin(mockapp.InvalidLoginMessage)
		return
	}
	s.lock.Lock()
	s.loggedIn = true
	s.lock.Unlock()
	s.showBooks()
}

func (s *BookStore) logout() {
	s.lock.Lock()
	s.loggedIn = false
	s.lock.Unlock()
	s.showLogin("")
}
