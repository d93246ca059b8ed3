package pages

import (
	"github.com/bookstore-qa/ui-test-harness/framework/browser"
	"github.com/bookstore-qa/ui-test-harness/framework/interact"
)

// Locators of the home, login, and book store pages.
var (
	BookStoreApplicationCard = browser.XPath( //nolint:gochecknoglobals
		"//h5[normalize-space()='Book Store Application']")
	LoginMenuItem  = browser.XPath("//span[normalize-space()='Login']") //nolint:gochecknoglobals
	LoginButton    = browser.ID("login")                                //nolint:gochecknoglobals
	UsernameInput  = browser.ID("userName")                             //nolint:gochecknoglobals
	PasswordInput  = browser.ID("password")                             //nolint:gochecknoglobals
	LoginErrorText = browser.ID("name")                                 //nolint:gochecknoglobals
)

type LoginPage struct {
	Page
}

func NewLoginPage(session *browser.Session, actions *interact.Actions) *LoginPage {
	return &LoginPage{Page: newPage(session, actions)}
}

// NavigateToBookStoreApplication opens the home page, enters the book store, and follows its
// login button to the login form.
func (p *LoginPage) NavigateToBookStoreApplication(homeURL string) error {
	if err := p.Open(homeURL); err != nil {
		return err
	}
	if err := p.actions.ScrollIntoViewAndClick(p.find(BookStoreApplicationCard)); err != nil {
		return err
	}
	return p.actions.Click(p.find(LoginButton))
}

// OpenLoginFromMenu uses the side menu instead of the book store's login button.
func (p *LoginPage) OpenLoginFromMenu() error {
	return p.actions.ClickTolerating(p.find(LoginMenuItem))
}

func (p *LoginPage) EnterUsername(username string) error {
	return p.actions.SendText(p.find(UsernameInput), username)
}

func (p *LoginPage) EnterPassword(password string) error {
	return p.actions.SendText(p.find(PasswordInput), password)
}

// ClickLoginButton submits the form. The button can be below the fold on small windows.
func (p *LoginPage) ClickLoginButton() error {
	return p.actions.ScrollIntoViewAndClick(p.find(LoginButton))
}

// Login fills in and submits the form.
func (p *LoginPage) Login(username, password string) error {
	if err := p.EnterUsername(username); err != nil {
		return err
	}
	if err := p.EnterPassword(password); err != nil {
		return err
	}
	return p.ClickLoginButton()
}

// ErrorMessage returns the message shown after a rejected login.
func (p *LoginPage) ErrorMessage() (string, error) {
	return p.actions.GetText(p.find(LoginErrorText))
}
