// Package bookstore contains the acceptance scenarios for the book store application.
package bookstore

import (
	"fmt"
	"os"
	"strings"

	"github.com/bookstore-qa/ui-test-harness/framework"
	"github.com/bookstore-qa/ui-test-harness/framework/harness"
	"github.com/bookstore-qa/ui-test-harness/framework/scenario"
	"github.com/bookstore-qa/ui-test-harness/mockapp"
	"github.com/bookstore-qa/ui-test-harness/pages"
)

// Credentials are the accounts the scenarios log in with. Invalid must be rejected by the
// application under test.
type Credentials struct {
	Username        string
	Password        string
	InvalidUsername string
	InvalidPassword string
}

// DefaultInvalidCredentials are used when Credentials leaves the invalid account empty.
var DefaultInvalidCredentials = Credentials{ //nolint:gochecknoglobals
	InvalidUsername: "invalid-user",
	InvalidPassword: "invalid-password",
}

// Context is what every scenario in the suite has access to.
type Context struct {
	harness     *harness.TestHarness
	credentials Credentials
}

// RunSuite runs every book store scenario that the filter selects.
func RunSuite(
	h *harness.TestHarness,
	credentials Credentials,
	filter scenario.Filter,
	testLogger scenario.TestLogger,
	console framework.Logger,
) scenario.Results {
	if credentials.InvalidUsername == "" {
		credentials.InvalidUsername = DefaultInvalidCredentials.InvalidUsername
		credentials.InvalidPassword = DefaultInvalidCredentials.InvalidPassword
	}
	c := &Context{harness: h, credentials: credentials}

	fmt.Println("Running book store test suite")
	fmt.Println()
	if rf, ok := filter.(scenario.RegexFilters); ok {
		scenario.PrintFilterDescription(rf)
	}

	config := scenario.Configuration{
		Filter:     filter,
		TestLogger: testLogger,
		Hooks:      h.ScenarioHooks(),
		Console:    console,
	}
	return scenario.Run(config, func(s *scenario.Suite) {
		s.Feature("login", c.doLoginScenarios)
	})
}

func (c *Context) doLoginScenarios(s *scenario.Suite) {
	s.Scenario("invalid login shows an error", func(sc *scenario.Scenario) {
		login := pages.NewLoginPage(c.harness.Session(), c.harness.Actions())

		c.navigateToLogin(sc, login)
		c.logIn(sc, login, c.credentials.InvalidUsername, c.credentials.InvalidPassword)
		sc.Step("User should see an error message", func(sc *scenario.Scenario) framework.StepResult {
			message, err := login.ErrorMessage()
			if err != nil {
				sc.Debug("Error reading the login error message: %s", err)
			}
			if message != mockapp.InvalidLoginMessage {
				return sc.Log().Fail("Error message is not displayed")
			}
			sc.Log().Pass("Correct Error message is displayed")
			return framework.Passed()
		})
	})

	s.Scenario("valid login shows the book store", func(sc *scenario.Scenario) {
		login := pages.NewLoginPage(c.harness.Session(), c.harness.Actions())
		store := pages.NewBookStorePage(c.harness.Session(), c.harness.Actions())

		c.navigateToLogin(sc, login)
		c.logIn(sc, login, c.credentials.Username, c.credentials.Password)
		sc.Step("User should see a search book field", func(sc *scenario.Scenario) framework.StepResult {
			if !store.IsSearchBoxDisplayed() {
				return sc.Log().Fail("Search box is not displayed")
			}
			sc.Log().Pass("Search box is displayed")
			return framework.Passed()
		})
		sc.Step("User should see a list of books", func(sc *scenario.Scenario) framework.StepResult {
			titles, err := store.BookTitles()
			if err != nil {
				sc.Debug("Error reading book titles: %s", err)
			}
			if len(titles) == 0 {
				return sc.Log().Fail("List of books is not displayed")
			}
			sc.Log().Pass("List of books is displayed")
			sc.Log().Infof("List of books: [%s]", strings.Join(titles, ", "))
			return framework.Passed()
		})
		sc.Step("User should logout from the application", func(sc *scenario.Scenario) framework.StepResult {
			if err := store.ClickLogout(); err != nil {
				return sc.Log().Failf("Could not log out: %s", err)
			}
			return framework.Passed()
		})
	})
}

func (c *Context) navigateToLogin(sc *scenario.Scenario, login *pages.LoginPage) {
	url := c.harness.URL("/")
	sc.Step(fmt.Sprintf("User navigate to the book store application login with url %q", url),
		func(sc *scenario.Scenario) framework.StepResult {
			if err := login.NavigateToBookStoreApplication(url); err != nil {
				return sc.Log().Failf("Could not open the login page: %s", err)
			}
			return framework.Passed()
		})
}

func (c *Context) logIn(sc *scenario.Scenario, login *pages.LoginPage, username, password string) {
	sc.Step(fmt.Sprintf("User log in to the application with username %q", username),
		func(sc *scenario.Scenario) framework.StepResult {
			if err := login.Login(username, password); err != nil {
				return sc.Log().Failf("Could not log in: %s", err)
			}
			return framework.Passed()
		})
}

// WriteFailures writes the ID of every failed scenario to a file, one per line, in the format
// that a skip file accepts.
func WriteFailures(path string, results scenario.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create failures file: %w", err)
	}
	for _, result := range results.Failures {
		fmt.Fprintln(f, result.ID)
	}
	return f.Close()
}
