package mockapp

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
}

func getBody(t *testing.T, client *http.Client, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func loginRequest(t *testing.T, baseURL, username, password string) *http.Request {
	form := url.Values{"userName": {username}, "password": {password}}
	req, err := http.NewRequest("POST", baseURL+"/login", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHomePageLinksToBookStore(t *testing.T) {
	app := New(Options{}, nil)
	httphelpers.WithServer(app, func(server *httptest.Server) {
		req, _ := http.NewRequest("GET", server.URL+"/", nil)
		resp, body := getBody(t, noRedirectClient(), req)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, body, `<a href="/books"><h5>Book Store Application</h5></a>`)
		assert.Contains(t, body, `<span class="text">Login</span>`)
	})
}

func TestBooksPageWhenLoggedOut(t *testing.T) {
	app := New(Options{Books: []string{"Speaking JavaScript", "Git Pocket Guide"}}, nil)
	httphelpers.WithServer(app, func(server *httptest.Server) {
		req, _ := http.NewRequest("GET", server.URL+"/books", nil)
		_, body := getBody(t, noRedirectClient(), req)
		assert.Contains(t, body, `id="searchBox"`)
		assert.Contains(t, body, `<button id="login"`)
		assert.NotContains(t, body, `<button id="submit"`)
		assert.Equal(t, 2, strings.Count(body, `<div class="action-buttons">`))
		assert.Contains(t, body, ">Speaking JavaScript</a>")
	})
}

func TestInvalidLoginShowsErrorMessage(t *testing.T) {
	var logger framework.CapturingLogger
	app := New(Options{Username: "reader", Password: "secret"}, &logger)
	httphelpers.WithServer(app, func(server *httptest.Server) {
		resp, body := getBody(t, noRedirectClient(), loginRequest(t, server.URL, "reader", "wrong"))
		assert.Equal(t, 200, resp.StatusCode)
		assert.Contains(t, body, `<p id="name" class="mb-1">`+InvalidLoginMessage+`</p>`)
		assert.Empty(t, resp.Cookies())
	})
	assert.Equal(t, LogPrefix+`Rejected login for "reader"`, logger.Output()[0].Message)
}

func TestEmptyUsernameIsRejectedEvenIfConfiguredEmpty(t *testing.T) {
	app := New(Options{}, nil)
	httphelpers.WithServer(app, func(server *httptest.Server) {
		_, body := getBody(t, noRedirectClient(), loginRequest(t, server.URL, "", ""))
		assert.Contains(t, body, InvalidLoginMessage)
	})
}

func TestValidLoginThenLogout(t *testing.T) {
	app := New(Options{Username: "reader", Password: "secret"}, nil)
	httphelpers.WithServer(app, func(server *httptest.Server) {
		client := noRedirectClient()
		resp, _ := getBody(t, client, loginRequest(t, server.URL, "reader", "secret"))
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/books", resp.Header.Get("Location"))
		cookies := resp.Cookies()
		require.Len(t, cookies, 1)

		req, _ := http.NewRequest("GET", server.URL+"/books", nil)
		req.AddCookie(cookies[0])
		_, body := getBody(t, client, req)
		assert.Contains(t, body, `<button id="submit" type="submit">Log out</button>`)
		assert.Contains(t, body, `<div id="userName-value">reader</div>`)

		req, _ = http.NewRequest("GET", server.URL+"/login", nil)
		req.AddCookie(cookies[0])
		resp, _ = getBody(t, client, req)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

		req, _ = http.NewRequest("POST", server.URL+"/logout", nil)
		req.AddCookie(cookies[0])
		resp, _ = getBody(t, client, req)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		req, _ = http.NewRequest("GET", server.URL+"/books", nil)
		req.AddCookie(cookies[0])
		_, body = getBody(t, client, req)
		assert.NotContains(t, body, `id="submit"`)
	})
}

func TestRenderDelayHidesContentUntilScriptRuns(t *testing.T) {
	app := New(Options{RenderDelay: 750 * time.Millisecond}, nil)
	httphelpers.WithServer(app, func(server *httptest.Server) {
		req, _ := http.NewRequest("GET", server.URL+"/login", nil)
		_, body := getBody(t, noRedirectClient(), req)
		assert.Contains(t, body, `id="app" style="display: none"`)
		assert.Contains(t, body, "750")
	})
}

func TestUnsupportedMethodIsRejected(t *testing.T) {
	app := New(Options{}, nil)
	httphelpers.WithServer(app, func(server *httptest.Server) {
		req, _ := http.NewRequest("DELETE", server.URL+"/books", nil)
		resp, _ := getBody(t, noRedirectClient(), req)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
