package bookstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework"
	"github.com/bookstore-qa/ui-test-harness/framework/browser"
	"github.com/bookstore-qa/ui-test-harness/framework/browser/browsertest"
	"github.com/bookstore-qa/ui-test-harness/framework/harness"
	"github.com/bookstore-qa/ui-test-harness/framework/interact"
	"github.com/bookstore-qa/ui-test-harness/framework/scenario"
	"github.com/bookstore-qa/ui-test-harness/mockapp"
	"github.com/bookstore-qa/ui-test-harness/pages/pagestest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validCredentials = Credentials{Username: "reader", Password: "secret"} //nolint:gochecknoglobals

func newHarness(t *testing.T, scope harness.SessionScope) (*harness.TestHarness, *browsertest.FakeLauncher) {
	launcher := &browsertest.FakeLauncher{Setup: func(d *browsertest.FakeDriver) {
		pagestest.Install(d, validCredentials.Username, validCredentials.Password)
	}}
	h, err := harness.NewTestHarness(harness.Options{
		Browser:       browser.Config{Kind: "chrome", Headless: true},
		SessionScope:  scope,
		BaseURL:       "http://bookstore.test",
		ScreenshotDir: t.TempDir(),
		Actions: []interact.Option{
			interact.WithTimeout(200 * time.Millisecond),
			interact.WithPollInterval(5 * time.Millisecond),
			interact.WithInterceptPollInterval(5 * time.Millisecond),
		},
	}, launcher, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h, launcher
}

func messages(l *framework.CapturingLogger) []string {
	var ret []string
	for _, m := range l.Output() {
		ret = append(ret, m.Message)
	}
	return ret
}

func TestSuitePassesAgainstBookStore(t *testing.T) {
	h, launcher := newHarness(t, harness.ScopeScenario)
	var console framework.CapturingLogger

	results := RunSuite(h, validCredentials, nil, nil, &console)

	assert.True(t, results.OK())
	require.Len(t, results.Scenarios, 2)
	assert.Equal(t, "login/invalid login shows an error", results.Scenarios[0].ID.String())
	assert.Equal(t, "login/valid login shows the book store", results.Scenarios[1].ID.String())
	assert.Len(t, results.Scenarios[1].Steps, 5)
	assert.Len(t, launcher.Drivers, 2)
	for _, d := range launcher.Drivers {
		assert.True(t, d.Closed())
		assert.Equal(t, 0, d.Screenshots())
	}

	logged := messages(&console)
	assert.Contains(t, logged, "Correct Error message is displayed")
	assert.Contains(t, logged, "Search box is displayed")
	assert.Contains(t, logged, "List of books: ["+strings.Join(mockapp.DefaultBooks, ", ")+"]")
}

func TestSuiteRecordsFailureWithOneScreenshot(t *testing.T) {
	h, launcher := newHarness(t, harness.ScopeRun)
	var console framework.CapturingLogger
	wrongPassword := Credentials{Username: "reader", Password: "not-the-password"}

	results := RunSuite(h, wrongPassword, nil, nil, &console)

	require.Len(t, results.Failures, 1)
	failure := results.Failures[0]
	assert.Equal(t, "login/valid login shows the book store", failure.ID.String())
	require.Len(t, failure.Steps, 5)
	assert.Equal(t, framework.StepFailed, failure.Steps[2].Result.Status)
	assert.Equal(t, framework.StepSkipped, failure.Steps[3].Result.Status)
	assert.Equal(t, framework.StepSkipped, failure.Steps[4].Result.Status)
	assert.Len(t, failure.Attachments, 1)
	assert.Equal(t, 1, launcher.Last().Screenshots())
	assert.Contains(t, messages(&console), "Search box is not displayed")
}

func TestSuiteHonorsFilter(t *testing.T) {
	h, _ := newHarness(t, harness.ScopeRun)
	var filters scenario.RegexFilters
	require.NoError(t, filters.MustMatch.Set("login/invalid"))

	results := RunSuite(h, validCredentials, filters, nil, nil)

	assert.Len(t, results.Scenarios, 1)
	assert.Equal(t, []scenario.ID{{"login", "valid login shows the book store"}}, results.Skipped)
}

func TestWriteFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.txt")
	results := scenario.Results{Failures: []scenario.ScenarioResult{
		{ID: scenario.ID{"login", "a"}},
		{ID: scenario.ID{"login", "b"}},
	}}
	require.NoError(t, WriteFailures(path, results))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "login/a\nlogin/b\n", string(data))
}
