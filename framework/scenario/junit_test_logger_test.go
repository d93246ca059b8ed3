package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bookstore-qa/ui-test-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJUnitTestLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.xml")
	logger := NewJUnitTestLogger(path, map[string]string{"browser": "chrome"}, RegexFilters{})
	screen := &fakeScreen{active: true}

	results := Run(Configuration{
		TestLogger: logger,
		Hooks:      []Hooks{ScreenshotOnFailure(screenSource(screen))},
	}, func(s *Suite) {
		s.Feature("login", func(s *Suite) {
			s.Scenario("valid", func(sc *Scenario) { sc.Step("log in", pass) })
			s.Scenario("invalid", func(sc *Scenario) {
				sc.Step("check message", func(sc *Scenario) framework.StepResult {
					return sc.Log().Fail("Invalid username or password!")
				})
			})
		})
	})
	require.NoError(t, logger.EndLog(results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	xml := string(data)
	assert.Contains(t, xml, `<testsuite tests="2" failures="1"`)
	assert.Contains(t, xml, `name="UI acceptance tests: login"`)
	assert.Contains(t, xml, `<property name="browser" value="chrome"></property>`)
	assert.Contains(t, xml, `step 1 (check message) failed: Invalid username or password!`)
	assert.Contains(t, xml, `[[ATTACHMENT|attachments/login_invalid_1.png]]`)

	attachment, err := os.ReadFile(filepath.Join(dir, "attachments", "login_invalid_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(attachment))
}

type numberedScreen struct{ shots int }

func (s *numberedScreen) Active() bool { return true }

func (s *numberedScreen) Screenshot() ([]byte, error) {
	s.shots++
	return []byte(fmt.Sprintf("shot %d", s.shots)), nil
}

func TestJUnitTestLoggerKeepsAttachmentsOfSimilarlyNamedScenarios(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.xml")
	logger := NewJUnitTestLogger(path, nil, RegexFilters{})
	fail := func(sc *Scenario) framework.StepResult { return sc.Log().Fail("bad") }

	results := Run(Configuration{
		TestLogger: logger,
		Hooks:      []Hooks{ScreenshotOnFailure(screenSource(&numberedScreen{}))},
	}, func(s *Suite) {
		s.Feature("login", func(s *Suite) {
			s.Scenario("a b", func(sc *Scenario) { sc.Step("check", fail) })
			s.Scenario("a_b", func(sc *Scenario) { sc.Step("check", fail) })
		})
	})
	require.Len(t, results.Failures, 2)
	require.NoError(t, logger.EndLog(results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `[[ATTACHMENT|attachments/login_a_b_1.png]]`)
	assert.Contains(t, string(data), `[[ATTACHMENT|attachments/login_a_b_1-2.png]]`)

	files, err := os.ReadDir(filepath.Join(dir, "attachments"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	first, err := os.ReadFile(filepath.Join(dir, "attachments", "login_a_b_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "shot 1", string(first))
	second, err := os.ReadFile(filepath.Join(dir, "attachments", "login_a_b_1-2.png"))
	require.NoError(t, err)
	assert.Equal(t, "shot 2", string(second))
}
