package browser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, name := range []string{"chrome", "Chrome", " CHROME "} {
		k, err := ParseKind(name)
		assert.NoError(t, err)
		assert.Equal(t, Chrome, k)
	}
	k, err := ParseKind("edge")
	assert.NoError(t, err)
	assert.Equal(t, Edge, k)

	for _, name := range []string{"", "firefox", "safari"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseKind(name)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "browser", ce.Field)
			assert.Equal(t, name, ce.Value)
		})
	}
}

func TestBuildLaunchOptionsRejectsUnknownKind(t *testing.T) {
	_, err := BuildLaunchOptions(Config{Kind: "opera", Headless: true})
	var ce *ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestBuildLaunchOptionsChrome(t *testing.T) {
	o, err := BuildLaunchOptions(Config{
		Kind:                   "chrome",
		DownloadDir:            "/tmp/downloads",
		DisableNotifications:   true,
		DisablePasswordManager: true,
	})
	require.NoError(t, err)
	assert.Equal(t, Chrome, o.Kind)
	assert.Equal(t, "chrome", o.Channel)
	assert.False(t, o.Headless)
	assert.Equal(t, []string{
		"--start-maximized",
		"--disable-infobars",
		"--disable-extensions",
		"--disable-popup-blocking",
		"--disable-features=PasswordCheck,AutofillKeyedData,SafeBrowsingEnhancedProtection",
		"--disable-sync",
	}, o.Args)
	assert.Equal(t, map[string]interface{}{
		"download.default_directory":                           "/tmp/downloads",
		"download.prompt_for_download":                         false,
		"profile.default_content_setting_values.notifications": 2,
		"credentials_enable_service":                           false,
		"profile.password_manager_enabled":                     false,
	}, o.Preferences)
}

func TestBuildLaunchOptionsEdgeHeadless(t *testing.T) {
	o, err := BuildLaunchOptions(Config{Kind: "edge", Headless: true})
	require.NoError(t, err)
	assert.Equal(t, "msedge", o.Channel)
	assert.True(t, o.Headless)
	assert.Contains(t, o.Args, "--headless=new")
	assert.Contains(t, o.Args, "--disable-popup-blocking")
	assert.NotContains(t, o.Args, "--disable-sync")
	assert.Equal(t, []string{"download.prompt_for_download"}, o.PreferenceKeys())
}

func TestPreferencesAreTheSameForEveryKind(t *testing.T) {
	cfg := Config{DownloadDir: "d", DisableNotifications: true, DisablePasswordManager: true}
	var prefs []map[string]interface{}
	for _, k := range Kinds() {
		cfg.Kind = string(k)
		o, err := BuildLaunchOptions(cfg)
		require.NoError(t, err)
		prefs = append(prefs, o.Preferences)
	}
	assert.Equal(t, prefs[0], prefs[1])
}

func TestEncodePreferencesNestsDottedKeys(t *testing.T) {
	data, err := EncodePreferences(map[string]interface{}{
		"download.default_directory":                           "/d",
		"download.prompt_for_download":                         false,
		"profile.default_content_setting_values.notifications": 2,
		"credentials_enable_service":                           false,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"credentials_enable_service": false,
		"download": {"default_directory": "/d", "prompt_for_download": false},
		"profile": {"default_content_setting_values": {"notifications": 2}}
	}`, string(data))
}

func TestEncodePreferencesConflict(t *testing.T) {
	_, err := EncodePreferences(map[string]interface{}{
		"download":                   true,
		"download.default_directory": "/d",
	})
	assert.Error(t, err)
}

func TestWritePreferences(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WritePreferences(dir, map[string]interface{}{"profile.password_manager_enabled": false}))

	data, err := os.ReadFile(filepath.Join(dir, "Default", "Preferences"))
	require.NoError(t, err)
	var parsed map[string]map[string]bool
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, false, parsed["profile"]["password_manager_enabled"])
}

func TestLocator(t *testing.T) {
	assert.Equal(t, "id=userName", ID("userName").Query())
	assert.Equal(t, "css=div.action-buttons span a", CSS("div.action-buttons span a").Query())
	assert.Equal(t, "xpath=//span[text()='Login']", XPath("//span[text()='Login']").Query())
	assert.Equal(t, "text=Book Store Application", Text("Book Store Application").Query())
	assert.Equal(t, `css=[name="q"]`, Name("q").Query())

	nth := CSS("a").Nth(2)
	assert.Equal(t, "css=a", nth.Query())
	assert.Equal(t, 2, nth.Index().Value())
	assert.Equal(t, "css=a >> nth=2", nth.String())
	assert.False(t, CSS("a").Index().IsDefined())
}

func TestMapPlaywrightError(t *testing.T) {
	assert.Nil(t, mapPlaywrightError(nil))
	assert.ErrorIs(t, mapPlaywrightError(errorString(
		"<div class=\"overlay\"></div> intercepts pointer events")), ErrClickIntercepted)
	assert.ErrorIs(t, mapPlaywrightError(errorString("Element is not attached to the DOM")), ErrStaleElement)
	assert.ErrorIs(t, mapPlaywrightError(errorString(
		"Timeout 2000ms exceeded.\nwaiting for locator('#login')")), ErrElementNotFound)
	other := errorString("boom")
	assert.Equal(t, other, mapPlaywrightError(other))
}

type errorString string

func (e errorString) Error() string { return string(e) }
