// Package config loads the settings file of a test run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework/browser"
	"github.com/bookstore-qa/ui-test-harness/framework/opt"

	yaml "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override settings from the file.
const EnvPrefix = "UI_HARNESS_"

// Config is the content of the settings file.
type Config struct {
	Browser                string                   `yaml:"browser"`
	BrowserMode            string                   `yaml:"browser_mode"`
	DownloadPath           string                   `yaml:"download_path"`
	ScreenshotPath         string                   `yaml:"screenshot_path"`
	ProfilePath            string                   `yaml:"profile_path"`
	DisableNotifications   opt.Maybe[bool]          `yaml:"disable_notifications"`
	DisablePasswordManager opt.Maybe[bool]          `yaml:"disable_password_manager"`
	SessionScope           string                   `yaml:"session_scope"`
	BaseURL                string                   `yaml:"base_url"`
	Username               string                   `yaml:"username"`
	Password               string                   `yaml:"password"`
	WaitTimeout            opt.Maybe[time.Duration] `yaml:"wait_timeout"`
	PollInterval           opt.Maybe[time.Duration] `yaml:"poll_interval"`
	FluentPollInterval     opt.Maybe[time.Duration] `yaml:"fluent_poll_interval"`
	ActionTimeout          opt.Maybe[time.Duration] `yaml:"action_timeout"`
}

// Load reads a settings file and applies environment overrides. A missing or unreadable file is
// an error; the run cannot start without one.
func Load(path string, getenv func(string) string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if getenv != nil {
		c.applyEnv(getenv)
	}
	return c, nil
}

// Parse decodes settings from YAML. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var c Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	for name, field := range map[string]*string{
		"BROWSER":         &c.Browser,
		"BROWSER_MODE":    &c.BrowserMode,
		"DOWNLOAD_PATH":   &c.DownloadPath,
		"SCREENSHOT_PATH": &c.ScreenshotPath,
		"SESSION_SCOPE":   &c.SessionScope,
		"BASE_URL":        &c.BaseURL,
		"USERNAME":        &c.Username,
		"PASSWORD":        &c.Password,
	} {
		if value := getenv(EnvPrefix + name); value != "" {
			*field = value
		}
	}
}

// Headless is true when browser_mode is "headless", in any case.
func (c Config) Headless() bool {
	return strings.EqualFold(strings.TrimSpace(c.BrowserMode), "headless")
}

// BrowserConfig returns the session settings. The privacy toggles default to on.
func (c Config) BrowserConfig() browser.Config {
	return browser.Config{
		Kind:                   c.Browser,
		Headless:               c.Headless(),
		DownloadDir:            c.DownloadPath,
		DisableNotifications:   c.DisableNotifications.OrElse(true),
		DisablePasswordManager: c.DisablePasswordManager.OrElse(true),
		ProfileDir:             c.ProfilePath,
	}
}
