package main

import (
	_ "embed" // this is required in order for go:embed to work
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bookstore-qa/ui-test-harness/config"
	"github.com/bookstore-qa/ui-test-harness/framework"
	"github.com/bookstore-qa/ui-test-harness/framework/browser"
	"github.com/bookstore-qa/ui-test-harness/framework/harness"
	"github.com/bookstore-qa/ui-test-harness/framework/interact"
	"github.com/bookstore-qa/ui-test-harness/framework/scenario"
	"github.com/bookstore-qa/ui-test-harness/mockapp"
	"github.com/bookstore-qa/ui-test-harness/suites/bookstore"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "ui-test-harness",
		Usage:   "Run browser acceptance scenarios against the book store application",
		Version: strings.TrimSpace(versionString),
		Flags:   commandFlags(),
		Action: func(c *cli.Context) error {
			fmt.Printf("ui-test-harness v%s\n", strings.TrimSpace(versionString))
			params, err := readParams(c)
			if err != nil {
				return err
			}
			results, err := run(params)
			if err != nil {
				return err
			}
			if !results.OK() {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(params commandParams) (*scenario.Results, error) {
	cfg, err := config.Load(params.configFile, os.Getenv)
	if err != nil {
		return nil, err
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	if params.mockApp {
		app := mockapp.New(mockapp.Options{
			Username:    cfg.Username,
			Password:    cfg.Password,
			RenderDelay: params.mockAppDelay,
		}, mainDebugLogger)
		server, err := harness.ServeFixtureApp(params.mockAppPort, app)
		if err != nil {
			return nil, fmt.Errorf("cannot start book store application: %w", err)
		}
		defer func() { _ = server.Close() }()
		fmt.Printf("Serving book store application at %s\n", server.URL())
		cfg.BaseURL = server.URL()
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base_url is not configured (set it in the config file or use --mock-app)")
	}

	scope, err := harness.ParseSessionScope(cfg.SessionScope)
	if err != nil {
		return nil, err
	}

	launcher := &browser.PlaywrightLauncher{ActionTimeout: cfg.ActionTimeout.OrElse(browser.DefaultActionTimeout)}
	defer func() {
		if err := launcher.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to stop browser driver: %s\n", err)
		}
	}()

	h, err := harness.NewTestHarness(harness.Options{
		Browser:       cfg.BrowserConfig(),
		SessionScope:  scope,
		BaseURL:       cfg.BaseURL,
		ScreenshotDir: cfg.ScreenshotPath,
		Actions:       actionOptions(cfg),
	}, launcher, mainDebugLogger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := h.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close browser session: %s\n", err)
		}
	}()

	consoleLogger := scenario.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	var testLogger scenario.TestLogger = consoleLogger
	var jUnitLogger *scenario.JUnitTestLogger
	if params.jUnitFile != "" {
		jUnitLogger = scenario.NewJUnitTestLogger(params.jUnitFile, map[string]string{
			"browser":        cfg.Browser,
			"browserMode":    cfg.BrowserMode,
			"baseURL":        cfg.BaseURL,
			"sessionScope":   string(scope),
			"harnessVersion": strings.TrimSpace(versionString),
		}, params.filters)
		testLogger = scenario.MultiTestLogger{consoleLogger, jUnitLogger}
	}

	credentials := bookstore.Credentials{Username: cfg.Username, Password: cfg.Password}
	results := bookstore.RunSuite(h, credentials, params.filters, testLogger, framework.NewConsoleLogger(os.Stdout))

	fmt.Println()
	scenario.PrintResults(results)

	if jUnitLogger != nil {
		if err := jUnitLogger.EndLog(results); err != nil {
			return nil, fmt.Errorf("error writing log: %w", err)
		}
	}

	if params.recordFailures != "" {
		if err := bookstore.WriteFailures(params.recordFailures, results); err != nil {
			return nil, err
		}
	}

	return &results, nil
}

func actionOptions(cfg config.Config) []interact.Option {
	var options []interact.Option
	if cfg.WaitTimeout.IsDefined() {
		options = append(options, interact.WithTimeout(cfg.WaitTimeout.Value()))
	}
	if cfg.PollInterval.IsDefined() {
		options = append(options, interact.WithPollInterval(cfg.PollInterval.Value()))
	}
	if cfg.FluentPollInterval.IsDefined() {
		options = append(options, interact.WithFluentPollInterval(cfg.FluentPollInterval.Value()))
	}
	return options
}
