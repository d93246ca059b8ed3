package main

import (
	"time"

	"github.com/bookstore-qa/ui-test-harness/framework/scenario"

	"github.com/urfave/cli/v2"
)

const defaultConfigFile = "config.yaml"

type commandParams struct {
	configFile     string
	filters        scenario.RegexFilters
	skipFile       string
	debug          bool
	debugAll       bool
	jUnitFile      string
	recordFailures string
	mockApp        bool
	mockAppPort    int
	mockAppDelay   time.Duration
}

func commandFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Value: defaultConfigFile, Usage: "settings file (YAML)"},
		&cli.StringSliceFlag{Name: "run", Usage: "regex pattern(s) to select scenarios to run"},
		&cli.StringSliceFlag{Name: "skip", Usage: "regex pattern(s) to select scenarios not to run"},
		&cli.StringFlag{Name: "skip-file", Usage: "file containing scenario patterns to skip, one per line"},
		&cli.BoolFlag{Name: "debug", Usage: "enable debug logging for failed scenarios"},
		&cli.BoolFlag{Name: "debug-all", Usage: "enable debug logging for all scenarios"},
		&cli.StringFlag{Name: "junit", Usage: "write JUnit XML output to the specified path"},
		&cli.StringFlag{Name: "record-failures", Usage: "record failed scenario IDs to the specified file"},
		&cli.BoolFlag{Name: "mock-app", Usage: "run against the built-in book store application"},
		&cli.IntFlag{Name: "mock-app-port", Usage: "port for the built-in application (default: any free port)"},
		&cli.DurationFlag{Name: "mock-app-delay", Usage: "delay before the built-in application renders each page"},
	}
}

func readParams(c *cli.Context) (commandParams, error) {
	p := commandParams{
		configFile:     c.String("config"),
		skipFile:       c.String("skip-file"),
		debug:          c.Bool("debug"),
		debugAll:       c.Bool("debug-all"),
		jUnitFile:      c.String("junit"),
		recordFailures: c.String("record-failures"),
		mockApp:        c.Bool("mock-app"),
		mockAppPort:    c.Int("mock-app-port"),
		mockAppDelay:   c.Duration("mock-app-delay"),
	}
	for _, pattern := range c.StringSlice("run") {
		if err := p.filters.MustMatch.Set(pattern); err != nil {
			return p, cli.Exit("invalid --run pattern: "+err.Error(), 1)
		}
	}
	for _, pattern := range c.StringSlice("skip") {
		if err := p.filters.MustNotMatch.Set(pattern); err != nil {
			return p, cli.Exit("invalid --skip pattern: "+err.Error(), 1)
		}
	}
	if p.skipFile != "" {
		if err := p.filters.MustNotMatch.ReadSkipFile(p.skipFile); err != nil {
			return p, cli.Exit("cannot read skip file: "+err.Error(), 1)
		}
	}
	return p, nil
}
