// Package main provides fixture-runner, which runs numbered cases from a case
// table against the fixture command and reports which ones did not behave as
// expected.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/snyk/go-application-framework/pkg/configuration"
	"github.com/spf13/pflag"

	"github.com/snyk/cli-test-fixture/internal/harness"
	"github.com/snyk/cli-test-fixture/pkg/fixturerun"
)

const (
	flagTimeout  = "timeout"
	flagLogLevel = "log-level"

	allCases = "all"

	exitOK      = 0
	exitFailure = 1
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	program := filepath.Base(args[0])

	flagSet := fixturerun.FlagSet()
	flagSet.Init(program, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	timeout := flagSet.Duration(flagTimeout, time.Minute, "Deadline for the whole run")
	logLevel := flagSet.String(flagLogLevel, zerolog.LevelInfoValue, "Log messages including and over the specified level: trace, debug, info, warn, error")

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --%s: %v\n", flagLogLevel, err)
		return exitFailure
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	binary, _ := flagSet.GetString(fixturerun.FlagBinary)
	casesPath, _ := flagSet.GetString(fixturerun.FlagCases)
	concurrency, _ := flagSet.GetInt(fixturerun.FlagConcurrency)

	number, ok := parseCaseNumber(flagSet.Args())
	if !ok {
		printUsage(stdout, program, casesPath, &logger)
		return exitFailure
	}

	config := configuration.New()
	config.Set(fixturerun.FlagCases, casesPath)
	config.Set(fixturerun.FlagCase, number)
	config.Set(fixturerun.FlagConcurrency, concurrency)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	outcomes, err := fixturerun.Run(ctx, config, harness.NewExecutor(binary), &logger)
	if errors.Is(err, harness.ErrNoSuchCase) {
		printUsage(stdout, program, casesPath, &logger)
		return exitFailure
	}
	if err != nil {
		logger.Error().Err(err).Msg("Fixture run failed")
		return fixturerun.ExitCode(err, exitFailure)
	}

	report(stdout, outcomes)
	if harness.CountFailed(outcomes) > 0 {
		return exitFailure
	}
	return exitOK
}

// parseCaseNumber accepts a single positive case number or "all", which maps to 0.
func parseCaseNumber(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	if args[0] == allCases {
		return 0, true
	}
	number, err := strconv.Atoi(args[0])
	if err != nil || number < 1 {
		return 0, false
	}
	return number, true
}

func printUsage(w io.Writer, program, casesPath string, logger *zerolog.Logger) {
	var cases []harness.Case
	if casesPath != "" {
		loaded, err := harness.LoadCases(casesPath)
		if err != nil {
			logger.Warn().Err(err).Str("cases", casesPath).Msg("Unable to list cases")
		} else {
			cases = loaded
		}
	}

	if err := harness.WriteUsage(w, program, cases); err != nil {
		logger.Debug().Err(err).Msg("Failed to write usage")
	}
}

func report(w io.Writer, outcomes []*harness.Outcome) {
	for _, outcome := range outcomes {
		status := "ok  "
		if !outcome.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s %7d: %s\n", status, outcome.Number, outcome.Description)
		for _, mismatch := range outcome.Mismatches {
			fmt.Fprintf(w, "             %s\n", mismatch)
		}
	}
	fmt.Fprintf(w, "%d/%d passed\n", len(outcomes)-harness.CountFailed(outcomes), len(outcomes))
}
