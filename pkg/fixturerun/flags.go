package fixturerun

import "github.com/spf13/pflag"

const (
	FlagBinary      = "binary"
	FlagCases       = "cases"
	FlagCase        = "case"
	FlagConcurrency = "concurrency"

	DefaultBinary      = "fixture"
	DefaultConcurrency = 4
)

// FlagSet returns the flags shared by the workflow and the standalone runner.
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(workflowIDStr, pflag.ExitOnError)

	flagSet.String(FlagBinary, DefaultBinary, "Fixture binary to run, as a path or a name in PATH")
	flagSet.String(FlagCases, "", "Case table to run (.json or .toml)")
	flagSet.Int(FlagCase, 0, "Number of the case to run, 0 runs every case")
	flagSet.Int(FlagConcurrency, DefaultConcurrency, "Maximum number of cases running at once")

	return flagSet
}
