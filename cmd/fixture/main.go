// Package main provides the fixture command used by tests that need a
// predictable subprocess. Every argument is a directive that writes to
// stdout or stderr, reads stdin, or sets the exit code. Run it without
// arguments for the list of directives.
package main

import (
	"os"

	"github.com/snyk/cli-test-fixture/internal/directive"
)

func main() {
	os.Exit(directive.Run(os.Args[1:], directive.StdStreams()))
}
