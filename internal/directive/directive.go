// Package directive implements the argument-driven behavior of the fixture
// command. Each positional argument is a directive producing one observable
// side effect on the process streams or on the exit code.
package directive

const (
	Stdout = "stdout"
	Stderr = "stderr"
	Wrap   = "{}"
	Incr   = "incr"
	Comma  = "comma"
	False  = "false"
	Return = "return"
)

// HelpText is written verbatim when the command is invoked without directives.
// The spelling is relied upon by existing callers and must not change.
const HelpText = "stdout: echo '1' to the stdout with no linefeed.\n" +
	"stderr: echo '2' to the stderr with no linefeed.\n" +
	"{}:     wrap the stdin with {}\n" +
	"incr:   read the first intter from the stdin, add 1, and print to stdout.\n" +
	"comma:  read the rest of the arguments and print to the stdout comma separated.\n" +
	"false:  set the return value to 1 (0 is the default).\n" +
	"return: set the return value to the next argument\n"

const invalidOptionFormat = "\nInvalid option %s\n"
