// Package harness drives the fixture command as a subprocess from a table of
// numbered cases and checks what each invocation produced.
package harness

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	clierrors "github.com/snyk/error-catalog-golang-public/cli"
	"github.com/snyk/error-catalog-golang-public/snyk_errors"
)

const caseNumberPlaceholder = "#"

var errEmptyCaseTable = errors.New("case table contains no cases")

// Arg is a single fixture argument. Tables may spell it as a string or as an
// integer; integers are rendered in decimal.
type Arg string

func (a *Arg) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Arg(s)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("argument must be a string or an integer, got %s", data)
	}
	*a = Arg(strconv.FormatInt(n, 10))
	return nil
}

func (a *Arg) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*a = Arg(v)
	case int64:
		*a = Arg(strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("argument must be a string or an integer, got %T", v)
	}
	return nil
}

// Expectation describes the invocation a case expects. Nil streams are not checked.
type Expectation struct {
	Stdout   *string `json:"stdout,omitempty" toml:"stdout"`
	Stderr   *string `json:"stderr,omitempty" toml:"stderr"`
	ExitCode int     `json:"exitCode" toml:"exit_code"`
}

// Case is one numbered entry of a case table.
type Case struct {
	Description string      `json:"description" toml:"description"`
	Command     []Arg       `json:"command" toml:"command"`
	Stdin       string      `json:"stdin,omitempty" toml:"stdin"`
	Expect      Expectation `json:"expect" toml:"expect"`
}

// Args returns the fixture arguments of the case with every "#" replaced by
// its 1-based number.
func (c Case) Args(number int) []string {
	args := make([]string, 0, len(c.Command))
	for _, arg := range c.Command {
		args = append(args, strings.ReplaceAll(string(arg), caseNumberPlaceholder, strconv.Itoa(number)))
	}
	return args
}

type tomlCaseTable struct {
	Cases []Case `toml:"case"`
}

// LoadCases reads a case table from a .json file (an array of cases) or a
// .toml file (an array of [[case]] tables).
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, clierrors.NewGeneralSCAFailureError(
			fmt.Sprintf("unable to read case table %s", path),
			snyk_errors.WithCause(err),
		)
	}

	cases, err := parseCases(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse case table %s: %w", path, err)
	}

	return cases, nil
}

func parseCases(ext string, data []byte) ([]Case, error) {
	var cases []Case

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &cases); err != nil {
			return nil, err
		}
	case ".toml":
		var table tomlCaseTable
		if _, err := toml.Decode(string(data), &table); err != nil {
			return nil, err
		}
		cases = table.Cases
	default:
		return nil, fmt.Errorf("unsupported case table format %q", ext)
	}

	if len(cases) == 0 {
		return nil, errEmptyCaseTable
	}

	return cases, nil
}

// WriteUsage lists the cases the way the runner reports them when invoked
// without a valid case number.
func WriteUsage(w io.Writer, program string, cases []Case) error {
	if _, err := fmt.Fprintf(w, "usage: %s <testnum>\n\ntestnum: Test Description\n", program); err != nil {
		return err
	}
	for i, c := range cases {
		if _, err := fmt.Fprintf(w, "%7d: %s\n", i+1, c.Description); err != nil {
			return err
		}
	}
	return nil
}
