package harness

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/snyk/error-catalog-golang-public/snyk_errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCases_JSON(t *testing.T) {
	cases, err := LoadCases(filepath.Join("testdata", "cases.json"))
	require.NoError(t, err)
	require.Len(t, cases, 8)

	assert.Equal(t, "return sets the exit code", cases[2].Description)
	assert.Equal(t, []string{"return", "42"}, cases[2].Args(3))
	assert.Equal(t, 42, cases[2].Expect.ExitCode)
	assert.Nil(t, cases[2].Expect.Stderr)

	require.NotNil(t, cases[0].Expect.Stderr)
	assert.Equal(t, "2", *cases[0].Expect.Stderr)

	assert.Equal(t, "5", cases[4].Stdin)
	assert.Equal(t, []string{"comma", "case-7", "7"}, cases[6].Args(7))
}

func TestLoadCases_TOML(t *testing.T) {
	cases, err := LoadCases(filepath.Join("testdata", "cases.toml"))
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, []string{"return", "3"}, cases[1].Args(2))
	assert.Equal(t, 3, cases[1].Expect.ExitCode)
	assert.Nil(t, cases[1].Expect.Stdout)

	assert.Equal(t, "in", cases[2].Stdin)
	assert.Equal(t, []string{"{}", "comma", "3"}, cases[2].Args(3))
	require.NotNil(t, cases[2].Expect.Stdout)
	assert.Equal(t, "{in}3", *cases[2].Expect.Stdout)
}

func TestLoadCases_Errors(t *testing.T) {
	t.Run("missing file is a catalog error", func(t *testing.T) {
		_, err := LoadCases(filepath.Join(t.TempDir(), "missing.json"))

		require.Error(t, err)
		var catalogErr snyk_errors.Error
		require.True(t, errors.As(err, &catalogErr), "error should be a catalog error")
		assert.Contains(t, catalogErr.Detail, "unable to read case table")
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := LoadCases(filepath.Join("testdata", "empty.json"))
		assert.ErrorIs(t, err, errEmptyCaseTable)
	})
}

func TestParseCases(t *testing.T) {
	tests := []struct {
		name        string
		ext         string
		data        string
		errContains string
	}{
		{"unsupported format", ".yaml", "- description: x", "unsupported case table format"},
		{"invalid json", ".json", "{", "unexpected end of JSON input"},
		{"json argument of wrong type", ".json", `[{"description":"x","command":[true]}]`, "argument must be a string or an integer"},
		{"json fractional argument", ".json", `[{"description":"x","command":[1.5]}]`, "argument must be a string or an integer"},
		{"toml argument of wrong type", ".toml", "[[case]]\ndescription = \"x\"\ncommand = [1.5]\n", "argument must be a string or an integer"},
		{"toml without cases", ".toml", "title = \"nothing\"\n", "contains no cases"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCases(tt.ext, []byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	t.Run("extension is case insensitive", func(t *testing.T) {
		cases, err := parseCases(".JSON", []byte(`[{"description":"help","command":[]}]`))
		require.NoError(t, err)
		require.Len(t, cases, 1)
		assert.Empty(t, cases[0].Args(1))
	})
}

func TestCase_Args(t *testing.T) {
	c := Case{Command: []Arg{"comma", "#", "a#b#", "plain"}}

	assert.Equal(t, []string{"comma", "12", "a12b12", "plain"}, c.Args(12))
	assert.Equal(t, []Arg{"comma", "#", "a#b#", "plain"}, c.Command, "command must not be modified")
}

func TestWriteUsage(t *testing.T) {
	cases := []Case{
		{Description: "first case"},
		{Description: "second case"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteUsage(&buf, "fixture-runner", cases))

	expected := "usage: fixture-runner <testnum>\n" +
		"\n" +
		"testnum: Test Description\n" +
		"      1: first case\n" +
		"      2: second case\n"
	assert.Equal(t, expected, buf.String())
}
