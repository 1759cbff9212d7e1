package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saylorsolutions/forcetypes/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
signatures:
  - name: greet
    params:
      - name: foo
        type: str
      - name: bar
        type: int
        default: 3
    returns: str
`

func testApp(stdin string) (*app, *bytes.Buffer) {
	var buf bytes.Buffer
	a := &app{in: strings.NewReader(stdin)}
	a.printer = cli.NewPrinter(&buf)
	return a, &buf
}

func writeSchema(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "signatures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0600))
	return path
}

func TestRun_Usage(t *testing.T) {
	a, out := testApp("")
	assert.Equal(t, exitOK, a.run(nil))
	assert.Contains(t, out.String(), "COMMANDS:")
	assert.Contains(t, out.String(), "interactive, i")

	a, _ = testApp("")
	assert.Equal(t, exitError, a.run([]string{"nope"}))
}

func TestCheck(t *testing.T) {
	tests := map[string]struct {
		args  []string
		stdin string
		code  int
		out   string
	}{
		"Passes":          {args: []string{"-t", "list[int]", "[1, 2, 3]"}, code: exitOK, out: "ok"},
		"Fails":           {args: []string{"-t", "list[int]", "[1, x]"}, code: exitMismatch, out: "deepest layer first"},
		"Stdin":           {args: []string{"-t", "dict[str, int]"}, stdin: "a: 1\nb: 2\n", code: exitOK, out: "ok"},
		"Joined args":     {args: []string{"-t", "list[str]", "[a,", "b]"}, code: exitOK, out: "ok"},
		"HCL":             {args: []string{"--hcl", "-t", "map(number)", "{a: 1.5}"}, code: exitOK, out: "ok"},
		"Depth":           {args: []string{"-d", "0", "-t", "list[int]", "[x]"}, code: exitOK, out: "ok"},
		"Unlimited depth": {args: []string{"-d", "-1", "-t", "list[list[int]]", "[[x]]"}, code: exitMismatch, out: "fails: int"},
		"No type":         {args: []string{"[1]"}, code: exitError, out: "a type expression is required"},
		"Bad type":        {args: []string{"-t", "list["}, code: exitError, out: "Error:"},
		"Empty stdin":     {args: []string{"-t", "int"}, code: exitError, out: "no value"},
		"Recursive alias": {args: []string{"-t", "any", "&a [*a]"}, code: exitError, out: "contains itself"},
		"Float repr":      {args: []string{"-t", "int", "5.0"}, code: exitMismatch, out: "(from value: 5.0)"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a, out := testApp(tc.stdin)
			assert.Equal(t, tc.code, a.run(append([]string{"check"}, tc.args...)), out.String())
			assert.Contains(t, out.String(), tc.out)
		})
	}
}

func TestCall(t *testing.T) {
	path := writeSchema(t)
	tests := map[string]struct {
		args []string
		code int
		out  string
	}{
		"Passes":          {args: []string{"-a", "[world]", "-r", "hello"}, code: exitOK, out: `ok: "hello"`},
		"Keyword":         {args: []string{"-k", "{foo: world, bar: 2}", "-r", "hi"}, code: exitOK, out: "ok"},
		"Bad argument":    {args: []string{"-a", "[world, x]", "-r", "hi"}, code: exitMismatch, out: `argument "bar" type mismatch`},
		"Bad return":      {args: []string{"-a", "[world]", "-r", "5"}, code: exitMismatch, out: "return value type mismatch"},
		"Missing return":  {args: []string{"-a", "[world]"}, code: exitMismatch, out: "return value type mismatch"},
		"Binding":         {args: []string{"-a", "[a, 1, 2]", "-r", "hi"}, code: exitMismatch, out: "too many positional arguments"},
		"Verbose":         {args: []string{"-v", "-a", "[1]", "-r", "hi"}, code: exitMismatch, out: "Type mismatch"},
		"Unknown name":    {args: []string{"-n", "nope"}, code: exitError, out: "expected one of: greet"},
		"Bad args":        {args: []string{"-a", "{a: 1}"}, code: exitError, out: "args:"},
		"Bad kwargs":      {args: []string{"-k", "[1]"}, code: exitError, out: "kwargs:"},
		"Missing schema":  {args: []string{"-s", ""}, code: exitError, out: "schema file and signature name are required"},
		"Schema not read": {args: []string{"-s", filepath.Join(t.TempDir(), "missing.yaml")}, code: exitError, out: "Error:"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a, out := testApp("")
			args := append([]string{"call", "-s", path, "-n", "greet"}, tc.args...)
			assert.Equal(t, tc.code, a.run(args), out.String())
			assert.Contains(t, out.String(), tc.out)
		})
	}
}

func TestInteractive(t *testing.T) {
	a, out := testApp(strings.Join([]string{
		"list[int]",
		"[1, 2]",
		"",
		"[1, x]",
		"list[",
		"int",
		"not: [valid",
		"str",
		"quit",
	}, "\n"))
	assert.Equal(t, exitOK, a.run([]string{"interactive"}))
	text := out.String()
	assert.Contains(t, text, "ok: []int")
	assert.Contains(t, text, "deepest layer first")
	assert.Equal(t, 2, strings.Count(text, "Error:"), text)
	assert.Equal(t, 1, strings.Count(text, "ok: "), text)

	a, out = testApp("int\n5")
	assert.Equal(t, exitOK, a.run([]string{"i"}), "EOF ends the session")
	assert.Contains(t, out.String(), "ok: int")
}
