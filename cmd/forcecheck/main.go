// Command forcecheck checks YAML values against type expressions, and validates calls against signatures loaded from a schema file.
//
//	forcecheck check -t 'list[int]' '[1, 2, 3]'
//	forcecheck call -s signatures.yaml -n greet -a '[world]' -r 'hello'
//	forcecheck interactive
//
// The exit code is 0 when a check passes, 1 when a value doesn't match, and 2 for any other error.
package main

import (
	"errors"
	"io"
	"os"

	"github.com/saylorsolutions/forcetypes/hcltype"
	"github.com/saylorsolutions/forcetypes/internal/cli"
	"github.com/saylorsolutions/forcetypes/internal/env"
	"github.com/saylorsolutions/forcetypes/typex"
	flag "github.com/spf13/pflag"
)

const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

var errMismatch = errors.New("type mismatch")

type app struct {
	in      io.Reader
	printer *cli.Printer
}

func main() {
	a := &app{in: os.Stdin, printer: cli.NewPrinter(os.Stderr)}
	os.Exit(a.run(os.Args[1:]))
}

func (a *app) commands() *cli.CommandSet {
	set := cli.NewCommandSet("forcecheck", a.printer)
	a.checkCommand(set)
	a.callCommand(set)
	a.interactiveCommand(set)
	return set
}

func (a *app) run(args []string) int {
	set := a.commands()
	if set.RespondUsage(args, "Checks values against type expressions and signatures.\nValues and arguments are given as YAML.") {
		return exitOK
	}
	err := set.Exec(args)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errMismatch):
		return exitMismatch
	case errors.Is(err, &cli.UsageError{}):
		return exitError
	default:
		a.printer.Println("Error:", err)
		return exitError
	}
}

// typeFlags adds the flags shared by commands that parse type expressions.
func typeFlags(flags *flag.FlagSet) {
	flags.Bool("hcl", false, "Parses type expressions as HCL type constraints")
	flags.IntP("depth", "d", env.Int(env.MaxDepth, typex.DefaultMaxDepth), "Sets the container nesting depth to check, where a negative value is unlimited")
}

func matcherFromFlags(flags *flag.FlagSet) *typex.Matcher {
	return typex.NewMatcher(cli.MustGet(flags.GetInt("depth")))
}

func parserFromFlags(flags *flag.FlagSet) func(string) (typex.Expr, error) {
	if cli.MustGet(flags.GetBool("hcl")) {
		return hcltype.Parse
	}
	return typex.Parse
}

func printTrace(p *cli.Printer, trace typex.Trace) {
	p.Println("type mismatch, deepest layer first:")
	for _, line := range trace.Lines() {
		p.Println("    " + line)
	}
}
