package main

import (
	"strings"

	"github.com/saylorsolutions/forcetypes/internal/cli"
	"github.com/saylorsolutions/forcetypes/schema"
	flag "github.com/spf13/pflag"
)

func (a *app) checkCommand(set *cli.CommandSet) {
	cmd := set.AddCommand("check", "Checks a YAML value against a type expression", "c")
	cmd.Usage("-t EXPR [FLAGS] [VALUE]\n\nThe VALUE is read from STDIN if not given as an argument.")
	flags := cmd.Flags()
	flags.StringP("type", "t", "", "Sets the type expression to check against")
	typeFlags(flags)
	cmd.Does(func(flags *flag.FlagSet, p *cli.Printer) error {
		src := cli.MustGet(flags.GetString("type"))
		if len(strings.TrimSpace(src)) == 0 {
			return cli.NewUsageError("a type expression is required")
		}
		expr, err := parserFromFlags(flags)(src)
		if err != nil {
			return err
		}
		val, err := a.readValue(flags.Args())
		if err != nil {
			return err
		}
		if trace := matcherFromFlags(flags).Check(val, expr); trace != nil {
			printTrace(p, trace)
			return errMismatch
		}
		p.Println("ok")
		return nil
	})
}

func (a *app) readValue(args []string) (any, error) {
	if len(args) > 0 {
		return schema.ParseValue(strings.Join(args, " "))
	}
	if cli.IsTerminal(a.in) {
		return nil, cli.NewUsageError("no value given, and STDIN is a terminal")
	}
	return schema.DecodeValue(a.in)
}
