package main

import (
	"errors"
	"io"
	"strings"

	"github.com/saylorsolutions/forcetypes/internal/cli"
	"github.com/saylorsolutions/forcetypes/schema"
	flag "github.com/spf13/pflag"
)

func (a *app) interactiveCommand(set *cli.CommandSet) {
	cmd := set.AddCommand("interactive", "Checks values against type expressions at a prompt", "i")
	cmd.Usage("[FLAGS]\n\nEnter a type expression, then a value to check against it. An empty type reuses the last one.\nEnter %s to exit.", strings.Join(cli.QuitCommands, " or "))
	typeFlags(cmd.Flags())
	cmd.Does(func(flags *flag.FlagSet, p *cli.Printer) error {
		prompter, restore, err := cli.NewPrompter(a.in, p)
		if err != nil {
			return err
		}
		defer func() {
			_ = restore()
		}()
		return a.session(prompter, cli.NewPrinter(prompter), flags)
	})
}

func (a *app) session(prompter cli.Prompter, p *cli.Printer, flags *flag.FlagSet) error {
	var (
		parse   = parserFromFlags(flags)
		matcher = matcherFromFlags(flags)
		typeSrc string
	)
	for {
		line, err := prompter.Prompt("type> ")
		if err != nil {
			return ignoreEOF(err)
		}
		if cli.IsQuit(line) {
			return nil
		}
		if len(strings.TrimSpace(line)) > 0 {
			typeSrc = line
		}
		if len(typeSrc) == 0 {
			continue
		}
		expr, err := parse(typeSrc)
		if err != nil {
			p.Println("Error:", err)
			typeSrc = ""
			continue
		}

		line, err = prompter.Prompt("value> ")
		if err != nil {
			return ignoreEOF(err)
		}
		if cli.IsQuit(line) {
			return nil
		}
		val, err := schema.ParseValue(line)
		if err != nil {
			p.Println("Error:", err)
			continue
		}
		if trace := matcher.Check(val, expr); trace != nil {
			printTrace(p, trace)
			continue
		}
		p.Printf("ok: %s\n", expr)
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
