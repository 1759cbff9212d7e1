package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saylorsolutions/forcetypes"
	"github.com/saylorsolutions/forcetypes/internal/cli"
	"github.com/saylorsolutions/forcetypes/internal/env"
	"github.com/saylorsolutions/forcetypes/schema"
	"github.com/saylorsolutions/forcetypes/typex"
	flag "github.com/spf13/pflag"
)

func (a *app) callCommand(set *cli.CommandSet) {
	cmd := set.AddCommand("call", "Validates a call against a signature from a schema file")
	cmd.Usage("-s FILE -n NAME [FLAGS]\n\nThe call's arguments are checked, then RESULT is checked as the return value.")
	flags := cmd.Flags()
	flags.StringP("schema", "s", "", "Sets the schema file to load signatures from")
	flags.StringP("name", "n", "", "Sets the name of the signature to call")
	flags.StringP("args", "a", "", "Sets the positional arguments as a YAML sequence")
	flags.StringP("kwargs", "k", "", "Sets the keyword arguments as a YAML mapping")
	flags.StringP("result", "r", "", "Sets the YAML value returned by the call")
	flags.IntP("depth", "d", env.Int(env.MaxDepth, typex.DefaultMaxDepth), "Sets the container nesting depth to check, where a negative value is unlimited")
	flags.BoolP("verbose", "v", false, "Logs details of each failed check")
	cmd.Does(func(flags *flag.FlagSet, p *cli.Printer) error {
		var (
			path = cli.MustGet(flags.GetString("schema"))
			name = cli.MustGet(flags.GetString("name"))
		)
		if len(path) == 0 || len(name) == 0 {
			return cli.NewUsageError("both a schema file and signature name are required")
		}
		sigs, err := schema.LoadFile(path, nil)
		if err != nil {
			return err
		}
		sig, ok := sigs.Lookup(name)
		if !ok {
			return fmt.Errorf("no signature named '%s' in %s, expected one of: %s", name, path, strings.Join(sigs.Names(), ", "))
		}
		args, err := schema.ParseArgs(cli.MustGet(flags.GetString("args")))
		if err != nil {
			return fmt.Errorf("args: %w", err)
		}
		kwargs, err := schema.ParseKwargs(cli.MustGet(flags.GetString("kwargs")))
		if err != nil {
			return fmt.Errorf("kwargs: %w", err)
		}
		var result any
		if src := cli.MustGet(flags.GetString("result")); len(strings.TrimSpace(src)) > 0 {
			if result, err = schema.ParseValue(src); err != nil {
				return fmt.Errorf("result: %w", err)
			}
		}

		fn, err := forcetypes.Wrap(sig, func(*forcetypes.BoundCall) (any, error) {
			return result, nil
		},
			forcetypes.WithMatcher(matcherFromFlags(flags)),
			forcetypes.WithLogger(callLogger(p, cli.MustGet(flags.GetBool("verbose")))),
		)
		if err != nil {
			return err
		}
		out, err := fn.Call(args, kwargs)
		if err != nil {
			if errors.Is(err, forcetypes.ErrTypeMismatch) || errors.Is(err, forcetypes.ErrBinding) {
				p.Println(err)
				return fmt.Errorf("%w: %w", errMismatch, err)
			}
			return err
		}
		p.Printf("ok: %s\n", typex.Repr(out))
		return nil
	})
}

func callLogger(p *cli.Printer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(p, &slog.HandlerOptions{Level: level}))
}
