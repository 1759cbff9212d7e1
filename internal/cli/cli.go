package cli

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	HelpPatterns      = []string{"--help", "-h", "help"} // HelpPatterns trigger the output of usage information from the [CommandSet].

	keyCleansePattern = regexp.MustCompile(`\s`)
)

// CommandFunc is a function that may be executed within a [Command].
type CommandFunc = func(flags *flag.FlagSet, printer *Printer) error

// Command is an executable function in a CLI, linked to a [CommandSet].
type Command struct {
	flags      *flag.FlagSet
	exec       CommandFunc
	key        string
	path       string
	shortUsage string
	usage      string
	printer    *Printer
	aliases    []string
}

func cleanseKey(key string) string {
	return keyCleansePattern.ReplaceAllString(strings.ToLower(key), "")
}

func newCommand(key, parent, shortUsage string, printer *Printer) *Command {
	fs := flag.NewFlagSet(key, flag.ContinueOnError)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.SetInterspersed(false)
	fs.SetOutput(printer)
	cmd := &Command{
		flags:      fs,
		key:        key,
		path:       strings.TrimSpace(parent + " " + key),
		shortUsage: shortUsage,
		printer:    printer,
	}
	fs.Usage = cmd.PrintUsage
	cmd.exec = func(_ *flag.FlagSet, _ *Printer) error {
		cmd.PrintUsage()
		return nil
	}
	return cmd
}

// Does specifies the [CommandFunc] that should be executed by this [Command].
func (c *Command) Does(commandFunc CommandFunc) *Command {
	if commandFunc == nil {
		return c
	}
	c.exec = commandFunc
	return c
}

// Key returns the normalized key of this [Command].
func (c *Command) Key() string {
	return c.key
}

// Flags returns the [flag.FlagSet] for this [Command].
func (c *Command) Flags() *flag.FlagSet {
	return c.flags
}

// Usage allows specifying a longer description of the [Command], shown when a help flag is passed.
// The format should describe arguments following the command path, like "[FLAGS] VALUE".
//
// The short description and flag usages will be included with this description.
func (c *Command) Usage(format string, args ...any) *Command {
	c.usage = fmt.Sprintf(format, args...)
	return c
}

// PrintUsage prints the usage information for this [Command] to its [Printer].
func (c *Command) PrintUsage() {
	var buf strings.Builder
	buf.WriteString(c.shortUsage + "\n")
	if len(c.usage) > 0 {
		buf.WriteString("\nUSAGE:\n" + c.path + " " + strings.TrimSuffix(c.usage, "\n") + "\n")
	}
	buf.WriteString("\nFLAGS:\n")
	buf.WriteString(c.flags.FlagUsages())
	c.printer.Print(buf.String())
}

// Exec parses flags from args and executes the command.
// If the command returns a [UsageError], then usage information is printed before the error is returned.
func (c *Command) Exec(args []string) error {
	if err := c.flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &UsageError{Command: c.path, wrapped: err}
	}
	if MustGet(c.flags.GetBool("help")) {
		c.PrintUsage()
		return nil
	}
	err := c.exec(c.flags, c.printer)
	var usage *UsageError
	if errors.As(err, &usage) {
		if len(usage.Command) == 0 {
			usage.Command = c.path
		}
		c.printer.Println(err)
		c.PrintUsage()
	}
	return err
}

// CommandSet is a group of [Command].
type CommandSet struct {
	name     string
	commands map[string]*Command
	aliases  map[string]*Command
	printer  *Printer
}

// NewCommandSet is used to set up the root of a CLI's command structure.
// The name is the command used to invoke the CLI, and is used to populate usage information.
// A nil printer will use [NewPrinter] to print to STDERR.
func NewCommandSet(name string, printer *Printer) *CommandSet {
	if printer == nil {
		printer = NewPrinter(nil)
	}
	return &CommandSet{name: name, printer: printer}
}

// AddCommand adds a sub-command to this [CommandSet].
// The key parameter will be cleansed to remove spaces, and normalize to lower-case.
// Aliases may be added as a way to support shorter variants of the same [Command].
func (s *CommandSet) AddCommand(key, shortUsage string, aliases ...string) *Command {
	key = cleanseKey(key)
	cmd := newCommand(key, s.name, shortUsage, s.printer)
	if s.commands == nil {
		s.commands = map[string]*Command{}
	}
	s.commands[key] = cmd
	for _, alias := range aliases {
		alias = cleanseKey(alias)
		if len(alias) == 0 {
			continue
		}
		if s.aliases == nil {
			s.aliases = map[string]*Command{}
		}
		s.aliases[alias] = cmd
		cmd.aliases = append(cmd.aliases, alias)
	}
	slices.Sort(cmd.aliases)
	return cmd
}

// Printer returns the [Printer] shared by this [CommandSet] and its commands.
func (s *CommandSet) Printer() *Printer {
	return s.printer
}

// Lookup finds a [Command] by key or alias.
func (s *CommandSet) Lookup(key string) (*Command, bool) {
	key = strings.ToLower(key)
	if cmd, ok := s.commands[key]; ok {
		return cmd, true
	}
	cmd, ok := s.aliases[key]
	return cmd, ok
}

// Exec executes this [CommandSet].
// It's expected that the first argument is the key or alias of a sub-command.
func (s *CommandSet) Exec(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no arguments", ErrUnknownCommand)
	}
	cmd, ok := s.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return cmd.Exec(args[1:])
}

// RespondUsage will print usage information if args is empty, or if the first argument is one of the [HelpPatterns].
// If usage information was printed, then true will be returned.
func (s *CommandSet) RespondUsage(args []string, format string, vals ...any) bool {
	if len(args) > 0 && !slices.Contains(HelpPatterns, args[0]) {
		return false
	}
	text := fmt.Sprintf(format, vals...)
	if len(text) > 0 {
		text = strings.TrimSuffix("\n\n"+text, "\n")
	}
	s.printer.Printf("%s%s\n\nCOMMANDS:\n%s", s.name, text, s.CommandUsages())
	return true
}

// CommandUsages returns a string including the usage information for sub-commands in this [CommandSet].
//
// The sub-command keys will be sorted alphabetically before output.
func (s *CommandSet) CommandUsages() string {
	var (
		buf    strings.Builder
		keys   = make([]string, 0, len(s.commands))
		labels = make(map[string]string, len(s.commands))
		maxLen int
	)
	for key, cmd := range s.commands {
		keys = append(keys, key)
		labels[key] = strings.Join(append([]string{key}, cmd.aliases...), ", ")
		maxLen = max(maxLen, len(labels[key]))
	}
	slices.Sort(keys)
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for _, key := range keys {
		buf.WriteString(fmt.Sprintf(fmtStr, labels[key], s.commands[key].shortUsage))
	}
	return buf.String()
}
