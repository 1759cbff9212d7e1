package cli

import (
	"bufio"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"
)

// QuitCommands is a slice of strings that should escape from an interactive session.
var QuitCommands = []string{"quit", "exit", "x"}

// Prompter reads lines of input after displaying a prompt.
// Output written to a Prompter is displayed alongside the prompts.
type Prompter interface {
	io.Writer
	// Prompt displays the prompt and reads a line, without the line ending.
	// [io.EOF] is returned when input is exhausted.
	Prompt(prompt string) (string, error)
}

// IsQuit reports whether line is one of the [QuitCommands].
func IsQuit(line string) bool {
	return slices.Contains(QuitCommands, strings.ToLower(strings.TrimSpace(line)))
}

// IsTerminal reports whether r is a file attached to a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewPrompter creates a [Prompter] reading from in and writing to out.
//
// If in is a terminal, then it's put into raw mode and read with [term.Terminal].
// The returned restore function must be called to return the terminal to its previous state.
func NewPrompter(in io.Reader, out io.Writer) (Prompter, func() error, error) {
	if !IsTerminal(in) {
		return &scanPrompter{scanner: bufio.NewScanner(in), out: out}, func() error { return nil }, nil
	}
	fd := int(in.(*os.File).Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, err
	}
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "")
	return &termPrompter{t: t}, func() error { return term.Restore(fd, state) }, nil
}

type termPrompter struct {
	t *term.Terminal
}

func (p *termPrompter) Write(data []byte) (int, error) {
	return p.t.Write(data)
}

func (p *termPrompter) Prompt(prompt string) (string, error) {
	p.t.SetPrompt(prompt)
	return p.t.ReadLine()
}

type scanPrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p *scanPrompter) Write(data []byte) (int, error) {
	return p.out.Write(data)
}

func (p *scanPrompter) Prompt(prompt string) (string, error) {
	if _, err := io.WriteString(p.out, prompt); err != nil {
		return "", err
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}
