package cli

import (
	"fmt"
	"io"
	"os"
)

// Printer writes user-visible output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a [Printer] writing to out, or to STDERR if out is nil.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stderr
	}
	return &Printer{out: out}
}

// Redirect changes where the [Printer] writes.
func (p *Printer) Redirect(writer io.Writer) {
	p.out = writer
}

// Write allows a [Printer] to be used as an [io.Writer], such as a log handler's output.
func (p *Printer) Write(data []byte) (int, error) {
	return p.out.Write(data)
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p.out, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}
