package ui

import (
	"fmt"
	"io"
)

// Progress reports numbered steps of a sequential operation. A nil
// *Progress discards everything.
type Progress struct {
	out   io.Writer
	total int
	done  int
}

// NewProgress creates a progress reporter for n steps.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Done marks one step as completed and prints it.
func (p *Progress) Done(format string, args ...any) {
	if p == nil {
		return
	}
	p.done++
	counter := Faint.Render(fmt.Sprintf("[%d/%d]", p.done, p.total))
	_, _ = fmt.Fprintf(p.out, "%s %s\n", counter, fmt.Sprintf(format, args...))
}

// Log prints an informational message between steps.
func (p *Progress) Log(format string, args ...any) {
	if p == nil {
		return
	}
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
