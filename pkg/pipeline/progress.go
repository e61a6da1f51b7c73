package pipeline

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Progress prints one coloured line per pipeline stage. It is purely
// presentational; the same events also go to the structured log.
type Progress struct {
	w     io.Writer
	stage *color.Color
	done  *color.Color
	warn  *color.Color
}

func NewProgress(w io.Writer, noColor bool) *Progress {
	p := &Progress{
		w:     w,
		stage: color.New(color.FgCyan),
		done:  color.New(color.FgGreen, color.Bold),
		warn:  color.New(color.FgYellow),
	}
	if noColor {
		for _, c := range []*color.Color{p.stage, p.done, p.warn} {
			c.DisableColor()
		}
	}
	return p
}

// Discard returns a Progress that prints nothing.
func Discard() *Progress {
	return NewProgress(io.Discard, true)
}

func (p *Progress) Stage(format string, args ...any) {
	p.stage.Fprintf(p.w, "==> "+format+"\n", args...)
}

func (p *Progress) Done(format string, args ...any) {
	p.done.Fprintf(p.w, "✔ "+format+"\n", args...)
}

func (p *Progress) Warn(format string, args ...any) {
	p.warn.Fprintf(p.w, "! "+format+"\n", args...)
}

// Println writes an uncoloured line, used for tables.
func (p *Progress) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *Progress) Writer() io.Writer {
	return p.w
}
