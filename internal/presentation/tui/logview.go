package tui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func output(w io.Writer, color bool) *termenv.Output {
	if !color {
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return termenv.NewOutput(w, termenv.WithProfile(termenv.ColorProfile()))
}

var severityColors = map[domain.Severity]string{
	domain.SeverityInfo:    "#94a3b8",
	domain.SeveritySuccess: "#4ade80",
	domain.SeverityWarning: "#facc15",
	domain.SeverityError:   "#f87171",
}

// LogPrinter renders engine log events as timestamped, severity-colored lines.
type LogPrinter struct {
	mu  sync.Mutex
	w   io.Writer
	out *termenv.Output
}

// NewLogPrinter writes to w, using colors when color is set.
func NewLogPrinter(w io.Writer, color bool) *LogPrinter {
	return &LogPrinter{w: w, out: output(w, color)}
}

// Handle prints log events and ignores the rest.
func (p *LogPrinter) Handle(ev domain.Event) {
	if ev.Type != domain.EventLog || ev.Log == nil {
		return
	}
	p.Print(*ev.Log)
}

// Print writes one log line.
func (p *LogPrinter) Print(l domain.LogEvent) {
	tag := fmt.Sprintf("%-7s", l.Severity)
	line := fmt.Sprintf("%s %s %s",
		p.out.String(l.Timestamp.Format("15:04:05.000")).Faint(),
		p.out.String(tag).Foreground(p.out.Color(severityColors[l.Severity])).Bold(),
		l.Message,
	)

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, line)
}
