package ui

import (
	"fmt"
	"io"

	"github.com/Cyclone1070/boxed/internal/workflow"
)

// Printer writes events as plain lines. It backs --plain and non-terminal output.
type Printer struct {
	out     io.Writer
	verbose bool
}

func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{out: out, verbose: verbose}
}

// Consume prints events until the channel is closed.
func (p *Printer) Consume(events <-chan workflow.Event) {
	for e := range events {
		p.Print(e)
	}
}

// Print writes one event. Thinking and usage lines only appear in verbose mode.
func (p *Printer) Print(e workflow.Event) {
	switch ev := e.(type) {
	case workflow.ThinkingEvent:
		if p.verbose {
			fmt.Fprintf(p.out, "[iteration %d] thinking\n", ev.Iteration)
		}
	case workflow.UsageEvent:
		if p.verbose {
			fmt.Fprintf(p.out, "Prompt tokens: %d\nResponse tokens: %d\n", ev.PromptTokens, ev.ResponseTokens)
		}
	case workflow.ToolStartEvent:
		if p.verbose {
			fmt.Fprintf(p.out, "→ %s %s\n", ev.ToolName, ev.RequestDisplay)
		}
	case workflow.ToolEndEvent:
		if ev.OK {
			fmt.Fprintf(p.out, "✔ %s\n", ev.ToolName)
		} else {
			fmt.Fprintf(p.out, "✘ %s [%s] %s\n", ev.ToolName, ev.Kind, ev.Summary)
		}
	case workflow.DoneEvent:
		if p.verbose {
			fmt.Fprintf(p.out, "done: %s after %d iteration(s)\n", ev.Reason, ev.Iterations)
		}
	}
}
