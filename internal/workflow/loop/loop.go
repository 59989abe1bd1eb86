package loop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Cyclone1070/boxed/internal/conversation"
	"github.com/Cyclone1070/boxed/internal/provider"
	"github.com/Cyclone1070/boxed/internal/tool"
	"github.com/Cyclone1070/boxed/internal/workflow"
)

// Options configures a Loop.
type Options struct {
	MaxIterations     int
	SystemInstruction string
	Logger            *slog.Logger // nil means slog.Default()
}

type Loop struct {
	provider llmProvider
	tools    toolManager
	events   chan<- workflow.Event
	opts     Options
	logger   *slog.Logger
	state    State
}

// NewLoop creates a loop. events may be nil; otherwise the caller must drain it.
func NewLoop(provider llmProvider, tools toolManager, events chan<- workflow.Event, opts Options) *Loop {
	if provider == nil {
		panic("provider is required")
	}
	if tools == nil {
		panic("tools is required")
	}
	if opts.MaxIterations <= 0 {
		panic("max iterations must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		provider: provider,
		tools:    tools,
		events:   events,
		opts:     opts,
		logger:   logger,
	}
}

// State returns the phase of the most recent run.
func (l *Loop) State() State {
	return l.state
}

// Run drives one conversation from prompt to termination.
// The returned Outcome is never nil. The error is non-nil for model_error, wrapping the
// provider error, and for iteration_cap, wrapping ErrIterationCap.
func (l *Loop) Run(ctx context.Context, prompt string) (*Outcome, error) {
	transcript := conversation.New()
	transcript.Append(conversation.UserTurn{Text: prompt})

	out := &Outcome{Transcript: transcript}
	defer func() {
		l.state = StateTerminated
		l.logger.Info("agent loop terminated", "reason", out.Reason, "iterations", out.Iterations)
		l.emit(workflow.DoneEvent{Reason: string(out.Reason), Iterations: out.Iterations})
	}()

	decls := l.tools.Declarations()

	for {
		l.state = StateAwaitingModel
		if out.Iterations == l.opts.MaxIterations {
			out.Reason = ReasonIterationCap
			out.Err = fmt.Errorf("run cut off after %d iterations: %w", out.Iterations, ErrIterationCap)
			return out, out.Err
		}

		l.emit(workflow.ThinkingEvent{Iteration: out.Iterations + 1})
		l.logger.Debug("invoking model", "iteration", out.Iterations+1, "turns", transcript.Len())

		resp, err := l.generate(ctx, transcript, decls)
		if err != nil {
			out.Reason = ReasonModelError
			out.Err = fmt.Errorf("provider.Generate: %w", err)
			return out, out.Err
		}

		transcript.Append(conversation.AssistantTurn{Text: resp.Text, ToolCalls: resp.ToolCalls})
		out.Iterations++
		out.FinalText = resp.Text

		l.emit(workflow.UsageEvent{PromptTokens: resp.Usage.PromptTokens, ResponseTokens: resp.Usage.ResponseTokens})
		if resp.Text != "" {
			l.emit(workflow.TextEvent{Text: resp.Text})
		}

		if len(resp.ToolCalls) == 0 {
			out.Reason = ReasonNoToolCalls
			return out, nil
		}

		l.state = StateDispatchingTools
		for _, call := range resp.ToolCalls {
			res := l.tools.Execute(ctx, call, l.events)
			transcript.Append(conversation.ToolTurn{Call: call, Result: res})
		}
	}
}

func (l *Loop) generate(ctx context.Context, transcript *conversation.Transcript, decls []tool.Declaration) (*provider.Response, error) {
	// A cancelled context ends the run like any other transport failure.
	if err := ctx.Err(); err != nil {
		return nil, provider.FromTransport(err)
	}
	return l.provider.Generate(ctx, &provider.Request{
		Transcript:        transcript.Turns(),
		Tools:             decls,
		SystemInstruction: l.opts.SystemInstruction,
	})
}

func (l *Loop) emit(e workflow.Event) {
	if l.events != nil {
		l.events <- e
	}
}
