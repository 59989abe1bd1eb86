package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/oops"

	"github.com/Cyclone1070/boxed/internal/config"
	"github.com/Cyclone1070/boxed/internal/conversation"
	"github.com/Cyclone1070/boxed/internal/provider"
	"github.com/Cyclone1070/boxed/internal/ui"
	"github.com/Cyclone1070/boxed/internal/ui/services"
	"github.com/Cyclone1070/boxed/internal/workflow"
	"github.com/Cyclone1070/boxed/internal/workflow/loop"
)

// runSingle makes one tool-less generation and prints its text.
func runSingle(ctx context.Context, a *app, cfg *config.Config, opts *options, logger *slog.Logger, prompt string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := buildProvider(ctx, a, cfg, opts)
	if err != nil {
		return err
	}

	transcript := conversation.New()
	transcript.Append(conversation.UserTurn{Text: prompt})

	logger.Debug("single generation", "provider", cfg.Provider.Name, "model", p.Model())
	resp, err := p.Generate(ctx, &provider.Request{Transcript: transcript.Turns()})
	if err != nil {
		return fmt.Errorf("provider.Generate: %w", err)
	}
	transcript.Append(conversation.AssistantTurn{Text: resp.Text})

	if opts.verbose {
		fmt.Fprintf(a.stderr, "User prompt: %s\n", prompt)
	}
	printAnswer(a, opts, resp.Text)
	if opts.verbose {
		fmt.Fprintf(a.stderr, "Prompt tokens: %d\nResponse tokens: %d\n", resp.Usage.PromptTokens, resp.Usage.ResponseTokens)
	}

	return writeTranscript(opts.transcript, transcript)
}

// runAgent drives the agent loop and renders its progress until it terminates.
func runAgent(ctx context.Context, a *app, cfg *config.Config, opts *options, logger *slog.Logger, prompt string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tm, root, err := buildTools(cfg, opts.root, logger)
	if err != nil {
		return err
	}
	p, err := buildProvider(ctx, a, cfg, opts)
	if err != nil {
		return err
	}
	logger.Debug("starting agent", "root", root, "provider", cfg.Provider.Name, "model", p.Model(), "max_iterations", cfg.Agent.MaxIterations)

	events := make(chan workflow.Event, 64)
	l := loop.NewLoop(p, tm, events, loop.Options{
		MaxIterations:     cfg.Agent.MaxIterations,
		SystemInstruction: cfg.Agent.SystemInstruction,
		Logger:            logger,
	})

	var (
		outcome *loop.Outcome
		runErr  error
	)
	go func() {
		defer close(events)
		outcome, runErr = l.Run(ctx, prompt)
	}()

	if opts.plain || opts.verbose || !a.isTerminal() {
		ui.NewPrinter(a.stderr, opts.verbose).Consume(events)
	} else {
		if err := ui.NewUI(events, stop, p.Model(), a.stderr, nil).Run(); err != nil {
			logger.Warn("progress view failed, falling back to plain output", "error", err)
		}
		ui.NewPrinter(a.stderr, false).Consume(events)
	}

	// events is closed, so outcome and runErr are set.
	if err := writeTranscript(opts.transcript, outcome.Transcript); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	printAnswer(a, opts, outcome.FinalText)
	return nil
}

func printAnswer(a *app, opts *options, text string) {
	if !opts.plain && a.isTerminal() {
		text = services.RenderMarkdown(text, 0, a.renderer)
	}
	fmt.Fprintln(a.stdout, text)
}

func writeTranscript(path string, t *conversation.Transcript) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return oops.Code(CodeTranscriptSave).Wrapf(err, "encoding transcript")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return oops.Code(CodeTranscriptSave).With("path", path).Wrapf(err, "writing transcript")
	}
	return nil
}
