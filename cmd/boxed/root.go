package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Cyclone1070/boxed/internal/config"
	"github.com/Cyclone1070/boxed/internal/ui/services"
)

// options holds flag values that are not config keys.
type options struct {
	root       string
	configPath string
	secrets    string
	transcript string
	verbose    bool
	agent      bool
	plain      bool
}

// app carries the process-level collaborators so tests can replace them.
type app struct {
	stdout      io.Writer
	stderr      io.Writer
	getenv      func(string) string
	isTerminal  func() bool
	newProvider providerFactory
	renderer    services.MarkdownRenderer
}

func defaultApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
		},
		newProvider: dialProvider,
		renderer:    services.GlamourRenderer{},
	}
}

// NewRootCmd creates the boxed command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultApp())
}

func newRootCmd(a *app) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "boxed [flags] <prompt...>",
		Short: "Run a language model agent confined to one working directory",
		Long: "boxed sends a prompt to a language model. With --agent the model may list, read and write\n" +
			"files and run scripts, but only inside the working directory given by --root.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				return oops.Code(CodeCLIFlags).Errorf("prompt must not be empty")
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			logger := newLogger(a.stderr, opts.verbose)

			if opts.agent {
				return runAgent(cmd.Context(), a, cfg, opts, logger, prompt)
			}
			return runSingle(cmd.Context(), a, cfg, opts, logger, prompt)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging, token usage and per-tool lines")
	flags.BoolVarP(&opts.agent, "agent", "a", false, "agent mode: let the model call tools in a loop")
	flags.Int("iter-limit", config.DefaultConfig().Agent.MaxIterations, "maximum model invocations in agent mode")
	flags.StringVar(&opts.root, "root", ".", "working directory the tools are confined to")
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to config file")
	flags.String("provider", "", "model backend: gemini or openai")
	flags.String("model", "", "model name")
	flags.StringVar(&opts.secrets, "secrets", "secrets/secrets.env", "dotenv file holding API keys")
	flags.BoolVar(&opts.plain, "plain", false, "plain line output instead of the progress view")
	flags.StringVar(&opts.transcript, "transcript", "", "write the run transcript as JSON to this file")

	return cmd
}

// flagKeys maps flags onto the config keys they override.
var flagKeys = map[string]string{
	"iter-limit": "agent.max_iterations",
	"provider":   "provider.name",
	"model":      "provider.model",
}

// loadConfig merges defaults, file, environment and changed flags (flag > env > file > defaults).
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if cmd.Flags().Changed("iter-limit") {
		n, err := cmd.Flags().GetInt("iter-limit")
		if err != nil {
			return nil, oops.Code(CodeCLIFlags).Wrapf(err, "reading --iter-limit")
		}
		if n <= 0 {
			return nil, oops.Code(CodeCLIFlags).With("iter-limit", n).Errorf("--iter-limit must be a positive integer, got %d", n)
		}
	}

	loader := config.NewLoader()
	v := loader.Viper()
	for flag, key := range flagKeys {
		// Unchanged flags must not shadow file or env values.
		if !cmd.Flags().Changed(flag) {
			continue
		}
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, oops.Code(CodeCLISetup).Wrapf(err, "binding --%s flag", flag)
		}
	}

	cfg, err := loader.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
