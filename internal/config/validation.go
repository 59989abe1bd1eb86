package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
)

var knownProviders = map[string]bool{"gemini": true, "openai": true}

// Validate checks config values for correctness.
// It collects every problem rather than stopping at the first one.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	// Agent validation
	if c.Agent.MaxIterations < 1 {
		add("agent.max_iterations must be >= 1")
	}

	// Provider validation
	if !knownProviders[c.Provider.Name] {
		add("provider.name must be one of [gemini, openai], got %q", c.Provider.Name)
	}
	if c.Provider.Model == "" {
		add("provider.model must not be empty")
	}

	// Tools validation
	if c.Tools.MaxReadChars < 1 {
		add("tools.max_read_chars must be >= 1")
	}
	if c.Tools.MaxFileSize < 1 {
		add("tools.max_file_size must be >= 1")
	}
	if c.Tools.ScriptTimeoutSeconds < 1 {
		add("tools.script_timeout_seconds must be >= 1")
	}
	if c.Tools.ScriptGracefulShutdownMs < 1 {
		add("tools.script_graceful_shutdown_ms must be >= 1")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		add("tools.max_command_output_size must be >= 1")
	}

	// Tools validation - interpreters
	seen := map[string]bool{}
	for i, ic := range c.Tools.ScriptInterpreters {
		ext := strings.ToLower(ic.Extension)
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			add("tools.script_interpreters[%d].extension must look like \".py\", got %q", i, ic.Extension)
		}
		if len(ic.Command) == 0 || ic.Command[0] == "" {
			add("tools.script_interpreters[%d].command must not be empty", i)
		}
		if seen[ext] {
			add("tools.script_interpreters[%d].extension %q is duplicated", i, ic.Extension)
		}
		seen[ext] = true
	}

	if len(errs) > 0 {
		return oops.Code(CodeConfigValidate).Wrapf(errors.Join(errs...), "invalid configuration")
	}
	return nil
}
