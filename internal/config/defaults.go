package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via config file, environment or flags.
type Config struct {
	Agent    AgentConfig    `mapstructure:"agent"`
	Provider ProviderConfig `mapstructure:"provider"`
	Tools    ToolsConfig    `mapstructure:"tools"`
}

type AgentConfig struct {
	MaxIterations     int    `mapstructure:"max_iterations"`     // Default: 20
	SystemInstruction string `mapstructure:"system_instruction"` // Default: DefaultSystemInstruction
}

type ProviderConfig struct {
	Name    string `mapstructure:"name"`     // Default: "gemini"
	Model   string `mapstructure:"model"`    // Default: "gemini-2.0-flash-001"
	APIKey  string `mapstructure:"api_key"`  // Default: "" (falls back to provider env var / secrets file)
	BaseURL string `mapstructure:"base_url"` // Default: "" (openai only; public endpoint)
}

type ToolsConfig struct {
	// File Operations
	MaxReadChars int   `mapstructure:"max_read_chars"` // Default: 10000
	MaxFileSize  int64 `mapstructure:"max_file_size"`  // Default: 10 * 1024 * 1024 (10MB)

	// Script Execution
	ScriptTimeoutSeconds     int                 `mapstructure:"script_timeout_seconds"`      // Default: 30
	ScriptGracefulShutdownMs int                 `mapstructure:"script_graceful_shutdown_ms"` // Default: 2000
	MaxCommandOutputSize     int64               `mapstructure:"max_command_output_size"`     // Default: 1024 * 1024 (1MB)
	ScriptInterpreters       []InterpreterConfig `mapstructure:"script_interpreters"`         // Default: .py -> python3
}

// InterpreterConfig maps a script extension to the command that runs it.
// The script path and any arguments are appended to Command.
type InterpreterConfig struct {
	Extension string   `mapstructure:"extension"`
	Command   []string `mapstructure:"command"`
}

const DefaultSystemInstruction = `You are a helpful AI coding agent.

When a user asks a question or makes a request, make a function call plan. You can perform the following operations:

- List files and directories
- Read file contents
- Execute Python files with optional arguments
- Write or overwrite files

All paths you provide should be relative to the working directory. You do not need to specify the working directory in your function calls; it is injected automatically and you cannot leave it.`

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			MaxIterations:     20,
			SystemInstruction: DefaultSystemInstruction,
		},
		Provider: ProviderConfig{
			Name:  "gemini",
			Model: "gemini-2.0-flash-001",
		},
		Tools: ToolsConfig{
			MaxReadChars:             10000,
			MaxFileSize:              10 * 1024 * 1024,
			ScriptTimeoutSeconds:     30,
			ScriptGracefulShutdownMs: 2000,
			MaxCommandOutputSize:     1024 * 1024,
			ScriptInterpreters: []InterpreterConfig{
				{Extension: ".py", Command: []string{"python3"}},
			},
		},
	}
}

// ScriptTimeout returns the wall-clock budget for one script run.
func (t ToolsConfig) ScriptTimeout() time.Duration {
	return time.Duration(t.ScriptTimeoutSeconds) * time.Second
}

// GracefulShutdown returns how long a timed-out script gets between interrupt and kill.
func (t ToolsConfig) GracefulShutdown() time.Duration {
	return time.Duration(t.ScriptGracefulShutdownMs) * time.Millisecond
}

// InterpreterFor returns the interpreter command for the script at path, matched by extension.
func (t ToolsConfig) InterpreterFor(path string) ([]string, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, false
	}
	for _, ic := range t.ScriptInterpreters {
		if strings.EqualFold(ic.Extension, ext) {
			return ic.Command, true
		}
	}
	return nil, false
}

// ScriptExtensions lists the recognised script extensions.
func (t ToolsConfig) ScriptExtensions() []string {
	exts := make([]string, 0, len(t.ScriptInterpreters))
	for _, ic := range t.ScriptInterpreters {
		exts = append(exts, ic.Extension)
	}
	return exts
}
