package config

import (
	"errors"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/viper"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "boxed"
	// ConfigName is the config file name without extension
	ConfigName = "config"
	// EnvPrefix prefixes every environment override, e.g. BOXED_AGENT_MAX_ITERATIONS.
	EnvPrefix = "BOXED"
)

// Error codes attached to configuration failures.
const (
	CodeConfigRead     = "config.load.read.failure"
	CodeConfigDecode   = "config.parse.invalid_format"
	CodeConfigValidate = "config.validate.invalid_value"
)

// Loader handles configuration loading.
type Loader struct {
	v           *viper.Viper
	searchPaths []string
}

// NewLoader creates a production Loader searching ./ and ~/.config/boxed.
func NewLoader() *Loader {
	return NewLoaderWithPaths(".", "$HOME/.config/"+ConfigDir)
}

// NewLoaderWithPaths creates a Loader that searches only the given directories (for testing).
func NewLoaderWithPaths(paths ...string) *Loader {
	return &Loader{v: viper.New(), searchPaths: paths}
}

// Viper exposes the underlying viper instance so callers can bind flags before Load.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// SetDefaults registers every DefaultConfig value with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("agent.max_iterations", d.Agent.MaxIterations)
	v.SetDefault("agent.system_instruction", d.Agent.SystemInstruction)

	v.SetDefault("provider.name", d.Provider.Name)
	v.SetDefault("provider.model", d.Provider.Model)
	v.SetDefault("provider.api_key", d.Provider.APIKey)
	v.SetDefault("provider.base_url", d.Provider.BaseURL)

	v.SetDefault("tools.max_read_chars", d.Tools.MaxReadChars)
	v.SetDefault("tools.max_file_size", d.Tools.MaxFileSize)
	v.SetDefault("tools.script_timeout_seconds", d.Tools.ScriptTimeoutSeconds)
	v.SetDefault("tools.script_graceful_shutdown_ms", d.Tools.ScriptGracefulShutdownMs)
	v.SetDefault("tools.max_command_output_size", d.Tools.MaxCommandOutputSize)

	interpreters := make([]map[string]any, 0, len(d.Tools.ScriptInterpreters))
	for _, ic := range d.Tools.ScriptInterpreters {
		interpreters = append(interpreters, map[string]any{
			"extension": ic.Extension,
			"command":   ic.Command,
		})
	}
	v.SetDefault("tools.script_interpreters", interpreters)
}

// SetupEnv enables BOXED_* environment overrides for every known key.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load merges defaults, the config file, environment and any bound flags (flag > env > file > defaults).
// An explicit path must exist. Without one, a missing config file is not an error.
// Returns error only for read or parse failures and validation failures.
func (l *Loader) Load(path string) (*Config, error) {
	v := l.v
	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, oops.Code(CodeConfigRead).With("path", path).Wrapf(err, "reading config file")
		}
	} else {
		v.SetConfigName(ConfigName)
		for _, p := range l.searchPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, oops.Code(CodeConfigRead).Wrapf(err, "reading config")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, oops.Code(CodeConfigDecode).Wrapf(err, "decoding config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load is a convenience function using the default loader
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// ReadSecretsFile parses a dotenv-style secrets file into upper-cased keys.
// A missing file yields an empty map.
func ReadSecretsFile(path string) (map[string]string, error) {
	secrets := map[string]string{}
	if path == "" {
		return secrets, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return secrets, nil
		}
		return nil, oops.Code(CodeConfigRead).With("path", path).Wrapf(err, "reading secrets file")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, oops.Code(CodeConfigRead).With("path", path).Wrapf(err, "reading secrets file")
	}

	for _, key := range v.AllKeys() {
		secrets[strings.ToUpper(key)] = v.GetString(key)
	}
	return secrets, nil
}
