package main

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/Cyclone1070/boxed/internal/config"
	"github.com/Cyclone1070/boxed/internal/provider"
	"github.com/Cyclone1070/boxed/internal/provider/gemini"
	"github.com/Cyclone1070/boxed/internal/provider/openai"
	"github.com/Cyclone1070/boxed/internal/tool/directory"
	"github.com/Cyclone1070/boxed/internal/tool/file"
	"github.com/Cyclone1070/boxed/internal/tool/script"
	"github.com/Cyclone1070/boxed/internal/tool/service/executor"
	"github.com/Cyclone1070/boxed/internal/tool/service/fs"
	"github.com/Cyclone1070/boxed/internal/tool/service/path"
	"github.com/Cyclone1070/boxed/internal/workflow/toolmanager"
)

// providerFactory builds a model backend once the API key is known.
type providerFactory func(ctx context.Context, cfg *config.Config, apiKey string) (provider.Provider, error)

// defaultOpenAIModel replaces the gemini default model when the openai backend is picked without one.
const defaultOpenAIModel = "gpt-4o-mini"

// apiKeyEnv names the well-known environment variable for each backend.
var apiKeyEnv = map[string]string{
	"gemini": "GEMINI_API_KEY",
	"openai": "OPENAI_API_KEY",
}

func dialProvider(ctx context.Context, cfg *config.Config, apiKey string) (provider.Provider, error) {
	switch cfg.Provider.Name {
	case "openai":
		return openai.New(openai.Dial(apiKey, cfg.Provider.BaseURL), modelFor(cfg)), nil
	default:
		client, err := gemini.Dial(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		return gemini.New(client, modelFor(cfg)), nil
	}
}

func modelFor(cfg *config.Config) string {
	if cfg.Provider.Name == "openai" && cfg.Provider.Model == config.DefaultConfig().Provider.Model {
		return defaultOpenAIModel
	}
	return cfg.Provider.Model
}

// resolveAPIKey applies the key precedence: config or BOXED_PROVIDER_API_KEY, then the
// backend's well-known variable, then the secrets file.
func resolveAPIKey(cfg *config.Config, getenv func(string) string, secretsPath string) (string, error) {
	if cfg.Provider.APIKey != "" {
		return cfg.Provider.APIKey, nil
	}
	envName := apiKeyEnv[cfg.Provider.Name]
	if key := getenv(envName); key != "" {
		return key, nil
	}
	secrets, err := config.ReadSecretsFile(secretsPath)
	if err != nil {
		return "", err
	}
	if key := secrets[envName]; key != "" {
		return key, nil
	}
	return "", oops.Code(CodeMissingAPIKey).
		With("provider", cfg.Provider.Name).
		Errorf("no API key for %s: set %s, provider.api_key or add it to %s", cfg.Provider.Name, envName, secretsPath)
}

func buildProvider(ctx context.Context, a *app, cfg *config.Config, opts *options) (provider.Provider, error) {
	apiKey, err := resolveAPIKey(cfg, a.getenv, opts.secrets)
	if err != nil {
		return nil, err
	}
	p, err := a.newProvider(ctx, cfg, apiKey)
	if err != nil {
		return nil, oops.Code(CodeProviderSetup).With("provider", cfg.Provider.Name).Wrapf(err, "creating model client")
	}
	return p, nil
}

// buildTools registers the four workspace tools behind one path guard.
func buildTools(cfg *config.Config, root string, logger *slog.Logger) (*toolmanager.ToolManager, string, error) {
	canonicalRoot, err := path.CanonicaliseRoot(root)
	if err != nil {
		return nil, "", oops.Code(CodeWorkspaceRoot).With("root", root).Wrapf(err, "resolving working directory")
	}

	resolver := path.NewResolver(canonicalRoot)
	osFS := fs.NewOSFileSystem()
	commandExecutor := executor.NewOSCommandExecutor(cfg)

	tm := toolmanager.NewToolManager(resolver, logger,
		directory.NewListDirectoryTool(osFS, resolver, logger),
		file.NewReadFileTool(osFS, resolver, cfg, logger),
		file.NewWriteFileTool(osFS, resolver, cfg, logger),
		script.NewRunScriptTool(osFS, commandExecutor, resolver, cfg, logger),
	)
	return tm, canonicalRoot, nil
}
