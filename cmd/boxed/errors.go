package main

// Error codes attached to startup failures.
const (
	CodeCLIFlags       = "cli.flags.invalid_value"
	CodeCLISetup       = "cli.setup.failure"
	CodeWorkspaceRoot  = "cli.workspace.invalid_root"
	CodeMissingAPIKey  = "cli.provider.missing_api_key"
	CodeProviderSetup  = "cli.provider.setup_failure"
	CodeTranscriptSave = "cli.transcript.write_failure"
)
