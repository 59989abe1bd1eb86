package script

import (
	"fmt"
	"strings"
)

// RunScriptRequest is the decoded argument set of run_script.
type RunScriptRequest struct {
	Path string   `mapstructure:"path" json:"path"`
	Args []string `mapstructure:"args" json:"args,omitempty"`
}

func (r *RunScriptRequest) String() string {
	if len(r.Args) == 0 {
		return r.Path
	}
	return r.Path + " " + strings.Join(r.Args, " ")
}

// RunScriptResponse is the captured outcome of one script run.
type RunScriptResponse struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// Format renders the output the way the model sees it.
func (r *RunScriptResponse) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "STDOUT: %s\nSTDERR: %s", r.Stdout, r.Stderr)
	if r.ExitCode != 0 {
		fmt.Fprintf(&b, "\nProcess exited with code %d", r.ExitCode)
	}
	if r.Stdout == "" {
		b.WriteString("\nNo output produced.")
	}
	if r.Truncated {
		b.WriteString("\n[Output truncated]")
	}
	return b.String()
}
