package toolmanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/boxed/internal/tool"
	"github.com/Cyclone1070/boxed/internal/workflow"
)

const summaryLimit = 80

type ToolManager struct {
	registry map[string]toolImpl
	guard    pathGuard
	logger   *slog.Logger
}

// NewToolManager creates a registry whose path arguments are checked by guard.
// A nil logger falls back to slog.Default().
func NewToolManager(guard pathGuard, logger *slog.Logger, tools ...toolImpl) *ToolManager {
	if guard == nil {
		panic("guard is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	tm := &ToolManager{
		registry: make(map[string]toolImpl),
		guard:    guard,
		logger:   logger,
	}
	for _, t := range tools {
		tm.Register(t)
	}
	return tm
}

func (m *ToolManager) Register(t toolImpl) {
	m.registry[t.Name()] = t
}

func (m *ToolManager) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(m.registry))
	for _, t := range m.registry {
		decls = append(decls, t.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Execute runs one tool call. It never returns an error: unknown tools, bad arguments,
// paths outside the workspace and tool failures all come back as a tool.Failure the
// model can read. Path arguments are vetted before any tool code, and hence any
// filesystem access, runs.
func (m *ToolManager) Execute(ctx context.Context, call tool.Call, events chan<- workflow.Event) tool.Result {
	log := m.logger.With("tool", call.Name, "call_id", call.ID)

	t, ok := m.registry[call.Name]
	if !ok {
		names := make([]string, 0, len(m.registry))
		for _, d := range m.Declarations() {
			names = append(names, d.Name)
		}
		res := tool.Fail(tool.KindUnknownTool, "Unknown function: %s. Available tools: %s", call.Name, strings.Join(names, ", "))
		return m.finish(log, call, "", false, res, events)
	}

	decl := t.Declaration()
	if missing := missingRequired(decl, call.Args); len(missing) > 0 {
		res := invalidArguments(decl, "missing required argument(s): %s", strings.Join(missing, ", "))
		return m.finish(log, call, "", false, res, events)
	}

	if res, ok := m.checkPaths(t, call); !ok {
		return m.finish(log, call, "", false, res, events)
	}

	req := t.Input()
	unused, err := decode(call.Args, req)
	if err != nil {
		log.Debug("argument decoding failed", "error", err)
		res := invalidArguments(decl, "%s", describeDecodeError(err))
		return m.finish(log, call, "", false, res, events)
	}
	if len(unused) > 0 {
		res := invalidArguments(decl, "unexpected argument(s): %s", strings.Join(unused, ", "))
		return m.finish(log, call, "", false, res, events)
	}

	display := ""
	if s, ok := req.(fmt.Stringer); ok {
		display = s.String()
	}
	if events != nil {
		events <- workflow.ToolStartEvent{CallID: call.ID, ToolName: call.Name, RequestDisplay: display}
	}
	log.Debug("dispatching tool", "request", display)

	res := t.Execute(ctx, req)
	return m.finish(log, call, display, true, res, events)
}

// checkPaths validates every declared path argument that is present in the call.
func (m *ToolManager) checkPaths(t toolImpl, call tool.Call) (tool.Result, bool) {
	for _, name := range t.PathParams() {
		raw, present := call.Args[name]
		if !present || raw == nil {
			continue
		}
		candidate, isString := raw.(string)
		if !isString {
			return tool.Fail(tool.KindInvalidArguments, "argument %q of %s must be a string, got %T", name, call.Name, raw), false
		}
		if !m.guard.Contains(candidate) {
			return tool.Fail(tool.KindOutsideRoot, "Cannot access %q (argument %q) as it is outside the permitted working directory", candidate, name), false
		}
	}
	return nil, true
}

func (m *ToolManager) finish(log *slog.Logger, call tool.Call, display string, started bool, res tool.Result, events chan<- workflow.Event) tool.Result {
	end := workflow.ToolEndEvent{
		CallID:   call.ID,
		ToolName: call.Name,
		OK:       res.OK(),
		Summary:  summarise(res.LLMContent()),
	}
	if f, ok := res.(tool.Failure); ok {
		end.Kind = f.Kind
		log.Info("tool call failed", "kind", f.Kind, "request", display)
	} else {
		log.Debug("tool call succeeded", "request", display, "bytes", len(res.LLMContent()))
	}

	if events != nil {
		if !started {
			// Rejected before dispatch; the UI still pairs every end with a start.
			events <- workflow.ToolStartEvent{CallID: call.ID, ToolName: call.Name}
		}
		events <- end
	}
	return res
}

// missingRequired lists the required parameters that are absent or null.
func missingRequired(decl tool.Declaration, args map[string]any) []string {
	if decl.Parameters == nil {
		return nil
	}
	var missing []string
	for _, name := range decl.Parameters.Required {
		if v, ok := args[name]; !ok || v == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

func invalidArguments(decl tool.Declaration, format string, args ...any) tool.Failure {
	declJSON, _ := json.MarshalIndent(decl.Parameters, "", "  ")
	return tool.Fail(tool.KindInvalidArguments, "invalid arguments for tool %q: %s\n\nExpected schema:\n%s",
		decl.Name, fmt.Sprintf(format, args...), declJSON)
}

// decode fills out from args and returns the argument keys it did not use, sorted.
func decode(args map[string]any, out any) ([]string, error) {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   out,
		Metadata: &md,
		TagName:  "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(args); err != nil {
		return nil, err
	}
	sort.Strings(md.Unused)
	return md.Unused, nil
}

// describeDecodeError names the arguments mapstructure rejected without echoing its text.
func describeDecodeError(err error) string {
	var mErr *mapstructure.Error
	if !errors.As(err, &mErr) {
		return "arguments could not be decoded"
	}
	var names []string
	for _, e := range mErr.Errors {
		if name, ok := quotedPrefix(e); ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "arguments could not be decoded"
	}
	sort.Strings(names)
	return "wrong type for argument(s): " + strings.Join(names, ", ")
}

// quotedPrefix extracts name from messages of the form "'name' ...".
func quotedPrefix(msg string) (string, bool) {
	rest, ok := strings.CutPrefix(msg, "'")
	if !ok {
		return "", false
	}
	name, _, ok := strings.Cut(rest, "'")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

func summarise(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	if r := []rune(line); len(r) > summaryLimit {
		return string(r[:summaryLimit]) + "…"
	}
	return line
}
