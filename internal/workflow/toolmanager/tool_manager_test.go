package toolmanager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/boxed/internal/config"
	"github.com/Cyclone1070/boxed/internal/tool"
	"github.com/Cyclone1070/boxed/internal/tool/directory"
	"github.com/Cyclone1070/boxed/internal/tool/file"
	"github.com/Cyclone1070/boxed/internal/tool/service/fs"
	"github.com/Cyclone1070/boxed/internal/tool/service/path"
	"github.com/Cyclone1070/boxed/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInput struct {
	Value string `mapstructure:"value"`
	Path  string `mapstructure:"path"`
}

func (m *mockInput) String() string { return m.Value }

type mockTool struct {
	name        string
	declaration tool.Declaration
	pathParams  []string
	executeFunc func(ctx context.Context, input any) tool.Result
	calls       int
}

func (m *mockTool) Name() string                  { return m.name }
func (m *mockTool) Declaration() tool.Declaration { return m.declaration }
func (m *mockTool) PathParams() []string          { return m.pathParams }
func (m *mockTool) Input() any                    { return &mockInput{} }
func (m *mockTool) Execute(ctx context.Context, input any) tool.Result {
	m.calls++
	if m.executeFunc != nil {
		return m.executeFunc(ctx, input)
	}
	return tool.Success{Payload: "ok"}
}

// recordingFS records every filesystem call it receives.
type recordingFS struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingFS) record(op, p string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, op+" "+p)
}

func (r *recordingFS) Stat(p string) (os.FileInfo, error) {
	r.record("stat", p)
	return nil, os.ErrNotExist
}

func (r *recordingFS) ReadFileRange(p string, offset, limit int64) ([]byte, error) {
	r.record("read", p)
	return nil, os.ErrNotExist
}

func (r *recordingFS) WriteFileAtomic(p string, content []byte, perm os.FileMode) error {
	r.record("write", p)
	return nil
}

func (r *recordingFS) ListDir(p string) ([]os.FileInfo, error) {
	r.record("list", p)
	return nil, nil
}

func drain(events chan workflow.Event) []workflow.Event {
	close(events)
	var out []workflow.Event
	for e := range events {
		out = append(out, e)
	}
	return out
}

func TestRegister_AddsTool(t *testing.T) {
	tm := NewToolManager(path.NewResolver(t.TempDir()), nil)
	tm.Register(&mockTool{name: "test-tool", declaration: tool.Declaration{Name: "test-tool"}})

	decls := tm.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, "test-tool", decls[0].Name)
}

func TestRegister_DuplicateNameOverwrites(t *testing.T) {
	tm := NewToolManager(path.NewResolver(t.TempDir()), nil,
		&mockTool{name: "t", declaration: tool.Declaration{Name: "t", Description: "v1"}},
		&mockTool{name: "t", declaration: tool.Declaration{Name: "t", Description: "v2"}},
	)

	decls := tm.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, "v2", decls[0].Description)
}

func TestDeclarations_Sorted(t *testing.T) {
	tm := NewToolManager(path.NewResolver(t.TempDir()), nil,
		&mockTool{name: "zeta", declaration: tool.Declaration{Name: "zeta"}},
		&mockTool{name: "alpha", declaration: tool.Declaration{Name: "alpha"}},
		&mockTool{name: "mid", declaration: tool.Declaration{Name: "mid"}},
	)

	decls := tm.Declarations()
	require.Len(t, decls, 3)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, []string{decls[0].Name, decls[1].Name, decls[2].Name})
}

func TestExecute_UnknownTool(t *testing.T) {
	tm := NewToolManager(path.NewResolver(t.TempDir()), nil,
		&mockTool{name: "read_file", declaration: tool.Declaration{Name: "read_file"}},
	)
	events := make(chan workflow.Event, 10)

	res := tm.Execute(context.Background(), tool.Call{ID: "1", Name: "delete_everything"}, events)

	failure, ok := res.(tool.Failure)
	require.True(t, ok)
	assert.Equal(t, tool.KindUnknownTool, failure.Kind)
	assert.Contains(t, failure.Message, "delete_everything")
	assert.Contains(t, failure.Message, "read_file")

	evs := drain(events)
	require.Len(t, evs, 2)
	assert.IsType(t, workflow.ToolStartEvent{}, evs[0])
	end := evs[1].(workflow.ToolEndEvent)
	assert.False(t, end.OK)
	assert.Equal(t, tool.KindUnknownTool, end.Kind)
	assert.Equal(t, "1", end.CallID)
}

func TestExecute_InvalidArguments(t *testing.T) {
	mt := &mockTool{name: "echo", declaration: tool.Declaration{Name: "echo"}}
	tm := NewToolManager(path.NewResolver(t.TempDir()), nil, mt)

	tests := []struct {
		name     string
		args     map[string]any
		mentions string
	}{
		{"unknown key", map[string]any{"bogus": "x"}, "unexpected argument(s): bogus"},
		{"unknown keys sorted", map[string]any{"zz": 1, "aa": 2, "value": "ok"}, "unexpected argument(s): aa, zz"},
		{"wrong type", map[string]any{"value": []any{1, 2}}, "wrong type for argument(s): value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tm.Execute(context.Background(), tool.Call{Name: "echo", Args: tt.args}, nil)

			failure, ok := res.(tool.Failure)
			require.True(t, ok)
			assert.Equal(t, tool.KindInvalidArguments, failure.Kind)
			assert.Contains(t, failure.Message, tt.mentions)
			assert.NotContains(t, failure.Message, "has invalid keys")
			assert.NotContains(t, failure.Message, "unconvertible")
		})
	}
	assert.Zero(t, mt.calls)
}

func TestExecute_MissingRequiredArguments(t *testing.T) {
	root := t.TempDir()
	resolver := path.NewResolver(root)
	osfs := fs.NewOSFileSystem()
	cfg := config.DefaultConfig()
	tm := NewToolManager(resolver, nil,
		file.NewReadFileTool(osfs, resolver, cfg, nil),
		file.NewWriteFileTool(osfs, resolver, cfg, nil),
	)
	keep := filepath.Join(root, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("important data"), 0o644))

	tests := []struct {
		name     string
		call     tool.Call
		mentions string
	}{
		{"write without content", tool.Call{Name: "write_file", Args: map[string]any{"path": "keep.txt"}}, "content"},
		{"write with null content", tool.Call{Name: "write_file", Args: map[string]any{"path": "keep.txt", "content": nil}}, "content"},
		{"write without path", tool.Call{Name: "write_file", Args: map[string]any{"content": "x"}}, "path"},
		{"read without path", tool.Call{Name: "read_file", Args: map[string]any{}}, "path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make(chan workflow.Event, 10)

			res := tm.Execute(context.Background(), tt.call, events)

			failure, ok := res.(tool.Failure)
			require.True(t, ok)
			assert.Equal(t, tool.KindInvalidArguments, failure.Kind)
			assert.Contains(t, failure.Message, "missing required argument(s): "+tt.mentions)

			evs := drain(events)
			require.Len(t, evs, 2)
			assert.False(t, evs[1].(workflow.ToolEndEvent).OK)
		})
	}

	got, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "important data", string(got))
}

func TestExecute_PathParamNotString(t *testing.T) {
	mt := &mockTool{name: "reader", declaration: tool.Declaration{Name: "reader"}, pathParams: []string{"path"}}
	tm := NewToolManager(path.NewResolver(t.TempDir()), nil, mt)

	res := tm.Execute(context.Background(), tool.Call{Name: "reader", Args: map[string]any{"path": 42.0}}, nil)

	failure, ok := res.(tool.Failure)
	require.True(t, ok)
	assert.Equal(t, tool.KindInvalidArguments, failure.Kind)
	assert.Zero(t, mt.calls)
}

func TestExecute_Success(t *testing.T) {
	mt := &mockTool{
		name:        "echo",
		declaration: tool.Declaration{Name: "echo"},
		executeFunc: func(ctx context.Context, input any) tool.Result {
			return tool.Success{Payload: "echo: " + input.(*mockInput).Value + "\nsecond line"}
		},
	}
	tm := NewToolManager(path.NewResolver(t.TempDir()), nil, mt)
	events := make(chan workflow.Event, 10)

	res := tm.Execute(context.Background(), tool.Call{ID: "c1", Name: "echo", Args: map[string]any{"value": "hi"}}, events)

	require.True(t, res.OK())
	assert.Equal(t, "echo: hi\nsecond line", res.LLMContent())

	evs := drain(events)
	require.Len(t, evs, 2)
	start := evs[0].(workflow.ToolStartEvent)
	assert.Equal(t, "hi", start.RequestDisplay)
	end := evs[1].(workflow.ToolEndEvent)
	assert.True(t, end.OK)
	assert.Equal(t, "echo: hi", end.Summary)
}

func TestExecute_OutsideRootPerformsNoIO(t *testing.T) {
	root := t.TempDir()
	resolver := path.NewResolver(root)
	cfg := config.DefaultConfig()
	rec := &recordingFS{}
	tm := NewToolManager(resolver, nil,
		file.NewReadFileTool(rec, resolver, cfg, nil),
		file.NewWriteFileTool(rec, resolver, cfg, nil),
		directory.NewListDirectoryTool(rec, resolver, nil),
	)

	calls := []tool.Call{
		{Name: "read_file", Args: map[string]any{"path": "/etc/passwd"}},
		{Name: "read_file", Args: map[string]any{"path": "../../etc/passwd"}},
		{Name: "write_file", Args: map[string]any{"path": "/tmp/evil.txt", "content": "x"}},
		{Name: "list_directory", Args: map[string]any{"path": "/"}},
		{Name: "list_directory", Args: map[string]any{"path": root + "foo"}},
	}

	for _, call := range calls {
		res := tm.Execute(context.Background(), call, nil)

		failure, ok := res.(tool.Failure)
		require.True(t, ok, "%s %v", call.Name, call.Args)
		assert.Equal(t, tool.KindOutsideRoot, failure.Kind)
		assert.True(t, strings.HasPrefix(failure.Message, "Error: "))
	}
	assert.Empty(t, rec.calls, "filesystem must not be touched for rejected paths")
}

func TestExecute_InsideRootReachesTool(t *testing.T) {
	root := t.TempDir()
	resolver := path.NewResolver(root)
	rec := &recordingFS{}
	tm := NewToolManager(resolver, nil, file.NewReadFileTool(rec, resolver, config.DefaultConfig(), nil))

	res := tm.Execute(context.Background(), tool.Call{Name: "read_file", Args: map[string]any{"path": "sub/../notes.txt"}}, nil)

	failure, ok := res.(tool.Failure)
	require.True(t, ok)
	assert.Equal(t, tool.KindNotFound, failure.Kind)
	assert.Equal(t, []string{"stat " + filepath.Join(root, "notes.txt")}, rec.calls)
}

func TestSummarise(t *testing.T) {
	assert.Equal(t, "first", summarise("first\nsecond"))
	long := strings.Repeat("x", 100)
	assert.Equal(t, strings.Repeat("x", 80)+"…", summarise(long))
}

func TestDescribeDecodeError(t *testing.T) {
	err := &mapstructure.Error{Errors: []string{
		"'path' expected type 'string', got unconvertible type 'float64', value: '1'",
		"'args[0]' expected type 'string', got unconvertible type 'bool', value: 'true'",
	}}
	assert.Equal(t, "wrong type for argument(s): args[0], path", describeDecodeError(err))
	assert.Equal(t, "arguments could not be decoded", describeDecodeError(errors.New("boom")))
}
