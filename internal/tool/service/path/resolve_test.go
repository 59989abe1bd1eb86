package path

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name      string
		root      string
		candidate string
		expected  bool
	}{
		{name: "same directory", root: "/workspace", candidate: ".", expected: true},
		{name: "empty candidate is root", root: "/workspace", candidate: "", expected: true},
		{name: "absolute root", root: "/workspace", candidate: "/workspace", expected: true},
		{name: "nested subdirectory", root: "/workspace", candidate: "pkg/sub", expected: true},
		{name: "nested absolute", root: "/workspace", candidate: "/workspace/pkg/file.py", expected: true},
		{name: "absolute path outside", root: "/workspace", candidate: "/bin", expected: false},
		{name: "system file", root: "/workspace", candidate: "/etc/passwd", expected: false},
		{name: "relative escape via parent", root: "/workspace", candidate: "../", expected: false},
		{name: "deep relative escape", root: "/workspace", candidate: "../../../etc/passwd", expected: false},
		{name: "escape then re-descend under root", root: "/workspace", candidate: "pkg/../../workspace/main.py", expected: true},
		{name: "escape then re-descend with same-named segment", root: "/a", candidate: "a/../../a/file", expected: true},
		{name: "escape then re-descend elsewhere", root: "/workspace", candidate: "a/../../a/file", expected: false},
		{name: "sibling with shared prefix", root: "/workspace", candidate: "/workspacefoo/bar", expected: false},
		{name: "relative sibling with shared prefix", root: "/workspace", candidate: "../workspacefoo", expected: false},
		{name: "dot segments inside", root: "/workspace", candidate: "./pkg/./x/../y", expected: true},
		{name: "unclean root", root: "/workspace/./pkg/..", candidate: "main.py", expected: true},
		{name: "filesystem root contains everything", root: "/", candidate: "/etc/passwd", expected: true},
		{name: "empty root contains nothing", root: "", candidate: ".", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.root, tt.candidate); got != tt.expected {
				t.Errorf("Contains(%q, %q) = %v, want %v", tt.root, tt.candidate, got, tt.expected)
			}
		})
	}
}

func TestResolverContains_MatchesPackageFunc(t *testing.T) {
	resolver := NewResolver("/workspace")
	for _, candidate := range []string{".", "a/b", "../x", "/etc", "/workspace/z", "a/../../workspace/q"} {
		if resolver.Contains(candidate) != Contains("/workspace", candidate) {
			t.Errorf("resolver and package Contains disagree for %q", candidate)
		}
	}
}

func TestAbsAndRel(t *testing.T) {
	resolver := NewResolver("/srv/box")

	tests := []struct {
		input string
		abs   string
		rel   string
		err   error
	}{
		{input: "scripts/run.py", abs: "/srv/box/scripts/run.py", rel: "scripts/run.py"},
		{input: "/srv/box/scripts/run.py", abs: "/srv/box/scripts/run.py", rel: "scripts/run.py"},
		{input: "data/../scripts/run.py", abs: "/srv/box/scripts/run.py", rel: "scripts/run.py"},
		{input: ".", abs: "/srv/box", rel: ""},
		{input: "/srv/box/", abs: "/srv/box", rel: ""},
		{input: "../../../etc/passwd", err: ErrOutsideWorkspace},
		{input: "/etc/passwd", err: ErrOutsideWorkspace},
		{input: "/srv/boxes/x", err: ErrOutsideWorkspace},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			abs, err := resolver.Abs(tt.input)
			if !errors.Is(err, tt.err) || abs != tt.abs {
				t.Fatalf("Abs(%q) = %q, %v; want %q, %v", tt.input, abs, err, tt.abs, tt.err)
			}
			rel, err := resolver.Rel(tt.input)
			if !errors.Is(err, tt.err) || rel != tt.rel {
				t.Fatalf("Rel(%q) = %q, %v; want %q, %v", tt.input, rel, err, tt.rel, tt.err)
			}
		})
	}
}

func TestAbs_OutsideErrorNamesPath(t *testing.T) {
	_, err := NewResolver("/srv/box").Abs("../secret")
	var outside *OutsideWorkspaceError
	if !errors.As(err, &outside) || outside.Path != "../secret" {
		t.Fatalf("expected OutsideWorkspaceError for ../secret, got %v", err)
	}
}

func TestAbs_RootNotSet(t *testing.T) {
	_, err := NewResolver("").Abs("x")
	if !errors.Is(err, ErrWorkspaceRootNotSet) {
		t.Fatalf("expected ErrWorkspaceRootNotSet, got %v", err)
	}
}

func TestCanonicaliseRoot(t *testing.T) {
	resolvedTmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve tmp dir: %v", err)
	}

	t.Run("symlinked directory resolves to target", func(t *testing.T) {
		target := filepath.Join(resolvedTmpDir, "real")
		link := filepath.Join(resolvedTmpDir, "link")
		if err := os.Mkdir(target, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
		got, err := CanonicaliseRoot(link)
		if err != nil || got != target {
			t.Fatalf("CanonicaliseRoot(link) = %q, %v; want %q", got, err, target)
		}
	})

	t.Run("non-existent path", func(t *testing.T) {
		_, err := CanonicaliseRoot(filepath.Join(resolvedTmpDir, "non-existent"))
		var rootErr *WorkspaceRootError
		if !errors.As(err, &rootErr) {
			t.Fatalf("expected WorkspaceRootError, got %v", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		tmpFile := filepath.Join(resolvedTmpDir, "file.txt")
		if err := os.WriteFile(tmpFile, []byte("test"), 0o644); err != nil {
			t.Fatalf("failed to create tmp file: %v", err)
		}
		_, err := CanonicaliseRoot(tmpFile)
		if !errors.Is(err, ErrNotADirectory) {
			t.Fatalf("expected ErrNotADirectory, got %v", err)
		}
	})
}
