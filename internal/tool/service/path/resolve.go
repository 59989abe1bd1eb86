package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver provides path resolution within a workspace boundary.
type Resolver struct {
	workspaceRoot string
}

// NewResolver creates a new path resolver for the given workspace.
// The root is normalised once; callers should pass the output of CanonicaliseRoot.
func NewResolver(workspaceRoot string) *Resolver {
	root, ok := normaliseRoot(workspaceRoot)
	if !ok {
		root = ""
	}
	return &Resolver{
		workspaceRoot: root,
	}
}

// Root returns the normalised workspace root.
func (r *Resolver) Root() string {
	return r.workspaceRoot
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	// Resolve symlinks in the workspace root to get canonical path
	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Contains reports whether candidate, once lexically resolved against root, is root itself
// or a strict descendant of it. It never touches the filesystem, so paths that do not exist
// yet are judged the same way as paths that do.
func Contains(root, candidate string) bool {
	normRoot, ok := normaliseRoot(root)
	if !ok {
		return false
	}
	return within(normRoot, resolve(normRoot, candidate))
}

// Contains is the method form of the package-level Contains for this resolver's root.
func (r *Resolver) Contains(candidate string) bool {
	if r.workspaceRoot == "" {
		return false
	}
	return within(r.workspaceRoot, resolve(r.workspaceRoot, candidate))
}

// Abs resolves any path to absolute and validates it is within the workspace boundary.
// It cleans the path and ensures it does not escape the workspace root.
func (r *Resolver) Abs(path string) (string, error) {
	if r.workspaceRoot == "" {
		return "", ErrWorkspaceRootNotSet
	}

	abs := resolve(r.workspaceRoot, path)

	// Boundary check: must be the root itself or a child of the root
	if !within(r.workspaceRoot, abs) {
		return "", &OutsideWorkspaceError{Path: path}
	}

	return abs, nil
}

// Rel resolves any path to relative to the workspace root and validates it is within the boundary.
func (r *Resolver) Rel(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		// This should theoretically not happen if Abs passed
		return "", &OutsideWorkspaceError{Path: path}
	}

	if rel == "." {
		return "", nil
	}

	return filepath.ToSlash(rel), nil
}

func normaliseRoot(root string) (string, bool) {
	if root == "" {
		return "", false
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	return filepath.Clean(abs), true
}

func resolve(root, candidate string) string {
	if filepath.IsAbs(candidate) {
		return filepath.Clean(candidate)
	}
	return filepath.Clean(filepath.Join(root, candidate))
}

func within(root, abs string) bool {
	if abs == root {
		return true
	}
	prefix := root
	// A filesystem root such as "/" already ends in a separator.
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, prefix)
}
