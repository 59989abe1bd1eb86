package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// OSFileSystem is the only component that touches the disk on behalf of the tools.
// Callers pass absolute paths that have already been checked against the workspace root.
type OSFileSystem struct{}

func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat follows symlinks.
func (*OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ReadFileRange returns at most limit bytes starting at offset. A zero limit reads to EOF.
func (*OSFileSystem) ReadFileRange(path string, offset, limit int64) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if offset > 0 {
		r = io.NewSectionReader(f, offset, 1<<62)
	}
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}
	return io.ReadAll(r)
}

// WriteFileAtomic replaces path with content through a sibling temp file and a rename.
// The parent directory must already exist; it is never created.
func (*OSFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".boxed-*")
	if err != nil {
		return &AtomicWriteError{Path: path, Stage: StageCreateTemp, Cause: err}
	}
	tmpPath := tmp.Name()
	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	fail := func(stage string, cause error) error {
		return &AtomicWriteError{Path: path, Stage: stage, Cause: cause}
	}

	if _, werr := tmp.Write(content); werr != nil {
		return fail(StageWrite, werr)
	}
	if serr := tmp.Sync(); serr != nil {
		return fail(StageSync, serr)
	}
	closed = true
	if cerr := tmp.Close(); cerr != nil {
		return fail(StageClose, cerr)
	}
	if merr := os.Chmod(tmpPath, perm); merr != nil {
		return fail(StageChmod, merr)
	}
	if rerr := os.Rename(tmpPath, path); rerr != nil {
		return fail(StageRename, rerr)
	}
	return nil
}

// ListDir returns the immediate children of path sorted by name.
func (*OSFileSystem) ListDir(path string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	return entryInfos(entries)
}

// entryInfos stats each entry, skipping ones removed since the directory was read.
func entryInfos(entries []os.DirEntry) ([]os.FileInfo, error) {
	infos := make([]os.FileInfo, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}
