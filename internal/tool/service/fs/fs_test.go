package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))
	fs := NewOSFileSystem()

	t.Run("whole file", func(t *testing.T) {
		got, err := fs.ReadFileRange(path, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, "0123456789", string(got))
	})

	t.Run("limit only", func(t *testing.T) {
		got, err := fs.ReadFileRange(path, 0, 4)
		require.NoError(t, err)
		assert.Equal(t, "0123", string(got))
	})

	t.Run("offset and limit", func(t *testing.T) {
		got, err := fs.ReadFileRange(path, 3, 4)
		require.NoError(t, err)
		assert.Equal(t, "3456", string(got))
	})

	t.Run("limit larger than file", func(t *testing.T) {
		got, err := fs.ReadFileRange(path, 0, 1000)
		require.NoError(t, err)
		assert.Equal(t, "0123456789", string(got))
	})

	t.Run("offset past end", func(t *testing.T) {
		got, err := fs.ReadFileRange(path, 100, 4)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("negative offset", func(t *testing.T) {
		_, err := fs.ReadFileRange(path, -1, 0)
		assert.ErrorIs(t, err, ErrInvalidOffset)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := fs.ReadFileRange(filepath.Join(dir, "nope"), 0, 0)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(dir, "new.txt")
		require.NoError(t, fs.WriteFileAtomic(path, []byte("hello"), 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(got))
	})

	t.Run("overwrites file", func(t *testing.T) {
		path := filepath.Join(dir, "existing.txt")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))
		require.NoError(t, fs.WriteFileAtomic(path, []byte("new"), 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("missing parent is not created", func(t *testing.T) {
		path := filepath.Join(dir, "missing", "file.txt")
		err := fs.WriteFileAtomic(path, []byte("x"), 0o644)

		var writeErr *AtomicWriteError
		require.True(t, errors.As(err, &writeErr))
		assert.Equal(t, StageCreateTemp, writeErr.Stage)
		assert.ErrorIs(t, err, os.ErrNotExist)
		_, statErr := os.Stat(filepath.Join(dir, "missing"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".boxed-")
		}
	})
}

func TestListDir_SortedByName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.txt", "alpha.txt", "mid"} {
		if name == "mid" {
			require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	infos, err := NewOSFileSystem().ListDir(dir)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "alpha.txt", infos[0].Name())
	assert.Equal(t, "mid", infos[1].Name())
	assert.True(t, infos[1].IsDir())
	assert.Equal(t, "zeta.txt", infos[2].Name())
	assert.Equal(t, int64(len("zeta.txt")), infos[2].Size())
}

type fakeEntry struct {
	info os.FileInfo
	err  error
	name string
}

func (e fakeEntry) Name() string               { return e.name }
func (e fakeEntry) IsDir() bool                { return false }
func (e fakeEntry) Type() os.FileMode          { return 0 }
func (e fakeEntry) Info() (os.FileInfo, error) { return e.info, e.err }

func TestEntryInfos_SkipsVanishedEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	a, err := os.Stat(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	b, err := os.Stat(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)

	infos, err := entryInfos([]os.DirEntry{
		fakeEntry{name: "b.txt", info: b},
		fakeEntry{name: "gone.txt", err: os.ErrNotExist},
		fakeEntry{name: "a.txt", info: a},
	})

	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a.txt", infos[0].Name())
	assert.Equal(t, "b.txt", infos[1].Name())
}

func TestEntryInfos_OtherErrorsFail(t *testing.T) {
	boom := errors.New("permission denied")

	_, err := entryInfos([]os.DirEntry{fakeEntry{name: "x", err: boom}})

	assert.ErrorIs(t, err, boom)
}
