package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAtomicWriteFile tests that the target is replaced and no temp file is left
// TestAtomicWriteFile 测试目标文件被替换且不残留临时文件
func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	require.NoError(t, AtomicWriteFile(path, []byte("new"), 0640))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "rxparse", "config.yaml")

	require.NoError(t, WriteNewFile(path, []byte("first"), 0600, false))

	err := WriteNewFile(path, []byte("second"), 0600, false)
	assert.True(t, errors.Is(err, ErrExists))

	require.NoError(t, WriteNewFile(path, []byte("third"), 0600, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "third", string(data))
}

// TestAtomicFile_CloseKeepsTarget tests that an uncommitted file leaves the target untouched
// TestAtomicFile_CloseKeepsTarget 测试未提交的文件不会修改目标文件
func TestAtomicFile_CloseKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0600))

	f, err := CreateAtomic(path)
	require.NoError(t, err)
	_, err = f.WriteString("partial\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicFile_Commit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	f, err := CreateAtomic(path)
	require.NoError(t, err)
	_, err = f.WriteString("complete\n")
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "target appears only on commit")

	require.NoError(t, f.Commit(0644))
	assert.NoError(t, f.Close())
	assert.Error(t, f.Commit(0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "complete\n", string(data))
}
