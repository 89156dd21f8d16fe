package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists is returned by WriteNewFile when the target exists and overwrite is false.
var ErrExists = errors.New("file already exists")

// AtomicFile is a temporary file that replaces its target only on Commit.
// AtomicFile 是一个临时文件，仅在 Commit 时替换目标文件。
type AtomicFile struct {
	*os.File
	target string
	done   bool
}

// CreateAtomic opens a temporary file next to filename.
// CreateAtomic 在目标文件旁边打开一个临时文件。
func CreateAtomic(filename string) (*AtomicFile, error) {
	dir := filepath.Dir(filename) // #nosec G703 // Safe: filepath.Dir cleans the path preventing traversal
	tmpFile, err := os.CreateTemp(dir, "atomic-*.tmp")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{File: tmpFile, target: filename}, nil
}

// Commit syncs the temporary file, sets perm and renames it over the target.
// Commit 同步临时文件，设置权限并重命名为目标文件。
func (f *AtomicFile) Commit(perm os.FileMode) error {
	if f.done {
		return os.ErrClosed
	}
	f.done = true
	if err := f.Chmod(perm); err != nil {
		f.abort()
		return err
	}
	if err := f.Sync(); err != nil {
		f.abort()
		return err
	}
	if err := f.File.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), f.target); err != nil { // #nosec G703 // target is validated by caller
		os.Remove(f.Name())
		return err
	}
	return nil
}

// Close discards the temporary file unless it was committed. The target is left as it was.
// Close 丢弃未提交的临时文件，目标文件保持不变。
func (f *AtomicFile) Close() error {
	if f.done {
		return nil
	}
	f.done = true
	return f.abort()
}

func (f *AtomicFile) abort() error {
	err := f.File.Close()
	if rerr := os.Remove(f.Name()); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// AtomicWriteFile writes data to a temporary file and then renames it to the target file.
// AtomicWriteFile 将数据写入临时文件，然后将其重命名为目标文件。
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	f, err := CreateAtomic(filename)
	if err != nil {
		return err
	}
	defer f.Close() // Clean up if something fails

	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Commit(perm)
}

// WriteNewFile creates the parent directory and atomically writes filename.
// An existing file is kept unless overwrite is set.
// WriteNewFile 创建父目录并原子写入文件。除非设置 overwrite，否则保留已有文件。
func WriteNewFile(filename string, data []byte, perm os.FileMode, overwrite bool) error {
	safePath := filepath.Clean(filename)
	if !overwrite {
		if _, err := os.Stat(safePath); err == nil {
			return fmt.Errorf("%s: %w", safePath, ErrExists)
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(safePath), 0750); err != nil {
		return err
	}
	return AtomicWriteFile(safePath, data, perm)
}
