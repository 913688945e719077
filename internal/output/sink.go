// Package output writes tangled files to disk or to memory.
package output

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/google/renameio"
	"github.com/liamg/memoryfs"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// File is an output being written. Nothing is visible at its path until
// Commit succeeds; Discard drops it.
type File interface {
	io.Writer
	Commit() error
	Discard() error
}

// Sink creates output files and reads back existing ones.
type Sink interface {
	Exists(name string) (bool, error)
	ReadFile(name string) ([]byte, error)
	Create(name string) (File, error)
}

// Dir is a Sink writing below a directory of the local filesystem. Files
// are replaced atomically.
type Dir struct {
	Root string
}

func (d Dir) path(name string) string {
	if filepath.IsAbs(name) || len(d.Root) == 0 {
		return name
	}

	return filepath.Join(d.Root, name)
}

func (d Dir) Exists(name string) (bool, error) {
	_, err := os.Stat(d.path(name))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

func (d Dir) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(d.path(name))
}

func (d Dir) Create(name string) (File, error) {
	target := d.path(name)

	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return nil, err
	}

	pending, err := renameio.TempFile("", target)
	if err != nil {
		return nil, err
	}

	if err := pending.Chmod(fileMode); err != nil {
		_ = pending.Cleanup()

		return nil, err
	}

	return pendingFile{pending}, nil
}

type pendingFile struct {
	*renameio.PendingFile
}

func (p pendingFile) Commit() error  { return p.CloseAtomicallyReplace() }
func (p pendingFile) Discard() error { return p.Cleanup() }

// Memory is a Sink backed by an in-memory filesystem.
type Memory struct {
	FS *memoryfs.FS
}

// NewMemory returns an empty in-memory Sink.
func NewMemory() *Memory {
	return &Memory{FS: memoryfs.New()}
}

func (m *Memory) Exists(name string) (bool, error) {
	_, err := m.FS.Stat(filepath.ToSlash(name))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

func (m *Memory) ReadFile(name string) ([]byte, error) {
	return m.FS.ReadFile(filepath.ToSlash(name))
}

func (m *Memory) Create(name string) (File, error) {
	return &memoryFile{fs: m.FS, name: filepath.ToSlash(name)}, nil
}

type memoryFile struct {
	bytes.Buffer
	fs   *memoryfs.FS
	name string
}

func (f *memoryFile) Commit() error {
	if dir := path.Dir(f.name); dir != "." && dir != "/" {
		if err := f.fs.MkdirAll(dir, dirMode); err != nil {
			return err
		}
	}

	return f.fs.WriteFile(f.name, f.Bytes(), fileMode)
}

func (f *memoryFile) Discard() error {
	f.Reset()

	return nil
}
