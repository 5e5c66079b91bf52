package msbackup

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem abstracts the operations needed to scan volume directories.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Open(path string) (fs.File, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

type osFS struct{}

func (osFS) Stat(p string) (fs.FileInfo, error) { return os.Stat(p) }
func (osFS) Open(p string) (fs.File, error)     { return os.Open(p) }
func (osFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

var defaultFS osFS

// readRecord loads one whole record file through the FileSystem.
func readRecord(fsys FileSystem, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
