// Package embedded gives library packages access to the files bundled into
// the binary.
//
// go:embed only reaches files below the declaring package, so the embed.FS
// lives next to the data/ directory in the root package and is handed over
// with Init before anything is loaded.
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

const dataPrefix = "data/"

var (
	// ErrNotInitialized is returned by every accessor before Init is called.
	ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")
	// ErrUnknownPrefix is returned for paths outside data/.
	ErrUnknownPrefix = errors.New("unknown resource path prefix")
)

var (
	mu     sync.RWMutex
	dataFS fs.FS
)

// Init sets the file system holding data/. Tests may pass an fstest.MapFS.
func Init(data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	dataFS = data
}

// IsInitialized reports whether Init has been called with a non-nil FS.
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return dataFS != nil
}

// resolve normalizes a path and returns the FS serving it.
func resolve(path string) (fs.FS, string, error) {
	mu.RLock()
	fsys := dataFS
	mu.RUnlock()
	if fsys == nil {
		return nil, "", ErrNotInitialized
	}

	// embed.FS uses forward slashes and no leading "./".
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if path != strings.TrimSuffix(dataPrefix, "/") && !strings.HasPrefix(path, dataPrefix) {
		return nil, "", fmt.Errorf("%w: %s (must start with %q)", ErrUnknownPrefix, path, dataPrefix)
	}
	return fsys, path, nil
}

// FS returns the data file system, or nil before Init.
func FS() fs.FS {
	mu.RLock()
	defer mu.RUnlock()
	return dataFS
}

// Open opens a file below data/.
func Open(path string) (fs.File, error) {
	fsys, path, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(path)
}

// ReadFile reads a file below data/.
func ReadFile(path string) ([]byte, error) {
	fsys, path, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, path)
}

// Exists reports whether path can be opened.
func Exists(path string) bool {
	f, err := Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Glob returns the files matching pattern.
func Glob(pattern string) ([]string, error) {
	fsys, pattern, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, pattern)
}

// ReadDir lists a directory below data/.
func ReadDir(path string) ([]fs.DirEntry, error) {
	fsys, path, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(fsys, path)
}

// Sub returns the file system rooted at dir.
func Sub(dir string) (fs.FS, error) {
	fsys, dir, err := resolve(dir)
	if err != nil {
		return nil, err
	}
	return fs.Sub(fsys, dir)
}

// Stat returns the file info of path.
func Stat(path string) (fs.FileInfo, error) {
	fsys, path, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.Stat(fsys, path)
}
