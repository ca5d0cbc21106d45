// Package fileio reads text files and reports failures as errors.
package fileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrOutsideRoot is returned when a name resolves outside Reader.Root.
	ErrOutsideRoot = errors.New("path escapes root")
	// ErrTooLarge is returned when a file exceeds Reader.MaxBytes.
	ErrTooLarge = errors.New("file too large")
	// ErrIsDirectory is returned when the target is a directory.
	ErrIsDirectory = errors.New("is a directory")
)

// ReadFile returns the contents of path. The returned error wraps the
// underlying *fs.PathError, so errors.Is(err, fs.ErrNotExist) works.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

// Reader reads files below Root, refusing anything larger than MaxBytes.
type Reader struct {
	Root     string
	MaxBytes int64
}

// Resolve maps name to a path inside Root. Absolute names are accepted only
// if they already lie inside Root. Symlinks are followed before the check, so
// a link inside Root that points elsewhere is rejected. A name that does not
// exist yet is checked lexically and left for the open to fail.
func (r Reader) Resolve(name string) (string, error) {
	root, err := filepath.Abs(r.Root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", r.Root, err)
	}

	target := name
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	target = filepath.Clean(target)

	if !within(root, target) {
		return "", fmt.Errorf("%q: %w", name, ErrOutsideRoot)
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", r.Root, err)
	}
	realTarget, err := filepath.EvalSymlinks(target)
	if errors.Is(err, fs.ErrNotExist) {
		return target, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", name, err)
	}
	if !within(realRoot, realTarget) {
		return "", fmt.Errorf("%q: %w", name, ErrOutsideRoot)
	}
	return realTarget, nil
}

func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Read returns the contents of name resolved against Root.
func (r Reader) Read(name string) (string, error) {
	path, err := r.Resolve(name)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: %w", name, ErrIsDirectory)
	}
	if r.MaxBytes > 0 && info.Size() > r.MaxBytes {
		return "", fmt.Errorf("%s is %d bytes, limit %d: %w", name, info.Size(), r.MaxBytes, ErrTooLarge)
	}

	src := io.Reader(f)
	if r.MaxBytes > 0 {
		// The file may grow between Stat and Read.
		src = io.LimitReader(f, r.MaxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if r.MaxBytes > 0 && int64(len(data)) > r.MaxBytes {
		return "", fmt.Errorf("%s exceeds limit %d: %w", name, r.MaxBytes, ErrTooLarge)
	}
	return string(data), nil
}
