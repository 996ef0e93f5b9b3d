// Package media stores pictures in a directory acting as the user's media
// library.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Library is a directory of saved pictures
type Library struct {
	dir string
}

// NewLibrary returns a library rooted at dir
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the library directory
func (l *Library) Dir() string {
	return l.dir
}

// RequestPermission reports whether files can be written into the library
func (l *Library) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		if os.IsPermission(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create media library: %w", err)
	}

	probe, err := os.CreateTemp(l.dir, ".probe-*")
	if err != nil {
		if os.IsPermission(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to write to media library: %w", err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return true, nil
}

// Save copies the file at locator into the library. An existing file of the
// same name is never overwritten.
func (l *Library) Save(ctx context.Context, locator string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.Open(locator)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", locator, err)
	}
	defer src.Close()

	dst, err := l.create(filepath.Base(locator))
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return fmt.Errorf("failed to copy into media library: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return fmt.Errorf("failed to copy into media library: %w", err)
	}
	return nil
}

// create opens a new file named base, or base with a numeric suffix when
// that name is taken
func (l *Library) create(base string) (*os.File, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := base
	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(l.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create file in media library: %w", err)
		}
		name = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
}
