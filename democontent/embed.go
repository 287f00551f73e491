// Package democontent embeds the sample content written by `soundctl init`.
//
// The content directory holds a library.yaml manifest with two movies that
// export sounds under the same name, plus scripts showing owner scoping.
package democontent

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed content
var content embed.FS

// ErrExists is returned by WriteTo when a demo file is already present.
var ErrExists = errors.New("demo content already exists")

// ContentFS returns the demo content directory.
func ContentFS() fs.FS {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		panic(err)
	}
	return sub
}

// Scripts returns the names of the demo scripts.
func Scripts() []string {
	names, _ := fs.Glob(ContentFS(), "*.lua")
	return names
}

// WriteTo copies the demo content into dir. Existing files are never
// overwritten: if any demo file is present nothing is written.
func WriteTo(dir string) ([]string, error) {
	fsys := ContentFS()

	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		dst := filepath.Join(dir, filepath.FromSlash(f))
		if _, err := os.Stat(dst); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrExists, dst)
		}
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return written, err
		}
		dst := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
			return written, fmt.Errorf("creating content directory: %w", err)
		}
		if err := os.WriteFile(dst, data, 0600); err != nil {
			return written, fmt.Errorf("writing %s: %w", dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}
