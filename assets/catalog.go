// Package assets exposes the files bundled into the dotfiles binary: shell
// scripts, config templates and the dotfiles themselves.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/kbukum/dotfiles/errors"
)

//go:embed files
var bundled embed.FS

// ErrNotFound is wrapped by Get when an asset does not exist.
var ErrNotFound = fs.ErrNotExist

// Catalog is a read-only set of named assets. Names are slash-separated
// paths relative to the catalog root.
type Catalog struct {
	fsys fs.FS
}

// New wraps fsys as a Catalog.
func New(fsys fs.FS) *Catalog {
	return &Catalog{fsys: fsys}
}

// Default returns the catalog bundled into the binary.
func Default() *Catalog {
	sub, err := fs.Sub(bundled, "files")
	if err != nil {
		panic(fmt.Sprintf("assets: bundled files missing: %v", err))
	}
	return New(sub)
}

// Get returns the contents of the named asset. Each call returns a fresh
// copy the caller may modify.
func (c *Catalog) Get(name string) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("asset %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("asset %q: %w", name, err)
	}
	return data, nil
}

// Names lists every regular file in the catalog in lexical walk order. A
// directory that cannot be read fails the listing with a storage error.
func (c *Catalog) Names() ([]string, error) {
	var names []string
	err := fs.WalkDir(c.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Storage(path, fmt.Errorf("listing assets: %w", err))
		}
		if d.Type().IsRegular() {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Match returns the names matching a glob pattern, where '*' stops at '/'
// and '**' crosses it.
func (c *Catalog) Match(pattern string) ([]string, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, errors.InvalidInput("pattern", fmt.Sprintf("bad glob %q: %v", pattern, err))
	}
	names, err := c.Names()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range names {
		if g.Match(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// Extract writes the named asset to dest, creating parent directories. A
// zero perm selects 0755 for shell scripts and 0644 otherwise.
func (c *Catalog) Extract(name, dest string, perm fs.FileMode) error {
	data, err := c.Get(name)
	if err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
		if strings.HasSuffix(name, ".sh") {
			perm = 0o755
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Storage(dest, err)
	}
	if err := os.WriteFile(dest, data, perm); err != nil {
		return errors.Storage(dest, err)
	}
	return os.Chmod(dest, perm)
}
