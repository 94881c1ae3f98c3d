// Package source provides the resource content providers the resolver and
// bundler read from.
//
// A provider maps a resource identifier to its textual content or reports
// ErrNotFound. Identifiers are opaque; providers decide how they map onto
// storage.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned by providers when a resource does not exist.
var ErrNotFound = errors.New("resource not found")

// Provider supplies resource content by identifier.
type Provider interface {
	// Content returns the full text of id, or an error wrapping ErrNotFound.
	Content(id string) (string, error)
}

// FSProvider reads resources from an fs.FS.
type FSProvider struct {
	fsys fs.FS
}

// NewFS creates a provider over fsys.
func NewFS(fsys fs.FS) *FSProvider {
	return &FSProvider{fsys: fsys}
}

// NewDir creates a provider rooted at a directory on disk.
func NewDir(root string) *FSProvider {
	return NewFS(os.DirFS(root))
}

// Content implements Provider.
// One leading slash is stripped so classpath-style ids ("/lib/a.js") resolve
// relative to the root.
func (p *FSProvider) Content(id string) (string, error) {
	name := strings.TrimPrefix(id, "/")
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isDirError(p.fsys, name) {
			return "", fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", id, err)
	}
	return string(data), nil
}

func isDirError(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

// MapProvider serves resources from memory.
type MapProvider struct {
	files map[string]string
}

// NewMap creates a provider over a copy of files.
func NewMap(files map[string]string) *MapProvider {
	m := make(map[string]string, len(files))
	for k, v := range files {
		m[k] = v
	}
	return &MapProvider{files: m}
}

// Content implements Provider.
func (p *MapProvider) Content(id string) (string, error) {
	content, ok := p.files[id]
	if !ok {
		return "", fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return content, nil
}

// Layered consults providers in order; the first that has the resource wins.
// It is used to overlay a development tree on top of packaged resources.
type Layered struct {
	layers []Provider
}

// NewLayered creates a layered provider. Nil layers are skipped.
func NewLayered(layers ...Provider) *Layered {
	l := &Layered{}
	for _, p := range layers {
		if p != nil {
			l.layers = append(l.layers, p)
		}
	}
	return l
}

// Content implements Provider.
func (l *Layered) Content(id string) (string, error) {
	for _, p := range l.layers {
		content, err := p.Content(id)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("%s: %w", id, ErrNotFound)
}

// IsNotFound reports whether err signals a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
