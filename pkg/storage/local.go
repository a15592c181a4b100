package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"contact-intake/pkg/config"
)

// Local stores objects as files below a root directory. It exists for
// development and for reading exported stores; keys map directly to paths.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (l *Local) Backend() string { return string(config.BackendLocal) }

func (l *Local) Put(_ context.Context, obj Object) (Location, error) {
	path, err := l.path(obj.Key)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Location{}, fmt.Errorf("%w: mkdir: %w", ErrWrite, err)
	}
	if err := os.WriteFile(path, obj.Body, 0o600); err != nil {
		return Location{}, fmt.Errorf("%w: write %s: %w", ErrWrite, obj.Key, err)
	}
	return Location{Path: obj.Key}, nil
}

// List returns the keys under prefix in lexical order.
func (l *Local) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("local list %s: %w", prefix, err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (l *Local) Get(_ context.Context, key string) ([]byte, error) {
	path, err := l.path(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// path resolves key below root, refusing keys that would escape it.
func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || clean == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(l.root, clean), nil
}
