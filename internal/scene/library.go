package scene

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Library is a directory-backed cache of scenes, keyed by scene name
// (file name without extension).
type Library struct {
	dir    string
	mu     sync.RWMutex
	scenes map[string]*Scene
	group  singleflight.Group
}

// NewLibrary creates a Library over dir. Nothing is loaded until Get or
// LoadAll is called.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:    dir,
		scenes: make(map[string]*Scene),
	}
}

// Dir returns the scene directory.
func (l *Library) Dir() string { return l.dir }

// Get returns the scene called name, loading it on first access.
// Concurrent first requests for the same scene share one load.
func (l *Library) Get(name string) (*Scene, error) {
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid scene name %q", name)
	}

	l.mu.RLock()
	sc, ok := l.scenes[name]
	l.mu.RUnlock()
	if ok {
		return sc, nil
	}

	v, err, _ := l.group.Do(name, func() (any, error) {
		l.mu.RLock()
		cached, ok := l.scenes[name]
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		path, err := l.find(name)
		if err != nil {
			return nil, err
		}
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		l.store(name, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Scene), nil
}

// find returns the path of the first scene file called name.
func (l *Library) find(name string) (string, error) {
	for _, ext := range Extensions {
		path := filepath.Join(l.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("scene %q in %s: %w", name, l.dir, ErrSceneNotFound)
}

func (l *Library) store(name string, sc *Scene) {
	l.mu.Lock()
	l.scenes[name] = sc
	l.mu.Unlock()
}

// Names returns the names of the loaded scenes.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.scenes))
	for name := range l.scenes {
		names = append(names, name)
	}
	return names
}

// LoadAll loads every scene file in the directory with up to workers
// loads in parallel (workers <= 0 means no limit). Broken files are
// logged and skipped; it returns the number of scenes loaded.
func (l *Library) LoadAll(ctx context.Context, workers int) (int, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("scene directory does not exist, skipping preload", "dir", l.dir)
			return 0, nil
		}
		return 0, fmt.Errorf("stat scene dir: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("scene dir is not a directory: %s", l.dir)
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return 0, fmt.Errorf("reading scene dir: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	var (
		mu     sync.Mutex
		loaded int
	)
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSceneFile(entry.Name()) {
			continue
		}
		name := NameOf(entry.Name())
		if seen[name] {
			continue
		}
		seen[name] = true

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := l.Get(name); err != nil {
				slog.Warn("failed to load scene", "scene", name, "error", err)
				return nil
			}
			mu.Lock()
			loaded++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return loaded, fmt.Errorf("loading scenes: %w", err)
	}

	slog.Info("scenes preloaded", "count", loaded, "dir", l.dir)
	return loaded, nil
}
