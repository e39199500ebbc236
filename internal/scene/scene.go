// Package scene loads scene sector geometry from YAML and glTF files.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/udisondev/grimset/internal/sector"
	"github.com/udisondev/grimset/internal/set"
)

var (
	// ErrUnknownFormat is returned for files that are not scene files.
	ErrUnknownFormat = errors.New("unknown scene file format")

	// ErrSceneNotFound is returned by Library.Get for names with no file.
	ErrSceneNotFound = errors.New("scene not found")
)

// Scene is the sector list of one scene file, in file order.
type Scene struct {
	Name    string
	Sectors []sector.Def
}

// Build returns the Set of the scene.
func (sc *Scene) Build(opts ...set.Option) *set.Set {
	return set.New(sc.Name, sc.Sectors, opts...)
}

// Extensions lists the file extensions LoadFile understands.
var Extensions = []string{".yaml", ".yml", ".gltf", ".glb"}

// IsSceneFile reports whether path has a scene file extension.
func IsSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// NameOf returns the scene name of a file: its base name without extension.
func NameOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadFile loads a scene file, picking the loader by extension.
func LoadFile(path string) (*Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading scene %s: %w", path, err)
		}
		sc, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing scene %s: %w", path, err)
		}
		if sc.Name == "" {
			sc.Name = NameOf(path)
		}
		return sc, nil

	case ".gltf", ".glb":
		sc, err := LoadGLTF(path)
		if err != nil {
			return nil, err
		}
		return sc, nil

	default:
		return nil, fmt.Errorf("loading scene %s: %w", path, ErrUnknownFormat)
	}
}
