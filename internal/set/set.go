// Package set implements the spatial index of one scene: the ordered
// collection of its sectors with type-filtered point queries, name and id
// lookups, nearest walk-box search and the scene-wide shrink state.
package set

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/udisondev/grimset/internal/sector"
)

var (
	// ErrShrinkActive is returned when a shrink transaction is started
	// while another one is still open.
	ErrShrinkActive = errors.New("shrink transaction already active")

	// ErrFingerprintMismatch is returned by Restore when the saved state
	// was taken from different scene geometry.
	ErrFingerprintMismatch = errors.New("scene geometry fingerprint mismatch")
)

// Set owns all sectors of one scene. Sectors keep their load order, which
// decides every "first match" query. Sector pointers handed out by a Set
// are valid only while the Set (the scene) is loaded.
//
// A Set is not safe for concurrent use: it is driven from the simulation
// tick only.
type Set struct {
	name    string
	sectors []*sector.Sector
	byID    map[int]int

	grid     *grid
	cellSize float64
	strict   bool

	shrinkMargin float64
	shrunk       bool
	tx           *ShrinkTx
}

// Option configures a Set.
type Option func(*Set)

// WithGridCellSize sets the cell size of the point-query grid.
// A size <= 0 disables the grid (every query scans all sectors).
func WithGridCellSize(size float64) Option {
	return func(s *Set) { s.cellSize = size }
}

// WithStrict makes misuse of shrink transactions panic instead of being
// logged, for debug builds and tests.
func WithStrict(strict bool) Option {
	return func(s *Set) { s.strict = strict }
}

// DefaultGridCellSize is the default grid cell size in world units.
const DefaultGridCellSize = 4.0

// New builds the Set of scene name from the sector definitions, in order.
// Duplicate ids and malformed polygons are logged and kept; lookups by id
// return the first sector loaded with that id.
func New(name string, defs []sector.Def, opts ...Option) *Set {
	s := &Set{
		name:     name,
		sectors:  make([]*sector.Sector, 0, len(defs)),
		byID:     make(map[int]int, len(defs)),
		cellSize: DefaultGridCellSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, def := range defs {
		if len(def.Vertices) < 3 {
			slog.Warn("sector with too few vertices",
				"set", name, "id", def.ID, "name", def.Name, "vertices", len(def.Vertices))
		}
		sec := sector.New(def)
		idx := len(s.sectors)
		s.sectors = append(s.sectors, sec)

		if prev, dup := s.byID[def.ID]; dup {
			slog.Warn("duplicate sector id",
				"set", name, "id", def.ID, "name", def.Name, "first", s.sectors[prev].Name())
			continue
		}
		s.byID[def.ID] = idx
	}

	if s.cellSize > 0 {
		s.grid = buildGrid(s.sectors, s.cellSize)
	}

	slog.Debug("set loaded", "set", name, "sectors", len(s.sectors))
	return s
}

// Name returns the scene name.
func (s *Set) Name() string { return s.name }

// Len returns the number of sectors.
func (s *Set) Len() int { return len(s.sectors) }

// Sector returns the sector at load index i, or nil when out of range.
func (s *Set) Sector(i int) *sector.Sector {
	if i < 0 || i >= len(s.sectors) {
		return nil
	}
	return s.sectors[i]
}

// Sectors returns the sectors in load order. The slice is a copy.
func (s *Set) Sectors() []*sector.Sector {
	return slices.Clone(s.sectors)
}

// CountByType returns how many sectors of each type the scene has.
func (s *Set) CountByType() map[sector.Type]int {
	counts := make(map[sector.Type]int)
	for _, sec := range s.sectors {
		counts[sec.Type()]++
	}
	return counts
}

// SetSectorVisible toggles the visibility of the sector with the given id.
// It reports whether such a sector exists; a miss is silently ignored.
func (s *Set) SetSectorVisible(id int, visible bool) bool {
	sec := s.FindSectorByID(id)
	if sec == nil {
		return false
	}
	sec.SetVisible(visible)
	return true
}

// SetSectorVisibleByName is SetSectorVisible for the first sector whose
// name matches pattern (see MatchName).
func (s *Set) SetSectorVisibleByName(pattern string, visible bool) bool {
	sec := s.FindSectorByName(pattern)
	if sec == nil {
		return false
	}
	sec.SetVisible(visible)
	return true
}
