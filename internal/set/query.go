package set

import (
	"path"
	"strings"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
)

// FindPointSector returns the first sector, in load order, that is visible,
// has a type matching mask and contains p. It returns nil when none does.
//
// mask is a bit mask: sector.TypeWalk also matches funnel boxes and
// sector.TypeAny matches every typed sector. Legacy callers that pass the
// "none" type to mean "any type" must translate it to sector.TypeAny.
func (s *Set) FindPointSector(p geom.Vector, mask sector.Type) *sector.Sector {
	if s.grid == nil {
		for _, sec := range s.sectors {
			if pointMatches(sec, p, mask) {
				return sec
			}
		}
		return nil
	}

	for _, idx := range s.grid.candidates(p) {
		if sec := s.sectors[idx]; pointMatches(sec, p, mask) {
			return sec
		}
	}
	return nil
}

func pointMatches(sec *sector.Sector, p geom.Vector, mask sector.Type) bool {
	return sec.Type().Matches(mask) && sec.Visible() && sec.IsPointInSector(p)
}

// FindSectorByID returns the first sector loaded with id, or nil.
func (s *Set) FindSectorByID(id int) *sector.Sector {
	idx, ok := s.byID[id]
	if !ok {
		return nil
	}
	return s.sectors[idx]
}

// FindSectorByName returns the first sector, in load order, whose name
// matches pattern, or nil. See MatchName for the matching rules.
func (s *Set) FindSectorByName(pattern string) *sector.Sector {
	for _, sec := range s.sectors {
		if MatchName(sec.Name(), pattern) {
			return sec
		}
	}
	return nil
}

// FindSectorsByName returns every sector whose name matches pattern, in load order.
func (s *Set) FindSectorsByName(pattern string) []*sector.Sector {
	var result []*sector.Sector
	for _, sec := range s.sectors {
		if MatchName(sec.Name(), pattern) {
			result = append(result, sec)
		}
	}
	return result
}

// MatchName reports whether a sector name matches a script pattern.
// Legacy content relies on partial names, so a plain pattern matches any
// name containing it. A pattern with wildcards (*, ?, [...]) is matched
// against the whole name instead.
func MatchName(name, pattern string) bool {
	if strings.ContainsAny(pattern, "*?[") {
		ok, err := path.Match(pattern, name)
		if err == nil {
			return ok
		}
		// Битый шаблон: откатываемся к поиску подстроки.
	}
	return strings.Contains(name, pattern)
}

// FindClosestSector returns the visible walk box nearest to p, together
// with its nearest point to p. Shrunk geometry is used while a shrink is
// applied. The first sector in load order wins ties; ok is false when the
// scene has no usable walk box.
func (s *Set) FindClosestSector(p geom.Vector) (sec *sector.Sector, closest geom.Vector, ok bool) {
	closest = p
	var minDist float64

	for _, cand := range s.sectors {
		if !cand.Type().IsWalk() || !cand.Visible() || cand.NumVertices() == 0 {
			continue
		}
		pt := cand.NearestPoint(p)
		dist := pt.DistanceSquared(p)
		if sec == nil || dist < minDist {
			sec, closest, minDist = cand, pt, dist
		}
	}

	return sec, closest, sec != nil
}
