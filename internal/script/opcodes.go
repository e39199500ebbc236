package script

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/nav"
	"github.com/udisondev/grimset/internal/sector"
)

// sectorOpcodes is the table of script functions backed by sector queries.
var sectorOpcodes = map[string]Opcode{
	"GetPointSector":        getPointSector,
	"GetActorSector":        getActorSector,
	"IsActorInSector":       isActorInSector,
	"IsPointInSector":       isPointInSector,
	"GetSectorOppositeEdge": getSectorOppositeEdge,
	"MakeSectorActive":      makeSectorActive,
	"ShrinkBoxes":           shrinkBoxes,
	"UnShrinkBoxes":         unshrinkBoxes,
	"GetShrinkPos":          getShrinkPos,
}

// GetPointSector(x, y, z [, type]) -> id, name, type
func getPointSector(m *Machine, args []Value) ([]Value, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return nil, err
	}
	mask, err := typeArg(arg(args, 3))
	if err != nil {
		return nil, err
	}
	return sectorResult(m.nav.ActorCurrentSector(p, mask)), nil
}

// GetActorSector(actor [, type]) -> id, name, type
func getActorSector(m *Machine, args []Value) ([]Value, error) {
	a, err := actorArg(arg(args, 0))
	if err != nil {
		return nil, err
	}
	mask, err := typeArg(arg(args, 1))
	if err != nil {
		return nil, err
	}
	return sectorResult(m.nav.ActorCurrentSector(a.Pos(), mask)), nil
}

// IsActorInSector(actor, name) -> id, name, type
func isActorInSector(m *Machine, args []Value) ([]Value, error) {
	a, err := actorArg(arg(args, 0))
	if err != nil {
		return nil, err
	}
	name, err := stringArg(arg(args, 1))
	if err != nil {
		return nil, err
	}
	return sectorResult(m.nav.ActorInSectorByName(a.Pos(), name)), nil
}

// IsPointInSector(x, y, z, name) -> id, name, type
func isPointInSector(m *Machine, args []Value) ([]Value, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return nil, err
	}
	name, err := stringArg(arg(args, 3))
	if err != nil {
		return nil, err
	}
	return sectorResult(m.nav.ActorInSectorByName(p, name)), nil
}

// GetSectorOppositeEdge(actor, name) -> x, y, z
func getSectorOppositeEdge(m *Machine, args []Value) ([]Value, error) {
	a, err := actorArg(arg(args, 0))
	if err != nil {
		return nil, err
	}
	name, err := stringArg(arg(args, 1))
	if err != nil {
		return nil, err
	}
	p, ok := m.nav.OppositeEdgePoint(a, name)
	if !ok {
		return nil, nil
	}
	return pointResult(p), nil
}

// MakeSectorActive(sector, visible). Any non-nil visible activates.
func makeSectorActive(m *Machine, args []Value) ([]Value, error) {
	ref, err := refArg(arg(args, 0))
	if err != nil {
		return nil, err
	}
	m.nav.SetSectorVisible(ref, !arg(args, 1).IsNil())
	return nil, nil
}

// ShrinkBoxes(margin). A non-number margin is ignored, as legacy scripts
// expect.
func shrinkBoxes(m *Machine, args []Value) ([]Value, error) {
	margin, ok := arg(args, 0).Number()
	if !ok {
		slog.Debug("ShrinkBoxes: margin is not a number", "arg", arg(args, 0).String())
		return nil, nil
	}
	if s := m.nav.Set(); s != nil {
		s.ShrinkAll(margin)
	}
	return nil, nil
}

// UnShrinkBoxes()
func unshrinkBoxes(m *Machine, _ []Value) ([]Value, error) {
	if s := m.nav.Set(); s != nil {
		s.UnshrinkAll()
	}
	return nil, nil
}

// GetShrinkPos(x, y, z, margin) -> x, y, z
func getShrinkPos(m *Machine, args []Value) ([]Value, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return nil, err
	}
	margin, err := numberArg(arg(args, 3))
	if err != nil {
		return nil, err
	}
	nearest, ok := m.nav.ShrinkAndFindNearest(p, margin)
	if !ok {
		return nil, nil
	}
	return pointResult(nearest), nil
}

func numberArg(v Value) (float64, error) {
	f, ok := v.Number()
	if !ok {
		return 0, fmt.Errorf("%w: expected number, got %s", ErrBadArgument, v.Kind())
	}
	return f, nil
}

func stringArg(v Value) (string, error) {
	s, ok := v.Str()
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %s", ErrBadArgument, v.Kind())
	}
	return s, nil
}

func actorArg(v Value) (nav.Actor, error) {
	a, ok := v.Actor()
	if !ok {
		return nil, fmt.Errorf("%w: expected actor, got %s", ErrBadArgument, v.Kind())
	}
	return a, nil
}

func pointArg(args []Value, from int) (geom.Vector, error) {
	var xyz [3]float64
	for i := range xyz {
		f, err := numberArg(arg(args, from+i))
		if err != nil {
			return geom.Vector{}, fmt.Errorf("coordinate %d: %w", i, err)
		}
		xyz[i] = f
	}
	return geom.NewVector(xyz[0], xyz[1], xyz[2]), nil
}

// typeArg turns a script type code into a query mask. Scripts omit the
// type for walk boxes and pass the "none" code 0 to mean any type.
func typeArg(v Value) (sector.Type, error) {
	switch v.Kind() {
	case KindNil:
		return sector.TypeWalk, nil
	case KindNumber:
		f, _ := v.Number()
		if t := sector.Type(int(f)); t != sector.TypeNone {
			return t, nil
		}
		return sector.TypeAny, nil
	case KindString:
		s, _ := v.Str()
		t, err := sector.ParseType(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrBadArgument, err)
		}
		if t == sector.TypeNone {
			return sector.TypeAny, nil
		}
		return t, nil
	default:
		return 0, fmt.Errorf("%w: expected sector type, got %s", ErrBadArgument, v.Kind())
	}
}

// refArg resolves a script sector handle: a number is an id, a string a
// name pattern.
func refArg(v Value) (nav.SectorRef, error) {
	switch v.Kind() {
	case KindNil:
		return nav.SectorRef{}, nil
	case KindNumber:
		f, _ := v.Number()
		return nav.RefByID(int(f)), nil
	case KindString:
		s, _ := v.Str()
		return nav.RefByName(s), nil
	default:
		return nav.SectorRef{}, fmt.Errorf("%w: expected sector id or name, got %s", ErrBadArgument, v.Kind())
	}
}

func sectorResult(sec *sector.Sector) []Value {
	if sec == nil {
		return nil
	}
	return []Value{Number(float64(sec.ID())), String(sec.Name()), Number(float64(sec.Type()))}
}

func pointResult(p geom.Vector) []Value {
	return []Value{Number(p.X), Number(p.Y), Number(p.Z)}
}
