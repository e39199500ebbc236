package nav

import "strconv"

// RefKind tells how a SectorRef identifies its sector.
type RefKind uint8

const (
	RefAbsent RefKind = iota // no sector given
	RefID                    // numeric sector id
	RefName                  // sector name pattern
)

// SectorRef is a sector handle as scripts pass it: a numeric id, a name,
// or nothing at all. It is resolved against the current scene by
// Navigator.Resolve.
type SectorRef struct {
	Kind RefKind
	ID   int
	Name string
}

// RefByID returns a reference to the sector with the given id.
func RefByID(id int) SectorRef {
	return SectorRef{Kind: RefID, ID: id}
}

// RefByName returns a reference to the first sector matching name.
func RefByName(name string) SectorRef {
	return SectorRef{Kind: RefName, Name: name}
}

// IsAbsent reports whether the reference names no sector.
func (r SectorRef) IsAbsent() bool { return r.Kind == RefAbsent }

func (r SectorRef) String() string {
	switch r.Kind {
	case RefID:
		return "#" + strconv.Itoa(r.ID)
	case RefName:
		return strconv.Quote(r.Name)
	default:
		return "<absent>"
	}
}
