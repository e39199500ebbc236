// Package sector implements scene sectors: named, typed convex regions
// classifying points as walkable, camera-restricted, special or hot,
// with a temporary inward shrink used as a collision margin.
package sector

import (
	"fmt"
	"strconv"
	"strings"
)

// Type classifies a sector. Values are bit flags: callers test them both
// as exact values and as masks (see Matches).
type Type int

// Sector type codes as used by scene files and script opcodes.
const (
	TypeNone    Type = 0
	TypeWalk    Type = 0x1000
	TypeFunnel  Type = 0x1100 // walk box that also funnels actors
	TypeCamera  Type = 0x2000
	TypeSpecial Type = 0x4000
	TypeHot     Type = 0x8000

	// TypeAny matches every typed sector.
	TypeAny = TypeWalk | TypeFunnel | TypeCamera | TypeSpecial | TypeHot
)

// NoHeightLimit is the height scene files use for sectors without a
// vertical extent; heights at or above it disable the plane-distance check.
const NoHeightLimit = 9000.0

// DefaultHeight is the height assigned when a scene omits it.
const DefaultHeight = 9999.0

// Matches reports whether t shares any bit with mask.
func (t Type) Matches(mask Type) bool {
	return t&mask != 0
}

// IsWalk reports whether the sector takes part in walk-box navigation.
func (t Type) IsWalk() bool {
	return t&TypeWalk != 0
}

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeWalk:
		return "walk"
	case TypeFunnel:
		return "funnel"
	case TypeCamera:
		return "camera"
	case TypeSpecial:
		return "special"
	case TypeHot:
		return "hot"
	default:
		return fmt.Sprintf("0x%x", int(t))
	}
}

// ParseType parses a sector type name ("walk", "camera", ...) or a
// numeric code ("4096", "0x1000"). An empty string is TypeWalk.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "walk":
		return TypeWalk, nil
	case "none":
		return TypeNone, nil
	case "funnel":
		return TypeFunnel, nil
	case "camera":
		return TypeCamera, nil
	case "special":
		return TypeSpecial, nil
	case "hot":
		return TypeHot, nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return TypeNone, fmt.Errorf("parse sector type %q: %w", s, err)
	}
	return Type(n), nil
}
