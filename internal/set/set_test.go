package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
	"github.com/udisondev/grimset/internal/testutil"
)

func TestNewKeepsLoadOrder(t *testing.T) {
	s := New("mo", []sector.Def{
		testutil.UnitSquare(3, "c", sector.TypeWalk, 0, 0),
		testutil.UnitSquare(1, "a", sector.TypeCamera, 0, 0),
		testutil.UnitSquare(2, "b", sector.TypeHot, 0, 0),
	})

	require.Equal(t, 3, s.Len())
	assert.Equal(t, "mo", s.Name())
	assert.Equal(t, "c", s.Sector(0).Name())
	assert.Equal(t, "a", s.Sector(1).Name())
	assert.Equal(t, "b", s.Sector(2).Name())
	assert.Nil(t, s.Sector(3))
	assert.Nil(t, s.Sector(-1))

	all := s.Sectors()
	all[0] = nil
	assert.NotNil(t, s.Sector(0), "Sectors must return a copy")
}

func TestFindPointSector(t *testing.T) {
	s := New("scene", []sector.Def{
		testutil.UnitSquare(1, "cam", sector.TypeCamera, 0, 0),
		testutil.UnitSquare(2, "walk", sector.TypeWalk, 0, 0),
		testutil.UnitSquare(3, "hot", sector.TypeHot, 5, 5),
	})
	inside := geom.NewVector(0.5, 0.5, 0)

	tests := []struct {
		name string
		p    geom.Vector
		mask sector.Type
		want string
	}{
		{"walk mask", inside, sector.TypeWalk, "walk"},
		{"camera mask", inside, sector.TypeCamera, "cam"},
		{"any mask first in load order", inside, sector.TypeAny, "cam"},
		{"hot elsewhere", geom.NewVector(5.5, 5.5, 0), sector.TypeHot, "hot"},
		{"wrong type", inside, sector.TypeHot, ""},
		{"none mask matches nothing", inside, sector.TypeNone, ""},
		{"outside everything", geom.NewVector(100, 100, 0), sector.TypeAny, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.FindPointSector(tt.p, tt.mask)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name())
		})
	}
}

func TestFindPointSectorLoadOrderTieBreak(t *testing.T) {
	for _, cell := range []float64{0, DefaultGridCellSize, 0.25} {
		s := New("tie", []sector.Def{
			testutil.Rect(10, "big", sector.TypeWalk, -5, -5, 10, 10),
			testutil.UnitSquare(11, "small", sector.TypeWalk, 0, 0),
		}, WithGridCellSize(cell))

		for range 10 {
			got := s.FindPointSector(geom.NewVector(0.5, 0.5, 0), sector.TypeWalk)
			require.NotNil(t, got)
			assert.Equal(t, 10, got.ID(), "grid cell %v", cell)
		}
	}
}

func TestFindPointSectorSkipsHidden(t *testing.T) {
	s := New("hidden", []sector.Def{
		testutil.UnitSquare(1, "first", sector.TypeWalk, 0, 0),
		testutil.UnitSquare(2, "second", sector.TypeWalk, 0, 0),
	})
	p := geom.NewVector(0.5, 0.5, 0)

	s.FindSectorByID(1).SetVisible(false)
	got := s.FindPointSector(p, sector.TypeWalk)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.ID())

	s.FindSectorByID(2).SetVisible(false)
	assert.Nil(t, s.FindPointSector(p, sector.TypeWalk))
}

func TestFindPointSectorGridMatchesScan(t *testing.T) {
	var defs []sector.Def
	id := 0
	for x := -6.0; x < 6; x += 1.5 {
		for y := -6.0; y < 6; y += 2 {
			defs = append(defs, testutil.Rect(id, "box", sector.TypeWalk, x, y, 1.5, 2))
			id++
		}
	}
	ramp := sector.Def{
		ID: 999, Name: "ramp", Type: sector.TypeWalk, Visible: true, Height: sector.DefaultHeight,
		Vertices: []geom.Vector{
			geom.NewVector(20, 0, 0), geom.NewVector(22, 0, 2),
			geom.NewVector(22, 2, 2), geom.NewVector(20, 2, 0),
		},
	}
	// Gentle slope z = 0.04x: projecting along its normal shifts off-plane
	// points in XY by up to 0.04 per unit of height.
	slope := sector.Def{
		ID: 998, Name: "slope", Type: sector.TypeWalk, Visible: true, Height: sector.DefaultHeight,
		Vertices: []geom.Vector{
			geom.NewVector(0.5, 8, 0.02), geom.NewVector(3.9, 8, 0.156),
			geom.NewVector(3.9, 10, 0.156), geom.NewVector(0.5, 10, 0.02),
		},
	}
	defs = append(defs, slope, ramp)
	scanned := New("scan", defs, WithGridCellSize(0))

	for _, size := range []float64{1, 4} {
		indexed := New("grid", defs, WithGridCellSize(size))

		for x := -7.0; x <= 23; x += 0.37 {
			for y := -7.0; y <= 11; y += 0.41 {
				for _, z := range []float64{-10, 0, 1, 5, 10} {
					p := geom.NewVector(x, y, z)
					a := indexed.FindPointSector(p, sector.TypeWalk)
					b := scanned.FindPointSector(p, sector.TypeWalk)
					if b == nil {
						assert.Nil(t, a, "cell %v point %v", size, p)
						continue
					}
					require.NotNil(t, a, "cell %v point %v", size, p)
					assert.Equal(t, b.ID(), a.ID(), "cell %v point %v", size, p)
				}
			}
		}

		// Outside the slope's XY box, inside once projected onto its plane.
		p := geom.NewVector(4.1, 9, -10)
		want := scanned.FindPointSector(p, sector.TypeWalk)
		require.NotNil(t, want)
		assert.Equal(t, 998, want.ID())
		got := indexed.FindPointSector(p, sector.TypeWalk)
		require.NotNil(t, got, "cell %v", size)
		assert.Equal(t, 998, got.ID(), "cell %v", size)
	}
}

func TestFindSectorByID(t *testing.T) {
	s := New("ids", []sector.Def{
		testutil.UnitSquare(5, "first", sector.TypeWalk, 0, 0),
		testutil.UnitSquare(5, "duplicate", sector.TypeWalk, 1, 0),
		testutil.UnitSquare(6, "other", sector.TypeWalk, 2, 0),
	})

	got := s.FindSectorByID(5)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Name())
	assert.Equal(t, "other", s.FindSectorByID(6).Name())
	assert.Nil(t, s.FindSectorByID(7))
	assert.Equal(t, 3, s.Len(), "duplicates are kept")
}

func TestFindSectorByName(t *testing.T) {
	s := New("names", []sector.Def{
		testutil.UnitSquare(1, "mo_walk1", sector.TypeWalk, 0, 0),
		testutil.UnitSquare(2, "mo_door_box", sector.TypeSpecial, 1, 0),
		testutil.UnitSquare(3, "mo_walk10", sector.TypeWalk, 2, 0),
	})

	tests := []struct {
		pattern string
		want    int
	}{
		{"mo_walk1", 1},
		{"walk", 1},
		{"door", 2},
		{"walk10", 3},
		{"mo_walk1?", 3},
		{"*door*", 2},
		{"mo_*", 1},
		{"missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := s.FindSectorByName(tt.pattern)
			if tt.want == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID())
		})
	}

	all := s.FindSectorsByName("walk")
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID())
	assert.Equal(t, 3, all[1].ID())
}

func TestMatchName(t *testing.T) {
	assert.True(t, MatchName("tu_hot_box", "hot"))
	assert.True(t, MatchName("tu_hot_box", ""))
	assert.False(t, MatchName("tu_hot_box", "cold"))
	assert.True(t, MatchName("tu_hot_box", "tu_*_box"))
	assert.False(t, MatchName("tu_hot_box", "tu_*"+"_door"))
	assert.True(t, MatchName("weird[name", "[name"), "malformed glob falls back to substring")
}

func TestFindClosestSector(t *testing.T) {
	s := New("closest", []sector.Def{
		testutil.UnitSquare(1, "cam", sector.TypeCamera, 10, 0),
		testutil.UnitSquare(2, "left", sector.TypeWalk, 0, 0),
		testutil.UnitSquare(3, "right", sector.TypeWalk, 3, 0),
	})

	tests := []struct {
		name      string
		p         geom.Vector
		wantID    int
		wantPoint geom.Vector
	}{
		{"inside left", geom.NewVector(0.5, 0.5, 0), 2, geom.NewVector(0.5, 0.5, 0)},
		{"near left", geom.NewVector(1.4, 0.5, 0), 2, geom.NewVector(1, 0.5, 0)},
		{"near right", geom.NewVector(2.6, 0.5, 0), 3, geom.NewVector(3, 0.5, 0)},
		{"camera sector ignored", geom.NewVector(10.5, 0.5, 0), 3, geom.NewVector(4, 0.5, 0)},
		{"equidistant picks first", geom.NewVector(2, 0.5, 0), 2, geom.NewVector(1, 0.5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec, pt, ok := s.FindClosestSector(tt.p)
			require.True(t, ok)
			assert.Equal(t, tt.wantID, sec.ID())
			testutil.AssertVectorNear(t, tt.wantPoint, pt)
		})
	}
}

func TestFindClosestSectorNoWalkBoxes(t *testing.T) {
	s := New("nowalk", []sector.Def{
		testutil.UnitSquare(1, "cam", sector.TypeCamera, 0, 0),
		{ID: 2, Name: "empty", Type: sector.TypeWalk, Visible: true},
	})

	sec, pt, ok := s.FindClosestSector(geom.NewVector(1, 2, 3))
	assert.False(t, ok)
	assert.Nil(t, sec)
	assert.Equal(t, geom.NewVector(1, 2, 3), pt)

	empty := New("empty", nil)
	_, _, ok = empty.FindClosestSector(geom.Vector{})
	assert.False(t, ok)
}

func TestCountByType(t *testing.T) {
	s := New("count", []sector.Def{
		testutil.UnitSquare(1, "a", sector.TypeWalk, 0, 0),
		testutil.UnitSquare(2, "b", sector.TypeWalk, 1, 0),
		testutil.UnitSquare(3, "c", sector.TypeHot, 2, 0),
	})

	assert.Equal(t, map[sector.Type]int{sector.TypeWalk: 2, sector.TypeHot: 1}, s.CountByType())
}

func TestMalformedSectorsDoNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		s := New("broken", []sector.Def{
			{ID: 1, Name: "none", Type: sector.TypeWalk, Visible: true},
			{ID: 2, Name: "point", Type: sector.TypeWalk, Visible: true, Vertices: []geom.Vector{geom.NewVector(1, 1, 0)}},
			testutil.UnitSquare(3, "ok", sector.TypeWalk, 0, 0),
		})
		s.FindPointSector(geom.NewVector(0.5, 0.5, 0), sector.TypeAny)
		s.FindClosestSector(geom.NewVector(5, 5, 0))
		s.ShrinkAll(0.3)
		s.UnshrinkAll()
	})
}

func TestSetSectorVisible(t *testing.T) {
	s := New("vis", testutil.TwoBoxScene())

	assert.True(t, s.SetSectorVisible(1001, false))
	assert.False(t, s.FindSectorByID(1001).Visible())

	assert.True(t, s.SetSectorVisibleByName("right", true))
	assert.True(t, s.FindSectorByID(1001).Visible())

	assert.False(t, s.SetSectorVisible(77, false))
	assert.False(t, s.SetSectorVisibleByName("nowhere", false))
	assert.True(t, s.FindSectorByID(1000).Visible())
}
