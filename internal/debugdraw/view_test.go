package debugdraw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
	"github.com/udisondev/grimset/internal/set"
	"github.com/udisondev/grimset/internal/testutil"
)

func TestViewProject(t *testing.T) {
	v := View{Center: geom.NewVector(1, 1, 0), Scale: 10, Width: 200, Height: 100}

	x, y := v.Project(geom.NewVector(1, 1, 5))
	assert.Equal(t, float32(100), x)
	assert.Equal(t, float32(50), y)

	x, y = v.Project(geom.NewVector(2, 2, 0))
	assert.Equal(t, float32(110), x)
	assert.Equal(t, float32(40), y, "screen y grows downwards")

	testutil.AssertVectorNear(t, geom.NewVector(2, 2, 0), v.Unproject(110, 40))
	assert.Equal(t, v.Center, View{Center: v.Center}.Unproject(3, 4))
}

func TestFit(t *testing.T) {
	s := set.New("two", testutil.TwoBoxScene())
	v := Fit(s, 200, 100)

	testutil.AssertVectorNear(t, geom.NewVector(1, 0.5, 0), v.Center)
	assert.InDelta(t, 90, v.Scale, 1e-9)

	empty := Fit(set.New("empty", nil), 10, 10)
	assert.Equal(t, 1.0, empty.Scale)
}

func TestSegments(t *testing.T) {
	s := set.New("two", testutil.TwoBoxScene())
	v := View{Scale: 1, Width: 0, Height: 0}

	segs := Segments(v, s, false)
	require.Len(t, segs, 8)
	assert.Equal(t, Segment{X0: 0, Y0: 0, X1: 1, Y1: 0, Color: ColorFor(sector.TypeWalk, true)}, segs[0])

	s.SetSectorVisible(1001, false)
	assert.Len(t, Segments(v, s, false), 4)
	assert.Len(t, Segments(v, s, true), 8)

	s.ShrinkAll(0.1)
	assert.Len(t, Segments(v, s, false), 8, "shrunk boxes draw both outlines")
	assert.True(t, s.FindSectorByID(1000).IsShrunk(), "drawing does not touch the shrink")
}

func TestColorFor(t *testing.T) {
	types := []sector.Type{sector.TypeWalk, sector.TypeFunnel, sector.TypeCamera, sector.TypeSpecial, sector.TypeHot, sector.TypeNone}
	seen := make(map[[4]uint8]bool)
	for _, typ := range types {
		c := ColorFor(typ, true)
		seen[[4]uint8{c.R, c.G, c.B, c.A}] = true

		hidden := ColorFor(typ, false)
		assert.LessOrEqual(t, hidden.R, c.R)
		assert.Equal(t, c.A, hidden.A)
	}
	assert.Len(t, seen, len(types), "every type has its own color")
}
