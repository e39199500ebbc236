package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
	"github.com/udisondev/grimset/internal/set"
	"github.com/udisondev/grimset/internal/testutil"
)

func TestWalkerStep(t *testing.T) {
	single := set.New("single", []sector.Def{
		testutil.UnitSquare(1, "box", sector.TypeWalk, 0, 0),
		testutil.Rect(2, "cam", sector.TypeCamera, -10, -10, 20, 20),
	})
	two := set.New("two", testutil.TwoBoxScene())

	tests := []struct {
		name  string
		set   *set.Set
		from  geom.Vector
		delta geom.Vector
		want  geom.Vector
	}{
		{"inside", single, geom.NewVector(0.5, 0.5, 0), geom.NewVector(0.2, 0.1, 0), geom.NewVector(0.7, 0.6, 0)},
		{"into neighbour box", two, geom.NewVector(0.5, 0.5, 0), geom.NewVector(1, 0, 0), geom.NewVector(1.5, 0.5, 0)},
		{"slides along edge", single, geom.NewVector(0.5, 0.5, 0), geom.NewVector(1, 0.2, 0), geom.NewVector(1, 0.7, 0)},
		{"stops in corner", single, geom.NewVector(0.5, 0.5, 0), geom.NewVector(2, 2, 0), geom.NewVector(1, 1, 0)},
		{"off mesh snaps", single, geom.NewVector(5, 0.5, 0), geom.NewVector(0.1, 0, 0), geom.NewVector(1, 0.5, 0)},
		{"zero delta", single, geom.NewVector(0.5, 0.5, 0), geom.Vector{}, geom.NewVector(0.5, 0.5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewWalker(tt.set).Step(tt.from, tt.delta)
			testutil.AssertVectorNear(t, tt.want, got)
		})
	}
}

func TestWalkerStepHiddenBox(t *testing.T) {
	s := set.New("two", testutil.TwoBoxScene())
	s.SetSectorVisible(1001, false)

	got := NewWalker(s).Step(geom.NewVector(0.5, 0.5, 0), geom.NewVector(1, 0, 0))
	testutil.AssertVectorNear(t, geom.NewVector(1, 0.5, 0), got)
}

func TestWalkerStepWithoutWalkBoxes(t *testing.T) {
	s := set.New("cams", []sector.Def{testutil.UnitSquare(1, "cam", sector.TypeCamera, 0, 0)})
	from := geom.NewVector(0.5, 0.5, 0)

	assert.Equal(t, from, NewWalker(s).Step(from, geom.NewVector(1, 0, 0)))
	assert.Equal(t, from, NewWalker(nil).Step(from, geom.NewVector(1, 0, 0)))
}
