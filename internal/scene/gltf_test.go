package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
)

func TestLoadGLTF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mo.gltf", quadGLTF())

	sc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mo", sc.Name)
	require.Len(t, sc.Sectors, 2, "prop node without sector extras is skipped")

	left := sc.Sectors[0]
	assert.Equal(t, 1000, left.ID)
	assert.Equal(t, "walk_left", left.Name)
	assert.Equal(t, sector.TypeWalk, left.Type)
	assert.True(t, left.Visible)
	assert.Equal(t, sector.DefaultHeight, left.Height)
	assert.Equal(t, []geom.Vector{
		geom.NewVector(0, 0, 0), geom.NewVector(1, 0, 0),
		geom.NewVector(1, 1, 0), geom.NewVector(0, 1, 0),
	}, left.Vertices)

	right := sc.Sectors[1]
	assert.Equal(t, 1001, right.ID)
	assert.Equal(t, "walk_right", right.Name)
	assert.Equal(t, sector.TypeWalk, right.Type)
	assert.False(t, right.Visible)
	assert.Equal(t, 2.0, right.Height)
	assert.Equal(t, []geom.Vector{
		geom.NewVector(1, 0, 0), geom.NewVector(2, 0, 0),
		geom.NewVector(2, 1, 0), geom.NewVector(1, 1, 0),
	}, right.Vertices, "parent translation applied")

	s := sc.Build()
	sec := s.FindPointSector(geom.NewVector(0.5, 0.5, 0), sector.TypeWalk)
	require.NotNil(t, sec)
	assert.Equal(t, 1000, sec.ID())
	assert.InDelta(t, 1.0, sec.Normal().Z, 1e-9, "boundary keeps counter-clockwise winding")
}

func TestLoadGLTFMissingFile(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/mo.glb")
	assert.Error(t, err)
}

func TestBoundaryLoop(t *testing.T) {
	quad := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

	t.Run("split vertices are welded", func(t *testing.T) {
		split := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}, {1, 1, 0}, {0, 1, 0}}
		loop, err := boundaryLoop(split, []uint32{0, 1, 2, 3, 4, 5})
		require.NoError(t, err)
		assert.Equal(t, []geom.Vector{
			geom.NewVector(0, 0, 0), geom.NewVector(1, 0, 0),
			geom.NewVector(1, 1, 0), geom.NewVector(0, 1, 0),
		}, loop)
	})

	t.Run("fan", func(t *testing.T) {
		hexagon := [][3]float32{{0, 0, 0}, {2, 0, 0}, {3, 1, 0}, {2, 2, 0}, {0, 2, 0}, {-1, 1, 0}}
		loop, err := boundaryLoop(hexagon, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 5})
		require.NoError(t, err)
		assert.Len(t, loop, 6)
		assert.Equal(t, geom.NewVector(0, 0, 0), loop[0])
		assert.Equal(t, geom.NewVector(-1, 1, 0), loop[5])
	})

	t.Run("no triangles", func(t *testing.T) {
		_, err := boundaryLoop(quad, []uint32{0, 1})
		assert.ErrorIs(t, err, errNotALoop)
	})

	t.Run("two islands", func(t *testing.T) {
		two := append(quad, [3]float32{5, 5, 0}, [3]float32{6, 5, 0}, [3]float32{6, 6, 0})
		_, err := boundaryLoop(two, []uint32{0, 1, 2, 4, 5, 6})
		assert.ErrorIs(t, err, errNotALoop)
	})

	t.Run("closed surface", func(t *testing.T) {
		tetra := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		_, err := boundaryLoop(tetra, []uint32{0, 2, 1, 0, 1, 3, 1, 2, 3, 2, 0, 3})
		assert.ErrorIs(t, err, errNotALoop)
	})
}
