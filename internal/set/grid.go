package set

import (
	"math"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
)

// maxCellsPerSector bounds how many grid cells one sector may occupy;
// bigger sectors go to the always-checked list.
const maxCellsPerSector = 4096

// minGridNormalZ is the smallest |normal.Z| for which a sector is indexed
// by its XY bounding box. Containment projects the query point along the
// normal, so on any tilted plane a point outside the box in XY can still
// land inside; only horizontal sectors are bucketed.
const minGridNormalZ = 1 - 1e-12

type gridKey struct {
	gx, gy int
}

// grid buckets sector indices by the XY cells their bounding box covers.
// Every bucket holds indices in ascending (load) order.
type grid struct {
	size   float64
	cells  map[gridKey][]int
	always []int
}

// buildGrid регистрирует каждый сектор во всех ячейках сетки,
// которые пересекает его bounding box.
func buildGrid(sectors []*sector.Sector, size float64) *grid {
	g := &grid{size: size, cells: make(map[gridKey][]int)}

	for idx, sec := range sectors {
		poly := sec.OrigPolygon()
		if poly.IsEmpty() || math.Abs(poly.Normal().Z) < minGridNormalZ {
			g.always = append(g.always, idx)
			continue
		}

		minX, minY, maxX, maxY := bounds(poly.Vertices())
		gxMin, gxMax := g.cell(minX-geom.Epsilon), g.cell(maxX+geom.Epsilon)
		gyMin, gyMax := g.cell(minY-geom.Epsilon), g.cell(maxY+geom.Epsilon)

		if (gxMax-gxMin+1)*(gyMax-gyMin+1) > maxCellsPerSector {
			g.always = append(g.always, idx)
			continue
		}

		for gx := gxMin; gx <= gxMax; gx++ {
			for gy := gyMin; gy <= gyMax; gy++ {
				key := gridKey{gx: gx, gy: gy}
				g.cells[key] = append(g.cells[key], idx)
			}
		}
	}

	return g
}

func (g *grid) cell(v float64) int {
	return int(math.Floor(v / g.size))
}

// candidates returns, in load order, the indices of the sectors that may
// contain p.
func (g *grid) candidates(p geom.Vector) []int {
	cell := g.cells[gridKey{gx: g.cell(p.X), gy: g.cell(p.Y)}]
	if len(g.always) == 0 {
		return cell
	}
	if len(cell) == 0 {
		return g.always
	}
	return mergeSorted(cell, g.always)
}

// mergeSorted сливает два возрастающих списка индексов.
func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func bounds(vs []geom.Vector) (minX, minY, maxX, maxY float64) {
	minX, minY = vs[0].X, vs[0].Y
	maxX, maxY = minX, minY
	for _, v := range vs[1:] {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY
}
