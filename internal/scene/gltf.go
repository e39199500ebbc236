package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
)

// Node extras read by the glTF loader. A node is a sector only when its
// extras carry ExtraSectorType.
const (
	ExtraSectorType = "sector_type"
	ExtraSectorID   = "sector_id"
	ExtraSectorName = "sector_name"
	ExtraVisible    = "visible"
	ExtraHeight     = "height"
)

var errNotALoop = errors.New("mesh boundary is not a single closed loop")

// LoadGLTF loads sector geometry from a .gltf or .glb file. Each sector
// node carries a planar convex mesh; its outer boundary, in the winding
// order of its triangles, becomes the sector polygon. Node translations
// (including those of parent nodes) are applied and the Y-up glTF axes
// are mapped to the Z-up scene axes.
func LoadGLTF(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gltf %s: %w", path, err)
	}

	sc, err := sceneFromDocument(doc, NameOf(path))
	if err != nil {
		return nil, fmt.Errorf("loading gltf %s: %w", path, err)
	}
	return sc, nil
}

func sceneFromDocument(doc *gltf.Document, name string) (*Scene, error) {
	parent := make(map[int]int, len(doc.Nodes))
	for i, node := range doc.Nodes {
		for _, child := range node.Children {
			parent[child] = i
		}
	}

	sc := &Scene{Name: name}
	for i, node := range doc.Nodes {
		extras, ok := node.Extras.(map[string]any)
		if !ok {
			continue
		}
		rawType, ok := extras[ExtraSectorType]
		if !ok {
			continue
		}

		def, err := nodeSector(i, node, extras, rawType)
		if err != nil {
			return nil, err
		}
		if node.Mesh == nil || *node.Mesh >= len(doc.Meshes) {
			slog.Warn("sector node without mesh", "scene", name, "node", node.Name)
			sc.Sectors = append(sc.Sectors, def)
			continue
		}

		loop, err := meshBoundary(doc, doc.Meshes[*node.Mesh])
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", node.Name, err)
		}
		offset := nodeOffset(doc, parent, i)
		def.Vertices = make([]geom.Vector, len(loop))
		for j, p := range loop {
			def.Vertices[j] = zUp(p.Add(offset))
		}

		sc.Sectors = append(sc.Sectors, def)
	}

	slog.Debug("gltf scene loaded", "scene", name, "nodes", len(doc.Nodes), "sectors", len(sc.Sectors))
	return sc, nil
}

// nodeSector reads the sector attributes of a node from its extras.
func nodeSector(idx int, node *gltf.Node, extras map[string]any, rawType any) (sector.Def, error) {
	def := sector.Def{
		ID:      idx,
		Name:    node.Name,
		Visible: true,
		Height:  sector.DefaultHeight,
	}

	switch v := rawType.(type) {
	case string:
		typ, err := sector.ParseType(v)
		if err != nil {
			return def, fmt.Errorf("node %q: %w", node.Name, err)
		}
		def.Type = typ
	case float64:
		def.Type = sector.Type(int(v))
	default:
		return def, fmt.Errorf("node %q: %s has type %T", node.Name, ExtraSectorType, rawType)
	}

	if v, ok := extras[ExtraSectorID].(float64); ok {
		def.ID = int(v)
	}
	if v, ok := extras[ExtraSectorName].(string); ok && v != "" {
		def.Name = v
	}
	if v, ok := extras[ExtraVisible].(bool); ok {
		def.Visible = v
	}
	if v, ok := extras[ExtraHeight].(float64); ok {
		def.Height = v
	}
	return def, nil
}

// nodeOffset sums the translations of a node and its ancestors.
func nodeOffset(doc *gltf.Document, parent map[int]int, idx int) geom.Vector {
	var offset geom.Vector
	for seen := 0; seen <= len(doc.Nodes); seen++ {
		t := doc.Nodes[idx].Translation
		offset = offset.Add(geom.NewVector(float64(t[0]), float64(t[1]), float64(t[2])))

		p, ok := parent[idx]
		if !ok {
			break
		}
		idx = p
	}
	return offset
}

// zUp maps glTF (Y up, -Z forward) to scene axes (Z up).
func zUp(v geom.Vector) geom.Vector {
	return geom.NewVector(v.X, -v.Z, v.Y)
}

// meshBoundary reads the triangles of all primitives of mesh and returns
// their outer boundary loop.
func meshBoundary(doc *gltf.Document, mesh *gltf.Mesh) ([]geom.Vector, error) {
	var (
		positions [][3]float32
		triangles []uint32
	)

	for _, prim := range mesh.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("reading positions: %w", err)
		}

		base := uint32(len(positions))
		positions = append(positions, pos...)

		if prim.Indices == nil {
			for i := range uint32(len(pos)) {
				triangles = append(triangles, base+i)
			}
			continue
		}
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
		for _, i := range indices {
			triangles = append(triangles, base+i)
		}
	}

	return boundaryLoop(positions, triangles)
}

// boundaryLoop сваривает совпадающие вершины и собирает граничные рёбра
// треугольников в один замкнутый контур.
func boundaryLoop(positions [][3]float32, triangles []uint32) ([]geom.Vector, error) {
	if len(triangles) < 3 {
		return nil, fmt.Errorf("%w: no triangles", errNotALoop)
	}

	welded := make([]int, len(positions))
	ids := make(map[[3]float32]int, len(positions))
	var verts []geom.Vector
	for i, p := range positions {
		id, ok := ids[p]
		if !ok {
			id = len(verts)
			ids[p] = id
			verts = append(verts, geom.NewVector(float64(p[0]), float64(p[1]), float64(p[2])))
		}
		welded[i] = id
	}

	type edge struct{ a, b int }
	count := make(map[edge]int)
	var order []edge
	for t := 0; t+2 < len(triangles); t += 3 {
		tri := [3]int{welded[triangles[t]], welded[triangles[t+1]], welded[triangles[t+2]]}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			continue
		}
		for k := range 3 {
			e := edge{tri[k], tri[(k+1)%3]}
			count[e]++
			order = append(order, e)
		}
	}

	next := make(map[int]int)
	start := -1
	for _, e := range order {
		if count[e] != 1 || count[edge{e.b, e.a}] != 0 {
			continue
		}
		if _, dup := next[e.a]; dup {
			return nil, fmt.Errorf("%w: vertex %d branches", errNotALoop, e.a)
		}
		next[e.a] = e.b
		if start < 0 {
			start = e.a
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: closed surface", errNotALoop)
	}

	loop := make([]geom.Vector, 0, len(next))
	for v, steps := start, 0; ; steps++ {
		if steps > len(next) {
			return nil, fmt.Errorf("%w: open boundary", errNotALoop)
		}
		loop = append(loop, verts[v])
		n, ok := next[v]
		if !ok {
			return nil, fmt.Errorf("%w: open boundary", errNotALoop)
		}
		if v = n; v == start {
			break
		}
	}
	if len(loop) != len(next) {
		return nil, fmt.Errorf("%w: several loops", errNotALoop)
	}
	return loop, nil
}
