package scene

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const twoBoxYAML = `
name: mo
sectors:
  - id: 1000
    name: walk_left
    type: walk
    vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
  - id: 1001
    name: walk_right
    vertices: [[1, 0, 0], [2, 0, 0], [2, 1, 0], [1, 1, 0]]
  - id: 2000
    name: mo_cam
    type: 0x2000
    visible: false
    height: 3.5
    vertices: [[0, 0, 0], [2, 0, 0], [2, 1, 0], [0, 1, 0]]
`

// quadGLTF returns a glTF document with a unit quad mesh (in the glTF XZ
// plane) used by two sector nodes, one of them under a translated parent,
// and one plain prop node.
func quadGLTF() string {
	var buf bytes.Buffer
	quad := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, -1}, {0, 0, -1}}
	for _, p := range quad {
		for _, c := range p {
			_ = binary.Write(&buf, binary.LittleEndian, c)
		}
	}
	for _, i := range []uint16{0, 1, 2, 0, 2, 3} {
		_ = binary.Write(&buf, binary.LittleEndian, i)
	}
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	return fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0, 1, 3]}],
  "nodes": [
    {"name": "walk_left", "mesh": 0, "extras": {"sector_type": "walk", "sector_id": 1000}},
    {"name": "group", "translation": [1, 0, 0], "children": [2]},
    {"name": "box", "mesh": 0, "extras": {"sector_type": 4096, "sector_id": 1001, "sector_name": "walk_right", "visible": false, "height": 2}},
    {"name": "prop", "mesh": 0}
  ],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 4, "type": "VEC3", "min": [0, 0, -1], "max": [1, 0, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 6, "type": "SCALAR"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 48},
    {"buffer": 0, "byteOffset": 48, "byteLength": 12}
  ],
  "buffers": [{"byteLength": %d, "uri": %q}]
}`, buf.Len(), uri)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
