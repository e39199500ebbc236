package scene

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/sector"
)

type yamlScene struct {
	Name    string       `yaml:"name"`
	Sectors []yamlSector `yaml:"sectors"`
}

type yamlSector struct {
	ID       int          `yaml:"id"`
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type"`    // name or numeric code, walk when empty
	Visible  *bool        `yaml:"visible"` // true when omitted
	Height   *float64     `yaml:"height"`
	Vertices [][3]float64 `yaml:"vertices"`
}

// ParseYAML parses a YAML scene document:
//
//	name: mo
//	sectors:
//	  - id: 1000
//	    name: mo_walk1
//	    type: walk
//	    vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
func ParseYAML(data []byte) (*Scene, error) {
	var raw yamlScene
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	sc := &Scene{Name: raw.Name, Sectors: make([]sector.Def, 0, len(raw.Sectors))}
	for i, rs := range raw.Sectors {
		typ, err := sector.ParseType(rs.Type)
		if err != nil {
			return nil, fmt.Errorf("sector %d (%s): %w", i, rs.Name, err)
		}

		def := sector.Def{
			ID:       rs.ID,
			Name:     rs.Name,
			Type:     typ,
			Visible:  true,
			Height:   sector.DefaultHeight,
			Vertices: make([]geom.Vector, len(rs.Vertices)),
		}
		if rs.Visible != nil {
			def.Visible = *rs.Visible
		}
		if rs.Height != nil {
			def.Height = *rs.Height
		}
		for j, v := range rs.Vertices {
			def.Vertices[j] = geom.NewVector(v[0], v[1], v[2])
		}

		sc.Sectors = append(sc.Sectors, def)
	}

	slog.Debug("yaml scene parsed", "scene", sc.Name, "sectors", len(sc.Sectors))
	return sc, nil
}
