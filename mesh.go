/*
Copyright © 2026 the SpillSim authors.
This file is part of SpillSim.

SpillSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SpillSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SpillSim.  If not, see <http://www.gnu.org/licenses/>.
*/

package spillsim

import (
	"fmt"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"github.com/spillmodel/spillsim/meshdata"
)

// Mesh owns the point coordinate table and the flat, creation-ordered
// list of cells. Cells are created once when the mesh is loaded and
// never reordered; all neighbor ids refer to positions in Cells.
type Mesh struct {
	// Name identifies the mesh source, normally the file it was
	// read from. It is recorded in saved state.
	Name string

	Points []geom.Point
	Cells  []*Cell

	index        *rtree.Rtree
	numTriangles int
}

// NewMesh builds a mesh from externally-read mesh data. Cell blocks
// are consumed in file order; only "triangle" and "line" blocks
// produce cells, all other block types (e.g. vertex markers) are
// skipped without error.
func NewMesh(name string, data *meshdata.Data) (*Mesh, error) {
	m := &Mesh{
		Name:   name,
		Points: make([]geom.Point, len(data.Points)),
		index:  rtree.NewTree(25, 50),
	}
	for i, p := range data.Points {
		m.Points[i] = geom.Point{X: p[0], Y: p[1]}
	}

	for _, block := range data.Blocks {
		build, ok := cellBuilders[block.Type]
		if !ok {
			continue
		}
		for _, vertexIDs := range block.Cells {
			points := make([]geom.Point, len(vertexIDs))
			for i, id := range vertexIDs {
				if id < 0 || id >= len(m.Points) {
					return nil, &MeshLoadError{Path: name,
						Err: fmt.Errorf("cell %d references vertex %d of %d", len(m.Cells), id, len(m.Points))}
				}
				points[i] = m.Points[id]
			}
			c, err := build(len(m.Cells), vertexIDs, points)
			if err != nil {
				return nil, err
			}
			m.Cells = append(m.Cells, c)
			if c.Type == TriangleCell {
				m.index.Insert(c)
				m.numTriangles++
			}
		}
	}
	return m, nil
}

// LoadMesh reads the mesh file at path and builds the mesh from it.
func LoadMesh(path string) (*Mesh, error) {
	data, err := meshdata.Read(path)
	if err != nil {
		return nil, &MeshLoadError{Path: path, Err: err}
	}
	return NewMesh(path, data)
}

// NumTriangles returns the number of triangle cells in the mesh.
func (m *Mesh) NumTriangles() int { return m.numTriangles }

// Within returns the triangles whose midpoint lies inside the given
// rectangle, borders inclusive, in creation order. It is a pure read
// used for region-of-interest reporting.
func (m *Mesh) Within(b *geom.Bounds) []*Cell {
	var o []*Cell
	for _, cI := range m.index.SearchIntersect(b) {
		c := cI.(*Cell)
		p := c.Midpoint
		if p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y {
			o = append(o, c)
		}
	}
	sort.Slice(o, func(i, j int) bool { return o[i].ID < o[j].ID })
	return o
}

// NewRect creates a rectangle from the given bounds.
func NewRect(xmin, ymin, xmax, ymax float64) *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: xmin, Y: ymin},
		Max: geom.Point{X: xmax, Y: ymax},
	}
}
