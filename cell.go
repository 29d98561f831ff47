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
	"math"

	"github.com/ctessum/geom"
)

// CellType identifies one of the two kinds of mesh cell. The set is
// closed: meshes in this model only ever contain triangles and
// boundary lines.
type CellType int

const (
	// TriangleCell is an area-bearing cell that carries oil.
	TriangleCell CellType = iota
	// LineCell marks a mesh boundary. It never carries oil.
	LineCell
)

func (t CellType) String() string {
	switch t {
	case TriangleCell:
		return "triangle"
	case LineCell:
		return "line"
	default:
		return fmt.Sprintf("CellType(%d)", int(t))
	}
}

// Initial oil distribution: a Gaussian bump representing the spill
// location, evaluated at each triangle midpoint.
const (
	spillX      = 0.35
	spillY      = 0.45
	spillSpread = 0.01
)

// Triangles with areas below this are treated as degenerate.
const minTriangleArea = 1e-12

// Cell holds the state of a single mesh cell. A cell is created once
// when the mesh is loaded and is never destroyed or reordered; only
// Oil changes after construction.
type Cell struct {
	geom.Geom // Cell geometry: a Polygon for triangles, a LineString for lines.

	Type CellType

	// ID is the cell's position in the global creation order of the
	// mesh, interleaving triangles and lines as they appear in the
	// source file. Neighbor entries refer to these ids.
	ID int

	// VertexIDs are indices into the mesh point table: three for a
	// triangle, two for a line. Edge i connects vertex i and vertex
	// i+1 (mod 3).
	VertexIDs []int

	// Midpoint is the mean of the vertex coordinates.
	Midpoint geom.Point

	// Velocity is the synthetic carrier flow evaluated once at the
	// midpoint: (y - 0.2x, -x). The vertical component of the field is
	// identically zero and is not stored.
	Velocity geom.Point

	// Oil is the transported scalar. Lines stay at zero for their
	// whole lifetime.
	Oil float64

	// oilOld is the beginning-of-step snapshot of Oil. Every read
	// during a step targets this field so that the update is
	// independent of cell ordering.
	oilOld float64

	// Area is the triangle area (always the positive magnitude).
	// Zero for lines.
	Area float64

	// Normals[i] is the outward normal of edge i, scaled to the edge
	// length so that dot(normal, velocity) is a physical flux.
	Normals []geom.Point

	// Neighbors[i] is the id of the cell sharing edge i, or -1 for a
	// boundary edge. Lines keep all entries at -1.
	Neighbors []int

	// neighborCells mirrors Neighbors with resolved pointers; nil
	// marks a boundary edge. Populated by Mesh.SetNeighbors.
	neighborCells []*Cell
}

func (c *Cell) String() string {
	switch c.Type {
	case TriangleCell:
		return fmt.Sprintf("Triangle: %v", c.Neighbors)
	default:
		return fmt.Sprintf("Line: %v", c.Neighbors)
	}
}

// cellBuilder constructs a cell from its creation-order id, vertex
// indices, and vertex coordinates.
type cellBuilder func(id int, vertexIDs []int, points []geom.Point) (*Cell, error)

// cellBuilders maps mesh cell-type tags to constructors. The mapping
// is closed; mesh blocks with other tags are skipped by NewMesh.
var cellBuilders = map[string]cellBuilder{
	"triangle": newTriangle,
	"line":     newLine,
}

// velocityAt evaluates the fixed rotational/shear carrier field.
func velocityAt(p geom.Point) geom.Point {
	return geom.Point{X: p.Y - 0.2*p.X, Y: -p.X}
}

func midpointOf(points []geom.Point) geom.Point {
	var mid geom.Point
	for _, p := range points {
		mid.X += p.X
		mid.Y += p.Y
	}
	mid.X /= float64(len(points))
	mid.Y /= float64(len(points))
	return mid
}

func newTriangle(id int, vertexIDs []int, points []geom.Point) (*Cell, error) {
	if len(vertexIDs) != 3 {
		return nil, &GeometryError{CellID: id,
			Reason: fmt.Sprintf("triangle requires 3 vertex indices, got %d", len(vertexIDs))}
	}
	if len(points) != 3 {
		return nil, &GeometryError{CellID: id,
			Reason: fmt.Sprintf("triangle requires 3 vertex coordinates, got %d", len(points))}
	}

	c := &Cell{
		Type:      TriangleCell,
		ID:        id,
		VertexIDs: append([]int(nil), vertexIDs...),
		Midpoint:  midpointOf(points),
		Neighbors: []int{-1, -1, -1},
	}
	c.Geom = geom.Polygon{append([]geom.Point(nil), points...)}
	c.Velocity = velocityAt(c.Midpoint)

	c.Area = 0.5 * math.Abs(
		(points[0].X-points[2].X)*(points[1].Y-points[0].Y)-
			(points[0].X-points[1].X)*(points[2].Y-points[0].Y))
	if c.Area < minTriangleArea {
		return nil, &GeometryError{CellID: id, Reason: "degenerate triangle (zero area)"}
	}

	// One outward normal per edge. Rotating the edge vector by 90°
	// already gives a normal whose magnitude equals the edge length.
	c.Normals = make([]geom.Point, 3)
	for i := range points {
		p1 := points[i]
		p2 := points[(i+1)%3]
		n := geom.Point{X: -(p2.Y - p1.Y), Y: p2.X - p1.X}
		if n.X*(p1.X-c.Midpoint.X)+n.Y*(p1.Y-c.Midpoint.Y) < 0 {
			n.X, n.Y = -n.X, -n.Y
		}
		c.Normals[i] = n
	}

	dx := c.Midpoint.X - spillX
	dy := c.Midpoint.Y - spillY
	c.Oil = math.Exp(-(dx*dx + dy*dy) / spillSpread)
	return c, nil
}

func newLine(id int, vertexIDs []int, points []geom.Point) (*Cell, error) {
	if len(vertexIDs) != 2 {
		return nil, &GeometryError{CellID: id,
			Reason: fmt.Sprintf("line requires 2 vertex indices, got %d", len(vertexIDs))}
	}
	c := &Cell{
		Type:      LineCell,
		ID:        id,
		VertexIDs: append([]int(nil), vertexIDs...),
		Midpoint:  midpointOf(points),
		Neighbors: []int{-1, -1},
	}
	c.Geom = geom.LineString(append([]geom.Point(nil), points...))
	c.Velocity = velocityAt(c.Midpoint)
	return c, nil
}
