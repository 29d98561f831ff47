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

// SetNeighbors resolves the edge adjacency table for every cell and
// links the resolved cells for use during stepping. Each triangle is
// searched independently against the full cell list; the relation is
// not forced to be symmetric, so a malformed mesh can produce
// one-directional links, as documented.
func (m *Mesh) SetNeighbors() {
	for _, c := range m.Cells {
		c.computeNeighbors(m.Cells)
	}
	for _, c := range m.Cells {
		c.neighborCells = make([]*Cell, len(c.Neighbors))
		for i, id := range c.Neighbors {
			if id >= 0 {
				c.neighborCells[i] = m.Cells[id]
			}
		}
	}
}

// computeNeighbors records, for each edge of a triangle, the first
// cell in creation order that shares exactly the two vertices of that
// edge. Sharing exactly two vertices is the topological definition of
// edge adjacency; comparing a cell against itself intersects in three
// vertices and so never matches. Lines never search; their entries
// stay at -1.
func (c *Cell) computeNeighbors(cells []*Cell) {
	if c.Type != TriangleCell {
		return
	}
	for id, other := range cells {
		if sharedVertices(c.VertexIDs, other.VertexIDs) != 2 {
			continue
		}
		for i, p := range c.VertexIDs {
			if c.Neighbors[i] >= 0 {
				continue
			}
			pNext := c.VertexIDs[(i+1)%len(c.VertexIDs)]
			if containsVertex(other.VertexIDs, p) && containsVertex(other.VertexIDs, pNext) {
				c.Neighbors[i] = id
				break
			}
		}
	}
}

func sharedVertices(a, b []int) int {
	n := 0
	for _, v := range a {
		if containsVertex(b, v) {
			n++
		}
	}
	return n
}

func containsVertex(ids []int, v int) bool {
	for _, id := range ids {
		if id == v {
			return true
		}
	}
	return false
}
