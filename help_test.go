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
	"testing"

	"github.com/spillmodel/spillsim/meshdata"
)

// E is the numerical comparison tolerance.
const E = 1e-10

// twoTriangleData is a unit square split along its diagonal into two
// equal-area triangles, with no boundary lines. All four boundary
// edges have no neighbor, so advection conserves the total oil.
func twoTriangleData() *meshdata.Data {
	return &meshdata.Data{
		Points: [][3]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
		Blocks: []*meshdata.Block{
			{Type: "triangle", Cells: [][]int{{0, 1, 2}, {0, 2, 3}}},
		},
	}
}

// squareMeshData is the same unit square with its four boundary lines
// appended after the triangles, matching the layout of a generated
// mesh file.
func squareMeshData() *meshdata.Data {
	return &meshdata.Data{
		Points: [][3]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
		Blocks: []*meshdata.Block{
			{Type: "triangle", Cells: [][]int{{0, 1, 2}, {0, 2, 3}}},
			{Type: "line", Cells: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}},
		},
	}
}

func newTestMesh(t *testing.T, data *meshdata.Data) *Mesh {
	t.Helper()
	m, err := NewMesh("test mesh", data)
	if err != nil {
		t.Fatal(err)
	}
	m.SetNeighbors()
	return m
}

// newTestSpill wires a mesh into a domain with the standard advection
// pipeline.
func newTestSpill(m *Mesh, tStart, tEnd float64, nSteps int) *Spill {
	return &Spill{
		Mesh:      m,
		TStart:    tStart,
		TEnd:      tEnd,
		NSteps:    nSteps,
		InitFuncs: []DomainManipulator{SetTimestep()},
		RunFuncs: []DomainManipulator{
			Calculations(SnapshotOil()),
			Calculations(UpwindAdvection()),
			StepCountCheck(),
		},
	}
}

func totalOil(m *Mesh) float64 {
	var sum float64
	for _, c := range m.Cells {
		sum += c.Oil
	}
	return sum
}

func different(a, b float64) bool {
	d := a - b
	return d < -E || d > E
}
