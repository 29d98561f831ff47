package spillsim

import (
	"reflect"
	"testing"

	"github.com/spillmodel/spillsim/meshdata"
)

func TestSetNeighbors(t *testing.T) {
	m := newTestMesh(t, squareMeshData())

	// Creation order: triangles 0-1, then boundary lines 2-5. Each
	// triangle finds the other across the diagonal and a boundary line
	// along each outer edge.
	want := [][]int{
		{2, 3, 1},
		{0, 4, 5},
		{-1, -1},
		{-1, -1},
		{-1, -1},
		{-1, -1},
	}
	for i, c := range m.Cells {
		if !reflect.DeepEqual(c.Neighbors, want[i]) {
			t.Errorf("cell %d neighbors = %v, want %v", i, c.Neighbors, want[i])
		}
	}
}

func TestSetNeighborsDisjoint(t *testing.T) {
	// Two triangles sharing a single vertex are not edge-adjacent.
	data := &meshdata.Data{
		Points: [][3]float64{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
			{2, 0, 0}, {2, 1, 0},
		},
		Blocks: []*meshdata.Block{
			{Type: "triangle", Cells: [][]int{{0, 1, 2}, {1, 3, 4}}},
		},
	}
	m := newTestMesh(t, data)
	for i, c := range m.Cells {
		for j, id := range c.Neighbors {
			if id != -1 {
				t.Errorf("cell %d edge %d: neighbor %d, want -1", i, j, id)
			}
		}
	}
}

func TestSetNeighborsFirstWins(t *testing.T) {
	// Cells 0 and 1 both share edge (0,2) with cell 2. The lower id
	// wins; the duplicate is ignored.
	data := &meshdata.Data{
		Points: [][3]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
		Blocks: []*meshdata.Block{
			{Type: "triangle", Cells: [][]int{{0, 1, 2}, {0, 1, 2}, {0, 2, 3}}},
		},
	}
	m := newTestMesh(t, data)
	if got := m.Cells[2].Neighbors[0]; got != 0 {
		t.Errorf("tied edge resolved to cell %d, want 0", got)
	}
}

func TestSetNeighborsResolvesPointers(t *testing.T) {
	m := newTestMesh(t, twoTriangleData())
	a, b := m.Cells[0], m.Cells[1]
	if a.neighborCells[2] != b {
		t.Error("cell 0 diagonal edge should link to cell 1")
	}
	if b.neighborCells[0] != a {
		t.Error("cell 1 diagonal edge should link to cell 0")
	}
	if a.neighborCells[0] != nil || a.neighborCells[1] != nil {
		t.Error("boundary edges should have nil links")
	}
}
