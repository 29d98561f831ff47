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

// Package meshdata reads unstructured mesh descriptions in the Gmsh
// MSH 2.2 ASCII format into a point coordinate table and a list of
// typed cell blocks, preserving the order cells appear in the file.
package meshdata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Block is a run of consecutive mesh cells of the same type. Cell
// entries are zero-based indices into the point table.
type Block struct {
	Type  string
	Cells [][]int
}

// Data is a mesh description: a point table and cell blocks in file
// order.
type Data struct {
	Points [][3]float64
	Blocks []*Block
}

// Gmsh element type codes.
var elementTypeNames = map[int]string{
	1:  "line",
	2:  "triangle",
	15: "vertex",
}

// Read reads the Gmsh MSH 2.2 ASCII file at path.
func Read(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return d, nil
}

// ReadFrom reads a Gmsh MSH 2.2 ASCII mesh from r.
func ReadFrom(r io.Reader) (*Data, error) {
	s := bufio.NewScanner(r)
	d := new(Data)
	// Gmsh node ids need not be contiguous; map them to zero-based
	// point table indices.
	nodeIndex := make(map[int]int)
	var sawNodes, sawElements bool

	for s.Scan() {
		switch strings.TrimSpace(s.Text()) {
		case "$MeshFormat":
			if err := readFormat(s); err != nil {
				return nil, err
			}
		case "$Nodes":
			if err := readNodes(s, d, nodeIndex); err != nil {
				return nil, err
			}
			sawNodes = true
		case "$Elements":
			if err := readElements(s, d, nodeIndex); err != nil {
				return nil, err
			}
			sawElements = true
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !sawNodes || !sawElements {
		return nil, fmt.Errorf("not a Gmsh mesh: missing $Nodes or $Elements section")
	}
	return d, nil
}

func readFormat(s *bufio.Scanner) error {
	if !s.Scan() {
		return fmt.Errorf("unexpected end of file in $MeshFormat")
	}
	fields := strings.Fields(s.Text())
	if len(fields) < 1 || !strings.HasPrefix(fields[0], "2.") {
		return fmt.Errorf("unsupported mesh format version %q; need 2.x ASCII", s.Text())
	}
	return nil
}

func readNodes(s *bufio.Scanner, d *Data, nodeIndex map[int]int) error {
	n, err := readCount(s, "$Nodes")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if !s.Scan() {
			return fmt.Errorf("unexpected end of file in $Nodes")
		}
		fields := strings.Fields(s.Text())
		if len(fields) < 4 {
			return fmt.Errorf("malformed node line %q", s.Text())
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("malformed node id %q", fields[0])
		}
		var p [3]float64
		for j := 0; j < 3; j++ {
			if p[j], err = strconv.ParseFloat(fields[j+1], 64); err != nil {
				return fmt.Errorf("malformed node coordinate %q", fields[j+1])
			}
		}
		nodeIndex[id] = len(d.Points)
		d.Points = append(d.Points, p)
	}
	return nil
}

func readElements(s *bufio.Scanner, d *Data, nodeIndex map[int]int) error {
	n, err := readCount(s, "$Elements")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if !s.Scan() {
			return fmt.Errorf("unexpected end of file in $Elements")
		}
		fields := strings.Fields(s.Text())
		if len(fields) < 3 {
			return fmt.Errorf("malformed element line %q", s.Text())
		}
		elemType, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("malformed element type %q", fields[1])
		}
		nTags, err := strconv.Atoi(fields[2])
		if err != nil || nTags < 0 || 3+nTags > len(fields) {
			return fmt.Errorf("malformed element tag count %q", fields[2])
		}
		nodeFields := fields[3+nTags:]
		cell := make([]int, len(nodeFields))
		for j, f := range nodeFields {
			id, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("malformed element node %q", f)
			}
			idx, ok := nodeIndex[id]
			if !ok {
				return fmt.Errorf("element references unknown node %d", id)
			}
			cell[j] = idx
		}
		name, ok := elementTypeNames[elemType]
		if !ok {
			name = fmt.Sprintf("gmsh%d", elemType)
		}
		d.appendCell(name, cell)
	}
	return nil
}

// appendCell adds a cell to the last block when the type matches, or
// starts a new block, so blocks reproduce the file's grouping.
func (d *Data) appendCell(typeName string, cell []int) {
	if n := len(d.Blocks); n > 0 && d.Blocks[n-1].Type == typeName {
		b := d.Blocks[n-1]
		b.Cells = append(b.Cells, cell)
		return
	}
	d.Blocks = append(d.Blocks, &Block{Type: typeName, Cells: [][]int{cell}})
}

func readCount(s *bufio.Scanner, section string) (int, error) {
	if !s.Scan() {
		return 0, fmt.Errorf("unexpected end of file in %s", section)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s.Text()))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed count in %s: %q", section, s.Text())
	}
	return n, nil
}
