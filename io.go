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
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/sparse"
	goshp "github.com/jonas-p/go-shp"
)

// toArray copies the current oil field into a flat array in cell
// creation order, one entry per cell including lines.
func (d *Spill) toArray() []float64 {
	o := make([]float64, len(d.Mesh.Cells))
	for i, c := range d.Mesh.Cells {
		o[i] = c.Oil
	}
	return o
}

// Outputter archives full-field snapshots at a fixed step interval
// for hand-off to external rendering or reporting. Snapshots are pure
// reads and never alter the field.
type Outputter struct {
	interval  int
	snapshots map[int]*sparse.DenseArray
	steps     []int
}

// NewOutputter creates an Outputter that archives roughly
// writeFrequency snapshots over nSteps steps. A writeFrequency of
// zero or less disables archiving.
func NewOutputter(nSteps, writeFrequency int) *Outputter {
	o := &Outputter{snapshots: make(map[int]*sparse.DenseArray)}
	if writeFrequency > 0 {
		o.interval = nSteps / writeFrequency
		if o.interval < 1 {
			o.interval = 1
		}
	}
	return o
}

// Snapshot returns a function that archives the current field when
// the step index falls on the archive interval. Include it in
// InitFuncs to capture the initial field and in RunFuncs for the
// periodic captures.
func (o *Outputter) Snapshot() DomainManipulator {
	return func(d *Spill) error {
		if o.interval <= 0 {
			return nil
		}
		if d.step%o.interval != 0 && d.step != d.NSteps {
			return nil
		}
		if _, ok := o.snapshots[d.step]; ok {
			return nil
		}
		arr := sparse.ZerosDense(len(d.Mesh.Cells))
		copy(arr.Elements, d.toArray())
		o.snapshots[d.step] = arr
		o.steps = append(o.steps, d.step)
		return nil
	}
}

// Field returns the archived per-cell oil field for the given step
// index, and whether a snapshot was taken at that step.
func (o *Outputter) Field(step int) (*sparse.DenseArray, bool) {
	arr, ok := o.snapshots[step]
	return arr, ok
}

// Steps returns the step indices with archived snapshots, in capture
// order.
func (o *Outputter) Steps() []int { return o.steps }

// WriteShapefile writes the mesh triangles with their current oil
// values to a shapefile for external visualization.
func (d *Spill) WriteShapefile(fileName string) error {
	e, err := shp.NewEncoderFromFields(fileName, goshp.POLYGON,
		goshp.FloatField("oil", 14, 8))
	if err != nil {
		return fmt.Errorf("spillsim: creating output shapefile: %v", err)
	}
	for _, c := range d.Mesh.Cells {
		if c.Type != TriangleCell {
			continue
		}
		if err := e.EncodeFields(c.Geom, c.Oil); err != nil {
			return fmt.Errorf("spillsim: writing output shapefile: %v", err)
		}
	}
	e.Close()
	return nil
}

// WriteRegionSeries writes the (time, regionTotal) sequence as CSV.
func WriteRegionSeries(w io.Writer, series []RegionSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "region_oil"}); err != nil {
		return err
	}
	for _, s := range series {
		if err := cw.Write([]string{formatFloat(s.Time), formatFloat(s.Oil)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
