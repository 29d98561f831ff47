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
	"io"
	"time"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
)

// DomainManipulator is a class of functions that operate on the
// whole model domain.
type DomainManipulator func(d *Spill) error

// CellManipulator is a class of functions that operate on a single
// cell within a timestep of length Δt.
type CellManipulator func(c *Cell, Δt float64)

// Calculations returns a function that runs a series of calculations
// on every cell in the mesh. Each calculator finishes over all cells
// before the next begins.
func Calculations(calculators ...CellManipulator) DomainManipulator {
	return func(d *Spill) error {
		for _, f := range calculators {
			for _, c := range d.Mesh.Cells {
				f(c, d.Dt)
			}
		}
		return nil
	}
}

// SetTimestep returns a function that fixes the timestep from the
// configured time window and step count. The step count must be
// positive; otherwise the timestep would be undefined.
func SetTimestep() DomainManipulator {
	return func(d *Spill) error {
		if d.NSteps <= 0 {
			return &InvalidStepError{NSteps: d.NSteps}
		}
		d.Dt = (d.TEnd - d.TStart) / float64(d.NSteps)
		d.T = d.TStart
		return nil
	}
}

// StepCountCheck returns a function that advances the time cursor
// after each step and finishes the simulation once the configured
// number of steps has run.
func StepCountCheck() DomainManipulator {
	return func(d *Spill) error {
		d.step++
		d.T = d.TStart + float64(d.step)*d.Dt
		if d.step >= d.NSteps {
			d.Done = true
		}
		return nil
	}
}

// RegionSample is one entry of the region-of-interest time series:
// the simulation time and the total oil over all triangles whose
// midpoint lies inside the region at that instant.
type RegionSample struct {
	Time, Oil float64
}

// RecordRegionOil returns a function that appends the current region
// total to series. Include it in both InitFuncs (for the entry at
// tStart) and RunFuncs (for the entry after each step), giving a
// series of length NSteps+1. It is a pure read.
func RecordRegionOil(region *geom.Bounds, series *[]RegionSample) DomainManipulator {
	return func(d *Spill) error {
		cells := d.Mesh.Within(region)
		vals := make([]float64, len(cells))
		for i, c := range cells {
			vals[i] = c.Oil
		}
		*series = append(*series, RegionSample{Time: d.T, Oil: floats.Sum(vals)})
		return nil
	}
}

// Log returns a function that writes simulation status messages to w.
func Log(w io.Writer) DomainManipulator {
	startTime := time.Now()
	timeStepTime := time.Now()
	return func(d *Spill) error {
		fmt.Fprintf(w, "Step %-4d  walltime=%6.3gs  Δwalltime=%4.2gs  t=%.4g\n",
			d.step, time.Since(startTime).Seconds(),
			time.Since(timeStepTime).Seconds(), d.T)
		timeStepTime = time.Now()
		return nil
	}
}
