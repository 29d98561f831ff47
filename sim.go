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

// Package spillsim implements an explicit finite-volume advection
// model for a scalar quantity ("oil") on an unstructured 2-D
// triangular mesh, with restart support and region-of-interest
// reporting.
package spillsim

import "fmt"

// Spill holds the current state of the model: the mesh, the time
// cursor, and the pipelines of functions that initialize, advance,
// and finalize a run.
type Spill struct {
	// InitFuncs run once, in order, when Init is called.
	InitFuncs []DomainManipulator

	// RunFuncs run once per timestep, in order, until the step count
	// is reached.
	RunFuncs []DomainManipulator

	// CleanupFuncs run once, in order, when Cleanup is called.
	CleanupFuncs []DomainManipulator

	// Mesh is the computational mesh. It is owned exclusively by this
	// model and never mutated after construction except for cell oil
	// values.
	Mesh *Mesh

	// TStart, TEnd, and NSteps define the time loop. Dt is fixed for
	// the whole run, including after a restart.
	TStart, TEnd float64
	NSteps       int
	Dt           float64

	// T is the current simulation time.
	T float64

	// Done signals the end of the time loop.
	Done bool

	step int
}

// Init initializes the model by running InitFuncs in order.
func (d *Spill) Init() error {
	for _, f := range d.InitFuncs {
		if err := f(d); err != nil {
			return err
		}
	}
	return nil
}

// Run advances the model through its time loop, running RunFuncs in
// order once per step. Any error aborts the run immediately, leaving
// the field in its last fully-committed state.
func (d *Spill) Run() error {
	if d.Dt == 0 {
		return fmt.Errorf("spillsim: timestep is not set; include SetTimestep in InitFuncs")
	}
	for {
		if d.step >= d.NSteps {
			d.Done = true
		}
		if d.Done {
			return nil
		}
		for _, f := range d.RunFuncs {
			if err := f(d); err != nil {
				return err
			}
		}
	}
}

// Cleanup finalizes the simulation by running CleanupFuncs in order.
func (d *Spill) Cleanup() error {
	for _, f := range d.CleanupFuncs {
		if err := f(d); err != nil {
			return err
		}
	}
	return nil
}

// Step returns the number of completed timesteps.
func (d *Spill) Step() int { return d.step }
