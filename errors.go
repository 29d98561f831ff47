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

import "fmt"

// GeometryError reports a cell that cannot be constructed: a wrong
// number of vertices or a degenerate (zero-area) triangle. It is fatal
// for the run; stepping a degenerate cell would divide by zero.
type GeometryError struct {
	CellID int
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("spillsim: cell %d: %s", e.CellID, e.Reason)
}

// MeshLoadError reports a mesh source that is missing, unreadable, or
// malformed. It is fatal and aborts the run before any stepping.
type MeshLoadError struct {
	Path string
	Err  error
}

func (e *MeshLoadError) Error() string {
	return fmt.Sprintf("spillsim: loading mesh %s: %v", e.Path, e.Err)
}

func (e *MeshLoadError) Unwrap() error { return e.Err }

// MissingStateError reports restart files that are absent or that do
// not match the current mesh. Resuming onto a different mesh is not
// supported, so a saved value count that differs from the mesh's
// triangle count is fatal rather than silently truncated.
type MissingStateError struct {
	Dir    string
	Reason string
}

func (e *MissingStateError) Error() string {
	return fmt.Sprintf("spillsim: restart state in %s: %s", e.Dir, e.Reason)
}

// InvalidStepError reports a zero or negative step count, which would
// leave the timestep undefined.
type InvalidStepError struct {
	NSteps int
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("spillsim: invalid step count %d; must be positive", e.NSteps)
}
