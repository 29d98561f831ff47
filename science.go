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
	"github.com/ctessum/atmos/advect"
	"github.com/ctessum/geom"
)

// Flux returns the first-order upwind flux across a single edge,
// where a is the scalar value in the current cell, b the value in the
// neighbor, normal the outward edge normal scaled to the edge length,
// and velocity the carrier velocity at the edge. Flux leaves the
// current cell when the velocity component along the outward normal
// is positive, and enters from the neighbor when it is negative.
func Flux(a, b float64, normal, velocity geom.Point) float64 {
	angle := normal.X*velocity.X + normal.Y*velocity.Y
	// UpwindFlux with a unit cell length reduces to a·angle for
	// outflow and b·angle for inflow; the edge length is already
	// carried by the normal.
	return advect.UpwindFlux(angle, a, b, 1)
}

// SnapshotOil returns a function that records the beginning-of-step
// oil value in every cell. It must run over all cells before
// UpwindAdvection runs over any of them: the advection pass reads only
// these snapshots, which keeps the update independent of cell order.
func SnapshotOil() CellManipulator {
	return func(c *Cell, Δt float64) {
		c.oilOld = c.Oil
	}
}

// UpwindAdvection returns a function that advances a cell's oil by one
// timestep, summing the upwind flux across each edge that has a
// neighbor. Boundary edges contribute nothing. The velocity at an edge
// is the mean of the two adjacent cell velocities. Lines never change.
func UpwindAdvection() CellManipulator {
	return func(c *Cell, Δt float64) {
		if c.Type != TriangleCell {
			return
		}
		for i, n := range c.neighborCells {
			if n == nil {
				continue
			}
			v := geom.Point{
				X: 0.5 * (c.Velocity.X + n.Velocity.X),
				Y: 0.5 * (c.Velocity.Y + n.Velocity.Y),
			}
			c.Oil -= Δt / c.Area * Flux(c.oilOld, n.oilOld, c.Normals[i], v)
		}
	}
}
