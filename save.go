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
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
)

// Restart file pair. Both are plain text: oil values hold one float
// per line for each triangle in creation order; simulation data holds
// "key: value" lines.
const (
	OilValuesFile      = "oil_values.txt"
	SimulationDataFile = "simulation_data.txt"
)

// Save returns a function that writes the simulation state to dir:
// the per-triangle oil values in creation order, and run metadata
// including the current time and remaining step count needed to
// resume. Lines are pinned at zero for their whole lifetime and are
// not written.
func Save(dir string, region *geom.Bounds) DomainManipulator {
	return func(d *Spill) error {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("spillsim: saving state: %v", err)
		}

		oils := make([]float64, 0, d.Mesh.NumTriangles())
		for _, c := range d.Mesh.Cells {
			if c.Type == TriangleCell {
				oils = append(oils, c.Oil)
			}
		}

		f, err := os.Create(filepath.Join(dir, OilValuesFile))
		if err != nil {
			return fmt.Errorf("spillsim: saving oil values: %v", err)
		}
		w := bufio.NewWriter(f)
		for _, v := range oils {
			fmt.Fprintln(w, formatFloat(v))
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return fmt.Errorf("spillsim: saving oil values: %v", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("spillsim: saving oil values: %v", err)
		}

		regionCells := d.Mesh.Within(region)
		regionOils := make([]float64, len(regionCells))
		for i, c := range regionCells {
			regionOils[i] = c.Oil
		}

		// A mesh of only boundary lines has no oil anywhere.
		var maxOil, minOil float64
		if len(oils) > 0 {
			maxOil = floats.Max(oils)
			minOil = floats.Min(oils)
		}

		f, err = os.Create(filepath.Join(dir, SimulationDataFile))
		if err != nil {
			return fmt.Errorf("spillsim: saving simulation data: %v", err)
		}
		w = bufio.NewWriter(f)
		fmt.Fprintf(w, "tStart: %s\n", formatFloat(d.TStart))
		fmt.Fprintf(w, "tEnd: %s\n", formatFloat(d.TEnd))
		fmt.Fprintf(w, "meshName: %s\n", d.Mesh.Name)
		fmt.Fprintf(w, "max_oil: %s\n", formatFloat(maxOil))
		fmt.Fprintf(w, "min_oil: %s\n", formatFloat(minOil))
		fmt.Fprintf(w, "total_oil: %s\n", formatFloat(floats.Sum(oils)))
		fmt.Fprintf(w, "fishing_grounds_oil: %s\n", formatFloat(floats.Sum(regionOils)))
		fmt.Fprintf(w, "fishing_borders: [[%s, %s], [%s, %s]]\n",
			formatFloat(region.Min.X), formatFloat(region.Max.X),
			formatFloat(region.Min.Y), formatFloat(region.Max.Y))
		fmt.Fprintf(w, "current_time: %s\n", formatFloat(d.T))
		fmt.Fprintf(w, "remaining_steps: %d\n", d.NSteps-d.step)
		if err := w.Flush(); err != nil {
			f.Close()
			return fmt.Errorf("spillsim: saving simulation data: %v", err)
		}
		return f.Close()
	}
}

// Load returns a function that resumes a run from a previous Save in
// dir. It overwrites every triangle's oil in creation order, then
// moves the start of the time loop to the saved current time and
// recomputes the remaining step count as floor((tEnd-t)/dt). The mesh
// geometry, connectivity, and timestep are untouched, so Load must
// run after SetTimestep. Resuming onto a mesh with a different
// triangle count fails.
func Load(dir string) DomainManipulator {
	return func(d *Spill) error {
		values, err := readOilValues(filepath.Join(dir, OilValuesFile))
		if err != nil {
			if os.IsNotExist(err) {
				return &MissingStateError{Dir: dir, Reason: OilValuesFile + " is missing"}
			}
			return &MissingStateError{Dir: dir, Reason: err.Error()}
		}
		if len(values) != d.Mesh.NumTriangles() {
			return &MissingStateError{Dir: dir,
				Reason: fmt.Sprintf("saved %d oil values but mesh has %d triangles",
					len(values), d.Mesh.NumTriangles())}
		}

		currentTime, ok, err := readSimulationData(filepath.Join(dir, SimulationDataFile))
		if err != nil {
			if os.IsNotExist(err) {
				return &MissingStateError{Dir: dir, Reason: SimulationDataFile + " is missing"}
			}
			return &MissingStateError{Dir: dir, Reason: err.Error()}
		}
		if !ok {
			return &MissingStateError{Dir: dir, Reason: "current_time key is missing"}
		}

		i := 0
		for _, c := range d.Mesh.Cells {
			if c.Type == TriangleCell {
				c.Oil = values[i]
				i++
			}
		}

		d.TStart = currentTime
		d.T = currentTime
		d.NSteps = int(math.Floor((d.TEnd - currentTime) / d.Dt))
		d.step = 0
		d.Done = false
		return nil
	}
}

func readOilValues(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var values []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing oil value %q: %v", line, err)
		}
		values = append(values, v)
	}
	return values, scanner.Err()
}

// readSimulationData scans the metadata file for the current_time
// key. The informational keys written by Save are not required.
func readSimulationData(path string) (currentTime float64, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "current_time" {
			currentTime, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return 0, false, fmt.Errorf("parsing current_time: %v", err)
			}
			found = true
		}
	}
	return currentTime, found, scanner.Err()
}

// formatFloat writes v with the smallest number of digits that
// round-trips exactly, so a saved field reloads bit for bit.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
