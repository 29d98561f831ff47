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

package spillsimutil

import (
	"fmt"
	"os"

	"github.com/ctessum/geom"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/spillmodel/spillsim"
)

// Config holds a validated simulation configuration read from a TOML
// file with [settings], [geometry], and [IO] sections.
type Config struct {
	Settings struct {
		NSteps int
		TStart float64
		TEnd   float64
	}

	Geometry struct {
		// MeshName is the path of the mesh file.
		MeshName string
		// Borders is the fishing-grounds rectangle as
		// [[xMin, xMax], [yMin, yMax]].
		Borders [2][2]float64
	}

	IO struct {
		// LogName names the per-run log file (without extension).
		LogName string
		// RestartFile is an optional folder holding saved state to
		// resume from.
		RestartFile string
		// WriteFrequency is the approximate number of full-field
		// snapshots to archive over the run; zero or less disables
		// archiving.
		WriteFrequency int
	}
}

// requiredKeys are the configuration keys that must be present, by
// section.
var requiredKeys = map[string][]string{
	"settings": {"nSteps", "tStart", "tEnd"},
	"geometry": {"meshName", "borders"},
	"IO":       {"logName"},
}

// ReadConfig reads and validates the TOML configuration file at path.
func ReadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("spillsimutil: configuration file %s does not exist", path)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("spillsimutil: reading %s: %v", path, err)
	}

	for section, keys := range requiredKeys {
		if !v.IsSet(section) {
			return nil, fmt.Errorf("spillsimutil: %s: missing section %q", path, section)
		}
		for _, key := range keys {
			if !v.IsSet(section + "." + key) {
				return nil, fmt.Errorf("spillsimutil: %s: missing key %q", path, section+"."+key)
			}
		}
	}

	cfg := new(Config)
	cfg.Settings.NSteps = v.GetInt("settings.nSteps")
	cfg.Settings.TStart = v.GetFloat64("settings.tStart")
	cfg.Settings.TEnd = v.GetFloat64("settings.tEnd")
	cfg.Geometry.MeshName = os.ExpandEnv(v.GetString("geometry.meshName"))
	cfg.IO.LogName = v.GetString("IO.logName")
	cfg.IO.RestartFile = os.ExpandEnv(v.GetString("IO.restartFile"))
	cfg.IO.WriteFrequency = v.GetInt("IO.writeFrequency")

	borders, err := parseBorders(v.Get("geometry.borders"))
	if err != nil {
		return nil, fmt.Errorf("spillsimutil: %s: geometry.borders: %v", path, err)
	}
	cfg.Geometry.Borders = borders

	if cfg.Settings.TEnd <= cfg.Settings.TStart {
		return nil, fmt.Errorf("spillsimutil: %s: tEnd (%g) must be greater than tStart (%g)",
			path, cfg.Settings.TEnd, cfg.Settings.TStart)
	}
	return cfg, nil
}

// parseBorders converts the raw TOML value for geometry.borders into
// the [[xMin, xMax], [yMin, yMax]] rectangle.
func parseBorders(raw interface{}) ([2][2]float64, error) {
	var b [2][2]float64
	rows := cast.ToSlice(raw)
	if len(rows) != 2 {
		return b, fmt.Errorf("need 2 axis ranges, got %d", len(rows))
	}
	for i, row := range rows {
		vals := cast.ToSlice(row)
		if len(vals) != 2 {
			return b, fmt.Errorf("axis range %d: need 2 values, got %d", i, len(vals))
		}
		for j, val := range vals {
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return b, fmt.Errorf("axis range %d: %v", i, err)
			}
			b[i][j] = f
		}
		if b[i][1] < b[i][0] {
			return b, fmt.Errorf("axis range %d: max %g is less than min %g", i, b[i][1], b[i][0])
		}
	}
	return b, nil
}

// Region returns the fishing-grounds rectangle.
func (c *Config) Region() *geom.Bounds {
	b := c.Geometry.Borders
	return spillsim.NewRect(b[0][0], b[1][0], b[0][1], b[1][1])
}
