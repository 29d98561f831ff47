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
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/spillmodel/spillsim"
)

const (
	logDir    = "logs"
	resultDir = "result_folder"
)

// setupLog creates a logger writing to logs/<logName>.log.
func setupLog(logName string) (*logrus.Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(logDir, logName+".log"))
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger, nil
}

// RunConfig runs one simulation described by the configuration file
// at configPath. Results are written to result_folder/<config name>/:
// the restart state pair, the fishing-grounds time series as CSV, and
// the final oil field as a shapefile.
func RunConfig(configPath string) error {
	cfg, err := ReadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := setupLog(cfg.IO.LogName)
	if err != nil {
		return fmt.Errorf("spillsimutil: setting up log: %v", err)
	}

	name := strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath))
	outDir := filepath.Join(resultDir, name)

	logger.WithField("mesh", cfg.Geometry.MeshName).Info("loading mesh")
	mesh, err := spillsim.LoadMesh(cfg.Geometry.MeshName)
	if err != nil {
		return err
	}
	mesh.SetNeighbors()
	logger.WithFields(logrus.Fields{
		"cells":     len(mesh.Cells),
		"triangles": mesh.NumTriangles(),
	}).Info("mesh ready")

	region := cfg.Region()
	var series []spillsim.RegionSample
	outputter := spillsim.NewOutputter(cfg.Settings.NSteps, cfg.IO.WriteFrequency)
	if cfg.IO.WriteFrequency <= 0 {
		logger.Warn("writeFrequency is not positive; skipping field snapshots")
	}

	initFuncs := []spillsim.DomainManipulator{spillsim.SetTimestep()}
	if cfg.IO.RestartFile != "" {
		// Load must follow SetTimestep so the timestep stays pinned to
		// the original time window.
		initFuncs = append(initFuncs, spillsim.Load(cfg.IO.RestartFile))
	}
	initFuncs = append(initFuncs,
		spillsim.RecordRegionOil(region, &series),
		outputter.Snapshot(),
	)

	d := &spillsim.Spill{
		Mesh:   mesh,
		TStart: cfg.Settings.TStart,
		TEnd:   cfg.Settings.TEnd,
		NSteps: cfg.Settings.NSteps,

		InitFuncs: initFuncs,
		RunFuncs: []spillsim.DomainManipulator{
			spillsim.Calculations(spillsim.SnapshotOil()),
			spillsim.Calculations(spillsim.UpwindAdvection()),
			spillsim.StepCountCheck(),
			spillsim.RecordRegionOil(region, &series),
			outputter.Snapshot(),
			spillsim.Log(logger.Writer()),
		},
		CleanupFuncs: []spillsim.DomainManipulator{
			spillsim.Save(outDir, region),
		},
	}

	if err := d.Init(); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"tStart": d.TStart,
		"tEnd":   d.TEnd,
		"nSteps": d.NSteps,
		"dt":     d.Dt,
	}).Info("starting simulation")
	if err := d.Run(); err != nil {
		return err
	}
	if err := d.Cleanup(); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(outDir, "fishing_oil.csv"))
	if err != nil {
		return fmt.Errorf("spillsimutil: writing region series: %v", err)
	}
	if err := spillsim.WriteRegionSeries(f, series); err != nil {
		f.Close()
		return fmt.Errorf("spillsimutil: writing region series: %v", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := d.WriteShapefile(filepath.Join(outDir, "oil_final.shp")); err != nil {
		return err
	}

	logger.WithField("results", outDir).Info("simulation complete")
	return nil
}
