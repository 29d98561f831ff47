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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `[settings]
nSteps = 100
tStart = 0.0
tEnd = 1.0

[geometry]
meshName = "meshes/bay.msh"
borders = [[0.0, 0.45], [0.0, 0.2]]

[IO]
logName = "bay"
writeFrequency = 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.NSteps != 100 {
		t.Errorf("nSteps = %d, want 100", cfg.Settings.NSteps)
	}
	if cfg.Settings.TStart != 0 || cfg.Settings.TEnd != 1 {
		t.Errorf("time window = [%g, %g], want [0, 1]", cfg.Settings.TStart, cfg.Settings.TEnd)
	}
	if cfg.Geometry.MeshName != "meshes/bay.msh" {
		t.Errorf("meshName = %q", cfg.Geometry.MeshName)
	}
	want := [2][2]float64{{0, 0.45}, {0, 0.2}}
	if cfg.Geometry.Borders != want {
		t.Errorf("borders = %v, want %v", cfg.Geometry.Borders, want)
	}
	if cfg.IO.LogName != "bay" {
		t.Errorf("logName = %q, want bay", cfg.IO.LogName)
	}
	if cfg.IO.WriteFrequency != 10 {
		t.Errorf("writeFrequency = %d, want 10", cfg.IO.WriteFrequency)
	}
	if cfg.IO.RestartFile != "" {
		t.Errorf("restartFile = %q, want empty", cfg.IO.RestartFile)
	}

	b := cfg.Region()
	if b.Min.X != 0 || b.Max.X != 0.45 || b.Min.Y != 0 || b.Max.Y != 0.2 {
		t.Errorf("region = %+v", b)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("got %v, want a does-not-exist error", err)
	}
}

func TestReadConfigMissingKeys(t *testing.T) {
	tests := []struct {
		remove string
		want   string
	}{
		{"nSteps = 100\n", "settings.nSteps"},
		{"tEnd = 1.0\n", "settings.tEnd"},
		{"meshName = \"meshes/bay.msh\"\n", "geometry.meshName"},
		{"borders = [[0.0, 0.45], [0.0, 0.2]]\n", "geometry.borders"},
		{"logName = \"bay\"\n", "IO.logName"},
	}
	for _, test := range tests {
		content := strings.Replace(testConfig, test.remove, "", 1)
		_, err := ReadConfig(writeConfig(t, content))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("without %q: got %v, want an error naming %s", test.remove, err, test.want)
		}
	}
}

func TestReadConfigBadBorders(t *testing.T) {
	for _, borders := range []string{
		"[[0.0, 0.45]]",
		"[[0.0], [0.0, 0.2]]",
		"[[0.45, 0.0], [0.0, 0.2]]",
	} {
		content := strings.Replace(testConfig,
			"[[0.0, 0.45], [0.0, 0.2]]", borders, 1)
		if _, err := ReadConfig(writeConfig(t, content)); err == nil {
			t.Errorf("borders %s should be rejected", borders)
		}
	}
}

func TestReadConfigBadTimeWindow(t *testing.T) {
	content := strings.Replace(testConfig, "tEnd = 1.0", "tEnd = 0.0", 1)
	if _, err := ReadConfig(writeConfig(t, content)); err == nil {
		t.Error("tEnd equal to tStart should be rejected")
	}
}

func TestReadConfigExpandsEnv(t *testing.T) {
	t.Setenv("SPILLSIM_TEST_MESH_DIR", "/data/meshes")
	content := strings.Replace(testConfig,
		`meshName = "meshes/bay.msh"`,
		`meshName = "${SPILLSIM_TEST_MESH_DIR}/bay.msh"`, 1)
	cfg, err := ReadConfig(writeConfig(t, content))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Geometry.MeshName != "/data/meshes/bay.msh" {
		t.Errorf("meshName = %q, want the expanded path", cfg.Geometry.MeshName)
	}
}
