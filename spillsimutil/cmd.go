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

// Package spillsimutil wires the simulation core to its configuration
// files, logging, and command-line interface.
package spillsimutil

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is the model version.
const Version = "1.0.0"

// Root is the main command.
var Root = &cobra.Command{
	Use:   "spillsim",
	Short: "SpillSim simulates oil transport over a triangular mesh.",
	Long: `SpillSim is a finite-volume model of oil transport over an
unstructured triangular mesh. It reads TOML configuration files
describing the mesh, time window, and fishing-grounds region, and
reports the accumulated oil inside that region over time.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("SpillSim v%s\n", Version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run config.toml [config2.toml ...]",
	Short: "Run the simulation for one or more configuration files",
	Long: `run processes each configuration file in order. A failure in
one configuration is logged and the batch continues with the next
one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failures := 0
		for _, configFile := range args {
			if err := RunConfig(configFile); err != nil {
				logrus.WithField("config", configFile).WithError(err).Error("run failed")
				failures++
			}
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d runs failed", failures, len(args))
		}
		return nil
	},
}

func init() {
	Root.AddCommand(versionCmd, runCmd)
}
