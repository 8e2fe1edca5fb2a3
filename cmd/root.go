package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/volleysim/volleysim/server"
	"github.com/volleysim/volleysim/sim"
)

var (
	// CLI flags shared by the run and watch commands
	seed          int64  // Seed for the serve and variance RNG streams
	rallies       int    // Number of rallies to play
	maxRallyTicks int    // Per-rally tick bound before the rally is abandoned
	logLevel      string // Log verbosity level
	preset        string // Named tunables preset (beginner, high-school, club, college)
	tunablesPath  string // YAML tunables file, layered over the preset
	exportPath    string // Where to write the final serialized world, empty to skip
	servingSide   string // Which side serves first (home, away)

	// watch command flags
	watchAddr string // Listen address for the websocket feed
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "volleysim",
	Short: "Deterministic tick-based volleyball rally simulator",
}

// loadTunables resolves the preset and optional YAML overlay into the
// tunables record both subcommands run with.
func loadTunables() *sim.Tunables {
	tun := sim.PresetTunables(preset)
	if tunablesPath != "" {
		loaded, err := sim.LoadTunables(tunablesPath)
		if err != nil {
			logrus.Fatalf("Unable to load tunables: %v", err)
		}
		tun = loaded
	}
	return tun
}

// newController builds the controller both subcommands drive.
func newController() *sim.Controller {
	side := sim.SideHome
	if servingSide == "away" {
		side = sim.SideAway
	}
	return sim.NewController(loadTunables(), sim.NewSimulationKey(seed), sim.InitOptions{ServingSide: side})
}

// playRallies serves and simulates the requested number of rallies on a
// controller, returning when they are all dead.
func playRallies(ctrl *sim.Controller) {
	for i := 0; i < rallies; i++ {
		ctrl.Serve()
		ran := ctrl.SimulateUntil(sim.UntilBallDead(), maxRallyTicks)
		logrus.Debugf("rally %d finished in %d ticks", i+1, ran)
		ctrl.ResetRally()
	}
}

// runCmd plays rallies to completion and prints the aggregate metrics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play rallies to completion and report the outcome",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		ctrl := newController()
		logrus.Infof("Starting simulation: seed=%d rallies=%d preset=%q", seed, rallies, preset)

		startTime := time.Now()
		playRallies(ctrl)
		ctrl.Metrics.Print()
		logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))

		if exportPath != "" {
			data, err := ctrl.ExportState()
			if err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
			if err := os.WriteFile(exportPath, data, 0o644); err != nil {
				logrus.Fatalf("Unable to write %s: %v", exportPath, err)
			}
			logrus.Infof("Final world exported to %s", exportPath)
		}
	},
}

// watchCmd plays rallies at real-time pace while serving the websocket feed
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Serve a live websocket feed while playing rallies in real time",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		tun := loadTunables()
		ctrl := newController()
		ctrl.Resume()

		go func() {
			interval := time.Second / time.Duration(tun.TicksPerSecond)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			played := 0
			for range ticker.C {
				if ctrl.Paused() {
					continue
				}
				w := ctrl.World()
				switch w.Rally.Phase {
				case sim.PhasePreServe:
					ctrl.Serve()
				case sim.PhaseBallDead:
					played++
					if played >= rallies {
						ctrl.Metrics.Print()
						ctrl.Pause()
						continue
					}
					ctrl.ResetRally()
				default:
					ctrl.Step(sim.StepOptions{Commit: true})
				}
			}
		}()

		feed := server.NewFeed(ctrl)
		if err := feed.ListenAndServe(watchAddr); err != nil {
			logrus.Fatalf("Feed server failed: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, cmd := range []*cobra.Command{runCmd, watchCmd} {
		cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the serve and variance RNG streams")
		cmd.Flags().IntVar(&rallies, "rallies", 25, "Number of rallies to play")
		cmd.Flags().IntVar(&maxRallyTicks, "max-ticks", 2000, "Per-rally tick bound before the rally is abandoned")
		cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
		cmd.Flags().StringVar(&preset, "preset", "club", "Tunables preset (beginner, high-school, club, college)")
		cmd.Flags().StringVar(&tunablesPath, "tunables", "", "YAML tunables file overriding the preset")
		cmd.Flags().StringVar(&servingSide, "serving-side", "home", "Side that serves first (home, away)")
	}
	runCmd.Flags().StringVar(&exportPath, "export", "", "Write the final serialized world to this file")
	watchCmd.Flags().StringVar(&watchAddr, "addr", ":8080", "Listen address for the websocket feed")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
}
