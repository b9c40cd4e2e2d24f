package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simtheverse/entsync/lagcomp"
	_ "github.com/simtheverse/entsync/lagcomp/integ"
	"github.com/simtheverse/entsync/scenario"
)

var (
	// CLI flags for the loopback scenario
	scenarioPath string  // yaml scenario spec path ("" = built-in default)
	duration     float64 // scenario length in seconds
	cycleTime    float64 // scheduler cycle in seconds
	lookahead    float64 // federation lookahead in seconds
	sendEvery    int     // publish every Nth cycle
	realTime     bool    // pace cycles against the wall clock
	logLevel     string  // log verbosity level

	// CLI flags for the integration strategy
	integrator string  // registered integrator name
	stepSize   float64 // fixed sub-step size in seconds
	tolerance  float64 // sub-step loop termination tolerance
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "entsync",
	Short: "Latency compensation for federated entity state synchronization",
}

// runCmd executes the loopback scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the loopback compensation scenario",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec, err := buildSpec(cmd)
		if err != nil {
			logrus.Fatalf("Scenario configuration: %v", err)
		}

		logrus.Infof("Starting scenario %q: duration=%gs cycle=%gs lookahead=%gs integrator=%s step=%g",
			spec.Name, spec.Duration, spec.CycleTime, spec.Lookahead,
			spec.Engine.Integrator, spec.Engine.StepSize)

		result, err := scenario.Run(spec, logrus.StandardLogger())
		if err != nil {
			logrus.Fatalf("Scenario failed: %v", err)
		}
		result.Log(logrus.StandardLogger())
	},
}

// buildSpec loads the yaml scenario when one is given, otherwise starts from
// the built-in default; explicitly set flags override the spec either way.
func buildSpec(cmd *cobra.Command) (*scenario.Spec, error) {
	var spec *scenario.Spec
	if scenarioPath != "" {
		loaded, err := scenario.Load(scenarioPath)
		if err != nil {
			return nil, err
		}
		spec = loaded
	} else {
		spec = scenario.Default()
	}

	if cmd.Flags().Changed("duration") {
		spec.Duration = duration
	}
	if cmd.Flags().Changed("cycle") {
		spec.CycleTime = cycleTime
	}
	if cmd.Flags().Changed("lookahead") {
		spec.Lookahead = lookahead
	}
	if cmd.Flags().Changed("send-every") {
		spec.SendEvery = sendEvery
	}
	if cmd.Flags().Changed("real-time") {
		spec.RealTime = realTime
	}
	if cmd.Flags().Changed("integrator") {
		spec.Engine.Integrator = integrator
	}
	if cmd.Flags().Changed("step") {
		spec.Engine.StepSize = stepSize
	}
	if cmd.Flags().Changed("tolerance") {
		spec.Engine.Tolerance = tolerance
	}
	return spec, spec.Validate()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a yaml scenario spec")
	runCmd.Flags().Float64Var(&duration, "duration", 10, "Scenario length in seconds")
	runCmd.Flags().Float64Var(&cycleTime, "cycle", 0.25, "Scheduler cycle in seconds")
	runCmd.Flags().Float64Var(&lookahead, "lookahead", 0.1, "Federation lookahead in seconds")
	runCmd.Flags().IntVar(&sendEvery, "send-every", 1, "Publish every Nth cycle")
	runCmd.Flags().BoolVar(&realTime, "real-time", false, "Pace cycles against the wall clock")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&integrator, "integrator", lagcomp.DefaultIntegrator, "Integration strategy (euler, rk4, rk4sa)")
	runCmd.Flags().Float64Var(&stepSize, "step", lagcomp.DefaultStepSize, "Fixed integration sub-step in seconds")
	runCmd.Flags().Float64Var(&tolerance, "tolerance", lagcomp.DefaultTolerance, "Sub-step loop termination tolerance")

	rootCmd.AddCommand(runCmd)
}
