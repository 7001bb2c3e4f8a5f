package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/msm/config"
	"github.com/sarchlab/msm/core"
	"github.com/sarchlab/msm/isa"
	"github.com/spf13/cobra"
)

var (
	runConfigPath string
	runTrace      bool
	runTimed      bool
	runDump       bool
	runMaxSteps   uint64
	runOutput     string
	runFreqMHz    float64
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run binaryFile",
	Short: "Execute a binary on the virtual machine",
	Long: `Run loads a binary and executes it until the instruction pointer leaves
the program, a HALT is executed, or a fault occurs. Settings come from the
YAML file given with --config; flags that are set override it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}

		setupLogging(cfg.Trace, cfg.LogJSON)

		return run(args[0], cfg)
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runConfigPath, "config", "", "YAML run configuration")
	f.BoolVar(&runTrace, "trace", false, "log every executed instruction")
	f.BoolVar(&runTimed, "timed", false, "run under the cycle-driven simulation engine")
	f.BoolVar(&runDump, "dump", false, "print the machine state after the run")
	f.Uint64Var(&runMaxSteps, "max-steps", 0, "stop after this many instructions (0: no limit)")
	f.StringVar(&runOutput, "output", "", `where PRINT writes: "stdout", "stderr" or a file`)
	f.Float64Var(&runFreqMHz, "freq", 0, "clock of the timed run in MHz")
	rootCmd.AddCommand(runCmd)
}

func loadRunConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if runConfigPath != "" {
		var err error
		if cfg, err = config.Load(runConfigPath); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("trace") {
		cfg.Trace = runTrace
	}
	if f.Changed("timed") {
		cfg.Timed = runTimed
	}
	if f.Changed("dump") {
		cfg.DumpState = runDump
	}
	if f.Changed("max-steps") {
		cfg.MaxSteps = runMaxSteps
	}
	if f.Changed("output") {
		cfg.Output = runOutput
	}
	if f.Changed("freq") {
		cfg.FreqMHz = runFreqMHz
	}
	if f.Changed("log-json") {
		cfg.LogJSON = logJSON
	}

	return cfg, cfg.Validate()
}

func run(path string, cfg config.Config) error {
	program, err := isa.ReadProgramFile(path)
	if err != nil {
		return err
	}

	out, closeOut, err := cfg.OpenOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	p := config.PlatformBuilder{}.
		WithConfig(cfg).
		WithOutput(out).
		Build("Machine", program)

	runErr := p.Run()

	if cfg.DumpState {
		core.PrintState(os.Stderr, p.Machine)
	}

	if p.Driver != nil {
		slog.Info("Timed run finished",
			"Cycles", p.Driver.Cycles(),
			"TimeNS", float64(p.Driver.SimTime()*1e9),
		)
	}

	if runErr != nil {
		return fmt.Errorf("%s: %w", path, runErr)
	}

	return nil
}
