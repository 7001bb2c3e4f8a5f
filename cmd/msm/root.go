package main

import (
	"log/slog"
	"os"

	"github.com/sarchlab/msm/core"
	"github.com/spf13/cobra"
)

var logJSON bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "msm",
	Short: "Assembler and virtual machine for a small stack machine",
	Long: `Msm translates line-oriented stack machine assembly into a binary of
fixed 8-byte records and executes such binaries on a virtual machine with a
1024-slot integer stack.

A typical session assembles a source file and runs the result:

  msm build countdown.asm
  msm run countdown.msm
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"write log records as JSON")
}

// setupLogging installs the default slog handler on stderr. With trace set
// the level drops to core.LevelTrace so every executed instruction is
// logged.
func setupLogging(trace, json bool) {
	level := slog.LevelInfo
	if trace {
		level = core.LevelTrace
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
