package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/msm/asm"
	"github.com/sarchlab/msm/isa"
	"github.com/spf13/cobra"
)

var buildOutput string

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build sourceFile",
	Short: "Assemble a source file into a binary",
	Long: `Build assembles one source file. The binary is written next to the
source with the .msm extension unless -o names another path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(false, logJSON)
		return build(args[0], buildOutput)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "",
		"path of the binary (default: source path with .msm extension)")
	rootCmd.AddCommand(buildCmd)
}

func build(src, out string) error {
	text, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	program, err := asm.Assemble(string(text))
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	if out == "" {
		out = isa.DefaultOutputPath(src)
	}

	if err := isa.WriteProgramFile(out, program); err != nil {
		return err
	}

	slog.Info("Assembled",
		"Source", src,
		"Output", out,
		"Instructions", len(program),
	)

	return nil
}
