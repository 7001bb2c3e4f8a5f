package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/msm/asm"
	"github.com/sarchlab/msm/isa"
	"github.com/sarchlab/msm/verify"
	"github.com/spf13/cobra"
)

var (
	lintMaxSteps uint64
	lintReport   string
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint file",
	Short: "Check a program statically and with a bounded run",
	Long: `Lint checks jump targets, stack indices, reachability and stack depth,
then runs the program with a step limit. The file may be a binary or, when it
ends in .asm or .tim, a source file that is assembled first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(false, logJSON)

		program, err := loadAny(args[0])
		if err != nil {
			return err
		}

		report := verify.GenerateReport(program, lintMaxSteps)
		report.WriteReport(os.Stdout)

		if lintReport != "" {
			if err := report.SaveReportToFile(lintReport); err != nil {
				return err
			}
		}

		if !report.Passed() {
			return fmt.Errorf("%s: %d lint issues", args[0], len(report.LintIssues))
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().Uint64Var(&lintMaxSteps, "max-steps", 100000,
		"step limit of the bounded run")
	lintCmd.Flags().StringVar(&lintReport, "report", "",
		"also save the report to this file")
	rootCmd.AddCommand(lintCmd)
}

func loadAny(path string) (isa.Program, error) {
	if !strings.HasSuffix(path, ".asm") && !strings.HasSuffix(path, ".tim") {
		return isa.ReadProgramFile(path)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	program, err := asm.Assemble(string(text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return program, nil
}
