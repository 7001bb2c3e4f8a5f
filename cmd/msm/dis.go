package main

import (
	"os"

	"github.com/sarchlab/msm/isa"
	"github.com/spf13/cobra"
)

// disCmd represents the dis command
var disCmd = &cobra.Command{
	Use:   "dis binaryFile",
	Short: "Print the instructions of a binary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := isa.ReadProgramFile(args[0])
		if err != nil {
			return err
		}

		isa.Disassemble(os.Stdout, program)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disCmd)
}
