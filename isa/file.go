package isa

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// BinaryExt is the extension of assembled program files.
const BinaryExt = ".msm"

// DefaultOutputPath derives the binary path for a source file by replacing
// its extension with BinaryExt.
func DefaultOutputPath(src string) string {
	ext := filepath.Ext(src)
	if ext == "" || ext == BinaryExt {
		return src + BinaryExt
	}
	return strings.TrimSuffix(src, ext) + BinaryExt
}

// WriteProgramFile encodes p and writes it to path.
func WriteProgramFile(path string, p Program) error {
	if err := os.WriteFile(path, Encode(p), 0o644); err != nil {
		return fmt.Errorf("failed to write program file: %w", err)
	}
	return nil
}

// ReadProgramFile reads and decodes the program stored at path.
func ReadProgramFile(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}

	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Disassemble writes a listing of p as a table with one row per instruction.
func Disassemble(w io.Writer, p Program) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Program (%d instructions)", len(p)))
	t.AppendHeader(table.Row{"Index", "Opcode", "Operand", "Word"})

	for i, inst := range p {
		operand := ""
		if inst.Op.Operand() != NoOperand {
			operand = fmt.Sprintf("%d", inst.Operand)
		}
		t.AppendRow(table.Row{
			i, inst.Op.String(), operand,
			fmt.Sprintf("0x%016X", EncodeInstruction(inst)),
		})
	}

	t.Render()
}
