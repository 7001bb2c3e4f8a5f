package asm

import (
	"log/slog"

	"github.com/sarchlab/msm/isa"
)

// Generate lowers IR nodes to instructions, resolving every jump target to
// the index of its label.
func Generate(ir *IR) (isa.Program, error) {
	program := make(isa.Program, 0, len(ir.Nodes))

	for _, n := range ir.Nodes {
		switch n.Kind {
		case NodeEnd:
			continue
		case NodeLabel:
			program = append(program, isa.Make(isa.NOP, 0))
		case NodeLiteral:
			program = append(program, isa.Make(n.Op, n.Value))
		case NodeJump:
			label, ok := ir.Labels[n.Target]
			if !ok {
				return nil, &CodeGenError{Label: n.Target, Line: n.Token.Line}
			}
			program = append(program, isa.Make(n.Op, int32(label.Index)))
		default:
			program = append(program, isa.Make(n.Op, 0))
		}
	}

	slog.Debug("Generate",
		"Instructions", len(program),
		"Labels", len(ir.Labels),
	)

	return program, nil
}

// Assemble runs the full pipeline on source text.
func Assemble(src string) (isa.Program, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	ir, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	return Generate(ir)
}

// AssembleBytes assembles source text into its binary form.
func AssembleBytes(src string) ([]byte, error) {
	program, err := Assemble(src)
	if err != nil {
		return nil, err
	}
	return isa.Encode(program), nil
}
