package asm

import "github.com/sarchlab/msm/isa"

// NodeKind tells which payload an IR node carries.
type NodeKind int

const (
	// NodePlain is an instruction without operand.
	NodePlain NodeKind = iota
	// NodeLiteral carries an integer operand in Value.
	NodeLiteral
	// NodeJump carries a label name in Target.
	NodeJump
	// NodeLabel stands for a label declaration and lowers to NOP.
	NodeLabel
	// NodeEnd terminates every node sequence and lowers to nothing.
	NodeEnd
)

// Node is one parsed statement.
type Node struct {
	Kind   NodeKind
	Op     isa.Opcode
	Value  int32
	Target string
	// Token is the token that started the statement.
	Token Token
}

// Label records where a label was declared.
type Label struct {
	// Line is the source line of the declaration.
	Line int
	// Index is the position of the declaration's NOP in the node sequence,
	// which is also its instruction index after code generation.
	Index int
}

// Labels maps label names to their declarations. A later declaration of the
// same name replaces the earlier one.
type Labels map[string]Label

// IR is the output of the parser.
type IR struct {
	Nodes  []Node
	Labels Labels
}
