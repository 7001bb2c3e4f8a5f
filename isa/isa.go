// Package isa defines the instruction set of the msm stack machine and its
// fixed-width binary encoding.
package isa

import (
	"fmt"
	"strings"
)

// Opcode identifies one operation of the stack machine. The numeric values
// are the ids stored in the low 16 bits of an encoded record.
type Opcode uint16

const (
	PUSH Opcode = iota
	POP
	CMPE
	CMPNE
	DUP
	ADD
	SWAP
	SUB
	MUL
	DIV
	PRINT
	ZJMP
	NZJMP
	JP
	CMPG
	CMPL
	MOD
	CMPGE
	CMPLE
	NOP
	HALT
	INDUP
	ISWAP

	// NumOpcodes is the number of opcodes in the instruction set.
	NumOpcodes = int(ISWAP) + 1
)

// OperandKind tells what the operand field of an instruction means.
type OperandKind int

const (
	// NoOperand instructions ignore the operand field.
	NoOperand OperandKind = iota
	// Literal instructions carry an integer literal (PUSH) or a stack index
	// (INDUP, ISWAP).
	Literal
	// Target instructions carry an absolute instruction index.
	Target
)

type opInfo struct {
	name    string
	operand OperandKind
}

var opTable = [NumOpcodes]opInfo{
	PUSH:  {"PUSH", Literal},
	POP:   {"POP", NoOperand},
	CMPE:  {"CMPE", NoOperand},
	CMPNE: {"CMPNE", NoOperand},
	DUP:   {"DUP", NoOperand},
	ADD:   {"ADD", NoOperand},
	SWAP:  {"SWAP", NoOperand},
	SUB:   {"SUB", NoOperand},
	MUL:   {"MUL", NoOperand},
	DIV:   {"DIV", NoOperand},
	PRINT: {"PRINT", NoOperand},
	ZJMP:  {"ZJMP", Target},
	NZJMP: {"NZJMP", Target},
	JP:    {"JP", Target},
	CMPG:  {"CMPG", NoOperand},
	CMPL:  {"CMPL", NoOperand},
	MOD:   {"MOD", NoOperand},
	CMPGE: {"CMPGE", NoOperand},
	CMPLE: {"CMPLE", NoOperand},
	NOP:   {"NOP", NoOperand},
	HALT:  {"HALT", NoOperand},
	INDUP: {"INDUP", Literal},
	ISWAP: {"ISWAP", Literal},
}

var mnemonics = func() map[string]Opcode {
	m := make(map[string]Opcode, NumOpcodes)
	for op, info := range opTable {
		m[info.name] = Opcode(op)
	}
	return m
}()

// Valid reports whether op is one of the known opcodes.
func (op Opcode) Valid() bool {
	return int(op) < NumOpcodes
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Opcode(%d)", uint16(op))
	}
	return opTable[op].name
}

// Operand returns the kind of operand the opcode carries.
func (op Opcode) Operand() OperandKind {
	if !op.Valid() {
		return NoOperand
	}
	return opTable[op].operand
}

// IsJump reports whether the operand of op is an instruction index.
func (op Opcode) IsJump() bool {
	return op.Operand() == Target
}

// Lookup finds the opcode for a mnemonic. Matching is case-insensitive.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := mnemonics[strings.ToUpper(mnemonic)]
	return op, ok
}

// Opcodes returns every opcode in id order.
func Opcodes() []Opcode {
	ops := make([]Opcode, NumOpcodes)
	for i := range ops {
		ops[i] = Opcode(i)
	}
	return ops
}

// Instruction is one decoded record of a program. Operand is meaningful only
// when Op.Operand() is not NoOperand.
type Instruction struct {
	Op      Opcode
	Operand int32
}

// Make builds an instruction, dropping the operand for opcodes without one.
func Make(op Opcode, operand int32) Instruction {
	if op.Operand() == NoOperand {
		operand = 0
	}
	return Instruction{Op: op, Operand: operand}
}

func (i Instruction) String() string {
	if i.Op.Operand() == NoOperand {
		return i.Op.String()
	}
	return fmt.Sprintf("%s %d", i.Op, i.Operand)
}

// Program is an ordered sequence of instructions, the unit of execution.
type Program []Instruction
