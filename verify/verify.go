// Package verify provides static and dynamic checks of assembled programs.
//
// It implements two complementary stages:
//
// 1. Static lint (lint.go): structural and control-flow checks
//   - STRUCT: unknown opcodes, jump targets outside the program, stack
//     indices that can never be valid
//   - FLOW: unreachable instructions, paths that leave the program without
//     HALT
//   - STACK: definite underflow or overflow found by tracking the stack
//     depth along every path
//
// 2. Bounded execution (report.go): runs the program on a core.Machine with
//    a step limit and records its output, final state and fault.
//
// # Stack Depth Model
//
// The depth before each instruction is either a known number or unknown.
// Two paths that reach an instruction with different depths make it
// unknown, and no stack issue is reported from an unknown depth. A loop
// that grows the stack each iteration is therefore never flagged.
//
// # Usage Example
//
//	program, _ := asm.Assemble(src)
//	report := verify.GenerateReport(program, 10000)
//	report.WriteReport(os.Stdout)
package verify

import "github.com/sarchlab/msm/isa"

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Malformed instruction (bad opcode, target or index)
	IssueFlow   IssueType = "FLOW"   // Control-flow problem (dead code, missing HALT)
	IssueStack  IssueType = "STACK"  // Stack depth problem on some path
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT, FLOW or STACK
	Index   int                    // Instruction index or -1
	Op      isa.Opcode             // Opcode at Index
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}

// stackEffect gives the depth an opcode needs and the change it makes.
// INDUP and ISWAP need one more slot than their operand.
type stackEffect struct {
	needs int
	delta int
}

var stackEffects = map[isa.Opcode]stackEffect{
	isa.PUSH:  {0, 1},
	isa.POP:   {1, -1},
	isa.ADD:   {2, -1},
	isa.SUB:   {2, -1},
	isa.MUL:   {2, -1},
	isa.DIV:   {2, -1},
	isa.MOD:   {2, -1},
	isa.DUP:   {1, 1},
	isa.SWAP:  {2, 0},
	isa.CMPE:  {2, 1},
	isa.CMPNE: {2, 1},
	isa.CMPG:  {2, 1},
	isa.CMPL:  {2, 1},
	isa.CMPGE: {2, 1},
	isa.CMPLE: {2, 1},
	isa.PRINT: {1, -1},
	isa.ZJMP:  {1, -1},
	isa.NZJMP: {1, -1},
	isa.JP:    {0, 0},
	isa.INDUP: {0, 1},
	isa.ISWAP: {0, 0},
	isa.NOP:   {0, 0},
	isa.HALT:  {0, 0},
}

func effectOf(inst isa.Instruction) stackEffect {
	e := stackEffects[inst.Op]
	if inst.Op == isa.INDUP || inst.Op == isa.ISWAP {
		e.needs = int(inst.Operand) + 1
	}
	return e
}

// successors returns the instruction indices control can reach from index
// i. An index equal to len(p) means the program ends there.
func successors(p isa.Program, i int) []int {
	inst := p[i]
	switch inst.Op {
	case isa.HALT:
		return nil
	case isa.JP:
		return []int{int(inst.Operand)}
	case isa.ZJMP, isa.NZJMP:
		return []int{int(inst.Operand), i + 1}
	}
	return []int{i + 1}
}
