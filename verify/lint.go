package verify

import (
	"fmt"

	"github.com/sarchlab/msm/core"
	"github.com/sarchlab/msm/isa"
)

// unknownDepth marks an instruction reached with different stack depths.
const unknownDepth = -1

// RunLint performs static lint checks on a program.
// It validates structure (STRUCT) first. Control flow (FLOW) and stack
// depth (STACK) are only checked when the structure is sound, since both
// follow jump targets.
// Returns a list of issues found, or empty list if no issues.
func RunLint(p isa.Program) []Issue {
	issues := checkStructure(p)
	if len(issues) > 0 {
		return issues
	}

	reachable, stackIssues := walk(p)
	issues = append(issues, checkReachability(p, reachable)...)
	issues = append(issues, stackIssues...)

	return issues
}

func checkStructure(p isa.Program) []Issue {
	var issues []Issue

	for i, inst := range p {
		if !inst.Op.Valid() {
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Index:   i,
				Op:      inst.Op,
				Message: fmt.Sprintf("Unknown opcode id %d at %d", uint16(inst.Op), i),
			})
			continue
		}

		switch inst.Op.Operand() {
		case isa.Target:
			if inst.Operand < 0 || int(inst.Operand) >= len(p) {
				issues = append(issues, Issue{
					Type:  IssueStruct,
					Index: i,
					Op:    inst.Op,
					Message: fmt.Sprintf("Jump target %d out of range at %d (program has %d instructions)",
						inst.Operand, i, len(p)),
					Details: map[string]interface{}{"target": inst.Operand},
				})
			}
		case isa.Literal:
			if inst.Op == isa.PUSH {
				continue
			}
			if inst.Operand < 0 || inst.Operand >= core.StackCapacity {
				issues = append(issues, Issue{
					Type:  IssueStruct,
					Index: i,
					Op:    inst.Op,
					Message: fmt.Sprintf("Stack index %d can never be valid at %d (capacity %d)",
						inst.Operand, i, core.StackCapacity),
					Details: map[string]interface{}{"index": inst.Operand},
				})
			}
		}
	}

	return issues
}

// walk follows every path from the first instruction, tracking the stack
// depth before each instruction. It returns which instructions are
// reachable and the stack issues found on the way. The program must be
// structurally sound.
func walk(p isa.Program) ([]bool, []Issue) {
	reachable := make([]bool, len(p))
	depths := make([]int, len(p))
	if len(p) == 0 {
		return reachable, nil
	}

	var issues []Issue
	reported := make([]bool, len(p))

	reachable[0] = true
	work := []int{0}

	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]

		inst := p[i]
		depth := depths[i]
		next := unknownDepth

		if depth != unknownDepth {
			e := effectOf(inst)
			if issue, ok := checkDepth(i, inst, depth, e); ok {
				if !reported[i] {
					issues = append(issues, issue)
					reported[i] = true
				}
			} else {
				next = depth + e.delta
			}
		}

		for _, s := range successors(p, i) {
			if s >= len(p) {
				continue
			}

			switch {
			case !reachable[s]:
				reachable[s] = true
				depths[s] = next
			case depths[s] != next && depths[s] != unknownDepth:
				depths[s] = unknownDepth
			default:
				continue
			}
			work = append(work, s)
		}
	}

	return reachable, issues
}

func checkDepth(i int, inst isa.Instruction, depth int, e stackEffect) (Issue, bool) {
	if depth < e.needs {
		return Issue{
			Type:  IssueStack,
			Index: i,
			Op:    inst.Op,
			Message: fmt.Sprintf("Stack underflow at %d: %s needs %d values, stack holds %d",
				i, inst, e.needs, depth),
			Details: map[string]interface{}{"depth": depth, "needs": e.needs},
		}, true
	}

	if depth+e.delta > core.StackCapacity {
		return Issue{
			Type:  IssueStack,
			Index: i,
			Op:    inst.Op,
			Message: fmt.Sprintf("Stack overflow at %d: %s on a stack of %d (capacity %d)",
				i, inst, depth, core.StackCapacity),
			Details: map[string]interface{}{"depth": depth},
		}, true
	}

	return Issue{}, false
}

func checkReachability(p isa.Program, reachable []bool) []Issue {
	var issues []Issue

	for i := 0; i < len(p); i++ {
		if reachable[i] {
			continue
		}

		start := i
		for i+1 < len(p) && !reachable[i+1] {
			i++
		}

		msg := fmt.Sprintf("Unreachable instruction at %d", start)
		if i > start {
			msg = fmt.Sprintf("Unreachable instructions at %d-%d", start, i)
		}
		issues = append(issues, Issue{
			Type:    IssueFlow,
			Index:   start,
			Op:      p[start].Op,
			Message: msg,
			Details: map[string]interface{}{"first": start, "last": i},
		})
	}

	for i, inst := range p {
		if !reachable[i] {
			continue
		}
		for _, s := range successors(p, i) {
			if s == len(p) {
				issues = append(issues, Issue{
					Type:    IssueFlow,
					Index:   i,
					Op:      inst.Op,
					Message: fmt.Sprintf("Execution can leave the program after %d without HALT", i),
				})
			}
		}
	}

	return issues
}
