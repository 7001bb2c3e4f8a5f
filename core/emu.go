package core

import (
	"fmt"

	"github.com/sarchlab/msm/isa"
)

type machineState struct {
	IP      int
	Stack   Stack
	Program isa.Program
	Halted  bool
	Steps   uint64
}

type instFunc func(inst isa.Instruction, state *machineState) error

type instEmulator struct {
	printer Printer
	funcs   map[isa.Opcode]instFunc
}

func newInstEmulator(printer Printer) *instEmulator {
	i := &instEmulator{printer: printer}

	i.funcs = map[isa.Opcode]instFunc{
		isa.PUSH:  i.runPush,
		isa.POP:   i.runPop,
		isa.DUP:   i.runDup,
		isa.SWAP:  i.runSwap,
		isa.ADD:   i.arith(func(a, b int32) int32 { return a + b }),
		isa.SUB:   i.arith(func(a, b int32) int32 { return a - b }),
		isa.MUL:   i.arith(func(a, b int32) int32 { return a * b }),
		isa.DIV:   i.runDiv,
		isa.MOD:   i.runMod,
		isa.CMPE:  i.cmp(func(a, b int32) bool { return a == b }),
		isa.CMPNE: i.cmp(func(a, b int32) bool { return a != b }),
		isa.CMPG:  i.cmp(func(a, b int32) bool { return a > b }),
		isa.CMPL:  i.cmp(func(a, b int32) bool { return a < b }),
		isa.CMPGE: i.cmp(func(a, b int32) bool { return a >= b }),
		isa.CMPLE: i.cmp(func(a, b int32) bool { return a <= b }),
		isa.PRINT: i.runPrint,
		isa.ZJMP:  i.condJump(func(a int32) bool { return a == 0 }),
		isa.NZJMP: i.condJump(func(a int32) bool { return a != 0 }),
		isa.JP:    i.runJp,
		isa.INDUP: i.runIndup,
		isa.ISWAP: i.runIswap,
		isa.NOP:   i.runNop,
		isa.HALT:  i.runHalt,
	}

	return i
}

// RunInst executes one instruction against state. Faults are annotated with
// the position of the instruction.
func (i *instEmulator) RunInst(inst isa.Instruction, state *machineState) error {
	fn, ok := i.funcs[inst.Op]
	if !ok {
		panic(fmt.Sprintf("unknown instruction '%s' at IP %d", inst.Op, state.IP))
	}

	ip := state.IP
	err := fn(inst, state)
	if f, ok := err.(*Fault); ok {
		f.IP = ip
		f.Op = inst.Op
	}
	return err
}

func (i *instEmulator) runPush(inst isa.Instruction, state *machineState) error {
	if err := state.Stack.Push(inst.Operand); err != nil {
		return err
	}
	state.IP++
	return nil
}

func (i *instEmulator) runPop(_ isa.Instruction, state *machineState) error {
	if _, err := state.Stack.Pop(); err != nil {
		return err
	}
	state.IP++
	return nil
}

func (i *instEmulator) runDup(_ isa.Instruction, state *machineState) error {
	a, err := state.Stack.Pop()
	if err != nil {
		return err
	}
	if err := pushAll(state, a, a); err != nil {
		return err
	}
	state.IP++
	return nil
}

func (i *instEmulator) runSwap(_ isa.Instruction, state *machineState) error {
	a, b, err := popTwo(state)
	if err != nil {
		return err
	}
	if err := pushAll(state, a, b); err != nil {
		return err
	}
	state.IP++
	return nil
}

// arith pops a (the top) then b and pushes a OP b.
func (i *instEmulator) arith(op func(a, b int32) int32) instFunc {
	return func(_ isa.Instruction, state *machineState) error {
		a, b, err := popTwo(state)
		if err != nil {
			return err
		}
		if err := state.Stack.Push(op(a, b)); err != nil {
			return err
		}
		state.IP++
		return nil
	}
}

func (i *instEmulator) runDiv(_ isa.Instruction, state *machineState) error {
	return i.divide(state, func(a, b int32) int32 { return a / b })
}

func (i *instEmulator) runMod(_ isa.Instruction, state *machineState) error {
	return i.divide(state, func(a, b int32) int32 { return a % b })
}

func (i *instEmulator) divide(state *machineState, op func(a, b int32) int32) error {
	a, b, err := popTwo(state)
	if err != nil {
		return err
	}
	if b == 0 {
		return fault(DivisionByZero, "%d by 0", a)
	}
	if err := state.Stack.Push(op(a, b)); err != nil {
		return err
	}
	state.IP++
	return nil
}

// cmp pops a then b, restores both and pushes 1 if a OP b holds, else 0.
func (i *instEmulator) cmp(op func(a, b int32) bool) instFunc {
	return func(_ isa.Instruction, state *machineState) error {
		a, b, err := popTwo(state)
		if err != nil {
			return err
		}

		var res int32
		if op(a, b) {
			res = 1
		}

		if err := pushAll(state, b, a, res); err != nil {
			return err
		}
		state.IP++
		return nil
	}
}

func (i *instEmulator) runPrint(_ isa.Instruction, state *machineState) error {
	v, err := state.Stack.Pop()
	if err != nil {
		return err
	}
	if err := i.printer.Print(v); err != nil {
		return fmt.Errorf("print at ip %d: %w", state.IP, err)
	}
	state.IP++
	return nil
}

func (i *instEmulator) condJump(taken func(a int32) bool) instFunc {
	return func(inst isa.Instruction, state *machineState) error {
		target, err := jumpTarget(inst, state)
		if err != nil {
			return err
		}

		a, err := state.Stack.Pop()
		if err != nil {
			return err
		}

		if taken(a) {
			state.IP = target
			return nil
		}
		state.IP++
		return nil
	}
}

func (i *instEmulator) runJp(inst isa.Instruction, state *machineState) error {
	target, err := jumpTarget(inst, state)
	if err != nil {
		return err
	}
	state.IP = target
	return nil
}

func (i *instEmulator) runIndup(inst isa.Instruction, state *machineState) error {
	v, err := state.Stack.At(int(inst.Operand))
	if err != nil {
		return err
	}
	if err := state.Stack.Push(v); err != nil {
		return err
	}
	state.IP++
	return nil
}

func (i *instEmulator) runIswap(inst isa.Instruction, state *machineState) error {
	if err := state.Stack.SwapTop(int(inst.Operand)); err != nil {
		return err
	}
	state.IP++
	return nil
}

func (i *instEmulator) runNop(_ isa.Instruction, state *machineState) error {
	state.IP++
	return nil
}

func (i *instEmulator) runHalt(_ isa.Instruction, state *machineState) error {
	state.Halted = true
	state.IP = len(state.Program)
	return nil
}

func jumpTarget(inst isa.Instruction, state *machineState) (int, error) {
	target := int(inst.Operand)
	if target < 0 || target >= len(state.Program) {
		return 0, fault(JumpOutOfRange, "target %d, program length %d",
			target, len(state.Program))
	}
	return target, nil
}

func popTwo(state *machineState) (a, b int32, err error) {
	if a, err = state.Stack.Pop(); err != nil {
		return 0, 0, err
	}
	if b, err = state.Stack.Pop(); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func pushAll(state *machineState, values ...int32) error {
	for _, v := range values {
		if err := state.Stack.Push(v); err != nil {
			return err
		}
	}
	return nil
}
