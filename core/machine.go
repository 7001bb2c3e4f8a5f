// Package core implements the msm virtual machine: a fixed-size operand
// stack, an instruction pointer and an interpreter loop over an isa.Program.
package core

import (
	"io"

	"github.com/sarchlab/msm/isa"
)

// Machine executes one program. A machine is not reused; build a new one for
// every program run.
type Machine struct {
	state    machineState
	emu      *instEmulator
	maxSteps uint64
}

// NewMachine creates a machine with default settings that prints to stdout.
func NewMachine(program isa.Program) *Machine {
	return NewBuilder().Build(program)
}

// IP returns the instruction pointer.
func (m *Machine) IP() int {
	return m.state.IP
}

// SP returns the stack pointer.
func (m *Machine) SP() int {
	return m.state.Stack.Len()
}

// Stack returns a copy of the occupied stack slots, bottom first.
func (m *Machine) Stack() []int32 {
	return m.state.Stack.Values()
}

// Program returns the loaded program.
func (m *Machine) Program() isa.Program {
	return m.state.Program
}

// Halted reports whether the program stopped on a HALT instruction.
func (m *Machine) Halted() bool {
	return m.state.Halted
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() uint64 {
	return m.state.Steps
}

// Done reports whether the instruction pointer has left the program.
func (m *Machine) Done() bool {
	return m.state.IP >= len(m.state.Program)
}

// Step executes the instruction at the instruction pointer. It does nothing
// once the machine is done.
func (m *Machine) Step() error {
	if m.Done() {
		return nil
	}

	inst := m.state.Program[m.state.IP]
	if m.maxSteps > 0 && m.state.Steps >= m.maxSteps {
		return &Fault{
			Kind:   StepLimit,
			IP:     m.state.IP,
			Op:     inst.Op,
			Detail: "limit is " + formatUint(m.maxSteps),
		}
	}

	if traceEnabled() {
		Trace("Step",
			"IP", m.state.IP,
			"Inst", inst.String(),
			"Stack", m.state.Stack.Values(),
		)
	}

	if err := m.emu.RunInst(inst, &m.state); err != nil {
		return err
	}
	m.state.Steps++

	return nil
}

// Run executes the program until the instruction pointer leaves it, a HALT
// is executed, or a fault occurs.
func (m *Machine) Run() error {
	for !m.Done() {
		if err := m.Step(); err != nil {
			LogState(m)
			return err
		}
	}

	Trace("Done",
		"IP", m.state.IP,
		"SP", m.state.Stack.Len(),
		"Steps", m.state.Steps,
		"Halted", m.state.Halted,
	)

	return nil
}

// Builder can create new machines.
type Builder struct {
	printer  Printer
	maxSteps uint64
}

// NewBuilder returns a builder for machines that print to stdout and never
// stop on a step limit.
func NewBuilder() Builder {
	return Builder{
		printer: WriterPrinter{},
	}
}

// WithPrinter sets where PRINT sends values.
func (b Builder) WithPrinter(p Printer) Builder {
	b.printer = p
	return b
}

// WithOutput makes PRINT write decimal lines to w.
func (b Builder) WithOutput(w io.Writer) Builder {
	b.printer = WriterPrinter{W: w}
	return b
}

// WithMaxSteps stops execution with a StepLimit fault after n instructions.
// Zero means no limit.
func (b Builder) WithMaxSteps(n uint64) Builder {
	b.maxSteps = n
	return b
}

// Build creates a machine loaded with program. The stack starts zeroed and
// the instruction pointer at 0.
func (b Builder) Build(program isa.Program) *Machine {
	printer := b.printer
	if printer == nil {
		printer = WriterPrinter{}
	}

	return &Machine{
		state: machineState{
			Program: program,
		},
		emu:      newInstEmulator(printer),
		maxSteps: b.maxSteps,
	}
}
