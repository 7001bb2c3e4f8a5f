package core

import (
	"fmt"

	"github.com/sarchlab/msm/isa"
)

// FaultKind classifies a runtime fault.
type FaultKind int

const (
	StackOverflow FaultKind = iota
	StackUnderflow
	JumpOutOfRange
	IndexOutOfRange
	DivisionByZero
	StepLimit
)

var faultNames = map[FaultKind]string{
	StackOverflow:   "stack overflow",
	StackUnderflow:  "stack underflow",
	JumpOutOfRange:  "jump out of bound",
	IndexOutOfRange: "index out of range",
	DivisionByZero:  "division by zero",
	StepLimit:       "step limit exceeded",
}

func (k FaultKind) String() string {
	if name, ok := faultNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FaultKind(%d)", int(k))
}

// Fault is an unrecoverable error raised while executing a program. The
// machine stops at the faulting instruction.
type Fault struct {
	Kind FaultKind
	// IP is the index of the faulting instruction.
	IP int
	// Op is the opcode of the faulting instruction.
	Op     isa.Opcode
	Detail string
}

func (f *Fault) Error() string {
	msg := fmt.Sprintf("%s at ip %d (%s)", f.Kind, f.IP, f.Op)
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	return msg
}

func fault(kind FaultKind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
