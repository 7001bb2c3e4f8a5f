package api

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/msm/asm"
	"github.com/sarchlab/msm/core"
)

var _ = Describe("Driver", func() {
	var (
		engine sim.Engine
		out    *bytes.Buffer
	)

	build := func(src string) *driverImpl {
		program, err := asm.Assemble(src)
		Expect(err).NotTo(HaveOccurred())

		m := core.NewBuilder().WithOutput(out).Build(program)

		return DriverBuilder{}.
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithMachine(m).
			Build("Driver").(*driverImpl)
	}

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		out = &bytes.Buffer{}
	})

	It("should execute one instruction per tick", func() {
		d := build("PUSH 1 PUSH 2 ADD PRINT HALT")

		Expect(d.Tick()).To(BeTrue())
		Expect(d.Machine().Stack()).To(Equal([]int32{1}))
		Expect(d.Cycles()).To(Equal(uint64(1)))
	})

	It("should stop ticking once the machine is done", func() {
		d := build("HALT")

		Expect(d.Tick()).To(BeTrue())
		Expect(d.Tick()).To(BeFalse())
		Expect(d.Cycles()).To(Equal(uint64(1)))
	})

	It("should run a program to completion", func() {
		d := build("PUSH 3 loop: PUSH 1 SWAP SUB DUP NZJMP loop PRINT HALT")

		Expect(d.Run()).To(Succeed())
		Expect(out.String()).To(Equal("0\n"))
		Expect(d.Cycles()).To(Equal(d.Machine().Steps()))
		Expect(d.Machine().Halted()).To(BeTrue())
		Expect(d.SimTime()).To(BeNumerically(">", 0))
	})

	It("should return the fault of the machine", func() {
		d := build("PUSH 1 POP POP")

		err := d.Run()
		var f *core.Fault
		Expect(errors.As(err, &f)).To(BeTrue())
		Expect(f.Kind).To(Equal(core.StackUnderflow))
		Expect(d.Cycles()).To(Equal(uint64(2)))
		Expect(d.Tick()).To(BeFalse())
	})

	It("should need a machine", func() {
		Expect(func() { DriverBuilder{}.Build("Driver") }).To(Panic())
	})
})
