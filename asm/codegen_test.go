package asm_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/msm/asm"
	"github.com/sarchlab/msm/isa"
)

var _ = Describe("Generate", func() {
	It("should assemble straight-line code", func() {
		p, err := asm.Assemble("PUSH 1\nPUSH 2\nADD\nPRINT\nHALT\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(isa.Program{
			isa.Make(isa.PUSH, 1),
			isa.Make(isa.PUSH, 2),
			isa.Make(isa.ADD, 0),
			isa.Make(isa.PRINT, 0),
			isa.Make(isa.HALT, 0),
		}))
	})

	It("should resolve backward references", func() {
		p, err := asm.Assemble("PUSH 3\nloop:\nPUSH 1\nSUB\nDUP\nNZJMP loop\nHALT")
		Expect(err).NotTo(HaveOccurred())
		Expect(p[1]).To(Equal(isa.Make(isa.NOP, 0)))
		Expect(p[5]).To(Equal(isa.Make(isa.NZJMP, 1)))
	})

	It("should resolve forward references", func() {
		p, err := asm.Assemble("JP skip\nPUSH 9\nPRINT\nskip:\nHALT")
		Expect(err).NotTo(HaveOccurred())
		Expect(p[0]).To(Equal(isa.Make(isa.JP, 3)))
		Expect(p[3].Op).To(Equal(isa.NOP))
	})

	It("should index labels by instruction, not by source line", func() {
		src := "\n\nPUSH 1 PUSH 0\n\n\nend:\nZJMP end\n"
		p, err := asm.Assemble(src)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(HaveLen(4))
		Expect(p[3]).To(Equal(isa.Make(isa.ZJMP, 2)))
		Expect(p[2].Op).To(Equal(isa.NOP))
	})

	It("should fail on undefined labels", func() {
		_, err := asm.Assemble("PUSH 0\nZJMP nowhere\n")
		var genErr *asm.CodeGenError
		Expect(errors.As(err, &genErr)).To(BeTrue())
		Expect(genErr.Label).To(Equal("nowhere"))
		Expect(genErr.Line).To(Equal(2))
	})

	It("should pass lexer errors through", func() {
		_, err := asm.Assemble("PUSH 1\n$")
		var lexErr *asm.LexError
		Expect(errors.As(err, &lexErr)).To(BeTrue())
	})

	It("should encode the assembled program", func() {
		buf, err := asm.AssembleBytes("PUSH 7 HALT")
		Expect(err).NotTo(HaveOccurred())

		p, err := isa.Decode(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(isa.Program{isa.Make(isa.PUSH, 7), isa.Make(isa.HALT, 0)}))
	})
})
