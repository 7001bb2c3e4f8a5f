package asm_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/msm/asm"
	"github.com/sarchlab/msm/isa"
)

func mustLex(src string) []asm.Token {
	tokens, err := asm.Lex(src)
	Expect(err).NotTo(HaveOccurred())
	return tokens
}

var _ = Describe("Parse", func() {
	It("should emit one node per statement and a terminal marker", func() {
		ir, err := asm.Parse(mustLex("PUSH 1\nPUSH 2\nADD\nPRINT\nHALT"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ir.Nodes).To(HaveLen(6))
		Expect(ir.Nodes[0].Kind).To(Equal(asm.NodeLiteral))
		Expect(ir.Nodes[0].Value).To(Equal(int32(1)))
		Expect(ir.Nodes[2].Op).To(Equal(isa.ADD))
		Expect(ir.Nodes[2].Kind).To(Equal(asm.NodePlain))
		Expect(ir.Nodes[5].Kind).To(Equal(asm.NodeEnd))
	})

	It("should record labels at the index of their no-op", func() {
		ir, err := asm.Parse(mustLex("PUSH 3\n\ntop:\nDUP\nNZJMP top\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ir.Labels).To(HaveKeyWithValue("top", asm.Label{Line: 3, Index: 1}))
		Expect(ir.Nodes[1].Kind).To(Equal(asm.NodeLabel))
		Expect(ir.Nodes[1].Op).To(Equal(isa.NOP))
		Expect(ir.Nodes[3].Kind).To(Equal(asm.NodeJump))
		Expect(ir.Nodes[3].Target).To(Equal("top"))
	})

	It("should let a later declaration replace an earlier one", func() {
		ir, err := asm.Parse(mustLex("a:\nNOP\na:\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ir.Labels["a"].Index).To(Equal(2))
	})

	It("should carry INDUP and ISWAP indices", func() {
		ir, err := asm.Parse(mustLex("INDUP 0 ISWAP 4"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ir.Nodes[0].Value).To(Equal(int32(0)))
		Expect(ir.Nodes[1].Op).To(Equal(isa.ISWAP))
		Expect(ir.Nodes[1].Value).To(Equal(int32(4)))
	})

	It("should end an empty program with only the marker", func() {
		ir, err := asm.Parse(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(ir.Nodes).To(HaveLen(1))
		Expect(ir.Nodes[0].Kind).To(Equal(asm.NodeEnd))
	})

	DescribeTable("should reject malformed statements",
		func(src string, line int) {
			_, err := asm.Parse(mustLex(src))
			var parseErr *asm.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(parseErr.Token.Line).To(Equal(line))
		},
		Entry("PUSH without operand", "PUSH\nPOP", 2),
		Entry("PUSH at end of input", "NOP\nPUSH", 2),
		Entry("PUSH with a name", "PUSH x", 1),
		Entry("jump with an integer", "JP 3", 1),
		Entry("jump at end of input", "ZJMP", 1),
		Entry("bare integer", "7", 1),
		Entry("bare identifier", "NOP\nfoo", 2),
	)
})
