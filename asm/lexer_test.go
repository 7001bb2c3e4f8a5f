package asm_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/msm/asm"
	"github.com/sarchlab/msm/isa"
)

var _ = Describe("Lex", func() {
	It("should tokenize keywords, integers, labels and identifiers", func() {
		tokens, err := asm.Lex("start:\n  push 42\n\n  Jp start\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(tokens).To(Equal([]asm.Token{
			{Kind: asm.TokenLabel, Text: "start", Line: 1},
			{Kind: asm.KeywordKind(isa.PUSH), Line: 2},
			{Kind: asm.TokenInt, Int: 42, Line: 2},
			{Kind: asm.KeywordKind(isa.JP), Line: 4},
			{Kind: asm.TokenIdent, Text: "start", Line: 4},
		}))
	})

	It("should recognize every mnemonic", func() {
		for _, op := range isa.Opcodes() {
			tokens, err := asm.Lex(op.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens).To(HaveLen(1))
			got, ok := tokens[0].Kind.Opcode()
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(op))
		}
	})

	It("should split runs of letters and digits", func() {
		tokens, err := asm.Lex("loop1")
		Expect(err).NotTo(HaveOccurred())
		Expect(tokens).To(HaveLen(2))
		Expect(tokens[0].Kind).To(Equal(asm.TokenIdent))
		Expect(tokens[1].Kind).To(Equal(asm.TokenInt))
		Expect(tokens[1].Int).To(Equal(int32(1)))
	})

	It("should keep the case of names", func() {
		tokens, err := asm.Lex("Loop:")
		Expect(err).NotTo(HaveOccurred())
		Expect(tokens[0].Text).To(Equal("Loop"))
	})

	It("should produce nothing for blank input", func() {
		tokens, err := asm.Lex(" \t\r\n\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(tokens).To(BeEmpty())
	})

	DescribeTable("should fail on unknown symbols",
		func(src, text string, line int) {
			_, err := asm.Lex(src)
			var lexErr *asm.LexError
			Expect(errors.As(err, &lexErr)).To(BeTrue())
			Expect(lexErr.Text).To(Equal(text))
			Expect(lexErr.Line).To(Equal(line))
		},
		Entry("minus sign", "PUSH -1", "-", 1),
		Entry("comment marker", "POP\n; note", ";", 2),
		Entry("underscore", "\n\nmy_label:", "_", 3),
		Entry("integer overflow", "PUSH 2147483648", "2147483648", 1),
	)
})
