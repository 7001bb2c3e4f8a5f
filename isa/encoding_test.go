package isa_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/msm/isa"
)

var _ = Describe("Opcode table", func() {
	It("should number the opcodes as the binary format expects", func() {
		Expect(isa.PUSH).To(Equal(isa.Opcode(0)))
		Expect(isa.PRINT).To(Equal(isa.Opcode(10)))
		Expect(isa.JP).To(Equal(isa.Opcode(13)))
		Expect(isa.HALT).To(Equal(isa.Opcode(20)))
		Expect(isa.ISWAP).To(Equal(isa.Opcode(22)))
		Expect(isa.NumOpcodes).To(Equal(23))
	})

	It("should look mnemonics up case-insensitively", func() {
		op, ok := isa.Lookup("nzJmp")
		Expect(ok).To(BeTrue())
		Expect(op).To(Equal(isa.NZJMP))

		_, ok = isa.Lookup("JMP")
		Expect(ok).To(BeFalse())
	})

	It("should classify operands", func() {
		Expect(isa.PUSH.Operand()).To(Equal(isa.Literal))
		Expect(isa.INDUP.Operand()).To(Equal(isa.Literal))
		Expect(isa.ZJMP.Operand()).To(Equal(isa.Target))
		Expect(isa.ADD.Operand()).To(Equal(isa.NoOperand))
		Expect(isa.JP.IsJump()).To(BeTrue())
		Expect(isa.DUP.IsJump()).To(BeFalse())
	})

	It("should print instructions as assembly", func() {
		Expect(isa.Make(isa.PUSH, -4).String()).To(Equal("PUSH -4"))
		Expect(isa.Make(isa.HALT, 9).String()).To(Equal("HALT"))
		Expect(isa.Opcode(99).String()).To(Equal("Opcode(99)"))
	})
})

var _ = Describe("Encoding", func() {
	It("should place the opcode in the low 16 bits and the operand in the high 32", func() {
		word := isa.EncodeInstruction(isa.Make(isa.JP, 7))
		Expect(word & 0xFFFF).To(Equal(uint64(isa.JP)))
		Expect(word >> 32).To(Equal(uint64(7)))

		word = isa.EncodeInstruction(isa.Make(isa.PUSH, -1))
		Expect(uint32(word >> 32)).To(Equal(uint32(0xFFFFFFFF)))
		Expect((word >> 16) & 0xFFFF).To(BeZero())
	})

	It("should write one little-endian record per instruction", func() {
		buf := isa.Encode(isa.Program{isa.Make(isa.PUSH, 3), isa.Make(isa.HALT, 0)})
		Expect(buf).To(HaveLen(2 * isa.RecordSize))
		Expect(binary.LittleEndian.Uint64(buf[0:])).To(Equal(uint64(3) << 32))
		Expect(binary.LittleEndian.Uint64(buf[8:])).To(Equal(uint64(isa.HALT)))
	})

	It("should round trip every opcode", func() {
		operands := []int32{0, 1, -1, 42, -2147483648, 2147483647}
		var p isa.Program
		for _, op := range isa.Opcodes() {
			for _, v := range operands {
				p = append(p, isa.Make(op, v))
			}
		}

		decoded, err := isa.Decode(isa.Encode(p))
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(p))
	})

	It("should ignore operand bits of opcodes without an operand", func() {
		buf := make([]byte, isa.RecordSize)
		binary.LittleEndian.PutUint64(buf, uint64(isa.ADD)|uint64(55)<<32)

		p, err := isa.Decode(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(isa.Program{{Op: isa.ADD}}))
	})

	It("should reject unknown opcode ids", func() {
		buf := isa.Encode(isa.Program{isa.Make(isa.NOP, 0), isa.Make(isa.NOP, 0)})
		binary.LittleEndian.PutUint64(buf[8:], 23)

		_, err := isa.Decode(buf)
		var decodeErr *isa.DecodeError
		Expect(errors.As(err, &decodeErr)).To(BeTrue())
		Expect(decodeErr.ID).To(Equal(uint16(23)))
		Expect(decodeErr.Offset).To(Equal(8))
	})

	It("should reject a trailing partial record", func() {
		buf := append(isa.Encode(isa.Program{isa.Make(isa.POP, 0)}), 1, 2, 3)

		_, err := isa.Decode(buf)
		var decodeErr *isa.DecodeError
		Expect(errors.As(err, &decodeErr)).To(BeTrue())
		Expect(decodeErr.Truncated).To(BeTrue())
		Expect(decodeErr.Offset).To(Equal(8))
	})

	It("should decode an empty buffer to an empty program", func() {
		p, err := isa.Decode(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeEmpty())
	})
})

var _ = Describe("Program files", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should derive the output path from the source path", func() {
		Expect(isa.DefaultOutputPath("prog.tim")).To(Equal("prog.msm"))
		Expect(isa.DefaultOutputPath("dir/prog.asm")).To(Equal("dir/prog.msm"))
		Expect(isa.DefaultOutputPath("prog")).To(Equal("prog.msm"))
	})

	It("should write and read a program", func() {
		path := filepath.Join(dir, "p.msm")
		p := isa.Program{isa.Make(isa.PUSH, 1), isa.Make(isa.PRINT, 0)}

		Expect(isa.WriteProgramFile(path, p)).To(Succeed())
		got, err := isa.ReadProgramFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(p))
	})

	It("should name the file when decoding fails", func() {
		path := filepath.Join(dir, "bad.msm")
		Expect(os.WriteFile(path, []byte{1, 2, 3}, 0o644)).To(Succeed())

		_, err := isa.ReadProgramFile(path)
		Expect(err).To(MatchError(ContainSubstring("bad.msm")))
	})

	It("should list a program", func() {
		var sb strings.Builder
		isa.Disassemble(&sb, isa.Program{isa.Make(isa.PUSH, 5), isa.Make(isa.HALT, 0)})
		Expect(sb.String()).To(ContainSubstring("PUSH"))
		Expect(sb.String()).To(ContainSubstring("HALT"))
	})
})
