package isa

import (
	"encoding/binary"
	"fmt"
)

// RecordSize is the number of bytes of one encoded instruction.
const RecordSize = 8

const opcodeMask = 0xFFFF

// DecodeError reports a record that does not hold a valid instruction.
type DecodeError struct {
	// ID is the raw 16-bit opcode id found in the record.
	ID uint16
	// Offset is the byte offset of the record in the buffer.
	Offset int
	// Truncated is set when the buffer ends in the middle of a record.
	Truncated bool
}

func (e *DecodeError) Error() string {
	if e.Truncated {
		return fmt.Sprintf("truncated instruction record at byte %d", e.Offset)
	}
	return fmt.Sprintf("unknown opcode id %d at byte %d", e.ID, e.Offset)
}

// EncodeInstruction packs an instruction into its 64-bit word: the opcode id
// in bits 0-15 and the operand in bits 32-63.
func EncodeInstruction(inst Instruction) uint64 {
	word := uint64(inst.Op) & opcodeMask
	if inst.Op.Operand() != NoOperand {
		word |= uint64(uint32(inst.Operand)) << 32
	}
	return word
}

// DecodeInstruction unpacks a 64-bit word.
func DecodeInstruction(word uint64) (Instruction, error) {
	op := Opcode(word & opcodeMask)
	if !op.Valid() {
		return Instruction{}, &DecodeError{ID: uint16(op)}
	}
	return Make(op, int32(uint32(word>>32))), nil
}

// Encode serializes a program, RecordSize bytes per instruction, in
// little-endian byte order.
func Encode(p Program) []byte {
	buf := make([]byte, len(p)*RecordSize)
	for i, inst := range p {
		binary.LittleEndian.PutUint64(buf[i*RecordSize:], EncodeInstruction(inst))
	}
	return buf
}

// Decode reads a program back from its binary form.
func Decode(buf []byte) (Program, error) {
	if len(buf)%RecordSize != 0 {
		return nil, &DecodeError{
			Offset:    len(buf) - len(buf)%RecordSize,
			Truncated: true,
		}
	}

	p := make(Program, 0, len(buf)/RecordSize)
	for off := 0; off < len(buf); off += RecordSize {
		inst, err := DecodeInstruction(binary.LittleEndian.Uint64(buf[off:]))
		if err != nil {
			err.(*DecodeError).Offset = off
			return nil, err
		}
		p = append(p, inst)
	}
	return p, nil
}
