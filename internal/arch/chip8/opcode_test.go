package chip8

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode   uint16
		quirks   bool
		expected Instruction
	}{
		{0x00C7, false, Instruction{Op: Scd, Nibble: 7}},
		{0x00E0, false, Instruction{Op: Cls}},
		{0x00EE, false, Instruction{Op: Ret}},
		{0x00FB, false, Instruction{Op: Scr}},
		{0x00FC, false, Instruction{Op: Scl}},
		{0x00FD, false, Instruction{Op: Exit}},
		{0x00FE, false, Instruction{Op: Low}},
		{0x00FF, false, Instruction{Op: High}},
		{0x1200, false, Instruction{Op: Jp, Addr: 0x200}},
		{0x2ABC, false, Instruction{Op: Call, Addr: 0xABC}},
		{0x3845, false, Instruction{Op: SeByte, X: 8, Byte: 0x45}},
		{0x4A00, false, Instruction{Op: SneByte, X: 0xA}},
		{0x5120, false, Instruction{Op: SeReg, X: 1, Y: 2}},
		{0x610D, false, Instruction{Op: LdByte, X: 1, Byte: 0x0D}},
		{0x740A, false, Instruction{Op: AddByte, X: 4, Byte: 0x0A}},
		{0x8120, false, Instruction{Op: LdReg, X: 1, Y: 2}},
		{0x8341, false, Instruction{Op: Or, X: 3, Y: 4}},
		{0x8562, false, Instruction{Op: And, X: 5, Y: 6}},
		{0x8783, false, Instruction{Op: Xor, X: 7, Y: 8}},
		{0x89A4, false, Instruction{Op: AddReg, X: 9, Y: 0xA}},
		{0x8BC5, false, Instruction{Op: Sub, X: 0xB, Y: 0xC}},
		{0x8D06, false, Instruction{Op: Shr, X: 0xD}},
		{0x8DE6, true, Instruction{Op: Shr, X: 0xD, Y: 0xE}},
		{0x8F07, false, Instruction{Op: Subn, X: 0xF}},
		{0x800E, false, Instruction{Op: Shl}},
		{0x812E, true, Instruction{Op: Shl, X: 1, Y: 2}},
		{0x9340, false, Instruction{Op: SneReg, X: 3, Y: 4}},
		{0xA123, false, Instruction{Op: LdI, Addr: 0x123}},
		{0xB456, false, Instruction{Op: JpV0, Addr: 0x456}},
		{0xC5FF, false, Instruction{Op: Rnd, X: 5, Byte: 0xFF}},
		{0xD01A, false, Instruction{Op: Drw, X: 0, Y: 1, Nibble: 0xA}},
		{0xE09E, false, Instruction{Op: Skp}},
		{0xE1A1, false, Instruction{Op: Sknp, X: 1}},
		{0xF207, false, Instruction{Op: LdRegDT, X: 2}},
		{0xF30A, false, Instruction{Op: LdRegK, X: 3}},
		{0xF415, false, Instruction{Op: LdDTReg, X: 4}},
		{0xFA18, false, Instruction{Op: LdSTReg, X: 0xA}},
		{0xF61E, false, Instruction{Op: AddI, X: 6}},
		{0xF729, false, Instruction{Op: LdFReg, X: 7}},
		{0xFE30, false, Instruction{Op: LdHFReg, X: 0xE}},
		{0xF933, false, Instruction{Op: LdBReg, X: 9}},
		{0xFA55, false, Instruction{Op: LdMemReg, X: 0xA}},
		{0xF565, false, Instruction{Op: LdRegMem, X: 5}},
		{0xF175, false, Instruction{Op: LdRReg, X: 1}},
		{0xFB85, false, Instruction{Op: LdRegR, X: 0xB}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04X", tt.opcode), func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.opcode, tt.quirks))
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		quirks bool
	}{
		{"system call", 0x0123, false},
		{"se reg with low nibble", 0x5121, false},
		{"sne reg with low nibble", 0x9121, false},
		{"unknown alu op", 0x8128, false},
		{"shr with vy without quirks", 0x8126, false},
		{"shl with vy without quirks", 0x812E, false},
		{"unknown key op", 0xE100, false},
		{"unknown misc op", 0xF1FF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Decode(tt.opcode, tt.quirks)
			assert.Equal(t, Invalid, ins.Op)
			assert.Equal(t, tt.opcode, ins.Opcode)
			assert.Equal(t, tt.opcode, Encode(ins, tt.quirks))
		})
	}
}

func TestDecodeSystemGroupFullMask(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected string
	}{
		{"cls with address bits", 0x01E0, "DW #01E0"},
		{"ret with address bits", 0x0AEE, "DW #0AEE"},
		{"scd with address bits", 0x05C3, "DW #05C3"},
		{"exit with address bits", 0x0FFD, "DW #0FFD"},
		{"high with address bits", 0x01FF, "DW #01FF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Decode(tt.opcode, false)
			assert.Equal(t, Invalid, ins.Op)
			assert.False(t, ins.IsReturn())
			assert.Equal(t, tt.expected, Format(ins, "", false))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, quirks := range []bool{false, true} {
		t.Run(fmt.Sprintf("quirks=%t", quirks), func(t *testing.T) {
			for op := Scd; op < opCount; op++ {
				ins := sampleInstruction(op, quirks)
				opcode := Encode(ins, quirks)
				assert.Equal(t, ins, Decode(opcode, quirks), fmt.Sprintf("%s %04X", op, opcode))
			}
		})
	}
}

func TestEncodeShiftQuirks(t *testing.T) {
	ins := Instruction{Op: Shr, X: 1, Y: 2}
	assert.Equal(t, uint16(0x8106), Encode(ins, false))
	assert.Equal(t, uint16(0x8126), Encode(ins, true))

	ins.Op = Shl
	assert.Equal(t, uint16(0x810E), Encode(ins, false))
	assert.Equal(t, uint16(0x812E), Encode(ins, true))
}

func TestEncodeTruncatesOperands(t *testing.T) {
	assert.Equal(t, uint16(0x1234), Encode(Instruction{Op: Jp, Addr: 0xF234}, false))
	assert.Equal(t, uint16(0xD12F), Encode(Instruction{Op: Drw, X: 0x11, Y: 0x22, Nibble: 0xFF}, false))
}

func TestOpSyntax(t *testing.T) {
	assert.Equal(t, []Operand{OperandVx}, Shr.Syntax(false))
	assert.Equal(t, []Operand{OperandVx, OperandVy}, Shr.Syntax(true))
	assert.Equal(t, []Operand{OperandI, OperandAddr}, LdI.Syntax(false))
	assert.Empty(t, Cls.Syntax(false))
	assert.Empty(t, Invalid.Syntax(false))
}

// sampleInstruction returns an instruction of the given variant with every
// operand field that the variant uses set to a distinct value.
func sampleInstruction(op Op, quirks bool) Instruction {
	ins := Instruction{Op: op}
	for _, operand := range op.Syntax(quirks) {
		switch operand {
		case OperandVx:
			ins.X = 0xA
		case OperandVy:
			ins.Y = 0x5
		case OperandAddr:
			ins.Addr = 0x3BE
		case OperandByte:
			ins.Byte = 0xC4
		case OperandNibble:
			ins.Nibble = 0x9
		}
	}
	return ins
}
