package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Operand describes one operand position of the textual instruction form.
// Placeholder operands carry an encoded value, all others are keywords that
// have to be written literally.
type Operand string

// Placeholder operands.
const (
	OperandVx     Operand = "Vx"
	OperandVy     Operand = "Vy"
	OperandAddr   Operand = "addr"
	OperandByte   Operand = "byte"
	OperandNibble Operand = "nibble"
)

// Keyword operands.
const (
	OperandI   Operand = "I"
	OperandV0  Operand = "V0"
	OperandDT  Operand = "DT"
	OperandST  Operand = "ST"
	OperandK   Operand = "K"
	OperandF   Operand = "F"
	OperandHF  Operand = "HF"
	OperandB   Operand = "B"
	OperandMem Operand = "[I]"
	OperandR   Operand = "R"
)

// Super-Chip opcodes that retrogolib does not define.
var (
	Opcode00C0 = chip8.OpcodeInfo{Value: 0x00C0, Mask: 0xFFF0}
	Opcode00FB = chip8.OpcodeInfo{Value: 0x00FB, Mask: 0xFFFF}
	Opcode00FC = chip8.OpcodeInfo{Value: 0x00FC, Mask: 0xFFFF}
	Opcode00FD = chip8.OpcodeInfo{Value: 0x00FD, Mask: 0xFFFF}
	Opcode00FE = chip8.OpcodeInfo{Value: 0x00FE, Mask: 0xFFFF}
	Opcode00FF = chip8.OpcodeInfo{Value: 0x00FF, Mask: 0xFFFF}
	OpcodeF030 = chip8.OpcodeInfo{Value: 0xF030, Mask: 0xF0FF}
	OpcodeF075 = chip8.OpcodeInfo{Value: 0xF075, Mask: 0xF0FF}
	OpcodeF085 = chip8.OpcodeInfo{Value: 0xF085, Mask: 0xF0FF}
)

// Opcode maps an instruction variant to its opcode bits and operand syntax.
type Opcode struct {
	Op     Op
	Info   chip8.OpcodeInfo
	Syntax []Operand
}

// Opcodes maps the first nibble of the opcode to the list of opcodes.
var Opcodes = [16][]Opcode{
	0x0: {
		{Op: Scd, Info: Opcode00C0, Syntax: []Operand{OperandNibble}},
		{Op: Cls, Info: chip8.Opcode00E0},
		{Op: Ret, Info: chip8.Opcode00EE},
		{Op: Scr, Info: Opcode00FB},
		{Op: Scl, Info: Opcode00FC},
		{Op: Exit, Info: Opcode00FD},
		{Op: Low, Info: Opcode00FE},
		{Op: High, Info: Opcode00FF},
	},
	0x1: {
		{Op: Jp, Info: chip8.Opcode1000, Syntax: []Operand{OperandAddr}},
	},
	0x2: {
		{Op: Call, Info: chip8.Opcode2000, Syntax: []Operand{OperandAddr}},
	},
	0x3: {
		{Op: SeByte, Info: chip8.Opcode3000, Syntax: []Operand{OperandVx, OperandByte}},
	},
	0x4: {
		{Op: SneByte, Info: chip8.Opcode4000, Syntax: []Operand{OperandVx, OperandByte}},
	},
	0x5: {
		{Op: SeReg, Info: chip8.Opcode5000, Syntax: []Operand{OperandVx, OperandVy}},
	},
	0x6: {
		{Op: LdByte, Info: chip8.Opcode6000, Syntax: []Operand{OperandVx, OperandByte}},
	},
	0x7: {
		{Op: AddByte, Info: chip8.Opcode7000, Syntax: []Operand{OperandVx, OperandByte}},
	},
	0x8: {
		{Op: LdReg, Info: chip8.Opcode8000, Syntax: []Operand{OperandVx, OperandVy}},
		{Op: Or, Info: chip8.Opcode8001, Syntax: []Operand{OperandVx, OperandVy}},
		{Op: And, Info: chip8.Opcode8002, Syntax: []Operand{OperandVx, OperandVy}},
		{Op: Xor, Info: chip8.Opcode8003, Syntax: []Operand{OperandVx, OperandVy}},
		{Op: AddReg, Info: chip8.Opcode8004, Syntax: []Operand{OperandVx, OperandVy}},
		{Op: Sub, Info: chip8.Opcode8005, Syntax: []Operand{OperandVx, OperandVy}},
		{Op: Shr, Info: chip8.Opcode8006, Syntax: []Operand{OperandVx}},
		{Op: Subn, Info: chip8.Opcode8007, Syntax: []Operand{OperandVx, OperandVy}},
		{Op: Shl, Info: chip8.Opcode800E, Syntax: []Operand{OperandVx}},
	},
	0x9: {
		{Op: SneReg, Info: chip8.Opcode9000, Syntax: []Operand{OperandVx, OperandVy}},
	},
	0xA: {
		{Op: LdI, Info: chip8.OpcodeA000, Syntax: []Operand{OperandI, OperandAddr}},
	},
	0xB: {
		{Op: JpV0, Info: chip8.OpcodeB000, Syntax: []Operand{OperandV0, OperandAddr}},
	},
	0xC: {
		{Op: Rnd, Info: chip8.OpcodeC000, Syntax: []Operand{OperandVx, OperandByte}},
	},
	0xD: {
		{Op: Drw, Info: chip8.OpcodeD000, Syntax: []Operand{OperandVx, OperandVy, OperandNibble}},
	},
	0xE: {
		{Op: Skp, Info: chip8.OpcodeE09E, Syntax: []Operand{OperandVx}},
		{Op: Sknp, Info: chip8.OpcodeE0A1, Syntax: []Operand{OperandVx}},
	},
	0xF: {
		{Op: LdRegDT, Info: chip8.OpcodeF007, Syntax: []Operand{OperandVx, OperandDT}},
		{Op: LdRegK, Info: chip8.OpcodeF00A, Syntax: []Operand{OperandVx, OperandK}},
		{Op: LdDTReg, Info: chip8.OpcodeF015, Syntax: []Operand{OperandDT, OperandVx}},
		{Op: LdSTReg, Info: chip8.OpcodeF018, Syntax: []Operand{OperandST, OperandVx}},
		{Op: AddI, Info: chip8.OpcodeF01E, Syntax: []Operand{OperandI, OperandVx}},
		{Op: LdFReg, Info: chip8.OpcodeF029, Syntax: []Operand{OperandF, OperandVx}},
		{Op: LdHFReg, Info: OpcodeF030, Syntax: []Operand{OperandHF, OperandVx}},
		{Op: LdBReg, Info: chip8.OpcodeF033, Syntax: []Operand{OperandB, OperandVx}},
		{Op: LdMemReg, Info: chip8.OpcodeF055, Syntax: []Operand{OperandMem, OperandVx}},
		{Op: LdRegMem, Info: chip8.OpcodeF065, Syntax: []Operand{OperandVx, OperandMem}},
		{Op: LdRReg, Info: OpcodeF075, Syntax: []Operand{OperandR, OperandVx}},
		{Op: LdRegR, Info: OpcodeF085, Syntax: []Operand{OperandVx, OperandR}},
	},
}

var quirksShiftSyntax = []Operand{OperandVx, OperandVy}

var opcodesByOp = indexOpcodes()

func indexOpcodes() [opCount]*Opcode {
	var index [opCount]*Opcode
	for nibble := range Opcodes {
		for i := range Opcodes[nibble] {
			opcode := &Opcodes[nibble][i]
			index[opcode.Op] = opcode
		}
	}
	return index
}

// Syntax returns the operand syntax of the variant. The shift instructions
// take a second register operand in shift quirks mode.
func (o Op) Syntax(shiftQuirks bool) []Operand {
	if o == Invalid || o >= opCount {
		return nil
	}
	if shiftQuirks && (o == Shr || o == Shl) {
		return quirksShiftSyntax
	}
	return opcodesByOp[o].Syntax
}

// Decode decodes a 16-bit opcode. Unknown bit patterns decode to an Invalid
// instruction that keeps the raw opcode.
func Decode(opcode uint16, shiftQuirks bool) Instruction {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range Opcodes[firstNibble] {
		if opcode&op.Info.Mask != op.Info.Value {
			continue
		}
		if !shiftQuirks && (op.Op == Shr || op.Op == Shl) && opcode&0x00F0 != 0 {
			break
		}
		return decodeOperands(op.Op, opcode, op.Op.Syntax(shiftQuirks))
	}
	return Instruction{Op: Invalid, Opcode: opcode}
}

func decodeOperands(op Op, opcode uint16, syntax []Operand) Instruction {
	ins := Instruction{Op: op}
	for _, operand := range syntax {
		switch operand {
		case OperandVx:
			ins.X = extractRegisterX(opcode)
		case OperandVy:
			ins.Y = extractRegisterY(opcode)
		case OperandAddr:
			ins.Addr = opcode & 0x0FFF
		case OperandByte:
			ins.Byte = uint8(opcode & 0x00FF)
		case OperandNibble:
			ins.Nibble = uint8(opcode & 0x000F)
		}
	}
	return ins
}

// Encode encodes an instruction to its 16-bit opcode. Operand values are
// truncated to their field widths. Invalid instructions encode to their raw
// opcode.
func Encode(ins Instruction, shiftQuirks bool) uint16 {
	if ins.Op == Invalid || ins.Op >= opCount {
		return ins.Opcode
	}

	opcode := opcodesByOp[ins.Op].Info.Value
	for _, operand := range ins.Op.Syntax(shiftQuirks) {
		switch operand {
		case OperandVx:
			opcode |= uint16(ins.X&0xF) << 8
		case OperandVy:
			opcode |= uint16(ins.Y&0xF) << 4
		case OperandAddr:
			opcode |= ins.Addr & 0x0FFF
		case OperandByte:
			opcode |= uint16(ins.Byte)
		case OperandNibble:
			opcode |= uint16(ins.Nibble & 0xF)
		}
	}
	return opcode
}
