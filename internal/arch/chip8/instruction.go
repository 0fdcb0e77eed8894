package chip8

import (
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies a concrete instruction variant. Mnemonics like LD or SE map
// to several variants that differ in their operand forms.
type Op uint8

// Instruction variants.
const (
	Invalid  Op = iota
	Scd         // SCD nibble
	Cls         // CLS
	Ret         // RET
	Scr         // SCR
	Scl         // SCL
	Exit        // EXIT
	Low         // LOW
	High        // HIGH
	Jp          // JP addr
	Call        // CALL addr
	SeByte      // SE Vx, byte
	SneByte     // SNE Vx, byte
	SeReg       // SE Vx, Vy
	LdByte      // LD Vx, byte
	AddByte     // ADD Vx, byte
	LdReg       // LD Vx, Vy
	Or          // OR Vx, Vy
	And         // AND Vx, Vy
	Xor         // XOR Vx, Vy
	AddReg      // ADD Vx, Vy
	Sub         // SUB Vx, Vy
	Shr         // SHR Vx or SHR Vx, Vy
	Subn        // SUBN Vx, Vy
	Shl         // SHL Vx or SHL Vx, Vy
	SneReg      // SNE Vx, Vy
	LdI         // LD I, addr
	JpV0        // JP V0, addr
	Rnd         // RND Vx, byte
	Drw         // DRW Vx, Vy, nibble
	Skp         // SKP Vx
	Sknp        // SKNP Vx
	LdRegDT     // LD Vx, DT
	LdRegK      // LD Vx, K
	LdDTReg     // LD DT, Vx
	LdSTReg     // LD ST, Vx
	AddI        // ADD I, Vx
	LdFReg      // LD F, Vx
	LdHFReg     // LD HF, Vx
	LdBReg      // LD B, Vx
	LdMemReg    // LD [I], Vx
	LdRegMem    // LD Vx, [I]
	LdRReg      // LD R, Vx
	LdRegR      // LD Vx, R

	opCount
)

// Super-Chip mnemonic names, complementing the base CHIP-8 names of retrogolib.
const (
	ScdName  = "scd"
	ScrName  = "scr"
	SclName  = "scl"
	ExitName = "exit"
	LowName  = "low"
	HighName = "high"
	DwName   = "dw"
)

var opNames = [opCount]string{
	Invalid:  DwName,
	Scd:      ScdName,
	Cls:      chip8.ClsName,
	Ret:      chip8.RetName,
	Scr:      ScrName,
	Scl:      SclName,
	Exit:     ExitName,
	Low:      LowName,
	High:     HighName,
	Jp:       chip8.JpName,
	Call:     chip8.CallName,
	SeByte:   chip8.SeName,
	SneByte:  chip8.SneName,
	SeReg:    chip8.SeName,
	LdByte:   chip8.LdName,
	AddByte:  chip8.AddName,
	LdReg:    chip8.LdName,
	Or:       chip8.OrName,
	And:      chip8.AndName,
	Xor:      chip8.XorName,
	AddReg:   chip8.AddName,
	Sub:      chip8.SubName,
	Shr:      chip8.ShrName,
	Subn:     chip8.SubnName,
	Shl:      chip8.ShlName,
	SneReg:   chip8.SneName,
	LdI:      chip8.LdName,
	JpV0:     chip8.JpName,
	Rnd:      chip8.RndName,
	Drw:      chip8.DrwName,
	Skp:      chip8.SkpName,
	Sknp:     chip8.SknpName,
	LdRegDT:  chip8.LdName,
	LdRegK:   chip8.LdName,
	LdDTReg:  chip8.LdName,
	LdSTReg:  chip8.LdName,
	AddI:     chip8.AddName,
	LdFReg:   chip8.LdName,
	LdHFReg:  chip8.LdName,
	LdBReg:   chip8.LdName,
	LdMemReg: chip8.LdName,
	LdRegMem: chip8.LdName,
	LdRReg:   chip8.LdName,
	LdRegR:   chip8.LdName,
}

// Name returns the lowercase mnemonic of the variant.
func (o Op) Name() string {
	if o >= opCount {
		return ""
	}
	return opNames[o]
}

// Mnemonic returns the mnemonic as it is written in assembly source.
func (o Op) Mnemonic() string {
	return strings.ToUpper(o.Name())
}

// String implements fmt.Stringer.
func (o Op) String() string {
	return o.Mnemonic()
}

// Instruction is a decoded CHIP-8 instruction. The operand fields that are
// not used by the variant are zero.
type Instruction struct {
	Op     Op
	X      uint8  // register index Vx
	Y      uint8  // register index Vy
	Addr   uint16 // 12-bit address
	Byte   uint8  // 8-bit immediate
	Nibble uint8  // 4-bit immediate
	Opcode uint16 // raw opcode, only set for Invalid
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.Op == Call
}

// IsJump returns true if the instruction is a jump, including JP V0, addr.
func (i Instruction) IsJump() bool {
	return i.Op == Jp || i.Op == JpV0
}

// IsReturn returns true if the instruction ends the current subroutine or
// the whole program.
func (i Instruction) IsReturn() bool {
	return i.Op == Ret || i.Op == Exit
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (i Instruction) IsSkip() bool {
	if i.Op == Invalid {
		return false
	}
	return chip8.SkipInstructions.Contains(i.Op.Name())
}

// UsesAddress returns true if the instruction has a 12-bit address operand.
func (i Instruction) UsesAddress() bool {
	switch i.Op {
	case Jp, Call, LdI, JpV0:
		return true
	default:
		return false
	}
}
