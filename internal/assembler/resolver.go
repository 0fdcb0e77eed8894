package assembler

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8tools/internal/arch/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// resolveFunc selects the instruction variant of a mnemonic from its
// operands.
type resolveFunc func(mnemonic string, operands []string, shiftQuirks bool) (chip8.Op, error)

// mnemonics maps the lowercase mnemonics to their resolver.
var mnemonics = map[string]resolveFunc{
	chip8.ScdName:      fixed(chip8.Scd),
	chip8cpu.ClsName:   fixed(chip8.Cls),
	chip8cpu.RetName:   fixed(chip8.Ret),
	chip8.ScrName:      fixed(chip8.Scr),
	chip8.SclName:      fixed(chip8.Scl),
	chip8.ExitName:     fixed(chip8.Exit),
	chip8.LowName:      fixed(chip8.Low),
	chip8.HighName:     fixed(chip8.High),
	chip8cpu.JpName:    resolveJp,
	chip8cpu.CallName:  fixed(chip8.Call),
	chip8cpu.SeName:    registerOrByte(chip8.SeReg, chip8.SeByte),
	chip8cpu.SneName:   registerOrByte(chip8.SneReg, chip8.SneByte),
	chip8cpu.LdName:    resolveLd,
	chip8cpu.AddName:   resolveAdd,
	chip8cpu.OrName:    fixed(chip8.Or),
	chip8cpu.AndName:   fixed(chip8.And),
	chip8cpu.XorName:   fixed(chip8.Xor),
	chip8cpu.SubName:   fixed(chip8.Sub),
	chip8cpu.ShrName:   fixed(chip8.Shr),
	chip8cpu.SubnName:  fixed(chip8.Subn),
	chip8cpu.ShlName:   fixed(chip8.Shl),
	chip8cpu.RndName:   fixed(chip8.Rnd),
	chip8cpu.DrwName:   fixed(chip8.Drw),
	chip8cpu.SkpName:   fixed(chip8.Skp),
	chip8cpu.SknpName:  fixed(chip8.Sknp),
}

// ldFirstOperand maps the keywords that select an LD variant when used as
// first operand.
var ldFirstOperand = map[chip8.Operand]chip8.Op{
	chip8.OperandI:   chip8.LdI,
	chip8.OperandDT:  chip8.LdDTReg,
	chip8.OperandST:  chip8.LdSTReg,
	chip8.OperandF:   chip8.LdFReg,
	chip8.OperandHF:  chip8.LdHFReg,
	chip8.OperandB:   chip8.LdBReg,
	chip8.OperandMem: chip8.LdMemReg,
	chip8.OperandR:   chip8.LdRReg,
}

// ldSecondOperand maps the keywords that select an LD variant when used as
// second operand.
var ldSecondOperand = map[chip8.Operand]chip8.Op{
	chip8.OperandDT:  chip8.LdRegDT,
	chip8.OperandK:   chip8.LdRegK,
	chip8.OperandMem: chip8.LdRegMem,
	chip8.OperandR:   chip8.LdRegR,
}

// resolve returns the instruction variant for the mnemonic and operands.
func resolve(mnemonic string, operands []string, shiftQuirks bool) (chip8.Op, error) {
	fn, ok := mnemonics[strings.ToLower(mnemonic)]
	if !ok {
		return chip8.Invalid, fmt.Errorf("%w: invalid instruction '%s'", ErrSyntax, mnemonic)
	}
	return fn(mnemonic, operands, shiftQuirks)
}

// fixed returns a resolver for a mnemonic that maps to a single variant.
func fixed(op chip8.Op) resolveFunc {
	return func(mnemonic string, operands []string, shiftQuirks bool) (chip8.Op, error) {
		if err := expectOperands(mnemonic, len(op.Syntax(shiftQuirks)), len(operands)); err != nil {
			return chip8.Invalid, err
		}
		return op, nil
	}
}

// registerOrByte returns a resolver that selects the register variant if the
// second operand is a register name.
func registerOrByte(reg, byteOp chip8.Op) resolveFunc {
	return func(mnemonic string, operands []string, _ bool) (chip8.Op, error) {
		if err := expectOperands(mnemonic, 2, len(operands)); err != nil {
			return chip8.Invalid, err
		}
		if _, ok := parseRegister(operands[1]); ok {
			return reg, nil
		}
		return byteOp, nil
	}
}

func resolveJp(mnemonic string, operands []string, _ bool) (chip8.Op, error) {
	switch {
	case len(operands) == 1:
		return chip8.Jp, nil
	case len(operands) == 2 && isKeyword(operands[0], chip8.OperandV0):
		return chip8.JpV0, nil
	case len(operands) == 2:
		return chip8.Invalid, fmt.Errorf("%w: expected V0 as first operand to %s", ErrSyntax, mnemonic)
	default:
		return chip8.Invalid, expectOperands(mnemonic, 1, len(operands))
	}
}

func resolveLd(mnemonic string, operands []string, _ bool) (chip8.Op, error) {
	if err := expectOperands(mnemonic, 2, len(operands)); err != nil {
		return chip8.Invalid, err
	}

	if op, ok := keywordOp(operands[0], ldFirstOperand); ok {
		return op, nil
	}
	if _, ok := parseRegister(operands[1]); ok {
		return chip8.LdReg, nil
	}
	if op, ok := keywordOp(operands[1], ldSecondOperand); ok {
		return op, nil
	}
	return chip8.LdByte, nil
}

func resolveAdd(mnemonic string, operands []string, _ bool) (chip8.Op, error) {
	if err := expectOperands(mnemonic, 2, len(operands)); err != nil {
		return chip8.Invalid, err
	}

	if isKeyword(operands[0], chip8.OperandI) {
		return chip8.AddI, nil
	}
	if _, ok := parseRegister(operands[1]); ok {
		return chip8.AddReg, nil
	}
	return chip8.AddByte, nil
}

func keywordOp(operand string, keywords map[chip8.Operand]chip8.Op) (chip8.Op, bool) {
	op, ok := keywords[chip8.Operand(strings.ToUpper(operand))]
	return op, ok
}

func isKeyword(operand string, keyword chip8.Operand) bool {
	return strings.EqualFold(operand, string(keyword))
}

func expectOperands(mnemonic string, want, got int) error {
	switch {
	case got < want:
		return fmt.Errorf("%w: too few operands to %s", ErrArity, mnemonic)
	case got > want:
		return fmt.Errorf("%w: too many operands to %s", ErrArity, mnemonic)
	default:
		return nil
	}
}

// parseRegister parses a register name V0-VF, the V can be lower case.
func parseRegister(s string) (uint8, bool) {
	if len(s) != 2 || (s[0] != 'V' && s[0] != 'v') {
		return 0, false
	}
	c := s[1]
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
