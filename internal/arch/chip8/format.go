package chip8

import (
	"fmt"
	"strings"
)

// Format returns the assembly source text of an instruction. If label is not
// empty it replaces the numeric address operand. Invalid instructions are
// written as a DW data word so that the output can be assembled again.
func Format(ins Instruction, label string, shiftQuirks bool) string {
	if ins.Op == Invalid || ins.Op >= opCount {
		return fmt.Sprintf("DW #%04X", ins.Opcode)
	}

	syntax := ins.Op.Syntax(shiftQuirks)
	if len(syntax) == 0 {
		return ins.Op.Mnemonic()
	}

	params := make([]string, len(syntax))
	for i, operand := range syntax {
		params[i] = formatOperand(ins, operand, label)
	}
	return ins.Op.Mnemonic() + " " + strings.Join(params, ", ")
}

func formatOperand(ins Instruction, operand Operand, label string) string {
	switch operand {
	case OperandVx:
		return fmt.Sprintf("V%X", ins.X)
	case OperandVy:
		return fmt.Sprintf("V%X", ins.Y)
	case OperandAddr:
		if label != "" {
			return label
		}
		return fmt.Sprintf("#%03X", ins.Addr)
	case OperandByte:
		return fmt.Sprintf("#%02X", ins.Byte)
	case OperandNibble:
		return fmt.Sprintf("%d", ins.Nibble)
	default:
		return string(operand)
	}
}
