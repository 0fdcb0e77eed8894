package assembler

import (
	"fmt"

	"github.com/retroenv/chip8tools/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

type pendingKind uint8

const (
	kindInstruction pendingKind = iota
	kindByte                    // DB
	kindWord                    // DW
)

// pending is a statement recorded in the first pass whose operands are
// evaluated in the second pass.
type pending struct {
	kind     pendingKind
	op       chip8.Op
	operands []string
	line     int
	pc       uint16
}

// Program is an assembled program image.
type Program struct {
	data   [chip8.ProgramSize]byte
	length int
}

// Bytes returns the program bytes up to the highest written offset.
func (p *Program) Bytes() []byte {
	return p.data[:p.length]
}

// Len returns the program length in bytes.
func (p *Program) Len() int {
	return p.length
}

func (p *Program) write(offset int, b ...byte) {
	copy(p.data[offset:], b)
	if end := offset + len(b); end > p.length {
		p.length = end
	}
}

// Emit runs the second pass: it evaluates all recorded operands, now that
// all labels are known, and returns the assembled program. The recorded
// statements are consumed, whether or not an error occurs.
func (a *Assembler) Emit() (*Program, error) {
	recorded := a.pending
	a.pending = nil

	prog := &Program{}
	for _, p := range recorded {
		if err := a.emit(prog, p); err != nil {
			return nil, &LineError{Line: p.line, Err: err}
		}
	}

	if a.cond.level != 0 {
		a.logger.Warn("Completed processing without finding matching ENDIF",
			log.Int("line", a.line),
			log.Int("level", a.cond.level))
	}
	if a.label != "" {
		a.logger.Warn("Label is not followed by a statement",
			log.String("label", a.label))
	}
	for _, name := range a.symbols.Unused() {
		a.logger.Trace("Unused symbol", log.String("name", name))
	}

	a.logger.Debug("Assembled program",
		log.Int("size", prog.Len()),
		log.Int("symbols", a.symbols.Len()))
	return prog, nil
}

func (a *Assembler) emit(prog *Program, p pending) error {
	offset := int(p.pc) - chip8.ProgramStart

	switch p.kind {
	case kindByte:
		value, err := a.Eval(p.operands[0])
		if err != nil {
			return err
		}
		prog.write(offset, byte(value))

	case kindWord:
		value, err := a.Eval(p.operands[0])
		if err != nil {
			return err
		}
		prog.write(offset, byte(value>>8), byte(value))

	default:
		opcode, err := a.compile(p)
		if err != nil {
			return err
		}
		prog.write(offset, byte(opcode>>8), byte(opcode))
	}
	return nil
}

// compile evaluates the operands of an instruction and encodes it. Keyword
// operands were already checked when the variant was resolved.
func (a *Assembler) compile(p pending) (uint16, error) {
	ins := chip8.Instruction{Op: p.op}

	for i, operand := range p.op.Syntax(a.opts.ShiftQuirks) {
		text := p.operands[i]

		switch operand {
		case chip8.OperandVx, chip8.OperandVy:
			reg, ok := parseRegister(text)
			if !ok {
				return 0, fmt.Errorf("%w: '%s' is not the name of a register", ErrSyntax, text)
			}
			if operand == chip8.OperandVx {
				ins.X = reg
			} else {
				ins.Y = reg
			}

		case chip8.OperandAddr, chip8.OperandByte, chip8.OperandNibble:
			value, err := a.Eval(text)
			if err != nil {
				return 0, err
			}
			switch operand {
			case chip8.OperandAddr:
				ins.Addr = value
			case chip8.OperandByte:
				ins.Byte = uint8(value)
			default:
				ins.Nibble = uint8(value)
			}
		}
	}

	return chip8.Encode(ins, a.opts.ShiftQuirks), nil
}
