// Package assembler implements a two-pass CHIP-8 and Super-Chip assembler.
//
// Source lines are fed one at a time to ProcessLine, which parses them and
// records the instructions together with their program counter. Operand
// expressions are evaluated by Emit once all labels are known, so labels can
// be referenced before they are defined. Constant assignments and DEFINE are
// evaluated immediately and only see symbols that were defined before.
package assembler

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8tools/internal/arch/chip8"
	"github.com/retroenv/chip8tools/internal/expression"
	"github.com/retroenv/chip8tools/internal/symbols"
	"github.com/retroenv/retrogolib/log"
)

// Assembler directives, matched case insensitive.
const (
	directiveIfdef  = "ifdef"
	directiveIfndef = "ifndef"
	directiveElse   = "else"
	directiveEndif  = "endif"
	directiveDefine = "define"
	directiveDB     = "db"
	directiveDW     = "dw"
	directiveOption = "option"
)

// Options contains the assembler options.
type Options struct {
	// ShiftQuirks makes SHR and SHL take a source register Vy.
	ShiftQuirks bool
}

// Assembler assembles source lines into a CHIP-8 program. It is not safe
// for concurrent use.
type Assembler struct {
	logger  *log.Logger
	opts    Options
	symbols *symbols.Table
	cond    conditional

	pending []pending
	pc      uint16
	line    int
	label   string // label waiting for the next statement
}

// New returns a new assembler.
func New(logger *log.Logger, opts Options) *Assembler {
	return &Assembler{
		logger:  logger,
		opts:    opts,
		symbols: symbols.New(),
		pc:      chip8.ProgramStart,
	}
}

// Define defines a symbol with the value 0, like the DEFINE directive does.
func (a *Assembler) Define(name string) error {
	if !expression.IsIdentifier(name) {
		return fmt.Errorf("%w: invalid symbol name '%s'", ErrSyntax, name)
	}
	if a.symbols.Add(name, 0) {
		return fmt.Errorf("%w: '%s'", ErrDuplicateSymbol, name)
	}
	return nil
}

// Eval evaluates an expression using the symbols that are defined so far.
func (a *Assembler) Eval(expr string) (uint16, error) {
	value, err := expression.Evaluate(expr, a.symbols)
	if err != nil {
		return 0, fmt.Errorf("evaluating '%s': %w", expr, err)
	}
	return value, nil
}

// ProcessLine processes a single line of source code. The returned error is
// a *LineError that contains the line number.
func (a *Assembler) ProcessLine(line string) error {
	a.line++
	if err := a.processLine(line); err != nil {
		return &LineError{Line: a.line, Err: err}
	}
	return nil
}

func (a *Assembler) processLine(line string) error {
	stmt, err := parseLine(line)
	if err != nil {
		return err
	}

	if a.cond.active() {
		for _, label := range stmt.labels {
			if a.label != "" {
				return fmt.Errorf("%w: cannot associate more than one label with a statement, already found label '%s'",
					ErrSyntax, a.label)
			}
			a.label = label
		}
	}

	if stmt.mnemonic == "" {
		return nil
	}
	if stmt.assignment {
		return a.processAssignment(stmt)
	}
	return a.processStatement(stmt)
}

func (a *Assembler) processAssignment(stmt statement) error {
	if !a.cond.active() {
		return nil
	}
	if len(stmt.operands) != 1 {
		return fmt.Errorf("%w: wrong number of operands given to '='", ErrArity)
	}

	value, err := a.Eval(stmt.operands[0])
	if err != nil {
		return err
	}
	if a.symbols.Add(stmt.mnemonic, value) {
		return fmt.Errorf("%w: '%s'", ErrDuplicateSymbol, stmt.mnemonic)
	}

	a.logger.Trace("Assigned constant",
		log.String("name", stmt.mnemonic),
		log.Hex("value", value))
	return nil
}

func (a *Assembler) processStatement(stmt statement) error {
	mnemonic := strings.ToLower(stmt.mnemonic)

	// conditional directives have to be tracked in skipped blocks as well
	switch mnemonic {
	case directiveIfdef, directiveIfndef:
		if err := expectOperands(stmt.mnemonic, 1, len(stmt.operands)); err != nil {
			return err
		}
		a.cond.ifBlock(func() bool {
			_, defined := a.symbols.Get(stmt.operands[0])
			return defined == (mnemonic == directiveIfdef)
		})
		return nil

	case directiveElse:
		if err := expectOperands(stmt.mnemonic, 0, len(stmt.operands)); err != nil {
			return err
		}
		return a.cond.elseBlock()

	case directiveEndif:
		if err := expectOperands(stmt.mnemonic, 0, len(stmt.operands)); err != nil {
			return err
		}
		return a.cond.endBlock()
	}

	if !a.cond.active() {
		return nil
	}

	switch mnemonic {
	case directiveDefine:
		if err := expectOperands(stmt.mnemonic, 1, len(stmt.operands)); err != nil {
			return err
		}
		return a.Define(stmt.operands[0])

	case directiveDB:
		if err := expectOperands(stmt.mnemonic, 1, len(stmt.operands)); err != nil {
			return err
		}
		return a.addPending(pending{kind: kindByte, operands: stmt.operands}, 1)

	case directiveDW:
		if err := expectOperands(stmt.mnemonic, 1, len(stmt.operands)); err != nil {
			return err
		}
		return a.addPending(pending{kind: kindWord, operands: stmt.operands}, 2)

	case directiveOption:
		if err := expectOperands(stmt.mnemonic, 1, len(stmt.operands)); err != nil {
			return err
		}
		a.logger.Warn("Ignoring unrecognized option",
			log.Int("line", a.line),
			log.String("option", stmt.operands[0]))
		return nil
	}

	// instructions are word aligned
	a.pc = (a.pc + 1) &^ 1

	op, err := resolve(stmt.mnemonic, stmt.operands, a.opts.ShiftQuirks)
	if err != nil {
		return err
	}
	return a.addPending(pending{kind: kindInstruction, op: op, operands: stmt.operands}, chip8.OpcodeSize)
}

// addPending records a statement for the second pass at the current program
// counter and attaches the waiting label to it.
func (a *Assembler) addPending(p pending, size int) error {
	if int(a.pc)+size > chip8.MemorySize {
		return fmt.Errorf("%w: address $%04X exceeds the program space", ErrProgramTooLarge, a.pc)
	}

	if a.label != "" {
		if a.symbols.Add(a.label, a.pc) {
			return fmt.Errorf("%w: '%s'", ErrDuplicateSymbol, a.label)
		}
		a.logger.Trace("Defined label",
			log.String("label", a.label),
			log.Hex("address", a.pc))
		a.label = ""
	}

	p.line = a.line
	p.pc = a.pc
	a.pending = append(a.pending, p)
	a.pc += uint16(size)
	return nil
}
