// Package disasm implements a CHIP-8 and Super-Chip disassembler.
//
// The disassembler follows all control flow paths of a program, starting at
// its first instruction, to find out which parts are reachable code. Regions
// that no path can reach, such as sprite data behind a final jump, are
// output as data words.
package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/chip8tools/internal/arch/chip8"
	"github.com/retroenv/chip8tools/internal/program"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Options contains the disassembler options.
type Options struct {
	// ShiftQuirks decodes SHR and SHL with a source register Vy.
	ShiftQuirks bool
}

// Disassembler implements a disassembler. It is not safe for concurrent use.
type Disassembler struct {
	logger *log.Logger
	opts   Options
	data   []byte

	points   pointList        // jump and return points
	labels   set.Set[uint16]  // offsets referenced by address operands
	warnings []Warning
	app      *program.Program
}

// New creates a new disassembler for the program data, which is assumed to
// be loaded at the program start address. The control flow is analyzed
// immediately.
func New(logger *log.Logger, data []byte, opts Options) (*Disassembler, error) {
	if len(data) > chip8.ProgramSize {
		return nil, fmt.Errorf("%w: %d bytes exceed the program space of %d bytes",
			ErrProgramTooLarge, len(data), chip8.ProgramSize)
	}

	dis := &Disassembler{
		logger: logger,
		opts:   opts,
		data:   slices.Clone(data),
		labels: set.New[uint16](),
	}

	if len(dis.data) > 0 {
		dis.followExecutionFlow()
	}
	dis.app = dis.convertToProgram()

	logger.Debug("Disassembled program",
		log.Int("size", len(dis.data)),
		log.Int("labels", dis.labels.Size()),
		log.Int("warnings", len(dis.warnings)))
	return dis, nil
}

// Dump returns the disassembled program, one line for every 2 byte slot.
func (dis *Disassembler) Dump() []string {
	lines := make([]string, 0, len(dis.app.Offsets))
	for _, offset := range dis.app.Offsets {
		lines = append(lines, offset.Line())
	}
	return lines
}

// Program returns the disassembled program.
func (dis *Disassembler) Program() *program.Program {
	return dis.app
}

// IsData returns whether the slot that contains the program offset is
// classified as data.
func (dis *Disassembler) IsData(offset uint16) bool {
	return dis.points.inData(offset &^ 1)
}

// Warnings returns the anomalies that were found while following the
// control flow.
func (dis *Disassembler) Warnings() []Warning {
	return slices.Clone(dis.warnings)
}

func (dis *Disassembler) addWarning(offset uint16, err error) {
	dis.warnings = append(dis.warnings, Warning{Offset: offset, Err: err})
	dis.logger.Warn("Control flow anomaly",
		log.Hex("offset", offset),
		log.Hex("address", chip8.ProgramStart+int(offset)),
		log.Err(err))
}
