package disasm

import (
	"fmt"

	"github.com/retroenv/chip8tools/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

// followExecutionFlow simulates the execution along all possible control
// flow paths, recording the jump and return points and all referenced
// addresses. Every path starts at a return point, paths that were already
// followed are skipped.
func (dis *Disassembler) followExecutionFlow() {
	starts := pointList{0}

	for len(starts) > 0 {
		offset := starts.pop()
		if dis.points.contains(offset) {
			continue
		}
		dis.points.add(offset)
		dis.followPath(offset, &starts)
	}
}

// followPath walks the instructions starting at offset until an
// unconditional jump or return ends the path. Targets of calls and jumps are
// added to starts.
func (dis *Disassembler) followPath(offset uint16, starts *pointList) {
	afterSkip := false

	for ; ; offset += chip8.OpcodeSize {
		opcode, ok := chip8.OpcodeAt(dis.data, int(offset))
		if !ok {
			dis.addWarning(offset, fmt.Errorf("%w: control flow reached the end of the program", ErrOutOfBounds))
			return
		}

		ins := chip8.Decode(opcode, dis.opts.ShiftQuirks)
		if ins.UsesAddress() {
			if target, ok := dis.labelOffset(ins.Addr); ok {
				dis.labels.Add(target)
			}
		}

		switch {
		case ins.IsReturn():
			if !afterSkip {
				dis.points.addJumpPoint(offset)
				return
			}
			afterSkip = false

		case ins.IsCall():
			// execution continues after the call when the subroutine returns
			dis.addStart(offset, ins.Addr, starts)
			afterSkip = false

		case ins.IsJump():
			if ins.Op == chip8.JpV0 {
				dis.logger.Warn("Target of JP V0 depends on the value of V0, the control flow is not reliable",
					log.Hex("offset", offset))
			}
			dis.addStart(offset, ins.Addr, starts)
			if !afterSkip {
				dis.points.addJumpPoint(offset)
				return
			}
			afterSkip = false

		case ins.IsSkip():
			afterSkip = true

		default:
			afterSkip = false
		}
	}
}

// addStart adds the offset of a jump or call target as start of a new path.
func (dis *Disassembler) addStart(offset, address uint16, starts *pointList) {
	if address%chip8.OpcodeSize != 0 {
		dis.addWarning(offset, fmt.Errorf("%w: target $%03X", ErrMisalignedAddress, address))
		return
	}
	target, ok := dis.programOffset(address)
	if !ok {
		dis.addWarning(offset, fmt.Errorf("%w: target $%03X", ErrOutOfBounds, address))
		return
	}
	starts.add(target)
}

// programOffset converts a memory address to an offset into the program
// data and returns whether the address lies inside the program.
func (dis *Disassembler) programOffset(address uint16) (uint16, bool) {
	if address < chip8.ProgramStart {
		return 0, false
	}
	offset := address - chip8.ProgramStart
	if int(offset) >= len(dis.data) {
		return 0, false
	}
	return offset, true
}

// labelOffset returns the program offset of an address that can be
// referenced by a label. Only slot offsets get a label.
func (dis *Disassembler) labelOffset(address uint16) (uint16, bool) {
	offset, ok := dis.programOffset(address)
	if !ok || offset%chip8.OpcodeSize != 0 {
		return 0, false
	}
	return offset, true
}
