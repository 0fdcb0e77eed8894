package disasm

import (
	"fmt"
	"hash/crc32"

	"github.com/retroenv/chip8tools/internal/arch/chip8"
	"github.com/retroenv/chip8tools/internal/program"
)

const labelNaming = "L%03X"

// convertToProgram converts the analyzed program data to the program
// representation that the output writer uses.
func (dis *Disassembler) convertToProgram() *program.Program {
	app := program.New((len(dis.data) + 1) / chip8.OpcodeSize)
	app.Checksum = crc32.ChecksumIEEE(dis.data)
	app.ShiftQuirks = dis.opts.ShiftQuirks

	destinations := map[uint16]program.OffsetType{}

	for i := 0; i < len(dis.data); i += chip8.OpcodeSize {
		offset := uint16(i)
		info := program.Offset{
			Address: chip8.ProgramStart + offset,
		}
		if dis.labels.Contains(offset) {
			info.Label = fmt.Sprintf(labelNaming, offset)
		}

		opcode, ok := chip8.OpcodeAt(dis.data, i)
		switch {
		case !ok:
			info.Data = dis.data[i:]
			info.Code = fmt.Sprintf("DB #%02X", dis.data[i])
			info.SetType(program.DataOffset)

		case dis.points.inData(offset):
			info.Data = dis.data[i : i+chip8.OpcodeSize]
			info.Code = fmt.Sprintf("DW #%04X", opcode)
			info.SetType(program.DataOffset)
			if chip8.Decode(opcode, dis.opts.ShiftQuirks).Op != chip8.Invalid {
				info.SetType(program.CodeAsData)
			}

		default:
			info.Data = dis.data[i : i+chip8.OpcodeSize]
			info.Code = dis.formatInstruction(opcode, destinations)
			info.SetType(program.CodeOffset)
		}

		app.Offsets = append(app.Offsets, info)
	}

	for target, typ := range destinations {
		app.Offsets[target/chip8.OpcodeSize].SetType(typ)
	}
	return app
}

// formatInstruction formats the instruction of a code slot and records the
// type of a referenced label in destinations.
func (dis *Disassembler) formatInstruction(opcode uint16, destinations map[uint16]program.OffsetType) string {
	ins := chip8.Decode(opcode, dis.opts.ShiftQuirks)
	if !ins.UsesAddress() {
		return chip8.Format(ins, "", dis.opts.ShiftQuirks)
	}

	target, ok := dis.labelOffset(ins.Addr)
	if !ok || !dis.labels.Contains(target) {
		return chip8.Format(ins, "", dis.opts.ShiftQuirks)
	}

	switch {
	case ins.IsCall():
		destinations[target] |= program.CallDestination
	case ins.IsJump():
		destinations[target] |= program.JumpDestination
	default:
		destinations[target] |= program.DataReference
	}
	return chip8.Format(ins, fmt.Sprintf(labelNaming, target), dis.opts.ShiftQuirks)
}
