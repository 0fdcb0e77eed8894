// Package program represents a disassembled CHIP-8 program.
package program

import (
	"fmt"
	"strings"
)

// labelPrefixWidth is the width of the label column of a disassembled line.
const labelPrefixWidth = 6

// Offset defines the content of a 2 byte slot in a program that can represent
// data or code. A trailing odd byte of a program is stored as a single byte
// offset.
type Offset struct {
	Address uint16 // memory address of the slot
	Data    []byte // opcode bytes or data bytes

	Type OffsetType

	Label   string // name of label if the slot is referenced by an instruction
	Code    string // asm output of this slot
	Comment string
}

// Program defines a CHIP-8 program that contains code or data.
type Program struct {
	Name        string // name of the source of the program, used in the output header
	Checksum    uint32 // CRC32 checksum of the program bytes
	ShiftQuirks bool

	Offsets []Offset
}

// New creates a new program with the given number of offsets.
func New(offsets int) *Program {
	return &Program{
		Offsets: make([]Offset, 0, offsets),
	}
}

// Size returns the size in bytes of all offsets of the program.
func (p *Program) Size() int {
	var size int
	for _, offset := range p.Offsets {
		size += len(offset.Data)
	}
	return size
}

// Line returns the disassembled line of the offset without comment. It
// consists of the optional label followed by the code.
func (o Offset) Line() string {
	if o.Label == "" {
		return strings.Repeat(" ", labelPrefixWidth) + o.Code
	}
	return fmt.Sprintf("%-*s", labelPrefixWidth, o.Label+": ") + o.Code
}

// HexCodeComment returns the offset bytes as hex string, as a comment for
// the code line.
func (o Offset) HexCodeComment() (string, error) {
	buf := &strings.Builder{}
	for _, b := range o.Data {
		if _, err := fmt.Fprintf(buf, "%02X", b); err != nil {
			return "", fmt.Errorf("writing hex comment byte: %w", err)
		}
	}
	return buf.String(), nil
}
