package chip8

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// ProgramStart is the memory address where CHIP-8 programs are loaded.
	// Program images are stored starting at offset 0 in ROM files.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = 0xFFF

	// MemorySize is the size of the CHIP-8 address space.
	MemorySize = MaxAddress + 1

	// ProgramSize is the maximum size of a program image.
	ProgramSize = MemorySize - ProgramStart

	// OpcodeSize is the size of a CHIP-8 instruction in bytes.
	OpcodeSize = 2
)

// OpcodeAt returns the big endian opcode stored at the given offset.
func OpcodeAt(data []byte, offset int) (uint16, bool) {
	if offset < 0 || offset+1 >= len(data) {
		return 0, false
	}
	return uint16(data[offset])<<8 | uint16(data[offset+1]), true
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}
