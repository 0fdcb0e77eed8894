// Package chip8 provides the CHIP-8 and Super-Chip instruction codec.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - 0x000-0x1FF: Interpreter area (not used for user programs)
//   - ProgramStart-MaxAddress: User program and data area
//
// Program images are stored starting at offset 0 and loaded at ProgramStart,
// so a program can be at most ProgramSize bytes long.
//
// # Instruction Set
//
// All instructions are 2 bytes (16 bits), big endian, and start at even
// addresses. Besides the 35 base CHIP-8 opcodes the codec understands the
// Super-Chip extensions:
//   - Scrolling: SCD, SCR, SCL
//   - Display mode: LOW, HIGH
//   - Interpreter exit: EXIT
//   - Large font and flag registers: LD HF, LD R, LD Vx, R
//
// # Shift Quirks
//
// The 8xy6 (SHR) and 8xyE (SHL) opcodes are decoded differently depending on
// the shift quirks mode. Without quirks only Vx is used and the Vy nibble has
// to be zero. With quirks Vy is the source register and any Vy is accepted.
//
// # Usage Example
//
//	ins := chip8.Decode(0x6A02, false)
//	fmt.Println(chip8.Format(ins, "", false)) // LD VA, #02
//
//	opcode := chip8.Encode(chip8.Instruction{Op: chip8.Jp, Addr: 0x200}, false)
//	fmt.Printf("%04X\n", opcode) // 1200
package chip8
