// Package main implements a CHIP-8 and Super-Chip disassembler
package main

import (
	"os"

	"github.com/retroenv/chip8tools/internal/command"
	"github.com/retroenv/retrogolib/app"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	build := command.Build{Version: version, Commit: commit, Date: date}
	os.Exit(command.Disassemble(app.Context(), "chip8disasm", os.Args[1:], build))
}
