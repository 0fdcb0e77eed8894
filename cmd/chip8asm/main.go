// Package main implements a CHIP-8 and Super-Chip assembler
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
	os.Exit(command.Assemble(app.Context(), "chip8asm", os.Args[1:], build))
}
