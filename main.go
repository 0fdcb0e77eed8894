// Package main implements the combined CHIP-8 assembler and disassembler tool
package main

import (
	"os"

	"github.com/retroenv/chip8tools/internal/command"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()
	build := command.Build{Version: version, Commit: commit, Date: date}

	cmd := cli.NewCommand("chip8tools", "CHIP-8 and Super-Chip assembler and disassembler")
	cmd.SetVersion(build.String())

	cmd.AddSubcommand("asm", "assemble a source file to a program", func(args []string) int {
		return command.Assemble(ctx, "chip8tools asm", args, build)
	})
	cmd.AddSubcommand("disasm", "disassemble a program to a source file", func(args []string) int {
		return command.Disassemble(ctx, "chip8tools disasm", args, build)
	})

	os.Exit(cmd.Execute(os.Args[1:]))
}
