// Package options contains the program options.
package options

import (
	"strings"
)

// StdStream is the file name that selects stdin or stdout.
const StdStream = "-"

// Logging contains the logging options shared by all tools.
type Logging struct {
	Quiet   bool `flag:"q,quiet" usage:"perform operations quietly"`
	Verbose bool `flag:"v,verbose" usage:"enable debug logging"`
	Trace   bool `flag:"trace" usage:"enable trace logging of every processed statement"`
}

// Assembler contains the options of the assembler.
type Assembler struct {
	Input string `arg:"positional" usage:"source file to assemble, - or none for stdin"`

	Output  string `flag:"o,output" usage:"output binary file, - for stdout (default: input name with .bin extension)"`
	Config  string `flag:"c,config" usage:"config file"`
	Symbols string `flag:"D,define" usage:"comma separated list of symbols to define for IFDEF"`

	ShiftQuirks bool `flag:"shift-quirks" usage:"SHR and SHL take a source register Vy"`

	Logging
}

// Defines returns the symbols that are predefined on the command line.
func (a Assembler) Defines() []string {
	var symbols []string
	for symbol := range strings.SplitSeq(a.Symbols, ",") {
		if symbol = strings.TrimSpace(symbol); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	return symbols
}

// ReadsStdin returns whether the source is read from stdin.
func (a Assembler) ReadsStdin() bool {
	return a.Input == "" || a.Input == StdStream
}

// Disassembler contains the options of the disassembler.
type Disassembler struct {
	Input string `arg:"positional" usage:"program file to disassemble"`

	Output string `flag:"o,output" usage:"output .asm file (default: stdout)"`
	Config string `flag:"c,config" usage:"config file"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`

	ShiftQuirks    bool `flag:"shift-quirks" usage:"decode SHR and SHL with a source register Vy"`
	OffsetComments bool `flag:"offsets" usage:"output addresses in comments"`
	HexComments    bool `flag:"hexcomments" usage:"output opcode bytes as hex values in comments"`
	Verify         bool `flag:"verify" usage:"verify the output by reassembling and comparing it to the input"`

	Logging
}
