// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/retroenv/chip8tools/internal/options"
	retroconfig "github.com/retroenv/retrogolib/config"
	"github.com/retroenv/retrogolib/log"
)

// File contains the options that can be set in a config file:
//
//	[chip8]
//	shift_quirks = true
//
//	[disasm]
//	offset_comments = true
//	hex_comments = false
//	verify = true
type File struct {
	ShiftQuirks    bool `config:"chip8.shift_quirks"`
	OffsetComments bool `config:"disasm.offset_comments"`
	HexComments    bool `config:"disasm.hex_comments"`
	Verify         bool `config:"disasm.verify"`
}

// CreateLogger creates a logger with appropriate settings. Records go to
// stderr, stdout is reserved for the tool output.
func CreateLogger(opts options.Logging) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = os.Stderr
	switch {
	case opts.Trace:
		cfg.Level = log.TraceLevel
	case opts.Verbose:
		cfg.Level = log.DebugLevel
	case opts.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Load loads the config file. An empty file name returns the default config.
func Load(filename string) (File, error) {
	var file File
	if filename == "" {
		return file, nil
	}

	cfg, err := retroconfig.Open(filename, retroconfig.Options{})
	if err != nil {
		return file, fmt.Errorf("opening config file '%s': %w", filename, err)
	}
	if err := cfg.Unmarshal(&file); err != nil {
		return file, fmt.Errorf("parsing config file '%s': %w", filename, err)
	}
	return file, nil
}

// ApplyAssembler enables the assembler options that are enabled in the
// config file.
func (f File) ApplyAssembler(opts *options.Assembler) {
	opts.ShiftQuirks = opts.ShiftQuirks || f.ShiftQuirks
}

// ApplyDisassembler enables the disassembler options that are enabled in the
// config file.
func (f File) ApplyDisassembler(opts *options.Disassembler) {
	opts.ShiftQuirks = opts.ShiftQuirks || f.ShiftQuirks
	opts.OffsetComments = opts.OffsetComments || f.OffsetComments
	opts.HexComments = opts.HexComments || f.HexComments
	opts.Verify = opts.Verify || f.Verify
}
