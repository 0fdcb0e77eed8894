// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8tools/internal/options"
	"github.com/retroenv/retrogolib/cli"
	"golang.org/x/term"
)

// stdinIsTerminal returns whether stdin is attached to an interactive
// terminal.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ParseAssemblerFlags parses the command line flags of the assembler.
func ParseAssemblerFlags(name string, args []string) (options.Assembler, error) {
	var opts options.Assembler

	flags := cli.NewFlagSet(name)
	flags.AddSection("Parameters", &opts)
	flags.AddSection("Logging", &opts.Logging)
	flags.AddPositional(&opts)

	remaining, err := flags.Parse(args)
	if err != nil {
		return opts, newUsageError(flags, err)
	}
	if err := validateArgs(flags, remaining); err != nil {
		return opts, err
	}

	if opts.Input == "" && stdinIsTerminal() {
		return opts, &UsageError{flags: flags, msg: "no source file given and stdin is a terminal"}
	}
	return opts, nil
}

// ParseDisassemblerFlags parses the command line flags of the disassembler.
func ParseDisassemblerFlags(name string, args []string) (options.Disassembler, error) {
	var opts options.Disassembler

	flags := cli.NewFlagSet(name)
	flags.AddSection("Parameters", &opts)
	flags.AddSection("Logging", &opts.Logging)
	flags.AddPositional(&opts)

	remaining, err := flags.Parse(args)
	if err != nil {
		return opts, newUsageError(flags, err)
	}
	if err := validateArgs(flags, remaining); err != nil {
		return opts, err
	}

	switch {
	case opts.Input == "" && opts.Batch == "":
		return opts, &UsageError{flags: flags, msg: "no file to disassemble given"}
	case opts.Input != "" && opts.Batch != "":
		return opts, &UsageError{flags: flags, msg: "a file to disassemble can not be combined with batch mode"}
	case opts.Batch != "" && opts.Output != "":
		return opts, &UsageError{flags: flags, msg: "an output file can not be combined with batch mode"}
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *cli.FlagSet
	msg   string
	help  bool
	shown bool // the flag set already printed the usage
}

// newUsageError wraps a flag parsing error. Flag syntax errors and help
// requests print the usage while parsing, missing arguments do not.
func newUsageError(flags *cli.FlagSet, err error) *UsageError {
	var missingFlags *cli.MissingFlagsError
	var missingArgs *cli.MissingArgsError
	missing := errors.As(err, &missingFlags) || errors.As(err, &missingArgs)

	return &UsageError{
		flags: flags,
		msg:   err.Error(),
		help:  errors.Is(err, cli.ErrHelpRequested),
		shown: !missing,
	}
}

func (e *UsageError) Error() string {
	return e.msg
}

// HelpRequested returns whether the usage was requested explicitly.
func (e *UsageError) HelpRequested() bool {
	return e.help
}

// ShowUsage prints the usage information of all flags, unless it was
// printed already while parsing.
func (e *UsageError) ShowUsage() {
	if e.flags != nil && !e.shown {
		e.flags.ShowUsage()
	}
}

// validateArgs checks that no arguments follow the positional file argument.
func validateArgs(flags *cli.FlagSet, remaining []string) error {
	if len(remaining) == 0 {
		return nil
	}

	arg := remaining[0]
	if len(arg) > 1 && arg[0] == '-' {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("potential flag %s found after the input file, pass the input file as last argument", arg),
		}
	}
	return &UsageError{flags: flags, msg: "unexpected argument " + arg}
}
