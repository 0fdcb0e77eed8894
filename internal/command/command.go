// Package command implements the entry points of the assembler and the
// disassembler, shared by the standalone tools and the multi-command binary.
package command

import (
	"context"
	"errors"

	"github.com/retroenv/chip8tools/internal/cli"
	"github.com/retroenv/chip8tools/internal/config"
	"github.com/retroenv/chip8tools/internal/fileprocessor"
	"github.com/retroenv/chip8tools/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Build contains the build information that is set by the linker.
type Build struct {
	Version string
	Commit  string
	Date    string
}

// String returns the formatted version.
func (b Build) String() string {
	return buildinfo.Version(b.Version, b.Commit, b.Date)
}

// Assemble runs the assembler with the given arguments and returns the exit
// code.
func Assemble(ctx context.Context, name string, args []string, build Build) int {
	opts, err := cli.ParseAssemblerFlags(name, args)
	if err != nil {
		return handleParseError(err, name, opts.Logging, build)
	}

	logger := config.CreateLogger(opts.Logging)
	cfg, err := config.Load(opts.Config)
	if err != nil {
		logger.Error("Loading config failed", log.Err(err))
		return 1
	}
	cfg.ApplyAssembler(&opts)

	fileprocessor.PrintBanner(logger, name, opts.Quiet, build.Version, build.Commit, build.Date)

	if err := fileprocessor.AssembleFile(ctx, logger, opts); err != nil {
		return handleError(logger, "Assembling failed", err)
	}
	return 0
}

// Disassemble runs the disassembler with the given arguments and returns
// the exit code.
func Disassemble(ctx context.Context, name string, args []string, build Build) int {
	opts, err := cli.ParseDisassemblerFlags(name, args)
	if err != nil {
		return handleParseError(err, name, opts.Logging, build)
	}

	logger := config.CreateLogger(opts.Logging)
	cfg, err := config.Load(opts.Config)
	if err != nil {
		logger.Error("Loading config failed", log.Err(err))
		return 1
	}
	cfg.ApplyDisassembler(&opts)

	fileprocessor.PrintBanner(logger, name, opts.Quiet, build.Version, build.Commit, build.Date)

	if opts.Batch == "" {
		err = fileprocessor.DisassembleFile(ctx, logger, opts)
	} else {
		var files []string
		files, err = fileprocessor.GetFilesToProcess(opts)
		if err == nil {
			err = fileprocessor.DisassembleBatch(ctx, logger, opts, files)
		}
	}
	if err != nil {
		return handleError(logger, "Disassembling failed", err)
	}
	return 0
}

func handleParseError(err error, name string, logging options.Logging, build Build) int {
	logger := config.CreateLogger(logging)

	var usageErr *cli.UsageError
	if !errors.As(err, &usageErr) {
		logger.Error("Parsing arguments failed", log.Err(err))
		return 1
	}

	fileprocessor.PrintBanner(logger, name, logging.Quiet, build.Version, build.Commit, build.Date)
	if usageErr.HelpRequested() {
		usageErr.ShowUsage()
		return 0
	}

	logger.Error(usageErr.Error())
	usageErr.ShowUsage()
	return 1
}

func handleError(logger *log.Logger, msg string, err error) int {
	// Handle context cancellation (Ctrl+C) gracefully
	if errors.Is(err, context.Canceled) {
		logger.Info("Operation cancelled")
		return 1
	}
	logger.Error(msg, log.Err(err))
	return 1
}
