// Package pipeline orchestrates the assembly and disassembly workflow stages.
package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/retroenv/chip8tools/internal/assembler"
	"github.com/retroenv/chip8tools/internal/detector"
	"github.com/retroenv/chip8tools/internal/disasm"
	"github.com/retroenv/chip8tools/internal/loader"
	"github.com/retroenv/chip8tools/internal/options"
	"github.com/retroenv/chip8tools/internal/program"
	"github.com/retroenv/chip8tools/internal/verification"
	"github.com/retroenv/chip8tools/internal/writer"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete assembly and disassembly workflows.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return NewWithLoader(logger, loader.New())
}

// NewWithLoader creates a new pipeline that uses the given loader.
func NewWithLoader(logger *log.Logger, loader *loader.Loader) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader,
	}
}

// Disassemble runs the complete disassembly pipeline and writes the
// generated source to the writer.
func (p *Pipeline) Disassemble(ctx context.Context, opts options.Disassembler, output io.Writer) (*program.Program, error) {
	// files of any type are loaded as raw program
	if system := p.detector.Detect(opts.Input); system != arch.CHIP8System {
		p.logger.Warn("File extension does not match a CHIP-8 program, loading it as raw program",
			log.String("file", opts.Input),
			log.Stringer("detected", system))
	}

	data, err := p.loader.LoadProgram(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return p.DisassembleData(ctx, data, opts, output)
}

// DisassembleData runs the disassembly pipeline with a pre-loaded program.
func (p *Pipeline) DisassembleData(ctx context.Context, data []byte, opts options.Disassembler,
	output io.Writer) (*program.Program, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}

	p.printInfo(opts.Logging, "Disassembling CHIP-8 program", opts.Input, len(data))

	dis, err := disasm.New(p.logger, data, disasm.Options{ShiftQuirks: opts.ShiftQuirks})
	if err != nil {
		return nil, fmt.Errorf("creating disassembler: %w", err)
	}

	app := dis.Program()
	if opts.Input != "" && opts.Input != options.StdStream {
		app.Name = filepath.Base(opts.Input)
	}

	// the output is buffered to be able to verify it after writing
	var buf bytes.Buffer
	w := writer.New(app, &buf, writer.Options{
		OffsetComments: opts.OffsetComments,
		HexComments:    opts.HexComments,
	})
	if err := w.Write(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	source := buf.Bytes()

	if _, err := output.Write(source); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	if opts.Verify {
		if err := verification.VerifyOutput(p.logger, bytes.NewReader(source), data, opts.ShiftQuirks); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful", log.String("file", opts.Input))
	}

	return app, nil
}

// Assemble runs the complete assembly pipeline for the source file of the
// options and returns the assembled program.
func (p *Pipeline) Assemble(ctx context.Context, opts options.Assembler) (*assembler.Program, error) {
	reader, err := p.loader.OpenSource(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer func() { _ = reader.Close() }()

	return p.AssembleReader(ctx, reader, opts)
}

// AssembleReader runs the assembly pipeline for the source read from the
// reader.
func (p *Pipeline) AssembleReader(ctx context.Context, reader io.Reader, opts options.Assembler) (*assembler.Program, error) {
	p.printInfo(opts.Logging, "Assembling CHIP-8 source", opts.Input, 0)

	asm := assembler.New(p.logger, assembler.Options{ShiftQuirks: opts.ShiftQuirks})
	for _, symbol := range opts.Defines() {
		if err := asm.Define(symbol); err != nil {
			return nil, fmt.Errorf("defining symbol: %w", err)
		}
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("assembling: %w", err)
		}
		if err := asm.ProcessLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("assembling: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	prog, err := asm.Emit()
	if err != nil {
		return nil, fmt.Errorf("assembling: %w", err)
	}
	return prog, nil
}

// printInfo prints information about the file being processed.
func (p *Pipeline) printInfo(opts options.Logging, msg, file string, size int) {
	if opts.Quiet {
		return
	}
	if file == "" {
		file = options.StdStream
	}

	fields := []log.Field{log.String("file", file)}
	if size > 0 {
		fields = append(fields, log.Int("size", size))
	}
	p.logger.Info(msg, fields...)
}
