// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/retroenv/chip8tools/internal/options"
	"github.com/retroenv/chip8tools/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// Output file extensions.
const (
	SourceExtension = ".asm"
	BinaryExtension = ".bin"
)

// defaultBinary is the output file name of the assembler when the source is
// read from stdin.
const defaultBinary = "a" + BinaryExtension

// ErrBatchFailed is returned when at least one file of a batch could not
// be processed.
var ErrBatchFailed = errors.New("batch processing failed")

// DisassembleFile disassembles a single program file. An empty output name
// writes to stdout. No output file is created if the disassembly fails.
func DisassembleFile(ctx context.Context, logger *log.Logger, opts options.Disassembler) error {
	var buf bytes.Buffer
	pipe := pipeline.New(logger)
	if _, err := pipe.Disassemble(ctx, opts, &buf); err != nil {
		return err
	}
	return writeOutput(opts.Output, buf.Bytes())
}

// DisassembleBatch disassembles all given files concurrently, writing the
// output of every file next to it with an .asm extension. A failing file
// does not stop the processing of the other files. Files that already have
// the .asm extension are skipped, their output would replace the input.
func DisassembleBatch(ctx context.Context, logger *log.Logger, opts options.Disassembler, files []string) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	var failed atomic.Int32
	for _, file := range files {
		if strings.EqualFold(filepath.Ext(file), SourceExtension) {
			logger.Warn("Skipping file with output extension", log.String("file", file))
			continue
		}

		fileOpts := opts
		fileOpts.Batch = ""
		fileOpts.Input = file
		fileOpts.Output = GenerateOutputFilename(file, SourceExtension)

		group.Go(func() error {
			err := DisassembleFile(ctx, logger, fileOpts)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, context.Canceled):
				return err
			default:
				logger.Error("Disassembling failed", log.String("file", file), log.Err(err))
				failed.Add(1)
				return nil
			}
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("processing batch: %w", err)
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrBatchFailed, n, len(files))
	}
	return nil
}

// AssembleFile assembles a single source file and writes the program to
// the output file of the options.
func AssembleFile(ctx context.Context, logger *log.Logger, opts options.Assembler) error {
	pipe := pipeline.New(logger)
	prog, err := pipe.Assemble(ctx, opts)
	if err != nil {
		return err
	}

	output := AssemblerOutputFilename(opts)
	if err := writeOutput(output, prog.Bytes()); err != nil {
		return err
	}

	logger.Debug("Wrote program", log.String("file", output), log.Int("size", prog.Len()))
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts options.Disassembler) ([]string, error) {
	if opts.Batch == "" {
		return []string{opts.Input}, nil
	}

	matches, err := filepath.Glob(opts.Batch)
	if err != nil {
		return nil, fmt.Errorf("globbing batch pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match batch pattern '%s'", opts.Batch)
	}
	return matches, nil
}

// GenerateOutputFilename replaces the extension of the input file name.
func GenerateOutputFilename(inputFile, extension string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + extension
}

// AssemblerOutputFilename returns the output file name of the assembler.
func AssemblerOutputFilename(opts options.Assembler) string {
	switch {
	case opts.Output != "":
		return opts.Output
	case opts.ReadsStdin():
		return defaultBinary
	default:
		return GenerateOutputFilename(opts.Input, BinaryExtension)
	}
}

// writeOutput writes the data to the output file, an empty name or -
// selects stdout.
func writeOutput(output string, data []byte) error {
	writer, err := createWriter(output)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", output, err)
	}
	return nil
}

func createWriter(output string) (io.WriteCloser, error) {
	if output == "" || output == options.StdStream {
		return nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, name string, quiet bool, version, commit, date string) {
	if quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info(name, log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
