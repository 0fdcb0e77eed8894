// Package loader handles program and source file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8tools/internal/arch/chip8"
	"github.com/retroenv/chip8tools/internal/disasm"
	"github.com/retroenv/chip8tools/internal/options"
)

// Loader handles loading program images and assembler sources.
type Loader struct {
	stdin io.Reader
}

// New creates a new loader that reads from os.Stdin for the - file name.
func New() *Loader {
	return &Loader{stdin: os.Stdin}
}

// NewWithStdin creates a new loader that uses the given reader as stdin.
func NewWithStdin(stdin io.Reader) *Loader {
	return &Loader{stdin: stdin}
}

// LoadProgram loads a raw CHIP-8 program image. Images of any file
// extension are read as raw bytes, the size is limited to the program
// region of the memory.
func (l *Loader) LoadProgram(path string) ([]byte, error) {
	reader, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	// read one byte more than allowed to detect oversized images
	data, err := io.ReadAll(io.LimitReader(reader, chip8.ProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program %s: %w", path, err)
	}
	if len(data) > chip8.ProgramSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", disasm.ErrProgramTooLarge, path, chip8.ProgramSize)
	}
	return data, nil
}

// OpenSource opens an assembler source file. An empty path or - opens stdin.
func (l *Loader) OpenSource(path string) (io.ReadCloser, error) {
	if path == "" {
		return l.open(options.StdStream)
	}
	return l.open(path)
}

func (l *Loader) open(path string) (io.ReadCloser, error) {
	if path == options.StdStream {
		return io.NopCloser(l.stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	return file, nil
}
