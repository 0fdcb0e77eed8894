// Package writer implements the assembly file writing of disassembled programs.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8tools/internal/program"
)

// codeColumnWidth is the width of the code column when a comment follows.
const codeColumnWidth = 30

// Writer writes a disassembled program as assembly source that the
// assembler accepts.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	OffsetComments bool // append the address of every slot as comment
	HexComments    bool // append the bytes of every slot as comment
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write writes the comment header followed by all offsets of the program.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}
	return w.ProcessOffsets()
}

// WriteCommentHeader writes the program name, size and CRC32 checksum as
// comments to the output.
func (w Writer) WriteCommentHeader() error {
	if w.app.Name != "" {
		if _, err := fmt.Fprintf(w.writer, "; Disassembly of %s\n", w.app.Name); err != nil {
			return fmt.Errorf("writing program name: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "; Size: %d bytes\n", w.app.Size()); err != nil {
		return fmt.Errorf("writing program size: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", w.app.Checksum); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if w.app.ShiftQuirks {
		if _, err := fmt.Fprintln(w.writer, "; Assemble with shift quirks enabled"); err != nil {
			return fmt.Errorf("writing shift quirks note: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// ProcessOffsets writes all offsets with their labels and comments.
func (w Writer) ProcessOffsets() error {
	var previousLineWasCode bool

	for i, offset := range w.app.Offsets {
		isCode := offset.IsType(program.CodeOffset)

		// print an empty line in case of data after code and vice versa and
		// before every subroutine or jump target
		if i > 0 && (isCode != previousLineWasCode || offset.IsType(program.CallDestination|program.JumpDestination)) {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = isCode

		if err := w.writeLine(offset); err != nil {
			return err
		}
	}
	return nil
}

func (w Writer) writeLine(offset program.Offset) error {
	comment, err := w.comment(offset)
	if err != nil {
		return err
	}

	line := offset.Line()
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(w.writer, "%-*s ; %s\n", codeColumnWidth, line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// comment builds the comment of an offset, for example "$0204 | 6A02".
func (w Writer) comment(offset program.Offset) (string, error) {
	var parts []string

	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", offset.Address))
	}
	if w.options.HexComments {
		hex, err := offset.HexCodeComment()
		if err != nil {
			return "", fmt.Errorf("building hex comment: %w", err)
		}
		parts = append(parts, hex)
	}
	if offset.IsType(program.DataReference) {
		parts = append(parts, "referenced by LD I")
	}
	if offset.IsType(program.CodeAsData) {
		parts = append(parts, "unreachable code")
	}
	if offset.Comment != "" {
		parts = append(parts, offset.Comment)
	}

	return strings.Join(parts, " | "), nil
}
