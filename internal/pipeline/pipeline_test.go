package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/retroenv/chip8tools/internal/assembler"
	"github.com/retroenv/chip8tools/internal/disasm"
	"github.com/retroenv/chip8tools/internal/loader"
	"github.com/retroenv/chip8tools/internal/options"
	"github.com/retroenv/chip8tools/internal/program"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// CLS, LD I sprite, CALL sub, JP self, sub: RET, sprite data
var testProgram = []byte{
	0x00, 0xE0,
	0xA2, 0x0A,
	0x22, 0x08,
	0x12, 0x06,
	0x00, 0xEE,
	0x3C, 0x7E,
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func TestPipeline_Disassemble(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.ch8")
	assert.NoError(t, os.WriteFile(path, testProgram, 0600))

	p := New(log.NewTestLogger(t))
	buf := &bytes.Buffer{}
	opts := options.Disassembler{Input: path, Verify: true}

	app, err := p.Disassemble(context.Background(), opts, buf)
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", app.Name)
	assert.Equal(t, len(testProgram), app.Size())

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "; Disassembly of game.ch8\n; Size: 12 bytes\n"))

	lines := strings.Split(output, "\n")
	for _, expected := range []string{
		"      CLS",
		"      LD I, L00A",
		"      CALL L008",
		"L006: JP L006",
		"L008: RET",
		"L00A: DW #3C7E                 ; referenced by LD I | unreachable code",
	} {
		assert.True(t, slices.Contains(lines, expected), "missing line: "+expected)
	}
}

func TestPipeline_DisassembleUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.nes")
	assert.NoError(t, os.WriteFile(path, testProgram, 0600))

	p := New(log.NewTestLogger(t))
	app, err := p.Disassemble(context.Background(), options.Disassembler{Input: path}, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.Equal(t, len(testProgram), app.Size())
}

func TestPipeline_DisassembleComments(t *testing.T) {
	p := New(log.NewTestLogger(t))
	buf := &bytes.Buffer{}
	opts := options.Disassembler{
		OffsetComments: true,
		HexComments:    true,
		Verify:         true,
	}

	_, err := p.DisassembleData(context.Background(), testProgram, opts, buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "; $0200 | 00E0\n")
	assert.NotContains(t, buf.String(), "; Disassembly of")
}

func TestPipeline_DisassembleShiftQuirks(t *testing.T) {
	p := New(log.NewTestLogger(t))
	buf := &bytes.Buffer{}
	opts := options.Disassembler{ShiftQuirks: true, Verify: true}

	app, err := p.DisassembleData(context.Background(), []byte{0x83, 0x46, 0x12, 0x02}, opts, buf)
	assert.NoError(t, err)
	assert.True(t, app.ShiftQuirks)
	assert.Contains(t, buf.String(), "      SHR V3, V4\n")
}

func TestPipeline_DisassembleStdin(t *testing.T) {
	p := NewWithLoader(log.NewTestLogger(t), loader.NewWithStdin(bytes.NewReader([]byte{0x00, 0xFD})))
	buf := &bytes.Buffer{}

	app, err := p.Disassemble(context.Background(), options.Disassembler{Input: "-"}, buf)
	assert.NoError(t, err)
	assert.Equal(t, "", app.Name)
	assert.Contains(t, buf.String(), "      EXIT\n")
}

func TestPipeline_DisassembleErrors(t *testing.T) {
	p := New(log.NewTestLogger(t))

	t.Run("missing file", func(t *testing.T) {
		_, err := p.Disassemble(context.Background(), options.Disassembler{Input: "/nonexistent/game.ch8"}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := p.DisassembleData(context.Background(), make([]byte, 0xE01), options.Disassembler{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, disasm.ErrProgramTooLarge)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.DisassembleData(ctx, testProgram, options.Disassembler{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPipeline_Assemble(t *testing.T) {
	source := `; test program
start:  CLS
        IFDEF DEBUG
        LD VF, #01
        ELSE
        LD VF, #00
        ENDIF
        JP start
`

	tests := []struct {
		name     string
		symbols  string
		expected []byte
	}{
		{"without defines", "", []byte{0x00, 0xE0, 0x6F, 0x00, 0x12, 0x00}},
		{"with defines", "DEBUG, SCHIP", []byte{0x00, 0xE0, 0x6F, 0x01, 0x12, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(log.NewTestLogger(t))
			opts := options.Assembler{Symbols: tt.symbols}

			prog, err := p.AssembleReader(context.Background(), strings.NewReader(source), opts)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, prog.Bytes())
		})
	}
}

func TestPipeline_AssembleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.asm")
	assert.NoError(t, os.WriteFile(path, []byte("SHL V1, V2\n"), 0600))

	p := New(log.NewTestLogger(t))
	prog, err := p.Assemble(context.Background(), options.Assembler{Input: path, ShiftQuirks: true})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x2E}, prog.Bytes())
}

func TestPipeline_AssembleStdin(t *testing.T) {
	p := NewWithLoader(log.NewTestLogger(t), loader.NewWithStdin(strings.NewReader("RET\n")))

	prog, err := p.Assemble(context.Background(), options.Assembler{})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xEE}, prog.Bytes())
}

func TestPipeline_AssembleErrors(t *testing.T) {
	p := New(log.NewTestLogger(t))

	t.Run("line error", func(t *testing.T) {
		_, err := p.AssembleReader(context.Background(), strings.NewReader("CLS\nFOO V1\n"), options.Assembler{})
		var lineErr *assembler.LineError
		assert.ErrorAs(t, err, &lineErr)
		assert.Equal(t, 2, lineErr.Line)
	})

	t.Run("undefined label", func(t *testing.T) {
		_, err := p.AssembleReader(context.Background(), strings.NewReader("JP missing\n"), options.Assembler{})
		assert.ErrorIs(t, err, assembler.ErrUndefinedSymbol)
	})

	t.Run("invalid define", func(t *testing.T) {
		_, err := p.AssembleReader(context.Background(), strings.NewReader(""), options.Assembler{Symbols: "1abc"})
		assert.ErrorIs(t, err, assembler.ErrSyntax)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.AssembleReader(ctx, strings.NewReader("CLS\n"), options.Assembler{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPipeline_RoundTrip(t *testing.T) {
	p := New(log.NewTestLogger(t))
	buf := &bytes.Buffer{}

	app, err := p.DisassembleData(context.Background(), testProgram, options.Disassembler{}, buf)
	assert.NoError(t, err)
	assert.True(t, app.Offsets[0].IsType(program.CodeOffset))

	prog, err := p.AssembleReader(context.Background(), buf, options.Assembler{})
	assert.NoError(t, err)
	assert.Equal(t, testProgram, prog.Bytes())
}
