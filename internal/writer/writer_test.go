package writer

import (
	"bytes"
	"testing"

	"github.com/retroenv/chip8tools/internal/program"
	"github.com/retroenv/retrogolib/assert"
)

func testProgram() *program.Program {
	app := program.New(4)
	app.Name = "test.ch8"
	app.Checksum = 0x1234abcd
	app.Offsets = append(app.Offsets,
		program.Offset{Address: 0x200, Data: []byte{0x22, 0x06}, Type: program.CodeOffset, Code: "CALL L006"},
		program.Offset{Address: 0x202, Data: []byte{0x12, 0x02}, Type: program.CodeOffset | program.JumpDestination,
			Label: "L002", Code: "JP L002"},
		program.Offset{Address: 0x204, Data: []byte{0xF0, 0x90}, Type: program.DataOffset, Code: "DW #F090"},
		program.Offset{Address: 0x206, Data: []byte{0x00, 0xEE}, Type: program.CodeOffset | program.CallDestination,
			Label: "L006", Code: "RET"},
	)
	return app
}

func TestWriter_Write(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(testProgram(), buf, Options{})
	assert.NoError(t, w.Write())

	expected := `; Disassembly of test.ch8
; Size: 8 bytes
; CRC32 checksum: 1234abcd

      CALL L006

L002: JP L002

      DW #F090

L006: RET
`
	assert.Equal(t, expected, buf.String())
}

func TestWriter_OffsetTypeComments(t *testing.T) {
	tests := []struct {
		name     string
		typ      program.OffsetType
		comment  string
		expected string
	}{
		{"data", program.DataOffset, "", "L004: DW #F090\n"},
		{"referenced", program.DataOffset | program.DataReference, "",
			"L004: DW #F090                 ; referenced by LD I\n"},
		{"code as data", program.DataOffset | program.CodeAsData, "",
			"L004: DW #F090                 ; unreachable code\n"},
		{"all", program.DataOffset | program.DataReference | program.CodeAsData, "sprite",
			"L004: DW #F090                 ; referenced by LD I | unreachable code | sprite\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := program.New(1)
			app.Offsets = append(app.Offsets, program.Offset{
				Address: 0x204,
				Data:    []byte{0xF0, 0x90},
				Type:    tt.typ,
				Label:   "L004",
				Code:    "DW #F090",
				Comment: tt.comment,
			})

			buf := &bytes.Buffer{}
			assert.NoError(t, New(app, buf, Options{}).ProcessOffsets())
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriter_Comments(t *testing.T) {
	app := testProgram()
	app.Name = ""
	app.ShiftQuirks = true
	app.Offsets = app.Offsets[:1]
	app.Offsets[0].Comment = "entry"

	buf := &bytes.Buffer{}
	w := New(app, buf, Options{OffsetComments: true, HexComments: true})
	assert.NoError(t, w.Write())

	expected := `; Size: 2 bytes
; CRC32 checksum: 1234abcd
; Assemble with shift quirks enabled

      CALL L006                ; $0200 | 2206 | entry
`
	assert.Equal(t, expected, buf.String())
}
