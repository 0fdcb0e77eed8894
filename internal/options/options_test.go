package options

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAssembler_Defines(t *testing.T) {
	tests := []struct {
		symbols  string
		expected []string
	}{
		{"", nil},
		{"DEBUG", []string{"DEBUG"}},
		{"DEBUG, SCHIP,,", []string{"DEBUG", "SCHIP"}},
	}

	for _, tt := range tests {
		t.Run(tt.symbols, func(t *testing.T) {
			opts := Assembler{Symbols: tt.symbols}
			assert.Equal(t, tt.expected, opts.Defines())
		})
	}
}

func TestAssembler_ReadsStdin(t *testing.T) {
	assert.True(t, Assembler{}.ReadsStdin())
	assert.True(t, Assembler{Input: StdStream}.ReadsStdin())
	assert.False(t, Assembler{Input: "game.asm"}.ReadsStdin())
}
