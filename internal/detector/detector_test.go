package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		filename   string
		wantSystem arch.System
	}{
		{".ch8 extension", "pong.ch8", arch.CHIP8System},
		{".CH8 extension (uppercase)", "PONG.CH8", arch.CHIP8System},
		{".c8 extension", "dir/tetris.c8", arch.CHIP8System},
		{".sc8 extension", "ant.sc8", arch.CHIP8System},
		{".bin extension", "game.bin", arch.CHIP8System},
		{".rom extension", "game.rom", arch.CHIP8System},
		{".nes extension", "super_mario.nes", arch.NES},
		{".gb extension", "tetris.gb", arch.GameBoy},
		{"no extension", "game", arch.Generic},
		{"stdin", "-", arch.CHIP8System},
		{"empty", "", arch.CHIP8System},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantSystem, d.Detect(tt.filename))
		})
	}
}
