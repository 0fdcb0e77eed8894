// Package detector handles program file type detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8tools/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles system detection from file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system of a program file from its file name
// extension. Programs read from stdin are assumed to be CHIP-8 programs.
func (d *Detector) Detect(filename string) arch.System {
	if filename == "" || filename == options.StdStream {
		return arch.CHIP8System
	}

	system := detectFromFile(filename)
	d.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// detectFromFile determines the system type based on file extension.
func detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".sc8", ".bin", ".rom":
		return arch.CHIP8System
	case ".nes":
		return arch.NES
	case ".gb", ".gbc":
		return arch.GameBoy
	default:
		return arch.Generic
	}
}
