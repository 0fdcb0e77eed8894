// Package verification verifies that the generated output recreates the input.
package verification

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/chip8tools/internal/assembler"
	"github.com/retroenv/retrogolib/log"
)

// VerifyOutput reassembles the generated source and verifies that it
// recreates the exact input program.
func VerifyOutput(logger *log.Logger, source io.Reader, input []byte, shiftQuirks bool) error {
	asm := assembler.New(logger, assembler.Options{ShiftQuirks: shiftQuirks})

	scanner := bufio.NewScanner(source)
	for scanner.Scan() {
		if err := asm.ProcessLine(scanner.Text()); err != nil {
			return fmt.Errorf("reassembling output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading output: %w", err)
	}

	prog, err := asm.Emit()
	if err != nil {
		return fmt.Errorf("reassembling output: %w", err)
	}

	if err := checkBufferEqual(logger, input, prog.Bytes()); err != nil {
		return fmt.Errorf("program mismatch: %w", err)
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < 10 {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
