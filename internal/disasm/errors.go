package disasm

import (
	"errors"
	"fmt"
)

// Errors of anomalies found while following the control flow.
var (
	ErrMisalignedAddress = errors.New("misaligned address")
	ErrOutOfBounds       = errors.New("out of program bounds")
	ErrProgramTooLarge   = errors.New("program too large")
)

// Warning describes an anomaly of a control flow path. The path is abandoned
// but the disassembly continues.
type Warning struct {
	Offset uint16 // program offset of the instruction that caused the warning
	Err    error
}

func (w Warning) Error() string {
	return fmt.Sprintf("offset $%03X: %v", w.Offset, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}
