package assembler

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8tools/internal/expression"
)

// Errors returned by the assembler. Expression evaluation errors are passed
// through, so ErrSyntax and ErrUndefinedSymbol match the errors of the
// expression package.
var (
	ErrSyntax                = expression.ErrSyntax
	ErrUndefinedSymbol       = expression.ErrUndefinedSymbol
	ErrArity                 = errors.New("wrong number of operands")
	ErrDuplicateSymbol       = errors.New("duplicate label or variable")
	ErrUnbalancedConditional = errors.New("unbalanced conditional")
	ErrProgramTooLarge       = errors.New("program too large")
)

// LineError wraps an error with the source line that caused it.
type LineError struct {
	Line int
	Err  error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the wrapped error.
func (e *LineError) Unwrap() error {
	return e.Err
}
