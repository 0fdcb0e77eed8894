package assembler

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8tools/internal/expression"
)

// maxOperands is the maximum number of operands of a statement.
const maxOperands = 3

// statement is a parsed source line.
type statement struct {
	labels     []string
	mnemonic   string
	assignment bool
	operands   []string
}

// parseLine splits a source line into its labels, the mnemonic and the
// operands. A line without mnemonic returns a statement with an empty
// mnemonic, its labels are still returned.
func parseLine(line string) (statement, error) {
	var stmt statement
	rest := skipSpace(line)

	for {
		n := expression.IdentifierLength(rest)
		if n == 0 {
			break
		}
		ident := rest[:n]
		rest = rest[n:]

		if !strings.HasPrefix(rest, ":") {
			stmt.mnemonic = ident
			break
		}
		stmt.labels = append(stmt.labels, ident)
		rest = skipSpace(rest[1:])
	}

	// any text that does not start with an identifier is ignored
	if stmt.mnemonic == "" {
		return stmt, nil
	}

	rest = skipSpace(rest)
	if strings.HasPrefix(rest, "=") {
		stmt.assignment = true
		rest = rest[1:]
	}

	operands, err := parseOperands(rest)
	if err != nil {
		return stmt, err
	}
	stmt.operands = operands
	return stmt, nil
}

// parseOperands splits the comma separated operands that run until the end
// of the line or the start of a comment.
func parseOperands(s string) ([]string, error) {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	if len(fields) > maxOperands {
		return nil, fmt.Errorf("%w: too many operands", ErrArity)
	}

	operands := make([]string, len(fields))
	for i, field := range fields {
		operand := strings.TrimSpace(field)
		if operand == "" {
			return nil, fmt.Errorf("%w: empty operand", ErrSyntax)
		}
		operands[i] = operand
	}
	return operands, nil
}

func skipSpace(s string) string {
	return strings.TrimLeft(s, " \t\r\n\v\f")
}
