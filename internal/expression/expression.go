// Package expression implements the evaluator for assembler operand
// expressions.
//
// Expressions consist of number literals, symbol names, parentheses and the
// operators | ^ & >> << + - * / % as well as the unary operators ~ and -.
// Number literals are decimal, '#' prefixed hexadecimal or '$' prefixed
// binary, where a '.' can be used in place of a 0 digit to draw sprites:
//
//	$..1111..
//
// All arithmetic is done on unsigned 16-bit values and wraps around.
package expression

import (
	"errors"
	"fmt"
)

// Errors returned by the evaluator.
var (
	ErrSyntax                = errors.New("syntax error")
	ErrUndefinedSymbol       = errors.New("undefined symbol")
	ErrOperatorStackOverflow = errors.New("operator stack overflow")
	ErrOperandStackOverflow  = errors.New("operand stack overflow")
	ErrDivisionByZero        = errors.New("division by zero")
)

// stackSize is the capacity of the operator and the operand stack.
const stackSize = 100

// Internal operator codes for tokens that do not map to a single character.
const (
	opUnaryMinus = '_'
	opShiftLeft  = '<'
	opShiftRight = '>'
	opParen      = '('
)

// Resolver looks up the value of a symbol.
type Resolver interface {
	Get(name string) (uint16, bool)
}

type evaluator struct {
	expr    string
	pos     int
	symbols Resolver

	operators []byte
	operands  []uint16
}

// Evaluate evaluates the expression. Symbols are resolved immediately, so
// every symbol that the expression references has to be defined already.
func Evaluate(expr string, symbols Resolver) (uint16, error) {
	e := &evaluator{
		expr:      expr,
		symbols:   symbols,
		operators: make([]byte, 0, stackSize),
		operands:  make([]uint16, 0, stackSize),
	}
	return e.evaluate()
}

func (e *evaluator) evaluate() (uint16, error) {
	expectOperand := true

	for e.skipSpace(); e.pos < len(e.expr); e.skipSpace() {
		var err error
		expectOperand, err = e.readToken(expectOperand)
		if err != nil {
			return 0, err
		}

		if len(e.operators) >= stackSize {
			return 0, ErrOperatorStackOverflow
		}
		if len(e.operands) >= stackSize {
			return 0, ErrOperandStackOverflow
		}
	}

	for len(e.operators) > 0 {
		op := e.popOperator()
		if op == opParen {
			return 0, fmt.Errorf("%w: unmatched '('", ErrSyntax)
		}
		if err := e.apply(op); err != nil {
			return 0, err
		}
	}

	switch len(e.operands) {
	case 0:
		return 0, fmt.Errorf("%w: empty expression", ErrSyntax)
	case 1:
		return e.operands[0], nil
	default:
		return 0, fmt.Errorf("%w: expected operator", ErrSyntax)
	}
}

// readToken processes the next token and returns whether an operand is
// expected next.
func (e *evaluator) readToken(expectOperand bool) (bool, error) {
	c := e.expr[e.pos]

	switch {
	case expectOperand && c == '-':
		e.pos++
		return true, e.pushOperator(opUnaryMinus)

	case c == '~':
		if !expectOperand {
			return false, fmt.Errorf("%w: unexpected '~'", ErrSyntax)
		}
		e.pos++
		return true, e.pushOperator('~')

	case c == '#':
		e.pos++
		return false, e.readNumber(16, "hexadecimal")

	case c == '$':
		e.pos++
		return false, e.readNumber(2, "binary")

	case isDigit(c):
		return false, e.readNumber(10, "decimal")

	case isIdentifierStart(c):
		return false, e.readSymbol()

	case c == '(':
		e.pos++
		e.operators = append(e.operators, opParen)
		return true, nil

	case c == ')':
		e.pos++
		return false, e.closeParen()

	default:
		op, width, ok := binaryOperator(e.expr[e.pos:])
		if !ok {
			return false, fmt.Errorf("%w: unknown operator '%c'", ErrSyntax, c)
		}
		e.pos += width
		return true, e.pushOperator(op)
	}
}

// pushOperator applies all stacked operators that bind tighter than op and
// pushes op. Unary operators are right associative, binary operators are
// left associative.
func (e *evaluator) pushOperator(op byte) error {
	p := precedence(op)
	unary := isUnary(op)

	for len(e.operators) > 0 {
		top := precedence(e.operators[len(e.operators)-1])
		if top < p || (unary && top == p) {
			break
		}
		if err := e.apply(e.popOperator()); err != nil {
			return err
		}
	}

	e.operators = append(e.operators, op)
	return nil
}

func (e *evaluator) closeParen() error {
	for len(e.operators) > 0 {
		op := e.popOperator()
		if op == opParen {
			return nil
		}
		if err := e.apply(op); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: found ')' with no matching '('", ErrSyntax)
}

func (e *evaluator) popOperator() byte {
	op := e.operators[len(e.operators)-1]
	e.operators = e.operators[:len(e.operators)-1]
	return op
}

func (e *evaluator) popOperand() uint16 {
	value := e.operands[len(e.operands)-1]
	e.operands = e.operands[:len(e.operands)-1]
	return value
}

func (e *evaluator) apply(op byte) error {
	if isUnary(op) {
		if len(e.operands) < 1 {
			return fmt.Errorf("%w: expected argument to operator '%s'", ErrSyntax, operatorName(op))
		}
		value := e.popOperand()
		if op == '~' {
			e.operands = append(e.operands, ^value)
		} else {
			e.operands = append(e.operands, -value)
		}
		return nil
	}

	if len(e.operands) < 2 {
		return fmt.Errorf("%w: expected argument to operator '%s'", ErrSyntax, operatorName(op))
	}
	b := e.popOperand()
	a := e.popOperand()
	result, err := calculate(op, a, b)
	if err != nil {
		return err
	}
	e.operands = append(e.operands, result)
	return nil
}

func calculate(op byte, a, b uint16) (uint16, error) {
	switch op {
	case '|':
		return a | b, nil
	case '^':
		return a ^ b, nil
	case '&':
		return a & b, nil
	case opShiftLeft:
		return a << b, nil
	case opShiftRight:
		return a >> b, nil
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/', '%':
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		if op == '/' {
			return a / b, nil
		}
		return a % b, nil
	default:
		return 0, fmt.Errorf("%w: unknown operator '%c'", ErrSyntax, op)
	}
}

func (e *evaluator) readNumber(base uint16, kind string) error {
	start := e.pos
	var value uint16

	for ; e.pos < len(e.expr); e.pos++ {
		digit, ok := digitValue(e.expr[e.pos], base)
		if !ok {
			break
		}
		value = value*base + digit
	}

	if e.pos == start {
		return fmt.Errorf("%w: expected %s number", ErrSyntax, kind)
	}
	e.operands = append(e.operands, value)
	return nil
}

func (e *evaluator) readSymbol() error {
	start := e.pos
	for e.pos < len(e.expr) && isIdentifierBody(e.expr[e.pos]) {
		e.pos++
	}
	name := e.expr[start:e.pos]

	if e.symbols == nil {
		return fmt.Errorf("%w: '%s'", ErrUndefinedSymbol, name)
	}
	value, ok := e.symbols.Get(name)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUndefinedSymbol, name)
	}
	e.operands = append(e.operands, value)
	return nil
}

func (e *evaluator) skipSpace() {
	for e.pos < len(e.expr) && isSpace(e.expr[e.pos]) {
		e.pos++
	}
}
