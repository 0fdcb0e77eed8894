package expression

// precedence returns the binding strength of an operator. Parentheses have
// the lowest precedence so that they are never applied.
func precedence(op byte) int {
	switch op {
	case '|':
		return 1
	case '^':
		return 2
	case '&':
		return 3
	case opShiftLeft, opShiftRight:
		return 4
	case '+', '-':
		return 5
	case '*', '/', '%':
		return 6
	case '~', opUnaryMinus:
		return 1000
	default:
		return -1
	}
}

func isUnary(op byte) bool {
	return op == '~' || op == opUnaryMinus
}

func operatorName(op byte) string {
	switch op {
	case opUnaryMinus:
		return "-"
	case opShiftLeft:
		return "<<"
	case opShiftRight:
		return ">>"
	default:
		return string(op)
	}
}

// binaryOperator parses the binary operator at the start of s and returns its
// internal code and the number of characters it occupies. Shifts can be
// written as >> and << or with a single character.
func binaryOperator(s string) (byte, int, bool) {
	c := s[0]
	switch c {
	case '<', '>':
		if len(s) > 1 && s[1] == c {
			return c, 2, true
		}
		return c, 1, true
	case '|', '^', '&', '+', '-', '*', '/', '%':
		return c, 1, true
	default:
		return 0, 0, false
	}
}

func digitValue(c byte, base uint16) (uint16, bool) {
	switch base {
	case 2:
		switch c {
		case '0', '.':
			return 0, true
		case '1':
			return 1, true
		}
	case 10:
		if isDigit(c) {
			return uint16(c - '0'), true
		}
	case 16:
		switch {
		case isDigit(c):
			return uint16(c - '0'), true
		case 'a' <= c && c <= 'f':
			return uint16(c-'a') + 10, true
		case 'A' <= c && c <= 'F':
			return uint16(c-'A') + 10, true
		}
	}
	return 0, false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

func isIdentifierStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentifierBody(c byte) bool {
	return isIdentifierStart(c) || isDigit(c)
}

// IdentifierLength returns the length of the identifier at the start of s,
// or 0 if s does not start with an identifier.
func IdentifierLength(s string) int {
	if s == "" || !isIdentifierStart(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && isIdentifierBody(s[n]) {
		n++
	}
	return n
}

// IsIdentifier returns whether s is a valid symbol name.
func IsIdentifier(s string) bool {
	return s != "" && IdentifierLength(s) == len(s)
}
