// Package calc evaluates basic arithmetic expressions for the calculate
// tool. It is a small recursive-descent parser over a restricted grammar
// (numbers, + - * /, parentheses, unary sign) rather than a general
// expression evaluator gated by a character allow-list.
package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// allowedChars mirrors the calculator's documented input contract: any
// expression containing a character outside this set is rejected before
// parsing, with an explanatory message rather than an error.
const allowedChars = "0123456789+-*/.() "

// Allowed reports whether every character of expr is in the allowed set.
func Allowed(expr string) bool {
	for _, r := range expr {
		if !strings.ContainsRune(allowedChars, r) {
			return false
		}
	}
	return true
}

// Eval parses and evaluates an arithmetic expression. Multiplication and
// division bind tighter than addition and subtraction; parentheses group;
// a leading + or - is a unary sign. Division by zero and malformed input
// return errors.
func Eval(expr string) (float64, error) {
	p := &parser{input: expr}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

// FormatResult renders an evaluation result the way the calculate tool
// reports it: integral values without a decimal point, everything else
// with the shortest exact representation.
func FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

// parseExpr handles + and -.
func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '+' && c != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if c == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

// parseTerm handles * and /.
func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '*' && c != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if c == '*' {
			left *= right
		} else {
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		}
	}
}

// parseFactor handles unary sign and primaries.
func (p *parser) parseFactor() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	switch c {
	case '+':
		p.pos++
		return p.parseFactor()
	case '-':
		p.pos++
		v, err := p.parseFactor()
		return -v, err
	case '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		c, ok := p.peek()
		if !ok || c != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() (float64, error) {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected a number at position %d", start)
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return v, nil
}
