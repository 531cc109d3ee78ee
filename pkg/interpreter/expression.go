package interpreter

import (
	"fmt"

	"github.com/tarzanLang/tarzan/pkg/number"
)

type operator byte

const (
	opNone operator = iota
	opPlus
	opMinus
	opMultiply
	opDivide
)

type comparator byte

const (
	cmpNone comparator = iota
	cmpEqual
	cmpLess
	cmpGreater
	cmpLessOrEqual
	cmpGreaterOrEqual
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// parseName consumes an identifier ([a-z_]+) after optional spaces.
func (e *Engine) parseName() string {
	e.skipSpaces()
	start := e.pos
	for !e.atEOF() {
		c := e.src[e.pos]
		if (c < 'a' || c > 'z') && c != '_' {
			break
		}
		e.pos++
	}
	return string(e.src[start:e.pos])
}

// parseNumber consumes a numeric literal. Each digit after the single
// dot lowers the exponent by one.
func (e *Engine) parseNumber() number.Number {
	var n number.Number
	negative := e.peekToken("-")
	if negative {
		e.pos++
	}
	decimal := false
	for !e.atEOF() {
		c := e.src[e.pos]
		if c == '.' {
			decimal = true
		} else if isDigit(c) {
			n.Value = n.Value*10 + int64(c-'0')
			if decimal {
				n.Exponent--
			}
		} else {
			break
		}
		e.pos++
	}
	if negative {
		n.Value = -n.Value
	}
	return n
}

// variableValue parses an identifier and substitutes its current value.
func (e *Engine) variableValue() (number.Number, error) {
	name := e.parseName()
	i := e.lookupVariable(name)
	if i < 0 {
		return number.Zero, fmt.Errorf("variable %s not found", name)
	}
	return e.vars[i].Value, nil
}

// applyOperator folds two window slots. Operands are aligned first; the
// alignment before division is what gives chained divisions their three
// guard decimals against the shared exponent.
func applyOperator(op operator, a, b number.Number) number.Number {
	a, b = number.Align(a, b)
	switch op {
	case opPlus:
		return number.Add(a, b)
	case opMinus:
		return number.Sub(a, b)
	case opMultiply:
		return number.Mul(a, b)
	case opDivide:
		return number.Div(a, b)
	}
	return a
}

// evaluateExpression reduces a chain of + - * / terms using a rolling
// window of up to three numbers and two operators. A pending
// low-priority operator waits in op1 until the high-priority run to its
// right has been folded into the second slot, which is all the lookahead
// two precedence tiers need. The scan ends at ")", ";", "<", ">", "="
// or end of buffer.
func (e *Engine) evaluateExpression() (number.Number, error) {
	var n1, n2, n3 number.Number
	op1, op2 := opNone, opNone
	count := 0
	expectOperand := true

	push := func(n number.Number) {
		switch count {
		case 0:
			n1 = n
		case 1:
			n2 = n
		default:
			n3 = n
		}
		count++
		expectOperand = false
	}
	setOperator := func(op operator) {
		if op1 == opNone {
			op1 = op
		} else {
			op2 = op
		}
		e.pos++
		expectOperand = true
	}

	for !e.peekToken(")") && !e.peekToken(";") && !e.peekToken("<") &&
		!e.peekToken(">") && !e.peekToken("=") && !e.atEOF() {
		e.skipSpaces()
		if e.atEOF() {
			break
		}
		c := e.src[e.pos]
		switch {
		case c == '-' && expectOperand && e.pos+1 < len(e.src) && isDigit(e.src[e.pos+1]):
			push(e.parseNumber())
		case c == '+':
			setOperator(opPlus)
		case c == '-':
			setOperator(opMinus)
		case c == '*':
			setOperator(opMultiply)
		case c == '/':
			setOperator(opDivide)
		case isDigit(c):
			push(e.parseNumber())
		case c >= 'a' && c <= 'z':
			v, err := e.variableValue()
			if err != nil {
				return number.Zero, err
			}
			push(v)
		case c == '(':
			e.pos++
			sub, err := e.evaluateExpression()
			if err != nil {
				return number.Zero, err
			}
			e.pos++ // closing parenthesis
			push(sub)
		case c == ')' || c == ';' || c == '<' || c == '>' || c == '=':
			// terminator reached after spaces; the loop condition ends the scan
		default:
			e.pos++ // unknown byte, skipped silently
		}

		// Fold once the window is full, to make room for the next number.
		if count == 3 {
			if op2 == opMultiply || op2 == opDivide {
				n2 = applyOperator(op2, n2, n3)
			} else {
				n1 = applyOperator(op1, n1, n2)
				n2 = n3
				op1 = op2
			}
			op2 = opNone
			count = 2
		}
	}

	var result number.Number
	switch count {
	case 2:
		if op1 == opNone {
			a, _ := number.Align(n1, n2)
			result = number.Number{Exponent: a.Exponent}
		} else {
			result = applyOperator(op1, n1, n2)
		}
	case 1:
		result = n1
	}
	return number.Compact(result), nil
}

// evaluateCondition compares two expressions. The left expression stops
// at the comparator's first byte, which doubles as an expression
// terminator. An unrecognised comparator yields false.
func (e *Engine) evaluateCondition() (bool, error) {
	left, err := e.evaluateExpression()
	if err != nil {
		return false, err
	}
	e.skipSpaces()
	cmp := cmpNone
	switch {
	case e.peekToken("=="):
		cmp = cmpEqual
		e.pos += 2
	case e.peekToken("<="):
		cmp = cmpLessOrEqual
		e.pos += 2
	case e.peekToken("<"):
		cmp = cmpLess
		e.pos++
	case e.peekToken(">="):
		cmp = cmpGreaterOrEqual
		e.pos += 2
	case e.peekToken(">"):
		cmp = cmpGreater
		e.pos++
	}
	e.skipSpaces()
	right, err := e.evaluateExpression()
	if err != nil {
		return false, err
	}
	left, right = number.Align(left, right)
	switch cmp {
	case cmpEqual:
		return left.Value == right.Value, nil
	case cmpLess:
		return left.Value < right.Value, nil
	case cmpGreater:
		return left.Value > right.Value, nil
	case cmpLessOrEqual:
		return left.Value <= right.Value, nil
	case cmpGreaterOrEqual:
		return left.Value >= right.Value, nil
	}
	return false, nil
}
