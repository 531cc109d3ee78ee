// Package number implements Tarzan's fixed-point decimal numbers.
// A Number is an integer value scaled by a power of ten. Arithmetic
// aligns both operands at the lower exponent before operating on the
// raw values, and results are compacted by stripping trailing zero
// digits.
package number

import "fmt"

// Number represents Value × 10^Exponent.
type Number struct {
	Value    int64
	Exponent int
}

// Zero is the result of operations with no defined value, like
// division by zero.
var Zero = Number{}

// String formats the number the way the print statement emits it.
func (n Number) String() string {
	return fmt.Sprintf("%d * 10^%d", n.Value, n.Exponent)
}

func pow10(p int) int64 {
	r := int64(1)
	for ; p > 0; p-- {
		r *= 10
	}
	return r
}

// Align scales the operand with the larger exponent so both share the
// lower one.
func Align(a, b Number) (Number, Number) {
	switch {
	case a.Exponent < b.Exponent:
		b.Value *= pow10(b.Exponent - a.Exponent)
		b.Exponent = a.Exponent
	case a.Exponent > b.Exponent:
		a.Value *= pow10(a.Exponent - b.Exponent)
		a.Exponent = b.Exponent
	}
	return a, b
}

// AddDecimals widens n by d decimal digits.
func AddDecimals(n Number, d int) Number {
	n.Value *= pow10(d)
	n.Exponent -= d
	return n
}

// Add returns a + b.
func Add(a, b Number) Number {
	a, b = Align(a, b)
	a.Value += b.Value
	return a
}

// Sub returns a - b.
func Sub(a, b Number) Number {
	a, b = Align(a, b)
	a.Value -= b.Value
	return a
}

// Mul returns a * b.
func Mul(a, b Number) Number {
	a.Value *= b.Value
	a.Exponent += b.Exponent
	return a
}

// Div returns a / b computed with three guard decimals, plus enough
// extra to cancel a negative exponent in a before the integer division.
// Division by zero yields Zero.
func Div(a, b Number) Number {
	if b.Value == 0 {
		return Zero
	}
	guard := 3
	if a.Exponent < 0 {
		guard -= a.Exponent
	}
	a = AddDecimals(a, guard)
	return Number{Value: a.Value / b.Value, Exponent: a.Exponent - b.Exponent}
}

// Compact strips trailing zero digits from the value, compensating
// through the exponent.
func Compact(n Number) Number {
	for n.Value != 0 && n.Value%10 == 0 {
		n.Value /= 10
		n.Exponent++
	}
	return n
}
