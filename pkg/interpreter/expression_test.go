package interpreter

import "testing"

// printOne runs "print <expr>;" and returns the emitted line without
// the trailing newline.
func printOne(t *testing.T, expr string) string {
	t.Helper()
	_, out := runTarzan(t, "print "+expr+";\n")
	if len(out) == 0 || out[len(out)-1] != '\n' {
		t.Fatalf("print %s produced %q", expr, out)
	}
	return out[:len(out)-1]
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2 + 3 * 4", "14 * 10^0"},
		{"2 * 3 + 4", "1 * 10^1"},
		{"10 - 4 / 2", "8 * 10^0"},
		{"8 / 4 - 1", "1 * 10^0"},
		{"1 + 2 + 3", "6 * 10^0"},
		{"2 * 3 * 4", "24 * 10^0"},
		{"7 - 2 - 1", "4 * 10^0"},
		{"1 + 2 * 3 * 4 + 5", "3 * 10^1"},
		// A high-priority run folds from the right: the second operator
		// of the window always wins while it is * or /.
		{"100 / 10 / 2", "2 * 10^1"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := printOne(t, tt.expr); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParentheses(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"(2 + 3) * 4", "2 * 10^1"},
		{"2 * (3 + 4)", "14 * 10^0"},
		{"((1 + 1))", "2 * 10^0"},
		{"(10 - 4) / (1 + 2)", "2 * 10^0"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := printOne(t, tt.expr); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"0", "0 * 10^0"},
		{"7", "7 * 10^0"},
		{"-5", "-5 * 10^0"},
		// Results are compacted: no trailing zero digits in the value.
		{"10", "1 * 10^1"},
		{"1.5", "15 * 10^-1"},
		{"1.5 + 2.25", "375 * 10^-2"},
		{"0.5 * 0.5", "25 * 10^-2"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := printOne(t, tt.expr); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestNegativeOperands(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"-5 + 10", "5 * 10^0"},
		{"3 * -2", "-6 * 10^0"},
		{"3 - -2", "5 * 10^0"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := printOne(t, tt.expr); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

// An unrecognised byte inside an expression is skipped without a
// diagnostic; only the top-level dispatcher reports unknown tokens.
func TestUnknownByteInExpressionSkipped(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2 @ + 3", "5 * 10^0"},
		{"2 + # 3", "5 * 10^0"},
		{"_ 4", "4 * 10^0"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := printOne(t, tt.expr); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestVariablesInExpressions(t *testing.T) {
	_, out := runTarzan(t, `num a = 2;
num b = 3;
num c = 4;
print a + b * c - 1;
`)
	if want := lines("13 * 10^0"); out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

// The evaluator window holds at most three numbers; longer chains fold
// as they go.
func TestLongChains(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2 + 3 + 4 + 5", "15 * 10^0"},
		{"1 * 2 * 3 * 4 * 5", "12 * 10^1"},
		{"100 - 10 - 10 - 10", "7 * 10^1"},
		{"2 + 2 * 2 + 2 * 2 + 2", "12 * 10^0"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := printOne(t, tt.expr); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestChainedDivisionPrecision(t *testing.T) {
	// Each division introduces three guard decimals; chains stay lossy
	// in the same way.
	if got := printOne(t, "1 / 3"); got != "333 * 10^-3" {
		t.Errorf("1 / 3 = %q, want %q", got, "333 * 10^-3")
	}
	// The window folds 3 * 3 first, so this is 1 / 9, not (1 / 3) * 3.
	if got := printOne(t, "1 / 3 * 3"); got != "111 * 10^-3" {
		t.Errorf("1 / 3 * 3 = %q, want %q", got, "111 * 10^-3")
	}
}
