package calc

import (
	"strings"
	"testing"
)

func TestAllowed(t *testing.T) {
	allowed := []string{"2 + 2", "15 + 25 * 2", "(1 + 2) * 3.5", "  ", ""}
	for _, expr := range allowed {
		if !Allowed(expr) {
			t.Errorf("Allowed(%q) = false, want true", expr)
		}
	}

	rejected := []string{"import os", "2 + x", "os.system('ls')", "2**8", "1 % 3"}
	for _, expr := range rejected {
		if Allowed(expr) {
			t.Errorf("Allowed(%q) = true, want false", expr)
		}
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2 + 2", 4},
		{"15 + 25 * 2", 65},
		{"(15 + 25) * 2", 80},
		{"10 / 4", 2.5},
		{"-3 + 5", 2},
		{"-(2 + 3)", -5},
		{"+7", 7},
		{"2.5 * 2", 5},
		{"1 + 2 - 3 + 4", 4},
		{"100 / 10 / 2", 5},
		{"((2))", 2},
	}
	for _, tt := range tests {
		got, err := Eval(tt.expr)
		if err != nil {
			t.Errorf("Eval(%q) returned error: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr string
	}{
		{"1 / 0", "division by zero"},
		{"(1 + 2", "missing closing parenthesis"},
		{"1 +", "unexpected end of expression"},
		{"1 2", "unexpected character"},
		{"", "unexpected end of expression"},
		{"1..2", "invalid number"},
		{".", "invalid number"},
	}
	for _, tt := range tests {
		_, err := Eval(tt.expr)
		if err == nil {
			t.Errorf("Eval(%q) succeeded, want error containing %q", tt.expr, tt.wantErr)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("Eval(%q) error = %q, want it to contain %q", tt.expr, err, tt.wantErr)
		}
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{4, "4"},
		{65, "65"},
		{2.5, "2.5"},
		{-5, "-5"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatResult(tt.v); got != tt.want {
			t.Errorf("FormatResult(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
