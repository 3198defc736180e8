package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round up", -1.235, -1.24},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundDollar(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Half rounds up", 1124.5, 1125},
		{"Below half rounds down", 1124.09, 1124},
		{"Negative half rounds toward positive", -2.5, -2},
		{"Negative below half", -2.6, -3},
		{"Whole number", 145200, 145200},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundDollar(tt.input)
			if result != tt.expected {
				t.Errorf("RoundDollar(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		expected    float64
	}{
		{"Normal division", 1210000, 4, 302500},
		{"Zero denominator", 1210000, 0, 0},
		{"Zero over zero", 0, 0, 0},
		{"Negative numerator", -100, 4, -25},
		{"Infinite numerator", math.Inf(1), 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeDivide(tt.numerator, tt.denominator)
			if result != tt.expected {
				t.Errorf("SafeDivide(%v, %v) = %v, expected %v", tt.numerator, tt.denominator, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Quarter", 25, 100, 25},
		{"Soft over hard", 215614, 1210000, 17.819338842975206},
		{"Zero total", 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if !WithinTolerance(result, tt.expected, 1e-9) {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	if got := ApplyPercentage(400000, 1.5); !WithinTolerance(got, 6000, 1e-9) {
		t.Errorf("ApplyPercentage(400000, 1.5) = %v, expected 6000", got)
	}
	if got := ApplyPercentage(0, 10); got != 0 {
		t.Errorf("ApplyPercentage(0, 10) = %v, expected 0", got)
	}
}

func TestFinite(t *testing.T) {
	if got := Finite(math.NaN()); got != 0 {
		t.Errorf("Finite(NaN) = %v, expected 0", got)
	}
	if got := Finite(math.Inf(-1)); got != 0 {
		t.Errorf("Finite(-Inf) = %v, expected 0", got)
	}
	if got := Finite(12.5); got != 12.5 {
		t.Errorf("Finite(12.5) = %v, expected 12.5", got)
	}
}
