package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 10, 2)
	if r.Right() != 13 {
		t.Errorf("Right() = %d, expected 13", r.Right())
	}
	if r.Bottom() != 6 {
		t.Errorf("Bottom() = %d, expected 6", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
		{1, 1, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, got, tt.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected float64
	}{
		{"inside", 0.4, 0.4},
		{"below", -1, 0},
		{"above", 3, 1},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampF(tt.val, 0, 1); got != tt.expected {
				t.Errorf("ClampF(%v, 0, 1) = %v, expected %v", tt.val, got, tt.expected)
			}
		})
	}
}

func TestAbsFAndMax(t *testing.T) {
	if AbsF(-2.5) != 2.5 || AbsF(1.5) != 1.5 {
		t.Errorf("AbsF() gave wrong magnitude")
	}
	if Max(2, 7) != 7 || Max(-1, -4) != -1 {
		t.Errorf("Max() did not return the larger value")
	}
}
