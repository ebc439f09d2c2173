package core

import (
	"math"
	"testing"
)

func TestRectsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RectsOverlap(tc.a, tc.b); got != tc.expected {
				t.Errorf("RectsOverlap() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectDisjointAxes(t *testing.T) {
	brick := NewRect(100, 100, 70, 20)

	tests := []struct {
		name       string
		ball       Rect
		vertical   bool
		horizontal bool
	}{
		{"above touching", NewRect(120, 92, 8, 8), true, false},
		{"below", NewRect(120, 125, 8, 8), true, false},
		{"left touching", NewRect(92, 105, 8, 8), false, true},
		{"right", NewRect(175, 105, 8, 8), false, true},
		{"inside", NewRect(120, 105, 8, 8), false, false},
		{"diagonal outside", NewRect(80, 80, 8, 8), true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ball.AboveOrBelow(brick); got != tc.vertical {
				t.Errorf("AboveOrBelow() = %v, expected %v", got, tc.vertical)
			}
			if got := tc.ball.LeftOrRight(brick); got != tc.horizontal {
				t.Errorf("LeftOrRight() = %v, expected %v", got, tc.horizontal)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	v := Vec{X: 3, Y: -4}

	rx := Reflect(v, AxisX)
	if rx.X != -3 || rx.Y != -4 {
		t.Errorf("Reflect(AxisX) = %+v, expected {-3 -4}", rx)
	}

	ry := Reflect(v, AxisY)
	if ry.X != 3 || ry.Y != 4 {
		t.Errorf("Reflect(AxisY) = %+v, expected {3 4}", ry)
	}

	// Reflection only flips a sign, so the magnitude is unchanged
	if math.Abs(rx.Len()-v.Len()) > 1e-12 || math.Abs(ry.Len()-v.Len()) > 1e-12 {
		t.Errorf("Reflect changed magnitude: %f -> %f / %f", v.Len(), rx.Len(), ry.Len())
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %f, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %f, expected 25", r.Bottom())
	}
	if r.CenterX() != 15 {
		t.Errorf("CenterX() = %f, expected 15", r.CenterX())
	}

	moved := r.Translate(Vec{X: 1, Y: -2})
	if moved.X != 6 || moved.Y != 8 || moved.W != 20 || moved.H != 15 {
		t.Errorf("Translate() = %+v", moved)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
