package core

import "testing"

func TestNeighbors8(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		w, h     int
		expected int
	}{
		{"interior", Point{5, 5}, 10, 10, 8},
		{"top-left corner", Point{0, 0}, 10, 10, 3},
		{"bottom-right corner", Point{9, 9}, 10, 10, 3},
		{"top edge", Point{4, 0}, 10, 10, 5},
		{"single cell grid", Point{0, 0}, 1, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.p.Neighbors8(tc.w, tc.h)
			if len(got) != tc.expected {
				t.Fatalf("Neighbors8() returned %d cells, expected %d", len(got), tc.expected)
			}
			for _, n := range got {
				if n == tc.p {
					t.Errorf("Neighbors8() includes the point itself")
				}
				if !n.In(tc.w, tc.h) {
					t.Errorf("Neighbors8() returned out-of-bounds %v", n)
				}
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v, expected 1", got)
	}
	if got := ClampF(-0.1, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.1, 0, 1) = %v, expected 0", got)
	}
}

func TestTicksFor(t *testing.T) {
	tests := []struct {
		ms, rate, expected int
	}{
		{100, 60, 6},
		{500, 60, 30},
		{1, 60, 1},
		{0, 60, 1},
		{100, 0, 6},
	}
	for _, tc := range tests {
		if got := TicksFor(tc.ms, tc.rate); got != tc.expected {
			t.Errorf("TicksFor(%d, %d) = %d, expected %d", tc.ms, tc.rate, got, tc.expected)
		}
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle() should flip between light and dark")
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Error("ParseTheme(sepia) should fail")
	}
}

func TestOutcomeCloneDoesNotShareCustomData(t *testing.T) {
	o := Outcome{Score: 1, CustomData: map[string]any{"moves": 3}}
	c := o.Clone()
	c.CustomData["moves"] = 9
	if o.CustomData["moves"] != 3 {
		t.Error("Clone() shares CustomData with the original")
	}
}
