package mathutil

import "testing"

func TestFloorDivMod(t *testing.T) {
	tests := []struct{ a, b, div, mod int }{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{-8, 4, -2, 0},
		{-64, 8, -8, 0},
		{5, -3, -2, -1},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.a, tt.b); got != tt.div {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.div)
		}
		if got := FloorMod(tt.a, tt.b); got != tt.mod {
			t.Errorf("FloorMod(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.mod)
		}
	}
}

func TestClampedMap(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{-100, 1.5},
		{-64, 1.5},
		{128, 0},
		{320, -1.5},
		{400, -1.5},
	}
	for _, tt := range tests {
		if got := ClampedMap(tt.v, -64, 320, 1.5, -1.5); got != tt.want {
			t.Errorf("ClampedMap(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestLerp3Corners(t *testing.T) {
	vals := [8]float64{1, 2, 3, 4, 5, 6, 7, 8}
	got := Lerp3(1, 1, 1, vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], vals[7])
	if got != 8 {
		t.Errorf("Lerp3 at (1,1,1) = %v, want 8", got)
	}
	got = Lerp3(0, 0, 0, vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], vals[7])
	if got != 1 {
		t.Errorf("Lerp3 at (0,0,0) = %v, want 1", got)
	}
}

func TestPackColumnRoundTrip(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {-1, 1}, {1875066, -1875066}, {-30000000, 29999999}} {
		x, z := UnpackColumn(PackColumn(c[0], c[1]))
		if x != c[0] || z != c[1] {
			t.Errorf("UnpackColumn(PackColumn(%d, %d)) = (%d, %d)", c[0], c[1], x, z)
		}
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0.5); got != 0.5 {
		t.Errorf("Smoothstep(0.5) = %v, want 0.5", got)
	}
	if got := Smoothstep(1); got != 1 {
		t.Errorf("Smoothstep(1) = %v, want 1", got)
	}
}
