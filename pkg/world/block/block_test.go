package block

import "testing"

func TestByNameRoundTrip(t *testing.T) {
	for s := range State(Count) {
		got, ok := ByName(s.Name())
		if !ok || got != s {
			t.Errorf("ByName(%q) = %v, %v, want %v", s.Name(), got, ok, s)
		}
	}
	if _, ok := ByName("minecraft:netherrack"); ok {
		t.Error("ByName(netherrack) found a state")
	}
	if got, _ := ByName("stone"); got != Stone {
		t.Errorf("ByName(stone) = %v, want %v", got, Stone)
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		s                  State
		air, fluid, motion bool
	}{
		{Air, true, false, false},
		{CaveAir, true, false, false},
		{Stone, false, false, true},
		{Water, false, true, true},
		{Lava, false, true, true},
		{State(999), true, false, false},
	}
	for _, tt := range tests {
		if tt.s.IsAir() != tt.air || tt.s.IsFluid() != tt.fluid || tt.s.BlocksMotion() != tt.motion {
			t.Errorf("%v: air %v fluid %v motion %v, want %v %v %v",
				tt.s, tt.s.IsAir(), tt.s.IsFluid(), tt.s.BlocksMotion(), tt.air, tt.fluid, tt.motion)
		}
	}
}
