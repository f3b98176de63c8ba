package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("25", 10); got != 25 {
		t.Fatalf("got %d, want 25", got)
	}
	if got := ParseIntDefault("", 10); got != 10 {
		t.Fatalf("empty: got %d, want 10", got)
	}
	if got := ParseIntDefault("ten", 10); got != 10 {
		t.Fatalf("invalid: got %d, want 10", got)
	}
}

func TestClamp(t *testing.T) {
	cases := [][4]int{
		{5, 1, 50, 5},
		{0, 1, 50, 1},
		{99, 1, 50, 50},
	}
	for _, c := range cases {
		if got := Clamp(c[0], c[1], c[2]); got != c[3] {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", c[0], c[1], c[2], got, c[3])
		}
	}
}
