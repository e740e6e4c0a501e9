package device

import (
	"testing"
)

func TestMathRandomRange(t *testing.T) {
	r := NewMathRandom(1)
	for i := 0; i < 1000; i++ {
		if v := r.NextInRange(7); v < 0 || v >= 7 {
			t.Fatalf("NextInRange(7) = %d", v)
		}
	}
	if v := r.NextInRange(0); v != 0 {
		t.Errorf("NextInRange(0) = %d, expected 0", v)
	}
}

func TestMathRandomSeedRepeats(t *testing.T) {
	a := NewMathRandom(99)
	first := []int{a.NextInRange(100), a.NextInRange(100), a.NextInRange(100)}

	r := NewMathRandom(99)
	for i, want := range first {
		if got := r.NextInRange(100); got != want {
			t.Errorf("draw %d with the same seed = %d, expected %d", i, got, want)
		}
	}
}

func TestSeqRandom(t *testing.T) {
	r := NewSeqRandom(5, -1)
	if got := r.NextInRange(3); got != 2 {
		t.Errorf("first = %d, expected 2", got)
	}
	if got := r.NextInRange(3); got != 2 {
		t.Errorf("negative wraps to %d, expected 2", got)
	}
	if got := r.NextInRange(10); got != 5 {
		t.Errorf("sequence wraps to %d, expected 5", got)
	}
}

func TestIndicatorsFanOut(t *testing.T) {
	a, b := &FakeIndicator{}, &FakeIndicator{}
	Indicators{a, b, NopIndicator{}}.SetIndicator(9)

	if a.Mask() != 9 || b.Mask() != 9 {
		t.Errorf("masks = %d, %d, expected 9", a.Mask(), b.Mask())
	}
}
