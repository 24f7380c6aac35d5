package testutil

import (
	"math"
	"testing"
)

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestRampAndDC(t *testing.T) {
	r := Ramp(1, 0.5, 3)
	if r[0] != 1 || r[2] != 2 {
		t.Fatalf("Ramp = %v", r)
	}
	d := DC(3, 4)
	for i, v := range d {
		if v != 3 {
			t.Fatalf("DC[%d] = %v", i, v)
		}
	}
}

func TestBleachDecaysToBaseline(t *testing.T) {
	b := Bleach(2, 0.5, 1, 100, 2000)
	if math.Abs(b[0]-3) > 1e-12 {
		t.Fatalf("b[0] = %v, want 3", b[0])
	}
	if math.Abs(b[len(b)-1]-2) > 1e-6 {
		t.Fatalf("tail = %v, want ~2", b[len(b)-1])
	}
	for i := 1; i < len(b); i++ {
		if b[i] > b[i-1] {
			t.Fatalf("bleach not monotonic at %d", i)
		}
	}
}

func TestTransients(t *testing.T) {
	x := Transients(make([]float64, 100), []float64{0.5}, 2, 0.1, 100)
	if x[49] != 0 {
		t.Fatalf("pre-event sample = %v, want 0", x[49])
	}
	if math.Abs(x[50]-2) > 1e-12 {
		t.Fatalf("onset = %v, want 2", x[50])
	}
	if x[60] >= x[50] {
		t.Fatal("transient should decay")
	}
}

func TestAdd(t *testing.T) {
	got := Add([]float64{1, 2, 3}, []float64{1, 1})
	if len(got) != 2 || got[1] != 3 {
		t.Fatalf("Add = %v", got)
	}
}
