package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(Missing, Missing, 0) {
		t.Fatal("expected missing values to compare equal")
	}
	if NearlyEqual(Missing, 0, 1) {
		t.Fatal("missing must not equal a value")
	}
}

func TestMissing(t *testing.T) {
	data := []float64{1, Missing, 3, Missing}
	if got := CountMissing(data); got != 2 {
		t.Fatalf("CountMissing() = %d, want 2", got)
	}
	if IsMissing(math.Inf(1)) {
		t.Fatal("+Inf is not missing")
	}
	if IsFinite(math.Inf(-1)) || IsFinite(Missing) || !IsFinite(0) {
		t.Fatal("IsFinite misclassified a value")
	}
}

func TestReverseAndFill(t *testing.T) {
	buf := EnsureLen(nil, 3)
	Fill(buf, 2)
	buf[0] = 1
	Reverse(buf)
	if buf[0] != 2 || buf[2] != 1 {
		t.Fatalf("Reverse() = %v", buf)
	}
}
