package time

import (
	"math"
	"testing"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) <= tol
}

// generateUniform creates a uniformly spaced signal from -1 to +1 (inclusive).
func generateUniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = -1 + 2*float64(i)/float64(n-1)
	}
	return out
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.N != 0 {
		t.Fatalf("N = %d, want 0", s.N)
	}
	if !math.IsNaN(s.Mean) || !math.IsNaN(s.Median) || !math.IsNaN(s.SEM) {
		t.Fatalf("empty stats = %+v, want NaN fields", s)
	}
	if s.MinPos != -1 || s.MaxPos != -1 {
		t.Fatalf("positions = %d/%d, want -1", s.MinPos, s.MaxPos)
	}
}

func TestCalculateKnownValues(t *testing.T) {
	s := Calculate([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean", s.Mean, 5},
		{"median", s.Median, 4.5},
		{"min", s.Min, 2},
		{"max", s.Max, 9},
		{"variance", s.Variance, 4},
		{"std", s.Std, 2},
		{"sem", s.SEM, math.Sqrt(32.0/7.0) / math.Sqrt(8)},
	}
	for _, tt := range tests {
		if !almostEqual(tt.got, tt.want, tolerance) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if s.MinPos != 0 || s.MaxPos != 7 {
		t.Errorf("positions = %d/%d, want 0/7", s.MinPos, s.MaxPos)
	}
}

func TestCalculateSkipsNaN(t *testing.T) {
	nan := math.NaN()
	s := Calculate([]float64{nan, 1, nan, 3})
	if s.N != 2 || s.Missing != 2 {
		t.Fatalf("N/Missing = %d/%d, want 2/2", s.N, s.Missing)
	}
	if s.Mean != 2 || s.Median != 2 {
		t.Fatalf("mean/median = %v/%v, want 2/2", s.Mean, s.Median)
	}
	if s.MinPos != 1 || s.MaxPos != 3 {
		t.Fatalf("positions = %d/%d, want 1/3", s.MinPos, s.MaxPos)
	}
}

func TestSingleSampleSEM(t *testing.T) {
	if got := SEM([]float64{3}); got != 0 {
		t.Fatalf("SEM = %v, want 0", got)
	}
	if got := SEM(nil); !math.IsNaN(got) {
		t.Fatalf("SEM(nil) = %v, want NaN", got)
	}
}

func TestMeanKahan(t *testing.T) {
	x := make([]float64, 10001)
	x[0] = 1e16
	for i := 1; i < len(x); i++ {
		x[i] = 1
	}
	want := (1e16 + 10000) / 10001
	if got := Mean(x); math.Abs(got-want)/want > 1e-15 {
		t.Fatalf("Mean = %v, want %v", got, want)
	}
}

func TestMedianOddEven(t *testing.T) {
	if got := Median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("Median odd = %v, want 2", got)
	}
	if got := Median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Fatalf("Median even = %v, want 2.5", got)
	}
	in := []float64{3, 1, 2}
	Median(in)
	if in[0] != 3 {
		t.Fatal("Median must not reorder its input")
	}
}

func TestUniformStd(t *testing.T) {
	n := 1001
	x := generateUniform(n)
	// Population variance of a uniform grid on [-1, 1]: (n+1)/(3(n-1)).
	want := math.Sqrt(float64(n+1) / (3 * float64(n-1)))
	if got := Std(x); !almostEqual(got, want, 1e-12) {
		t.Fatalf("Std = %v, want %v", got, want)
	}
}

func TestAccumulatorMatchesCalculate(t *testing.T) {
	x := []float64{0.3, -1.2, math.NaN(), 4.4, 2.0, -0.7}

	var acc Accumulator
	for _, v := range x {
		acc.Add(v)
	}
	got := acc.Result()
	want := Calculate(x)

	if got.N != want.N || got.Missing != want.Missing {
		t.Fatalf("counts = %d/%d, want %d/%d", got.N, got.Missing, want.N, want.Missing)
	}
	for _, pair := range [][2]float64{
		{got.Mean, want.Mean},
		{got.Variance, want.Variance},
		{got.SEM, want.SEM},
		{got.Min, want.Min},
		{got.Max, want.Max},
	} {
		if !almostEqual(pair[0], pair[1], tolerance) {
			t.Fatalf("accumulator %v != calculate %v", pair[0], pair[1])
		}
	}
	if got.MaxPos != want.MaxPos || got.MinPos != want.MinPos {
		t.Fatalf("positions differ: %d/%d vs %d/%d", got.MinPos, got.MaxPos, want.MinPos, want.MaxPos)
	}

	acc.Reset()
	if acc.Count() != 0 {
		t.Fatal("Reset did not clear the accumulator")
	}
}
