package lloyd

import (
	"errors"
	"math"
	"testing"
)

// TestNewDistance tests the strategy lookup for every supported kind
func TestNewDistance(t *testing.T) {
	tests := []struct {
		name string
		kind DistanceKind
	}{
		{"euclidean", Euclidean},
		{"squared euclidean", SquaredEuclidean},
		{"cosine", Cosine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := NewDistance(tt.kind)
			if err != nil {
				t.Fatalf("NewDistance() error: %v", err)
			}
			if dist.Kind() != tt.kind {
				t.Errorf("Kind() = %q, want %q", dist.Kind(), tt.kind)
			}
		})
	}
}

// TestNewDistanceUnknownKind tests rejection of unrecognized kinds
func TestNewDistanceUnknownKind(t *testing.T) {
	dist, err := NewDistance("manhattan")

	if !errors.Is(err, ErrUnknownDistanceKind) {
		t.Errorf("NewDistance() error = %v, want %v", err, ErrUnknownDistanceKind)
	}
	if dist != nil {
		t.Errorf("NewDistance() returned non-nil strategy alongside error")
	}
}

// TestEuclideanCalculate tests L2 distance against hand-computed values
func TestEuclideanCalculate(t *testing.T) {
	dist, _ := NewDistance(Euclidean)

	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{"3-4-5 triangle", []float64{0, 0}, []float64{3, 4}, 5},
		{"identical points", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"unit apart", []float64{1, 1}, []float64{1, 2}, 1},
		{"negative coordinates", []float64{-1, -1}, []float64{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dist.Calculate(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Calculate(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestSquaredEuclideanCalculate tests L2² distance against hand-computed
// values
func TestSquaredEuclideanCalculate(t *testing.T) {
	dist, _ := NewDistance(SquaredEuclidean)

	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{"3-4-5 triangle", []float64{0, 0}, []float64{3, 4}, 25},
		{"identical points", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"unit apart", []float64{1, 1}, []float64{1, 2}, 1},
		{"negative coordinates", []float64{-1, -1}, []float64{2, 3}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dist.Calculate(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Calculate(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestSquaredEuclideanPreservesOrdering tests that the two L2 variants agree
// on which of two candidates is nearer
func TestSquaredEuclideanPreservesOrdering(t *testing.T) {
	plain, _ := NewDistance(Euclidean)
	squared, _ := NewDistance(SquaredEuclidean)

	query := []float64{1, 2, 3}
	near := []float64{1.5, 2.5, 3.5}
	far := []float64{10, 20, 30}

	if plain.Calculate(query, near) >= plain.Calculate(query, far) {
		t.Fatalf("test fixture broken: near candidate not nearer under L2")
	}
	if squared.Calculate(query, near) >= squared.Calculate(query, far) {
		t.Errorf("squared euclidean reversed the ordering of candidates")
	}
}

// TestCosineCalculate tests angular distance against known directions
func TestCosineCalculate(t *testing.T) {
	dist, _ := NewDistance(Cosine)

	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{"identical direction", []float64{1, 0}, []float64{5, 0}, 0},
		{"orthogonal", []float64{1, 0}, []float64{0, 3}, 1},
		{"opposite", []float64{1, 1}, []float64{-2, -2}, 2},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 1},
		{"both zero vectors", []float64{0, 0}, []float64{0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dist.Calculate(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Calculate(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestCosineIgnoresMagnitude tests that scaling a point leaves cosine
// distance unchanged
func TestCosineIgnoresMagnitude(t *testing.T) {
	dist, _ := NewDistance(Cosine)

	a := []float64{2, 5, 1}
	b := []float64{4, 1, 3}
	scaled := []float64{40, 10, 30}

	d1 := dist.Calculate(a, b)
	d2 := dist.Calculate(a, scaled)

	if math.Abs(d1-d2) > 1e-12 {
		t.Errorf("scaling changed cosine distance: %v vs %v", d1, d2)
	}
}

// TestNorm tests the L2 norm helper
func TestNorm(t *testing.T) {
	tests := []struct {
		name string
		v    []float64
		want float64
	}{
		{"3-4-5 triangle", []float64{3, 4}, 5},
		{"zero vector", []float64{0, 0, 0}, 0},
		{"unit vector", []float64{1, 0, 0}, 1},
		{"negative components", []float64{-3, -4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Norm(tt.v); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Norm(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

// TestNormalize tests unit-length scaling, including the zero-vector guard
func TestNormalize(t *testing.T) {
	unit := Normalize([]float64{3, 4})
	want := []float64{0.6, 0.8}
	for i := range want {
		if math.Abs(unit[i]-want[i]) > 1e-12 {
			t.Errorf("Normalize()[%d] = %v, want %v", i, unit[i], want[i])
		}
	}

	if got := Norm(unit); math.Abs(got-1) > 1e-12 {
		t.Errorf("Norm(Normalize(v)) = %v, want 1", got)
	}

	// Zero vector passes through unchanged instead of producing NaN
	zero := Normalize([]float64{0, 0})
	for i, value := range zero {
		if value != 0 {
			t.Errorf("Normalize(zero)[%d] = %v, want 0", i, value)
		}
	}
}

// TestNormalizeDoesNotMutate tests that Normalize returns a copy
func TestNormalizeDoesNotMutate(t *testing.T) {
	v := []float64{3, 4}
	Normalize(v)

	if v[0] != 3 || v[1] != 4 {
		t.Errorf("Normalize mutated its input: %v", v)
	}
}
