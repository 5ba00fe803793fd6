package lloyd

import (
	"errors"
	"testing"
)

// TestSweepCostCurve tests the canonical sweep: four points, k from 1 to 4,
// strictly decreasing cost reaching 0 at k=4
func TestSweepCostCurve(t *testing.T) {
	dataset := [][]float64{
		{1, 1},
		{1, 2},
		{10, 10},
		{10, 11},
	}

	curve, err := NewSweep(1, 4).WithSeed(42).Run(dataset)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(curve) != 4 {
		t.Fatalf("Run() returned %d points, want 4", len(curve))
	}

	for i, point := range curve {
		if point.K != i+1 {
			t.Errorf("curve[%d].K = %d, want %d", i, point.K, i+1)
		}
	}

	for i := 1; i < len(curve); i++ {
		if curve[i].Cost >= curve[i-1].Cost {
			t.Errorf("cost did not strictly decrease from k=%d to k=%d: %v -> %v",
				curve[i-1].K, curve[i].K, curve[i-1].Cost, curve[i].Cost)
		}
	}

	if curve[3].Cost != 0 {
		t.Errorf("cost at k=4 = %v, want 0 (every point its own centroid)", curve[3].Cost)
	}
}

// TestSweepSharedConfiguration tests that each sweep entry equals a
// standalone run with the same parameters
func TestSweepSharedConfiguration(t *testing.T) {
	dataset := [][]float64{
		{0, 0}, {0.4, 0.2}, {0.1, 0.3},
		{6, 6}, {6.3, 5.8}, {5.9, 6.2},
		{0, 12}, {0.2, 11.7}, {0.4, 12.1},
	}

	curve, err := NewSweep(1, 5).
		WithSeed(9).
		WithMaxIterations(50).
		WithTolerance(1e-6).
		Run(dataset)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, point := range curve {
		standalone, err := NewKMeans(point.K).
			WithSeed(9).
			WithMaxIterations(50).
			WithTolerance(1e-6).
			Fit(dataset)
		if err != nil {
			t.Fatalf("Fit() with k=%d error: %v", point.K, err)
		}

		if point.Cost != standalone.Cost {
			t.Errorf("sweep cost at k=%d = %v, standalone run = %v", point.K, point.Cost, standalone.Cost)
		}
	}
}

// TestSweepInvalidRange tests the sweep bound validation
func TestSweepInvalidRange(t *testing.T) {
	dataset := [][]float64{{0, 0}, {1, 1}}

	tests := []struct {
		name string
		kMin int
		kMax int
	}{
		{"zero kMin", 0, 3},
		{"negative kMin", -2, 3},
		{"kMax below kMin", 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := NewSweep(tt.kMin, tt.kMax).Run(dataset)

			if !errors.Is(err, ErrInvalidSweepRange) {
				t.Errorf("Run() error = %v, want %v", err, ErrInvalidSweepRange)
			}
			if curve != nil {
				t.Errorf("Run() returned non-nil curve alongside error")
			}
		})
	}
}

// TestSweepAbortsOnFirstFailure tests that a failing k aborts the whole
// sweep with no partial curve
func TestSweepAbortsOnFirstFailure(t *testing.T) {
	dataset := [][]float64{
		{1, 1},
		{2, 2},
		{3, 3},
	}

	// k=4 exceeds the point count, so the batch fails as a whole even
	// though k=1..3 would each succeed
	curve, err := NewSweep(1, 4).Run(dataset)

	if !errors.Is(err, ErrInvalidClusterCount) {
		t.Errorf("Run() error = %v, want %v", err, ErrInvalidClusterCount)
	}
	if curve != nil {
		t.Errorf("Run() returned partial curve %v, want nil", curve)
	}
}

// TestSweepParallelMatchesSequential tests that fanning the runs out across
// goroutines leaves the curve unchanged
func TestSweepParallelMatchesSequential(t *testing.T) {
	dataset := make([][]float64, 0, 40)
	for group := 0; group < 4; group++ {
		base := float64(group * 10)
		for i := 0; i < 10; i++ {
			dataset = append(dataset, []float64{base + float64(i)*0.1, base})
		}
	}

	sequential, err := NewSweep(1, 8).WithSeed(42).Run(dataset)
	if err != nil {
		t.Fatalf("sequential Run() error: %v", err)
	}

	parallel, err := NewSweep(1, 8).WithSeed(42).WithParallelism(4).Run(dataset)
	if err != nil {
		t.Fatalf("parallel Run() error: %v", err)
	}

	if len(parallel) != len(sequential) {
		t.Fatalf("parallel curve has %d points, sequential %d", len(parallel), len(sequential))
	}

	for i := range sequential {
		if parallel[i] != sequential[i] {
			t.Errorf("curve[%d] differs: parallel %+v, sequential %+v", i, parallel[i], sequential[i])
		}
	}
}

// TestSweepParallelAbortsOnFailure tests failure propagation through the
// parallel path
func TestSweepParallelAbortsOnFailure(t *testing.T) {
	dataset := [][]float64{
		{1, 1},
		{2, 2},
		{3, 3},
	}

	curve, err := NewSweep(1, 4).WithParallelism(4).Run(dataset)

	if !errors.Is(err, ErrInvalidClusterCount) {
		t.Errorf("Run() error = %v, want %v", err, ErrInvalidClusterCount)
	}
	if curve != nil {
		t.Errorf("Run() returned partial curve %v, want nil", curve)
	}
}

// TestKnee tests elbow detection on a synthetic curve with a clear bend
func TestKnee(t *testing.T) {
	curve := []ElbowPoint{
		{K: 1, Cost: 100},
		{K: 2, Cost: 20},
		{K: 3, Cost: 15},
		{K: 4, Cost: 12},
		{K: 5, Cost: 10},
	}

	if got := Knee(curve); got != 2 {
		t.Errorf("Knee() = %d, want 2", got)
	}
}

// TestKneeDegenerateCurves tests the conservative fallbacks
func TestKneeDegenerateCurves(t *testing.T) {
	tests := []struct {
		name  string
		curve []ElbowPoint
		want  int
	}{
		{"empty curve", nil, 0},
		{"single point", []ElbowPoint{{K: 3, Cost: 42}}, 3},
		{"two points", []ElbowPoint{{K: 1, Cost: 10}, {K: 2, Cost: 5}}, 1},
		{"flat cost", []ElbowPoint{{K: 1, Cost: 7}, {K: 2, Cost: 7}, {K: 3, Cost: 7}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Knee(tt.curve); got != tt.want {
				t.Errorf("Knee() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestKneeOnRealSweep tests that detection picks the true group count on
// well-separated data
func TestKneeOnRealSweep(t *testing.T) {
	// Three tight, distant groups: the cost curve collapses at k=3 and
	// flattens beyond it
	dataset := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1}, {0.1, 0.1},
		{100, 100}, {100.1, 100}, {100, 100.1}, {100.1, 100.1},
		{200, 0}, {200.1, 0}, {200, 0.1}, {200.1, 0.1},
	}

	// k-means++ seeding spreads the initial centroids across the groups,
	// keeping every run at its global optimum and the curve clean
	curve, err := NewSweep(1, 8).
		WithSeed(42).
		WithInitialization(PlusPlus).
		Run(dataset)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if got := Knee(curve); got != 3 {
		t.Errorf("Knee() = %d, want 3 (the true group count)", got)
	}
}
