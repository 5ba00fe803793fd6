// Elbow-method support: sweep a range of cluster counts, collect the cost
// curve, and (optionally) detect its knee.
//
// WHAT IS THE ELBOW METHOD?
// The cost (WCSS) of a k-means clustering is non-increasing in k: more
// centroids can only get closer to the points. Taken to the extreme, k equal
// to the point count drives the cost to zero while telling you nothing. The
// elbow method runs the clusterer across a range of candidate k values and
// plots cost against k. The useful k is where the curve bends: the point at
// which adding another cluster stops buying a meaningful cost reduction.
//
// SELECTION IS MANUAL BY DESIGN:
// The sweep reports the raw (k, cost) curve without smoothing or automatic
// selection. Reading the elbow off a plot is the standard workflow. Knee is
// provided as an optional heuristic for callers that need an unattended
// starting point, not as the default policy.

package lloyd

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidSweepRange is returned when the sweep bounds do not satisfy
// 1 <= kMin <= kMax.
var ErrInvalidSweepRange = errors.New("invalid sweep range")

// ElbowPoint is one sample of the cost curve: the cost of the best clustering
// found for a given k.
type ElbowPoint struct {
	// K is the cluster count this sample was fitted with.
	K int

	// Cost is the run's final WCSS.
	Cost float64
}

// Sweep runs the clusterer once per k in [kMin, kMax] and collects the cost
// curve used for elbow-method selection.
//
// Every run shares the same dataset, iteration budget, tolerance, seed,
// distance metric, and initialization policy, so the curve isolates the
// effect of k alone:
//
//	curve, err := NewSweep(1, 10).
//	    WithSeed(42).
//	    Run(dataset)
//
// Runs share no mutable state, which makes the sweep embarrassingly parallel;
// WithParallelism opts in to fanning the per-k runs out across goroutines.
type Sweep struct {
	kMin               int
	kMax               int
	maxIterations      int
	tolerance          float64
	seed               int64
	distanceKind       DistanceKind
	initializationKind InitializationKind
	parallelism        int
}

// NewSweep creates a sweep over cluster counts kMin through kMax inclusive,
// with the same defaults as NewKMeans and sequential execution.
//
// The bounds are validated at Run time: 1 <= kMin <= kMax, and every k in the
// range must be valid for the dataset (kMax <= number of points), otherwise
// the sweep fails as a whole.
func NewSweep(kMin, kMax int) *Sweep {
	return &Sweep{
		kMin:               kMin,
		kMax:               kMax,
		maxIterations:      DefaultMaxIterations,
		tolerance:          DefaultTolerance,
		seed:               DefaultSeed,
		distanceKind:       SquaredEuclidean,
		initializationKind: RandomSample,
	}
}

// WithMaxIterations sets the iteration budget applied to every run.
func (s *Sweep) WithMaxIterations(maxIterations int) *Sweep {
	s.maxIterations = maxIterations
	return s
}

// WithTolerance sets the convergence tolerance applied to every run.
func (s *Sweep) WithTolerance(tolerance float64) *Sweep {
	s.tolerance = tolerance
	return s
}

// WithSeed sets the seed applied to every run. Keeping the seed identical
// across k values is what makes the curve comparable point to point: with
// RandomSample initialization, the initial centroids for k+1 are the initial
// centroids for k plus one more, so cost can only go down along the curve.
func (s *Sweep) WithSeed(seed int64) *Sweep {
	s.seed = seed
	return s
}

// WithDistanceKind sets the assignment metric applied to every run.
func (s *Sweep) WithDistanceKind(kind DistanceKind) *Sweep {
	s.distanceKind = kind
	return s
}

// WithInitialization sets the initialization policy applied to every run.
func (s *Sweep) WithInitialization(kind InitializationKind) *Sweep {
	s.initializationKind = kind
	return s
}

// WithParallelism sets the maximum number of runs executed concurrently.
// Values of one or less keep the sweep sequential. Because each run is a
// pure function of (dataset, configuration, seed), the curve is identical
// whatever the parallelism.
func (s *Sweep) WithParallelism(parallelism int) *Sweep {
	s.parallelism = parallelism
	return s
}

// Run executes the sweep and returns one ElbowPoint per k, in increasing k
// order, costs unmodified.
//
// The sweep is a single batch operation: the first run that fails aborts the
// whole sweep and its error is returned, with no partial curve.
//
// Returns:
//   - []ElbowPoint: the cost curve, kMax-kMin+1 entries
//   - error: ErrInvalidSweepRange for bad bounds, otherwise the first
//     per-run failure
func (s *Sweep) Run(dataset [][]float64) ([]ElbowPoint, error) {
	if s.kMin < 1 || s.kMax < s.kMin {
		return nil, fmt.Errorf("%w: kMin=%d, kMax=%d", ErrInvalidSweepRange, s.kMin, s.kMax)
	}

	curve := make([]ElbowPoint, s.kMax-s.kMin+1)

	if s.parallelism <= 1 {
		for k := s.kMin; k <= s.kMax; k++ {
			result, err := s.clusterer(k).Fit(dataset)
			if err != nil {
				return nil, fmt.Errorf("sweep failed at k=%d: %w", k, err)
			}
			curve[k-s.kMin] = ElbowPoint{K: k, Cost: result.Cost}
		}
		return curve, nil
	}

	// Parallel path: one goroutine per k, bounded by parallelism. Each
	// goroutine writes only its own slot of the curve, so no locking is
	// needed; the group propagates the first failure and Wait collects it.
	var group errgroup.Group
	group.SetLimit(s.parallelism)

	for k := s.kMin; k <= s.kMax; k++ {
		k := k
		group.Go(func() error {
			result, err := s.clusterer(k).Fit(dataset)
			if err != nil {
				return fmt.Errorf("sweep failed at k=%d: %w", k, err)
			}
			curve[k-s.kMin] = ElbowPoint{K: k, Cost: result.Cost}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return curve, nil
}

// clusterer builds the per-k clusterer carrying the sweep's shared
// configuration.
func (s *Sweep) clusterer(k int) *KMeans {
	return NewKMeans(k).
		WithMaxIterations(s.maxIterations).
		WithTolerance(s.tolerance).
		WithSeed(s.seed).
		WithDistanceKind(s.distanceKind).
		WithInitialization(s.initializationKind)
}

// Knee detects the elbow of a cost curve and returns the k at which marginal
// cost reduction flattens.
//
// HOW DETECTION WORKS:
// Both axes are normalized to [0, 1], turning the curve's endpoints into
// (0, 1) and (1, 0). On a curve with no elbow, cost decays linearly and the
// normalized curve hugs the falling diagonal. An elbow shows up as the point
// that sags furthest below that diagonal, so the detector maximizes
// (1 - kNorm) - costNorm over the curve.
//
// Degenerate curves fall back conservatively:
//   - fewer than three points: the smallest k (nothing to bend)
//   - flat cost (every k equally good): the smallest k (cheapest model)
//
// This is a heuristic, not a replacement for inspecting the curve: real cost
// curves can have several plausible elbows, and the right k is a judgment
// about the data, not just the geometry.
func Knee(curve []ElbowPoint) int {
	if len(curve) == 0 {
		return 0
	}
	if len(curve) < 3 {
		return curve[0].K
	}

	minK, maxK := float64(curve[0].K), float64(curve[len(curve)-1].K)
	minCost, maxCost := curve[0].Cost, curve[0].Cost
	for _, point := range curve {
		if point.Cost < minCost {
			minCost = point.Cost
		}
		if point.Cost > maxCost {
			maxCost = point.Cost
		}
	}

	if maxK == minK || maxCost == minCost {
		return curve[0].K
	}

	kneeK := curve[0].K
	maxSag := 0.0
	for _, point := range curve {
		kNorm := (float64(point.K) - minK) / (maxK - minK)
		costNorm := (point.Cost - minCost) / (maxCost - minCost)

		sag := (1 - kNorm) - costNorm
		if sag > maxSag {
			maxSag = sag
			kneeK = point.K
		}
	}

	return kneeK
}
