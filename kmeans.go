// K-means clustering via Lloyd's algorithm.
//
// WHAT IS K-MEANS?
// K-means partitions a dataset into k clusters by iteratively refining cluster
// assignments and centroid positions. Each cluster is represented by its
// centroid (the mean of its assigned points).
//
// HOW LLOYD'S ALGORITHM WORKS:
//  1. INITIALIZATION: Place k initial centroids on actual dataset points
//     (see InitializationKind for the available policies)
//  2. ASSIGNMENT: Assign each point to its nearest centroid; equidistant
//     points go to the lowest cluster index
//  3. UPDATE: Recompute each centroid as the mean of its assigned points;
//     a cluster left with zero points keeps its previous centroid
//  4. REPEAT: Steps 2-3 until the centroids stop moving (summed displacement
//     within tolerance) or the iteration budget runs out
//
// CONVERGENCE:
// Every assignment step and every update step either reduces the total cost
// or leaves it unchanged, so the iteration always settles. Typical datasets
// converge in 5-20 iterations. Running out of the iteration budget is not a
// failure, it is a weaker guarantee on optimality: the result is still a
// valid clustering, reported with Converged=false.
//
// VORONOI PARTITIONS:
// The assignment step carves the space into Voronoi cells: every point in a
// cluster is at least as close to its own centroid as to any other centroid.
//
// TIME COMPLEXITY:
// O(iterations × k × n × dim) where:
//   - iterations: number of iterations until convergence
//   - k: number of clusters
//   - n: number of points
//   - dim: dimensionality
//
// For 10K customers, 8 features, k=5, 20 iterations:
//   - 8 million distance terms, well under a millisecond of arithmetic

package lloyd

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/RoaringBitmap/roaring"
	"gonum.org/v1/gonum/floats"
)

// UnassignedCluster indicates a point hasn't been assigned to any cluster yet.
const UnassignedCluster = -1

var (
	// DefaultMaxIterations is the default iteration budget for a single run.
	DefaultMaxIterations = 100

	// DefaultTolerance is the default convergence tolerance: a run converges
	// once the summed centroid displacement of an update step is at or
	// below this value.
	DefaultTolerance = 1e-4

	// DefaultSeed is the seed used when the caller does not provide one.
	// A fixed default keeps runs reproducible out of the box; there is no
	// package-level random state anywhere in this package.
	DefaultSeed int64 = 1
)

// KMeans is a configurable k-means clusterer.
//
// Configuration uses a fluent builder chain; Fit executes a run:
//
//	result, err := NewKMeans(3).
//	    WithMaxIterations(200).
//	    WithTolerance(1e-6).
//	    WithSeed(7).
//	    Fit(dataset)
//
// A KMeans value carries only configuration, never run state. Fit is a pure
// function of the dataset and the configuration (including the seed), so the
// same KMeans value may be reused across datasets and across goroutines.
type KMeans struct {
	k                  int
	maxIterations      int
	tolerance          float64
	seed               int64
	distanceKind       DistanceKind
	initializationKind InitializationKind
}

// NewKMeans creates a clusterer for k clusters with default configuration:
// DefaultMaxIterations, DefaultTolerance, DefaultSeed, SquaredEuclidean
// distance, and RandomSample initialization.
//
// k is validated at Fit time (it must be in [1, n] for an n-point dataset).
func NewKMeans(k int) *KMeans {
	return &KMeans{
		k:                  k,
		maxIterations:      DefaultMaxIterations,
		tolerance:          DefaultTolerance,
		seed:               DefaultSeed,
		distanceKind:       SquaredEuclidean,
		initializationKind: RandomSample,
	}
}

// WithMaxIterations sets the iteration budget. The budget is the sole forced
// termination mechanism: a run that exhausts it returns a valid result with
// Converged=false.
func (km *KMeans) WithMaxIterations(maxIterations int) *KMeans {
	km.maxIterations = maxIterations
	return km
}

// WithTolerance sets the convergence tolerance on the summed centroid
// displacement per update step. Zero demands exact convergence (assignments
// and centroids fully stable).
func (km *KMeans) WithTolerance(tolerance float64) *KMeans {
	km.tolerance = tolerance
	return km
}

// WithSeed sets the seed for centroid initialization. Runs with identical
// datasets, configuration, and seed produce identical results.
func (km *KMeans) WithSeed(seed int64) *KMeans {
	km.seed = seed
	return km
}

// WithDistanceKind sets the distance metric used for the assignment step.
// The reported cost is always WCSS (squared Euclidean), regardless of the
// assignment metric, so costs stay comparable across metrics.
func (km *KMeans) WithDistanceKind(kind DistanceKind) *KMeans {
	km.distanceKind = kind
	return km
}

// WithInitialization sets the centroid initialization policy.
func (km *KMeans) WithInitialization(kind InitializationKind) *KMeans {
	km.initializationKind = kind
	return km
}

// Fit runs Lloyd's algorithm on the dataset and returns the clustering.
//
// Preconditions (violations return wrapped sentinel errors):
//   - dataset is non-empty and every point has the same dimensionality
//   - 1 <= k <= len(dataset)
//   - maxIterations > 0, tolerance >= 0
//   - distance and initialization kinds are recognized
//
// The dataset is never modified; centroids are independent copies.
//
// Parameters:
//   - dataset: the points to cluster, one []float64 per point
//
// Returns:
//   - *Result: assignments, centroids, cost, and convergence information
//   - error: nil unless a precondition fails
func (km *KMeans) Fit(dataset [][]float64) (*Result, error) {
	if _, err := validateDataset(dataset); err != nil {
		return nil, err
	}

	n := len(dataset)
	if km.k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidClusterCount, km.k)
	}
	if km.k > n {
		return nil, fmt.Errorf("%w: k=%d exceeds dataset size %d", ErrInvalidClusterCount, km.k, n)
	}
	if km.maxIterations <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxIterations, km.maxIterations)
	}
	if km.tolerance < 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidTolerance, km.tolerance)
	}

	distance, err := NewDistance(km.distanceKind)
	if err != nil {
		return nil, err
	}

	initializer, err := NewInitializer(km.initializationKind)
	if err != nil {
		return nil, err
	}

	// Explicit per-run random source: no process-wide random state, so a
	// run is fully determined by (dataset, configuration, seed).
	rng := rand.New(rand.NewSource(km.seed))

	centroids := initializer.Initialize(rng, dataset, km.k)
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = UnassignedCluster
	}

	iterations, converged := km.iterate(dataset, centroids, assignments, distance)

	return newResult(dataset, centroids, assignments, distance, iterations, converged), nil
}

// iterate runs the assignment/update loop in place on centroids and
// assignments, returning the number of iterations executed and whether the
// run converged within the budget.
func (km *KMeans) iterate(dataset, centroids [][]float64, assignments []int, distance Distance) (int, bool) {
	k := len(centroids)
	dim := len(dataset[0])

	// Reused across iterations: per-cluster coordinate sums and sizes for
	// the update step.
	sums := make([][]float64, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}
	sizes := make([]int, k)

	for iteration := 1; iteration <= km.maxIterations; iteration++ {
		// ASSIGNMENT STEP: each point goes to its nearest centroid.
		// The scan uses strict less-than in ascending cluster order, so
		// equidistant points land on the lowest cluster index.
		for pointIdx, point := range dataset {
			nearestDistance := math.Inf(1)
			nearestCluster := 0

			for clusterIdx, centroid := range centroids {
				d := distance.Calculate(point, centroid)
				if d < nearestDistance {
					nearestDistance = d
					nearestCluster = clusterIdx
				}
			}

			assignments[pointIdx] = nearestCluster
		}

		// UPDATE STEP: recompute each centroid as the coordinate-wise
		// mean of its assigned points, in a single pass over the data.
		for i := range sums {
			for j := range sums[i] {
				sums[i][j] = 0
			}
			sizes[i] = 0
		}

		for pointIdx, cluster := range assignments {
			floats.Add(sums[cluster], dataset[pointIdx])
			sizes[cluster]++
		}

		// displacement accumulates how far every centroid moved in this
		// update, measured in Euclidean distance.
		displacement := 0.0
		for clusterIdx := range centroids {
			if sizes[clusterIdx] == 0 {
				// Empty cluster: keep the previous centroid. The mean
				// of zero points is undefined, and a stationary
				// centroid may still capture points in a later
				// iteration. See DESIGN.md for the alternatives.
				continue
			}

			mean := clonePoint(sums[clusterIdx])
			floats.Scale(1.0/float64(sizes[clusterIdx]), mean)

			displacement += euclideanDistanceImpl.Calculate(centroids[clusterIdx], mean)
			centroids[clusterIdx] = mean
		}

		// CONVERGENCE CHECK: stable centroids mean stable assignments.
		if displacement <= km.tolerance {
			return iteration, true
		}
	}

	// Iteration budget exhausted. Not an error: the clustering is valid,
	// just without a convergence guarantee.
	return km.maxIterations, false
}

// wcss computes the within-cluster sum of squares: the summed squared
// Euclidean distance from every point to its assigned centroid. This is the
// cost the elbow method plots against k.
func wcss(dataset, centroids [][]float64, assignments []int) float64 {
	var cost float64
	for pointIdx, cluster := range assignments {
		cost += squaredEuclideanDistanceImpl.Calculate(dataset[pointIdx], centroids[cluster])
	}
	return cost
}

// newResult assembles a Result from the final state of a run, building the
// per-cluster membership bitmaps and the final cost.
func newResult(dataset, centroids [][]float64, assignments []int, distance Distance, iterations int, converged bool) *Result {
	members := make([]*roaring.Bitmap, len(centroids))
	for i := range members {
		members[i] = roaring.New()
	}
	for pointIdx, cluster := range assignments {
		members[cluster].Add(uint32(pointIdx))
	}

	return &Result{
		Centroids:   centroids,
		Assignments: assignments,
		Cost:        wcss(dataset, centroids, assignments),
		Iterations:  iterations,
		Converged:   converged,
		distance:    distance,
		members:     members,
	}
}
