package lloyd

import (
	"errors"
	"math"
	"math/rand"
)

// ErrUnknownInitializationKind is returned when an unknown initialization kind
// is provided to NewInitializer.
var ErrUnknownInitializationKind = errors.New("unknown initialization kind")

// InitializationKind represents the strategy used to place the k initial
// centroids before Lloyd's iteration starts.
//
// Initialization matters: Lloyd's algorithm only ever reduces cost from its
// starting position, so a poor starting position can converge to a poor local
// optimum. All strategies here select actual dataset points as the initial
// centroids, which guarantees every initial centroid sits inside the data
// distribution.
type InitializationKind string

const (
	// RandomSample selects k distinct points uniformly at random, without
	// replacement. This is the classic k-means initialization and the
	// package default. Deterministic for a fixed seed.
	RandomSample InitializationKind = "random_sample"

	// PlusPlus selects centroids with the k-means++ scheme: the first
	// centroid is sampled uniformly, each subsequent centroid is sampled
	// with probability proportional to its squared distance from the
	// nearest already-chosen centroid. This spreads the initial centroids
	// across the data and typically reduces both the iterations needed to
	// converge and the odds of a bad local optimum.
	PlusPlus InitializationKind = "kmeans_plus_plus"

	// UniformSpacing selects every (n/k)-th point. Fully deterministic and
	// seed-independent. Sensitive to the dataset's point order, which makes
	// it predictable in tests and reasonable for shuffled data.
	UniformSpacing InitializationKind = "uniform_spacing"
)

// Singleton instances of initialization strategies.
// These are stateless and can be safely reused across goroutines; all
// per-run randomness flows in through the *rand.Rand argument.
var (
	randomSampleInitImpl   = randomSampleInit{}
	plusPlusInitImpl       = plusPlusInit{}
	uniformSpacingInitImpl = uniformSpacingInit{}
)

// Initializer is the interface for centroid initialization strategies.
type Initializer interface {
	// Kind returns the kind of initialization strategy.
	Kind() InitializationKind

	// Initialize returns k initial centroids chosen from the dataset.
	// The returned centroids are independent copies; mutating them never
	// affects the dataset. Callers guarantee 1 <= k <= len(dataset) and a
	// validated dataset. All randomness is drawn from rng, so results are
	// deterministic for a fixed seed.
	Initialize(rng *rand.Rand, dataset [][]float64, k int) [][]float64
}

// NewInitializer returns a singleton Initializer implementation for the
// specified strategy. Returns ErrUnknownInitializationKind if the kind is not
// recognized.
func NewInitializer(kind InitializationKind) (Initializer, error) {
	switch kind {
	case RandomSample:
		return randomSampleInitImpl, nil
	case PlusPlus:
		return plusPlusInitImpl, nil
	case UniformSpacing:
		return uniformSpacingInitImpl, nil
	default:
		return nil, ErrUnknownInitializationKind
	}
}

// randomSampleInit implements sampling without replacement.
type randomSampleInit struct{}

func (randomSampleInit) Kind() InitializationKind {
	return RandomSample
}

// Initialize picks the first k indices of a random permutation of the
// dataset, guaranteeing k distinct points.
//
// A useful property for elbow sweeps: for a fixed seed the permutation is
// identical across runs, so the initial centroids for k+1 clusters are the
// initial centroids for k clusters plus one more. Starting cost can then only
// go down as k grows, and Lloyd's iteration never increases cost, so sweep
// curves are non-increasing in k.
func (randomSampleInit) Initialize(rng *rand.Rand, dataset [][]float64, k int) [][]float64 {
	perm := rng.Perm(len(dataset))

	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = clonePoint(dataset[perm[i]])
	}
	return centroids
}

// plusPlusInit implements k-means++ seeding.
type plusPlusInit struct{}

func (plusPlusInit) Kind() InitializationKind {
	return PlusPlus
}

// Initialize implements the D² weighting of Arthur & Vassilvitskii:
//
//  1. Pick the first centroid uniformly at random.
//  2. For every point, compute the squared distance to the nearest chosen
//     centroid.
//  3. Pick the next centroid with probability proportional to that squared
//     distance (points far from all centroids are more likely).
//  4. Repeat until k centroids are chosen.
//
// Time complexity: O(k × n × dim).
func (plusPlusInit) Initialize(rng *rand.Rand, dataset [][]float64, k int) [][]float64 {
	n := len(dataset)

	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clonePoint(dataset[rng.Intn(n)]))

	// nearest[i] caches the squared distance from point i to its nearest
	// chosen centroid, updated incrementally as centroids are added.
	nearest := make([]float64, n)
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}

	for len(centroids) < k {
		latest := centroids[len(centroids)-1]

		total := 0.0
		for i, point := range dataset {
			d := squaredEuclideanDistanceImpl.Calculate(point, latest)
			if d < nearest[i] {
				nearest[i] = d
			}
			total += nearest[i]
		}

		// All remaining points coincide with a chosen centroid. D²
		// weighting degenerates, fall back to a uniform pick.
		if total == 0 {
			centroids = append(centroids, clonePoint(dataset[rng.Intn(n)]))
			continue
		}

		r := rng.Float64() * total
		chosen := n - 1
		cumulative := 0.0
		for i, d := range nearest {
			cumulative += d
			if cumulative >= r {
				chosen = i
				break
			}
		}

		centroids = append(centroids, clonePoint(dataset[chosen]))
	}

	return centroids
}

// uniformSpacingInit implements deterministic uniform spacing.
type uniformSpacingInit struct{}

func (uniformSpacingInit) Kind() InitializationKind {
	return UniformSpacing
}

// Initialize picks every (n/k)-th point as an initial centroid. The rng is
// unused; this strategy is deterministic by construction.
func (uniformSpacingInit) Initialize(_ *rand.Rand, dataset [][]float64, k int) [][]float64 {
	n := len(dataset)

	step := n / k
	if step == 0 {
		step = 1
	}

	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		idx := i * step
		if idx >= n {
			idx = n - 1
		}
		centroids[i] = clonePoint(dataset[idx])
	}
	return centroids
}
