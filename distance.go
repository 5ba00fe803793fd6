package lloyd

import (
	"errors"
	"math"
)

// ErrUnknownDistanceKind is returned when an unknown distance kind is provided to NewDistance.
var ErrUnknownDistanceKind = errors.New("unknown distance kind")

// DistanceKind represents the type of distance metric used for point comparisons.
// Different distance metrics are suitable for different use cases:
// - Euclidean (L2): Measures absolute spatial distance between points
// - SquaredEuclidean: Squared L2 distance (faster, preserves ordering)
// - Cosine: Measures angular difference, independent of magnitude
type DistanceKind string

const (
	// Euclidean (L2) distance measures the straight-line distance between two points.
	// Use this when the magnitude of features matters.
	// Formula: sqrt(sum((a[i] - b[i])^2))
	Euclidean DistanceKind = "l2"

	// SquaredEuclidean distance measures the squared straight-line distance.
	// This is faster than L2 as it avoids the sqrt operation, and ordering
	// is preserved, so nearest-centroid assignment is unchanged.
	// This is the standard metric for k-means and the one the reported
	// cost (WCSS) always uses.
	// Formula: sum((a[i] - b[i])^2)
	SquaredEuclidean DistanceKind = "l2_squared"

	// Cosine distance measures the angular difference between points (1 - cosine similarity).
	// Use this when you care about direction but not magnitude (e.g., normalized
	// feature vectors). Zero vectors have no direction and are treated as
	// orthogonal to everything (distance 1).
	// Formula: 1 - (dot(a,b) / (||a|| * ||b||))
	// Range: [0, 2] where 0 = identical direction, 1 = orthogonal, 2 = opposite
	Cosine DistanceKind = "cosine"
)

// Singleton instances of distance strategies.
// These are stateless and can be safely reused across goroutines.
var (
	euclideanDistanceImpl        = euclidean{}
	squaredEuclideanDistanceImpl = squaredEuclidean{}
	cosineDistanceImpl           = cosine{}
)

// Distance is the interface for computing distances between points.
// Implementations provide different distance metrics for cluster assignment.
type Distance interface {
	// Kind returns the kind of distance metric.
	Kind() DistanceKind

	// Calculate computes the distance between two points a and b.
	// The points must have the same dimensionality.
	// Returns a float64 representing the distance (lower values = more similar).
	Calculate(a, b []float64) float64
}

// NewDistance returns a singleton Distance implementation for the specified metric type.
// The returned instances are stateless and safe for concurrent use across goroutines.
// Returns ErrUnknownDistanceKind if the distance kind is not recognized.
//
// Example:
//
//	dist, err := NewDistance(SquaredEuclidean)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d := dist.Calculate([]float64{1, 2, 3}, []float64{4, 5, 6})
func NewDistance(t DistanceKind) (Distance, error) {
	switch t {
	case Euclidean:
		return euclideanDistanceImpl, nil
	case SquaredEuclidean:
		return squaredEuclideanDistanceImpl, nil
	case Cosine:
		return cosineDistanceImpl, nil
	default:
		return nil, ErrUnknownDistanceKind
	}
}

// euclidean implements the Distance interface using Euclidean (L2) distance.
// This measures the straight-line distance between two points in n-dimensional space.
type euclidean struct{}

func (e euclidean) Kind() DistanceKind {
	return Euclidean
}

// Calculate computes the Euclidean (L2) distance between two points.
// Formula: sqrt(sum((a[i] - b[i])^2))
// Time complexity: O(n) where n is the point dimension
func (e euclidean) Calculate(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// squaredEuclidean implements the Distance interface using squared Euclidean (L2²) distance.
// Ordering is identical to euclidean distance, so cluster assignments are identical,
// but each comparison skips the sqrt.
type squaredEuclidean struct{}

func (s squaredEuclidean) Kind() DistanceKind {
	return SquaredEuclidean
}

// Calculate computes the squared Euclidean (L2²) distance between two points.
// Formula: sum((a[i] - b[i])^2)
// Time complexity: O(n) where n is the point dimension
func (s squaredEuclidean) Calculate(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// cosine implements the Distance interface using cosine distance.
// This measures angular difference between points, independent of their magnitude.
type cosine struct{}

func (c cosine) Kind() DistanceKind {
	return Cosine
}

// Calculate computes the cosine distance between two points.
// Points do not need to be pre-normalized; norms are computed per call.
// If either point is the zero vector its direction is undefined and the
// distance is reported as 1 (orthogonal).
// Formula: 1 - dot(a,b) / (||a|| * ||b||)
// Time complexity: O(n) where n is the point dimension
func (c cosine) Calculate(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 1
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Clamp to [-1, 1] to handle floating point precision errors
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}

	return 1 - sim
}

// ============================================================================
// Public utility functions
// ============================================================================

// Norm computes the L2 norm (Euclidean length/magnitude) of a point.
// This represents the "length" of the point from the origin in n-dimensional space.
//
// Formula: sqrt(sum(v[i]^2))
//
// Example:
//
//	v := []float64{3, 4}
//	length := Norm(v)  // Returns 5.0 (3²+4² = 25, sqrt(25) = 5)
//
// Time complexity: O(n) where n is the point dimension
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalize returns a new point with the same direction as v but with unit
// length (magnitude = 1). The original point is not modified.
//
// Special case:
//   - If the input is a zero vector (all elements are 0), a copy is returned
//     unchanged to avoid division by zero and NaN values
//
// Formula: result = v / ||v|| where ||v|| is the L2 norm
//
// Example:
//
//	v := []float64{3, 4}
//	unit := Normalize(v)  // Returns [0.6, 0.8] (magnitude = 1)
//
// Time complexity: O(n) where n is the point dimension
func Normalize(v []float64) []float64 {
	norm := Norm(v)

	result := make([]float64, len(v))
	if norm == 0 {
		copy(result, v)
		return result
	}

	scale := 1.0 / norm
	for i := range v {
		result[i] = v[i] * scale
	}
	return result
}
