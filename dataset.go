package lloyd

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a dataset contains no points.
var ErrEmptyDataset = errors.New("dataset must contain at least one point")

// ErrDimensionMismatch is returned when points in a dataset (or a query point)
// do not all share the same dimensionality.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// ErrInvalidClusterCount is returned when k is not in the valid range [1, n]
// where n is the number of points in the dataset.
var ErrInvalidClusterCount = errors.New("invalid cluster count")

// ErrInvalidMaxIterations is returned when the iteration budget is not positive.
var ErrInvalidMaxIterations = errors.New("max iterations must be positive")

// ErrInvalidTolerance is returned when the convergence tolerance is negative.
var ErrInvalidTolerance = errors.New("tolerance must be non-negative")

// validateDataset checks that the dataset is non-empty, that no point is
// empty, and that every point shares the same dimensionality.
//
// Returns the common dimensionality on success.
//
// The dataset is treated as immutable everywhere in this package: validation,
// initialization, and clustering never write to it.
func validateDataset(dataset [][]float64) (int, error) {
	if len(dataset) == 0 {
		return 0, ErrEmptyDataset
	}

	dim := len(dataset[0])
	if dim == 0 {
		return 0, fmt.Errorf("%w: point 0 has no features", ErrDimensionMismatch)
	}

	for i, point := range dataset {
		if len(point) != dim {
			return 0, fmt.Errorf("%w: point %d has dimension %d, expected %d",
				ErrDimensionMismatch, i, len(point), dim)
		}
	}

	return dim, nil
}

// clonePoint returns an independent copy of a point.
// Centroids are always cloned out of the dataset so that centroid updates
// never write through to caller-owned memory.
func clonePoint(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
