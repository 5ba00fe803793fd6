package lloyd

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrNotFitted is returned when Transform is called before Fit.
var ErrNotFitted = errors.New("standardizer has not been fitted")

// Standardizer rescales each feature (column) to zero mean and unit variance.
//
// WHY STANDARDIZE?
// K-means assigns points by distance, and distance treats every feature
// equally. Raw customer data rarely does: annual income in the tens of
// thousands dwarfs age in the tens, so an unstandardized clustering is
// effectively a clustering on income alone. Standardizing puts every feature
// on the same scale before the distances are computed.
//
// For each feature j with mean μ_j and standard deviation σ_j learned from
// the fitted dataset:
//
//	scaled[i][j] = (raw[i][j] - μ_j) / σ_j
//
// Constant features (σ_j = 0, including single-point datasets) carry no
// distance information either way; they are centered but left unscaled to
// avoid dividing by zero.
//
// Fit learns the column statistics; Transform applies them. Keeping the two
// separate matters for prediction: a new point must be scaled with the
// statistics of the data the model was fitted on, not its own.
//
//	scaler := NewStandardizer()
//	scaled, err := scaler.FitTransform(customers)
//	result, err := NewKMeans(4).Fit(scaled)
//
//	// Label a new customer with the same scaling.
//	point, err := scaler.TransformPoint(newCustomer)
//	cluster, err := result.Predict(point)
//
// A fitted Standardizer is immutable and safe for concurrent Transform calls.
type Standardizer struct {
	means   []float64
	stddevs []float64
	fitted  bool
}

// NewStandardizer creates an unfitted Standardizer.
func NewStandardizer() *Standardizer {
	return &Standardizer{}
}

// Fit learns the per-feature mean and standard deviation from the dataset.
// Refitting replaces the previous statistics.
func (s *Standardizer) Fit(dataset [][]float64) error {
	dim, err := validateDataset(dataset)
	if err != nil {
		return err
	}

	s.means = make([]float64, dim)
	s.stddevs = make([]float64, dim)

	column := make([]float64, len(dataset))
	for j := 0; j < dim; j++ {
		for i, point := range dataset {
			column[i] = point[j]
		}

		mean, stddev := stat.MeanStdDev(column, nil)
		s.means[j] = mean
		// Single-point columns have an undefined sample deviation;
		// treat them like any other constant column.
		if len(column) < 2 {
			stddev = 0
		}
		s.stddevs[j] = stddev
	}

	s.fitted = true
	return nil
}

// Transform returns a standardized copy of the dataset using the fitted
// statistics. The input is never modified.
//
// Returns ErrNotFitted before Fit, or ErrDimensionMismatch when the dataset's
// dimensionality differs from the fitted one.
func (s *Standardizer) Transform(dataset [][]float64) ([][]float64, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}

	if _, err := validateDataset(dataset); err != nil {
		return nil, err
	}

	scaled := make([][]float64, len(dataset))
	for i, point := range dataset {
		p, err := s.TransformPoint(point)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		scaled[i] = p
	}
	return scaled, nil
}

// TransformPoint returns a standardized copy of a single point using the
// fitted statistics. This is the path for scaling unseen data before
// Result.Predict.
func (s *Standardizer) TransformPoint(point []float64) ([]float64, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}

	if len(point) != len(s.means) {
		return nil, fmt.Errorf("%w: point has dimension %d, expected %d",
			ErrDimensionMismatch, len(point), len(s.means))
	}

	scaled := make([]float64, len(point))
	for j, value := range point {
		scaled[j] = value - s.means[j]
		if s.stddevs[j] != 0 {
			scaled[j] /= s.stddevs[j]
		}
	}
	return scaled, nil
}

// FitTransform fits the standardizer on the dataset and returns the
// standardized copy in one call.
func (s *Standardizer) FitTransform(dataset [][]float64) ([][]float64, error) {
	if err := s.Fit(dataset); err != nil {
		return nil, err
	}
	return s.Transform(dataset)
}

// Means returns a copy of the fitted per-feature means, or nil before Fit.
func (s *Standardizer) Means() []float64 {
	if !s.fitted {
		return nil
	}
	return clonePoint(s.means)
}

// StdDevs returns a copy of the fitted per-feature standard deviations, or
// nil before Fit.
func (s *Standardizer) StdDevs() []float64 {
	if !s.fitted {
		return nil
	}
	return clonePoint(s.stddevs)
}
