package lloyd

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"
)

// Result is the outcome of a single clustering run.
//
// It captures the final state frozen at termination: one cluster per
// centroid, one cluster index per point, and the final cost. A Result is
// immutable after Fit returns and safe for concurrent reads.
type Result struct {
	// Centroids holds the final cluster representatives, one per cluster,
	// indexed by cluster index. Each centroid is the coordinate-wise mean
	// of the points assigned to it (or its initial position, if the
	// cluster ended the run empty).
	Centroids [][]float64

	// Assignments maps each point index to its cluster index in [0, k).
	// Every point belongs to exactly one cluster.
	Assignments []int

	// Cost is the within-cluster sum of squares (WCSS): the summed
	// squared Euclidean distance from every point to its assigned
	// centroid. Always measured in squared Euclidean regardless of the
	// assignment metric, so costs are comparable across runs.
	Cost float64

	// Iterations is the number of assignment/update iterations executed.
	Iterations int

	// Converged reports whether the run met the convergence tolerance
	// before exhausting the iteration budget. A false value is not an
	// error, only a weaker guarantee on optimality.
	Converged bool

	// distance is the assignment metric of the run, reused by Predict so
	// new points are labeled the same way training points were.
	distance Distance

	// members holds one compressed bitmap of point indices per cluster.
	members []*roaring.Bitmap
}

// K returns the number of clusters in the result.
func (r *Result) K() int {
	return len(r.Centroids)
}

// Members returns the set of point indices assigned to the given cluster as
// a roaring bitmap. The returned bitmap is a copy; callers may modify it
// freely (intersect segments, diff two runs) without affecting the result.
//
// Returns an error if the cluster index is out of range.
//
// Example:
//
//	highValue, _ := result.Members(2)
//	churned, _ := previous.Members(0)
//	atRisk := roaring.And(highValue, churned)
func (r *Result) Members(cluster int) (*roaring.Bitmap, error) {
	if cluster < 0 || cluster >= len(r.members) {
		return nil, fmt.Errorf("%w: cluster %d not in [0, %d)", ErrInvalidClusterCount, cluster, len(r.members))
	}
	return r.members[cluster].Clone(), nil
}

// ClusterSizes returns the number of points in each cluster, indexed by
// cluster index. The sizes always sum to the number of points.
func (r *Result) ClusterSizes() []int {
	sizes := make([]int, len(r.members))
	for i, bitmap := range r.members {
		sizes[i] = int(bitmap.GetCardinality())
	}
	return sizes
}

// Predict assigns a new point to its nearest learned centroid, using the
// same distance metric the run was fitted with. The model itself is not
// modified; this is how a fitted segmentation labels unseen data.
//
// Returns the cluster index, or an error if the point's dimensionality does
// not match the centroids.
//
// Time Complexity: O(k × dim)
func (r *Result) Predict(point []float64) (int, error) {
	if len(point) != len(r.Centroids[0]) {
		return UnassignedCluster, fmt.Errorf("%w: point has dimension %d, expected %d",
			ErrDimensionMismatch, len(point), len(r.Centroids[0]))
	}
	return NearestCentroid(point, r.Centroids, r.distance), nil
}

// NearestCentroid returns the index of the centroid nearest to the point
// under the given distance metric. Ties go to the lowest index, matching the
// assignment step of the clusterer.
//
// Returns UnassignedCluster when centroids is empty.
//
// Time Complexity: O(k × dim)
func NearestCentroid(point []float64, centroids [][]float64, distance Distance) int {
	nearestDistance := math.Inf(1)
	nearestCluster := UnassignedCluster

	for clusterIdx, centroid := range centroids {
		d := distance.Calculate(point, centroid)
		if d < nearestDistance {
			nearestDistance = d
			nearestCluster = clusterIdx
		}
	}

	return nearestCluster
}
