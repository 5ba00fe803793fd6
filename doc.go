/*
Package lloyd provides centroid-based clustering (k-means) for Go.

Lloyd implements the classic alternating assignment/update iteration behind
k-means, together with the elbow-method sweep used to choose a cluster count.
It is built for developers who want to understand how k-means works from the
inside out: every step of the algorithm is documented where it is implemented.

# Quick Start

Cluster a dataset into k groups:

	package main

	import (
	    "fmt"
	    "log"

	    "github.com/wizenheimer/lloyd"
	)

	func main() {
	    dataset := [][]float64{
	        {1, 1}, {1, 2},
	        {10, 10}, {10, 11},
	    }

	    result, err := lloyd.NewKMeans(2).
	        WithMaxIterations(100).
	        WithTolerance(1e-4).
	        WithSeed(42).
	        Fit(dataset)
	    if err != nil {
	        log.Fatal(err)
	    }

	    for i, cluster := range result.Assignments {
	        fmt.Printf("point %d -> cluster %d\n", i, cluster)
	    }
	    fmt.Printf("cost (WCSS): %.2f\n", result.Cost)
	}

# Choosing k with the Elbow Method

The cost (within-cluster sum of squares, WCSS) always decreases as k grows, so
more clusters is not automatically better. The elbow method runs the clusterer
once per candidate k and looks for the point where the marginal cost reduction
flattens:

	curve, err := lloyd.NewSweep(1, 10).
	    WithSeed(42).
	    Run(dataset)
	if err != nil {
	    log.Fatal(err)
	}

	for _, point := range curve {
	    fmt.Printf("k=%d cost=%.2f\n", point.K, point.Cost)
	}

Selection is deliberately manual: plot the curve and pick the elbow. For
callers that want a heuristic starting point, Knee applies normalized
difference-curve detection to the sweep output:

	k := lloyd.Knee(curve)

# Feature Standardization

K-means is distance-based, so features on large scales dominate features on
small scales. Standardize (zero mean, unit variance per feature) before
clustering when features use different units:

	scaler := lloyd.NewStandardizer()
	scaled, err := scaler.FitTransform(dataset)

	// Later, scale a new point the same way before Predict.
	point, err := scaler.TransformPoint([]float64{35, 54000})

# Initialization Policies

Three centroid initialization strategies are supported:

RandomSample: Sample k distinct points from the dataset (the default).
Deterministic for a fixed seed.

	lloyd.NewKMeans(4).WithInitialization(lloyd.RandomSample)

PlusPlus: k-means++ seeding. Spreads initial centroids by sampling points with
probability proportional to their squared distance from already chosen
centroids. Slower to initialize, usually converges in fewer iterations.

	lloyd.NewKMeans(4).WithInitialization(lloyd.PlusPlus)

UniformSpacing: Pick every (n/k)-th point. Fully deterministic, independent of
the seed. Useful in tests and for pre-sorted data.

	lloyd.NewKMeans(4).WithInitialization(lloyd.UniformSpacing)

# Distance Metrics

SquaredEuclidean is the default and the metric the reported cost always uses.
Euclidean produces identical clusterings (ordering is preserved) at the price
of a square root per comparison. Cosine assigns by direction instead of
magnitude, which suits L2-normalized feature vectors.

	lloyd.NewKMeans(4).WithDistanceKind(lloyd.Cosine)

# Determinism and Reproducibility

Every run owns its random source, seeded explicitly through WithSeed. There is
no package-level random state: two calls with identical inputs and seeds yield
identical assignments, centroids, and cost. The default seed is fixed, so runs
are reproducible even when no seed is supplied.

# Convergence

A run converges when the summed displacement of all centroids in one update
step drops to the configured tolerance or below. Exhausting the iteration
budget first is not an error: the result is still valid, Result.Converged is
simply false. Use Result.Iterations to see how much of the budget was spent.

# Concurrency

A single Fit call is synchronous and self-contained. Runs share no mutable
state, so different goroutines may run Fit concurrently on the same dataset.
The elbow sweep exploits this: WithParallelism fans the per-k runs out across
a bounded group of goroutines, and the result is identical to the sequential
sweep.

# Use Cases

Customer Segmentation: Group customers by spending behavior, income, or
engagement features to target campaigns per segment.

Color Quantization: Cluster pixel colors to reduce an image palette to k
representative colors.

Anomaly Detection: Points far from every learned centroid are candidates for
outliers; use Result.Predict plus a distance threshold.

Vector Index Partitioning: Learned centroids define Voronoi partitions for
inverted-file style approximate nearest neighbor search.

# License

MIT License - Copyright (c) 2025 wizenheimer
*/
package lloyd
