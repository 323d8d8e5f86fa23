package mining

import (
	"fmt"
	"math"
	"math/rand"
)

// ClusteringResult is the outcome of a CLUSTER operation. Table carries the
// input rows with a "cluster" column appended.
type ClusteringResult struct {
	Table          *Table
	K              int
	FeatureColumns []string
	Centers        [][]float64
	ClusterSizes   map[int]int
	Inertia        float64
}

const (
	kmeansSeed     = 42
	kmeansMaxIters = 100
	kmeansRestarts = 10
)

// KMeans clusters the table's numeric columns into k groups with Lloyd's
// algorithm. Features are standardized before clustering; reported centers
// are in the original units. The seed is fixed, so results are reproducible.
func KMeans(t *Table, k int) (*ClusteringResult, error) {
	names, data := t.NumericColumns()
	if len(names) == 0 {
		return nil, fmt.Errorf("no numeric columns found for clustering")
	}
	n := t.RowCount()
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", k)
	}
	if k > n {
		k = n
	}

	points, means, stds := standardize(data, n)

	rng := rand.New(rand.NewSource(kmeansSeed))
	var bestLabels []int
	var bestCenters [][]float64
	bestInertia := math.Inf(1)
	for r := 0; r < kmeansRestarts; r++ {
		labels, centers, inertia := lloyd(points, k, rng)
		if inertia < bestInertia {
			bestLabels, bestCenters, bestInertia = labels, centers, inertia
		}
	}

	sizes := make(map[int]int, k)
	values := make([]any, n)
	for i, label := range bestLabels {
		sizes[label]++
		values[i] = int64(label)
	}

	// Undo standardization so centers read in feature units.
	unscaled := make([][]float64, len(bestCenters))
	for c, center := range bestCenters {
		unscaled[c] = make([]float64, len(center))
		for f, v := range center {
			unscaled[c][f] = v*stds[f] + means[f]
		}
	}

	return &ClusteringResult{
		Table:          t.WithColumn("cluster", values),
		K:              k,
		FeatureColumns: names,
		Centers:        unscaled,
		ClusterSizes:   sizes,
		Inertia:        bestInertia,
	}, nil
}

// standardize converts column-oriented data into row points with zero mean
// and unit variance per feature. Constant features keep std 1 so they do
// not blow up the division.
func standardize(data [][]float64, n int) (points [][]float64, means, stds []float64) {
	features := len(data)
	means = make([]float64, features)
	stds = make([]float64, features)
	for f, column := range data {
		var sum float64
		for _, v := range column {
			sum += v
		}
		mean := sum / float64(n)
		var sq float64
		for _, v := range column {
			sq += (v - mean) * (v - mean)
		}
		std := math.Sqrt(sq / float64(n))
		if std == 0 {
			std = 1
		}
		means[f], stds[f] = mean, std
	}
	points = make([][]float64, n)
	for i := range points {
		points[i] = make([]float64, features)
		for f := range data {
			points[i][f] = (data[f][i] - means[f]) / stds[f]
		}
	}
	return points, means, stds
}

// lloyd runs one k-means pass: random distinct initial centers, then
// assign/update until stable or the iteration cap.
func lloyd(points [][]float64, k int, rng *rand.Rand) ([]int, [][]float64, float64) {
	n := len(points)
	features := len(points[0])

	centers := make([][]float64, k)
	for c, idx := range rng.Perm(n)[:k] {
		centers[c] = append([]float64{}, points[idx]...)
	}

	labels := make([]int, n)
	for iter := 0; iter < kmeansMaxIters; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCenter(p, centers)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, features)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for f, v := range p {
				sums[c][f] += v
			}
		}
		for c := range centers {
			if counts[c] == 0 {
				// Reseed an empty cluster with a random point.
				centers[c] = append([]float64{}, points[rng.Intn(n)]...)
				continue
			}
			for f := range centers[c] {
				centers[c][f] = sums[c][f] / float64(counts[c])
			}
		}
	}

	var inertia float64
	for i, p := range points {
		inertia += squaredDistance(p, centers[labels[i]])
	}
	return labels, centers, inertia
}

func nearestCenter(p []float64, centers [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centers {
		if d := squaredDistance(p, center); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
