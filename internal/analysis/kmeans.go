package analysis

import (
	"errors"
	"math"
	"math/rand"
)

// ErrNonFiniteInertia means no run produced a finite within-cluster sum, which
// happens when a point carries NaN or Inf.
var ErrNonFiniteInertia = errors.New("k-means inertia is not finite")

// DefaultSeed keeps partitions reproducible across runs.
const DefaultSeed int64 = 42

// Point is one observation in the two-dimensional feature space.
type Point struct {
	X float64
	Y float64
}

// Partitioner assigns each point one of k group labels in [0, k).
type Partitioner interface {
	Partition(points []Point, k int) ([]int, error)
}

// KMeans is a seeded Lloyd's algorithm with k-means++ initialisation. The run
// with the lowest inertia out of Restarts attempts wins.
type KMeans struct {
	Seed          int64
	MaxIterations int
	Restarts      int
	// Tolerance is relative to the mean per-feature variance of the input.
	Tolerance float64
}

// NewKMeans returns a partitioner with the usual defaults.
func NewKMeans(seed int64) *KMeans {
	return &KMeans{
		Seed:          seed,
		MaxIterations: 300,
		Restarts:      10,
		Tolerance:     1e-4,
	}
}

// Partition clusters points into k groups. The same input, k and seed always
// produce the same labels.
func (m *KMeans) Partition(points []Point, k int) ([]int, error) {
	if k <= 0 {
		return nil, ErrInvalidClusterCount
	}
	if len(points) < k {
		return nil, ErrNotEnoughData
	}

	restarts := m.Restarts
	if restarts <= 0 {
		restarts = 1
	}
	maxIterations := m.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 300
	}
	tolerance := m.Tolerance * meanVariance(points)

	rng := rand.New(rand.NewSource(m.Seed))

	var best []int
	bestInertia := math.Inf(1)
	for run := 0; run < restarts; run++ {
		labels, inertia := lloyd(points, seedCenters(points, k, rng), maxIterations, tolerance)
		if !math.IsNaN(inertia) && inertia < bestInertia {
			best = labels
			bestInertia = inertia
		}
	}
	if best == nil {
		return nil, ErrNonFiniteInertia
	}

	return best, nil
}

// seedCenters picks k initial centers, each drawn with probability proportional
// to its squared distance from the closest center chosen so far.
func seedCenters(points []Point, k int, rng *rand.Rand) []Point {
	n := len(points)
	centers := make([]Point, 0, k)
	centers = append(centers, points[rng.Intn(n)])

	closest := make([]float64, n)
	for i, p := range points {
		closest[i] = squaredDistance(p, centers[0])
	}

	for len(centers) < k {
		total := 0.0
		for _, d := range closest {
			total += d
		}

		pick := rng.Intn(n)
		if total > 0 {
			target := rng.Float64() * total
			cumulative := 0.0
			for i, d := range closest {
				if d == 0 {
					continue
				}
				cumulative += d
				pick = i
				if cumulative >= target {
					break
				}
			}
		}

		center := points[pick]
		centers = append(centers, center)
		for i, p := range points {
			if d := squaredDistance(p, center); d < closest[i] {
				closest[i] = d
			}
		}
	}

	return centers
}

func lloyd(points []Point, centers []Point, maxIterations int, tolerance float64) ([]int, float64) {
	k := len(centers)
	labels := make([]int, len(points))

	for iteration := 0; iteration < maxIterations; iteration++ {
		assign(points, centers, labels)
		next := updateCenters(points, labels, centers)

		shift := 0.0
		for c := 0; c < k; c++ {
			shift += squaredDistance(centers[c], next[c])
		}
		centers = next
		if shift <= tolerance {
			break
		}
	}

	inertia := assign(points, centers, labels)
	return labels, inertia
}

// assign labels each point with its nearest center and returns the inertia.
func assign(points []Point, centers []Point, labels []int) float64 {
	inertia := 0.0
	for i, p := range points {
		bestLabel := 0
		bestDistance := math.Inf(1)
		for c, center := range centers {
			if d := squaredDistance(p, center); d < bestDistance {
				bestDistance = d
				bestLabel = c
			}
		}
		labels[i] = bestLabel
		inertia += bestDistance
	}
	return inertia
}

// updateCenters moves each center to its members' mean. An empty cluster is
// relocated onto the point that is currently worst served by its own center.
func updateCenters(points []Point, labels []int, centers []Point) []Point {
	k := len(centers)
	sums := make([]Point, k)
	counts := make([]int, k)
	for i, p := range points {
		c := labels[i]
		sums[c].X += p.X
		sums[c].Y += p.Y
		counts[c]++
	}

	next := make([]Point, k)
	taken := make(map[int]struct{})
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			next[c] = Point{X: sums[c].X / float64(counts[c]), Y: sums[c].Y / float64(counts[c])}
			continue
		}

		farthest := -1
		farthestDistance := -1.0
		for i, p := range points {
			if _, used := taken[i]; used {
				continue
			}
			if d := squaredDistance(p, centers[labels[i]]); d > farthestDistance {
				farthest = i
				farthestDistance = d
			}
		}
		if farthest < 0 {
			next[c] = centers[c]
			continue
		}
		taken[farthest] = struct{}{}
		next[c] = points[farthest]
	}
	return next
}

func squaredDistance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func meanVariance(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	n := float64(len(points))
	var meanX, meanY float64
	for _, p := range points {
		meanX += p.X
		meanY += p.Y
	}
	meanX /= n
	meanY /= n

	var varX, varY float64
	for _, p := range points {
		varX += (p.X - meanX) * (p.X - meanX)
		varY += (p.Y - meanY) * (p.Y - meanY)
	}
	return (varX/n + varY/n) / 2
}
