package analysis

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/hfoxfagundes/social-media-dashboard/internal/dataset"
	"github.com/hfoxfagundes/social-media-dashboard/internal/models"
)

// Bounds of the user-selectable cluster count.
const (
	MinClusters     = 2
	MaxClusters     = 10
	DefaultClusters = 4
)

var (
	// ErrNotEnoughData means fewer usable rows than requested clusters.
	ErrNotEnoughData = errors.New("not enough data for clustering")
	// ErrInvalidClusterCount means k is outside [MinClusters, MaxClusters].
	ErrInvalidClusterCount = errors.New("invalid cluster count")
)

// ClusterAssignment is one surviving row and its group label.
type ClusterAssignment struct {
	AvgDailyUsageHours float64 `json:"avg_daily_usage_hours"`
	MentalHealthScore  float64 `json:"mental_health_score"`
	Cluster            int     `json:"cluster"`
}

// ClusterResult holds the rows that had both features, each with a label in [0, K).
type ClusterResult struct {
	K           int                 `json:"k"`
	Assignments []ClusterAssignment `json:"assignments"`
}

// ClusterUsageAndMentalHealth partitions students by daily usage and mental
// health score. Rows missing either feature are dropped before the row count is
// compared with k.
func ClusterUsageAndMentalHealth(table *dataset.Table, k int, partitioner Partitioner) (*ClusterResult, error) {
	if k < MinClusters || k > MaxClusters {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidClusterCount, k, MinClusters, MaxClusters)
	}

	points := make([]Point, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		usage, ok := table.Number(i, models.ColumnAvgDailyUsageHours)
		if !ok {
			continue
		}
		score, ok := table.Number(i, models.ColumnMentalHealthScore)
		if !ok || !finite(usage) || !finite(score) {
			continue
		}
		points = append(points, Point{X: usage, Y: score})
	}

	if len(points) < k {
		return nil, ErrNotEnoughData
	}

	labels, err := partitioner.Partition(points, k)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	if len(labels) != len(points) {
		return nil, fmt.Errorf("partition returned %d labels for %d rows", len(labels), len(points))
	}

	assignments := make([]ClusterAssignment, len(points))
	for i, p := range points {
		assignments[i] = ClusterAssignment{
			AvgDailyUsageHours: p.X,
			MentalHealthScore:  p.Y,
			Cluster:            labels[i],
		}
	}

	return &ClusterResult{K: k, Assignments: assignments}, nil
}

// Len implements chart.Frame.
func (r *ClusterResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Assignments)
}

// Number implements chart.Frame.
func (r *ClusterResult) Number(row int, column string) (float64, bool) {
	if row < 0 || row >= r.Len() {
		return 0, false
	}
	assignment := r.Assignments[row]
	switch column {
	case models.ColumnAvgDailyUsageHours:
		return assignment.AvgDailyUsageHours, true
	case models.ColumnMentalHealthScore:
		return assignment.MentalHealthScore, true
	case models.ColumnCluster:
		return float64(assignment.Cluster), true
	}
	return 0, false
}

// Label implements chart.Frame. Cluster labels render as categories.
func (r *ClusterResult) Label(row int, column string) (string, bool) {
	if row < 0 || row >= r.Len() || column != models.ColumnCluster {
		return "", false
	}
	return strconv.Itoa(r.Assignments[row].Cluster), true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
