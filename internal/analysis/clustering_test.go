package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hfoxfagundes/social-media-dashboard/internal/dataset"
	"github.com/hfoxfagundes/social-media-dashboard/internal/models"
)

func syntheticTable(valid int, missing int) *dataset.Table {
	records := make([]models.StudentRecord, 0, valid+missing)
	for i := 0; i < valid; i++ {
		records = append(records, models.StudentRecord{
			AvgDailyUsageHours: models.SomeFloat(float64(i%50) / 5),
			MentalHealthScore:  models.SomeFloat(float64(1 + (i*7)%10)),
		})
	}
	for i := 0; i < missing; i++ {
		record := models.StudentRecord{AvgDailyUsageHours: models.SomeFloat(3)}
		if i%2 == 0 {
			record = models.StudentRecord{MentalHealthScore: models.SomeFloat(5)}
		}
		records = append(records, record)
	}
	return dataset.NewTable(nil, records)
}

func TestClusterLabelsEverySurvivingRow(t *testing.T) {
	table := syntheticTable(500, 20)

	result, err := ClusterUsageAndMentalHealth(table, 4, NewKMeans(DefaultSeed))
	require.NoError(t, err)
	require.Equal(t, 4, result.K)
	require.Len(t, result.Assignments, 500)
	for _, assignment := range result.Assignments {
		require.GreaterOrEqual(t, assignment.Cluster, 0)
		require.Less(t, assignment.Cluster, 4)
	}
}

func TestClusterIsReproducible(t *testing.T) {
	table := syntheticTable(500, 0)

	first, err := ClusterUsageAndMentalHealth(table, 4, NewKMeans(DefaultSeed))
	require.NoError(t, err)
	second, err := ClusterUsageAndMentalHealth(table, 4, NewKMeans(DefaultSeed))
	require.NoError(t, err)

	require.Equal(t, first.Assignments, second.Assignments)
}

func TestClusterDropsNonFiniteRows(t *testing.T) {
	records := []models.StudentRecord{
		{AvgDailyUsageHours: models.SomeFloat(math.Inf(1)), MentalHealthScore: models.SomeFloat(5)},
		{AvgDailyUsageHours: models.SomeFloat(2), MentalHealthScore: models.SomeFloat(math.NaN())},
		{AvgDailyUsageHours: models.SomeFloat(1), MentalHealthScore: models.SomeFloat(3)},
		{AvgDailyUsageHours: models.SomeFloat(2), MentalHealthScore: models.SomeFloat(4)},
		{AvgDailyUsageHours: models.SomeFloat(8), MentalHealthScore: models.SomeFloat(9)},
	}

	result, err := ClusterUsageAndMentalHealth(dataset.NewTable(nil, records), 2, NewKMeans(DefaultSeed))
	require.NoError(t, err)
	require.Len(t, result.Assignments, 3)
	for _, assignment := range result.Assignments {
		require.False(t, math.IsInf(assignment.AvgDailyUsageHours, 0))
		require.False(t, math.IsNaN(assignment.MentalHealthScore))
	}
}

func TestClusterLoadedNonFiniteCellsAreDropped(t *testing.T) {
	input := strings.Join([]string{
		"Academic_Level,Country,Avg_Daily_Usage_Hours,Most_Used_Platform,Affects_Academic_Performance,Sleep_Hours_Per_Night,Mental_Health_Score,Relationship_Status,Conflicts_Over_Social_Media,Addicted_Score",
		"Graduate,US,inf,Instagram,No,7,6,Single,1,3",
		"Graduate,US,3,Instagram,No,7,NAN,Single,1,3",
		"Graduate,US,1,Instagram,No,7,3,Single,1,3",
		"Graduate,US,2,Instagram,No,7,4,Single,1,3",
		"Graduate,US,8,Instagram,No,7,9,Single,1,3",
	}, "\n")
	table, err := dataset.Parse(strings.NewReader(input))
	require.NoError(t, err)

	result, err := ClusterUsageAndMentalHealth(table, 2, NewKMeans(DefaultSeed))
	require.NoError(t, err)
	require.Len(t, result.Assignments, 3)
}

func TestClusterNotEnoughData(t *testing.T) {
	table := syntheticTable(2, 6)

	result, err := ClusterUsageAndMentalHealth(table, 4, NewKMeans(DefaultSeed))
	require.ErrorIs(t, err, ErrNotEnoughData)
	require.Nil(t, result)
}

func TestClusterRejectsOutOfRangeK(t *testing.T) {
	table := syntheticTable(50, 0)

	for _, k := range []int{-1, 0, 1, 11} {
		_, err := ClusterUsageAndMentalHealth(table, k, NewKMeans(DefaultSeed))
		require.ErrorIs(t, err, ErrInvalidClusterCount, "k=%d", k)
	}
}

type constantPartitioner struct {
	label int
	short bool
}

func (p constantPartitioner) Partition(points []Point, _ int) ([]int, error) {
	size := len(points)
	if p.short {
		size--
	}
	labels := make([]int, size)
	for i := range labels {
		labels[i] = p.label
	}
	return labels, nil
}

func TestClusterUsesInjectedPartitioner(t *testing.T) {
	table := syntheticTable(10, 0)

	result, err := ClusterUsageAndMentalHealth(table, 2, constantPartitioner{label: 1})
	require.NoError(t, err)
	for _, assignment := range result.Assignments {
		require.Equal(t, 1, assignment.Cluster)
	}

	_, err = ClusterUsageAndMentalHealth(table, 2, constantPartitioner{short: true})
	require.Error(t, err)
}

func TestClusterResultFrame(t *testing.T) {
	result := &ClusterResult{K: 2, Assignments: []ClusterAssignment{
		{AvgDailyUsageHours: 2.5, MentalHealthScore: 7, Cluster: 1},
	}}

	require.Equal(t, 1, result.Len())
	usage, ok := result.Number(0, models.ColumnAvgDailyUsageHours)
	require.True(t, ok)
	require.Equal(t, 2.5, usage)
	label, ok := result.Label(0, models.ColumnCluster)
	require.True(t, ok)
	require.Equal(t, "1", label)
	_, ok = result.Label(0, models.ColumnCountry)
	require.False(t, ok)
	_, ok = result.Number(3, models.ColumnMentalHealthScore)
	require.False(t, ok)
}
