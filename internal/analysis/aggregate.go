package analysis

import (
	"sort"

	"github.com/hfoxfagundes/social-media-dashboard/internal/dataset"
	"github.com/hfoxfagundes/social-media-dashboard/internal/models"
)

// CountryUsage is the mean daily usage of one country's students.
type CountryUsage struct {
	Country            string  `json:"country"`
	AvgDailyUsageHours float64 `json:"avg_daily_usage_hours"`
	Students           int     `json:"students"`
}

// CountryUsageTable is the grouped result, ordered by country name.
type CountryUsageTable []CountryUsage

// MeanUsageByCountry groups rows by country and averages daily usage. Rows
// missing either field are skipped, so a country only appears when it has at
// least one usage value.
func MeanUsageByCountry(table *dataset.Table) CountryUsageTable {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for i := 0; i < table.Len(); i++ {
		country, ok := table.Label(i, models.ColumnCountry)
		if !ok {
			continue
		}
		usage, ok := table.Number(i, models.ColumnAvgDailyUsageHours)
		if !ok {
			continue
		}
		sums[country] += usage
		counts[country]++
	}

	result := make(CountryUsageTable, 0, len(counts))
	for country, count := range counts {
		result = append(result, CountryUsage{
			Country:            country,
			AvgDailyUsageHours: sums[country] / float64(count),
			Students:           count,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Country < result[j].Country })

	return result
}

// Len implements chart.Frame.
func (t CountryUsageTable) Len() int {
	return len(t)
}

// Number implements chart.Frame.
func (t CountryUsageTable) Number(row int, column string) (float64, bool) {
	if row < 0 || row >= len(t) || column != models.ColumnAvgDailyUsageHours {
		return 0, false
	}
	return t[row].AvgDailyUsageHours, true
}

// Label implements chart.Frame.
func (t CountryUsageTable) Label(row int, column string) (string, bool) {
	if row < 0 || row >= len(t) || column != models.ColumnCountry {
		return "", false
	}
	return t[row].Country, true
}
