package models

import "strconv"

// Column names as they appear in the source CSV header, plus the derived columns.
const (
	ColumnStudentID                  = "Student_ID"
	ColumnAge                        = "Age"
	ColumnGender                     = "Gender"
	ColumnAcademicLevel              = "Academic_Level"
	ColumnCountry                    = "Country"
	ColumnAvgDailyUsageHours         = "Avg_Daily_Usage_Hours"
	ColumnMostUsedPlatform           = "Most_Used_Platform"
	ColumnAffectsAcademicPerformance = "Affects_Academic_Performance"
	ColumnSleepHoursPerNight         = "Sleep_Hours_Per_Night"
	ColumnMentalHealthScore          = "Mental_Health_Score"
	ColumnRelationshipStatus         = "Relationship_Status"
	ColumnConflictsOverSocialMedia   = "Conflicts_Over_Social_Media"
	ColumnAddictedScore              = "Addicted_Score"

	ColumnMentalHealthCategory = "Mental Health Category"
	ColumnAcademicImpactBinary = "Affects_Academic_Performance_Binary"
	ColumnCluster              = "Cluster"
)

// MentalHealthCategory is the banded form of a mental health score.
type MentalHealthCategory string

const (
	MentalHealthPoor      MentalHealthCategory = "Poor"
	MentalHealthFair      MentalHealthCategory = "Fair"
	MentalHealthGood      MentalHealthCategory = "Good"
	MentalHealthExcellent MentalHealthCategory = "Excellent"
)

// MentalHealthCategories lists the bands from worst to best.
var MentalHealthCategories = []MentalHealthCategory{
	MentalHealthPoor,
	MentalHealthFair,
	MentalHealthGood,
	MentalHealthExcellent,
}

// Rank returns the band's position in MentalHealthCategories, or -1 when unset.
func (c MentalHealthCategory) Rank() int {
	for idx, candidate := range MentalHealthCategories {
		if candidate == c {
			return idx
		}
	}
	return -1
}

// Valid reports whether the category is one of the four bands.
func (c MentalHealthCategory) Valid() bool {
	return c.Rank() >= 0
}

// StudentRecord is one survey respondent. The identifier column is never kept.
type StudentRecord struct {
	Age                        OptionalFloat  `json:"age"`
	Gender                     OptionalString `json:"gender"`
	AcademicLevel              OptionalString `json:"academic_level"`
	Country                    OptionalString `json:"country"`
	AvgDailyUsageHours         OptionalFloat  `json:"avg_daily_usage_hours"`
	MostUsedPlatform           OptionalString `json:"most_used_platform"`
	AffectsAcademicPerformance OptionalString `json:"affects_academic_performance"`
	SleepHoursPerNight         OptionalFloat  `json:"sleep_hours_per_night"`
	MentalHealthScore          OptionalFloat  `json:"mental_health_score"`
	RelationshipStatus         OptionalString `json:"relationship_status"`
	ConflictsOverSocialMedia   OptionalFloat  `json:"conflicts_over_social_media"`
	AddictedScore              OptionalFloat  `json:"addicted_score"`

	// Derived once at load time.
	MentalHealthCategory             MentalHealthCategory `json:"mental_health_category,omitempty"`
	AffectsAcademicPerformanceBinary OptionalInt          `json:"affects_academic_performance_binary"`
}

// Number returns the numeric value held in the named column.
func (r StudentRecord) Number(column string) (float64, bool) {
	switch column {
	case ColumnAge:
		return r.Age.Get()
	case ColumnAvgDailyUsageHours:
		return r.AvgDailyUsageHours.Get()
	case ColumnSleepHoursPerNight:
		return r.SleepHoursPerNight.Get()
	case ColumnMentalHealthScore:
		return r.MentalHealthScore.Get()
	case ColumnConflictsOverSocialMedia:
		return r.ConflictsOverSocialMedia.Get()
	case ColumnAddictedScore:
		return r.AddictedScore.Get()
	case ColumnAcademicImpactBinary:
		if value, ok := r.AffectsAcademicPerformanceBinary.Get(); ok {
			return float64(value), true
		}
	}
	return 0, false
}

// Label returns the categorical value held in the named column.
func (r StudentRecord) Label(column string) (string, bool) {
	switch column {
	case ColumnGender:
		return r.Gender.Get()
	case ColumnAcademicLevel:
		return r.AcademicLevel.Get()
	case ColumnCountry:
		return r.Country.Get()
	case ColumnMostUsedPlatform:
		return r.MostUsedPlatform.Get()
	case ColumnAffectsAcademicPerformance:
		return r.AffectsAcademicPerformance.Get()
	case ColumnRelationshipStatus:
		return r.RelationshipStatus.Get()
	case ColumnMentalHealthCategory:
		if r.MentalHealthCategory.Valid() {
			return string(r.MentalHealthCategory), true
		}
	case ColumnAcademicImpactBinary:
		if value, ok := r.AffectsAcademicPerformanceBinary.Get(); ok {
			return strconv.Itoa(value), true
		}
	}
	return "", false
}
