package dataset

import "github.com/hfoxfagundes/social-media-dashboard/internal/models"

// Accepted values of the academic impact flag.
const (
	AcademicImpactYes = "Yes"
	AcademicImpactNo  = "No"
)

// CategorizeMentalHealth bands a score: <=3 Poor, <=6 Fair, <=8 Good, otherwise Excellent.
// Scores outside 1..10 fall into the outer bands.
func CategorizeMentalHealth(score float64) models.MentalHealthCategory {
	switch {
	case score <= 3:
		return models.MentalHealthPoor
	case score <= 6:
		return models.MentalHealthFair
	case score <= 8:
		return models.MentalHealthGood
	default:
		return models.MentalHealthExcellent
	}
}

// EncodeAcademicImpact maps "Yes" to 1 and "No" to 0. Any other value, missing
// included, yields a missing result rather than 0.
func EncodeAcademicImpact(flag models.OptionalString) models.OptionalInt {
	value, ok := flag.Get()
	if !ok {
		return models.OptionalInt{}
	}

	switch value {
	case AcademicImpactYes:
		return models.SomeInt(1)
	case AcademicImpactNo:
		return models.SomeInt(0)
	default:
		return models.OptionalInt{}
	}
}

// derive fills the computed columns. A missing score leaves the category unset.
func derive(record *models.StudentRecord) {
	if score, ok := record.MentalHealthScore.Get(); ok {
		record.MentalHealthCategory = CategorizeMentalHealth(score)
	}
	record.AffectsAcademicPerformanceBinary = EncodeAcademicImpact(record.AffectsAcademicPerformance)
}
