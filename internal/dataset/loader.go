package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/hfoxfagundes/social-media-dashboard/internal/models"
)

var (
	// ErrEmptyDataset is returned when the source has no header row.
	ErrEmptyDataset = errors.New("dataset has no header row")
	// ErrMissingColumns is returned when a column the panels depend on is absent.
	ErrMissingColumns = errors.New("dataset is missing required columns")
)

// RequiredColumns are the header names the panels read from.
var RequiredColumns = []string{
	models.ColumnAcademicLevel,
	models.ColumnCountry,
	models.ColumnAvgDailyUsageHours,
	models.ColumnMostUsedPlatform,
	models.ColumnAffectsAcademicPerformance,
	models.ColumnSleepHoursPerNight,
	models.ColumnMentalHealthScore,
	models.ColumnRelationshipStatus,
	models.ColumnConflictsOverSocialMedia,
	models.ColumnAddictedScore,
}

// Tokens read as missing values, matching the conventions of common CSV exports.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Load reads the dataset at path. A missing, unreadable or malformed file is an error.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	table, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return table, nil
}

// Parse reads CSV data with a header row, drops the identifier column and
// computes the derived columns.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	columns := make([]string, 0, len(header)+2)
	for i, name := range header {
		name = strings.TrimSpace(name)
		index[name] = i
		if name != models.ColumnStudentID {
			columns = append(columns, name)
		}
	}
	columns = append(columns, models.ColumnMentalHealthCategory, models.ColumnAcademicImpactBinary)

	missing := make([]string, 0)
	for _, name := range RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	records := make([]models.StudentRecord, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		cells := rowReader{row: row, index: index}
		record := models.StudentRecord{
			Age:                        cells.float(models.ColumnAge),
			Gender:                     cells.text(models.ColumnGender),
			AcademicLevel:              cells.text(models.ColumnAcademicLevel),
			Country:                    cells.text(models.ColumnCountry),
			AvgDailyUsageHours:         cells.float(models.ColumnAvgDailyUsageHours),
			MostUsedPlatform:           cells.text(models.ColumnMostUsedPlatform),
			AffectsAcademicPerformance: cells.text(models.ColumnAffectsAcademicPerformance),
			SleepHoursPerNight:         cells.float(models.ColumnSleepHoursPerNight),
			MentalHealthScore:          cells.float(models.ColumnMentalHealthScore),
			RelationshipStatus:         cells.text(models.ColumnRelationshipStatus),
			ConflictsOverSocialMedia:   cells.float(models.ColumnConflictsOverSocialMedia),
			AddictedScore:              cells.float(models.ColumnAddictedScore),
		}
		derive(&record)
		records = append(records, record)
	}

	return &Table{records: records, columns: columns}, nil
}

type rowReader struct {
	row   []string
	index map[string]int
}

func (r rowReader) raw(column string) (string, bool) {
	idx, ok := r.index[column]
	if !ok || idx >= len(r.row) {
		return "", false
	}
	value := r.row[idx]
	if _, isMissing := missingTokens[strings.TrimSpace(value)]; isMissing {
		return "", false
	}
	return value, true
}

func (r rowReader) text(column string) models.OptionalString {
	value, ok := r.raw(column)
	if !ok {
		return models.OptionalString{}
	}
	return models.SomeString(value)
}

// float treats unparsable and non-finite numbers as missing so that one bad cell
// only removes the row from the panels that need that column.
func (r rowReader) float(column string) models.OptionalFloat {
	value, ok := r.raw(column)
	if !ok {
		return models.OptionalFloat{}
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return models.OptionalFloat{}
	}
	return models.SomeFloat(parsed)
}
