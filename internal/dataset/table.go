package dataset

import (
	"github.com/hfoxfagundes/social-media-dashboard/internal/models"
)

// Table is the immutable in-memory dataset. It is built once at startup and
// shared by reference; filters return new tables and never modify the receiver.
type Table struct {
	records []models.StudentRecord
	columns []string
}

// NewTable builds a table from records that already carry their derived columns.
// The records are copied.
func NewTable(columns []string, records []models.StudentRecord) *Table {
	return &Table{
		records: append([]models.StudentRecord(nil), records...),
		columns: append([]string(nil), columns...),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Columns lists the column names available on the table, derived columns last.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.columns...)
}

// Record returns a copy of row i.
func (t *Table) Record(i int) models.StudentRecord {
	return t.records[i]
}

// Records returns a copy of all rows.
func (t *Table) Records() []models.StudentRecord {
	if t == nil {
		return nil
	}
	return append([]models.StudentRecord(nil), t.records...)
}

// Number returns the numeric cell at (row, column).
func (t *Table) Number(row int, column string) (float64, bool) {
	if row < 0 || row >= t.Len() {
		return 0, false
	}
	return t.records[row].Number(column)
}

// Label returns the categorical cell at (row, column).
func (t *Table) Label(row int, column string) (string, bool) {
	if row < 0 || row >= t.Len() {
		return "", false
	}
	return t.records[row].Label(column)
}

// Where returns a new table holding the rows that satisfy keep.
func (t *Table) Where(keep func(models.StudentRecord) bool) *Table {
	filtered := make([]models.StudentRecord, 0, t.Len())
	for _, record := range t.records {
		if keep(record) {
			filtered = append(filtered, record)
		}
	}
	return &Table{records: filtered, columns: t.columns}
}

// Countries returns the distinct observed countries in first-seen order.
func (t *Table) Countries() []string {
	return t.distinct(models.ColumnCountry)
}

// RelationshipStatuses returns the distinct observed relationship statuses.
func (t *Table) RelationshipStatuses() []string {
	return t.distinct(models.ColumnRelationshipStatus)
}

// AcademicLevels returns the distinct observed academic levels.
func (t *Table) AcademicLevels() []string {
	return t.distinct(models.ColumnAcademicLevel)
}

func (t *Table) distinct(column string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for i := 0; i < t.Len(); i++ {
		value, ok := t.records[i].Label(column)
		if !ok {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}
