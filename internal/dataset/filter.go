package dataset

import (
	"strings"

	"github.com/hfoxfagundes/social-media-dashboard/internal/models"
)

// AllOption is the select-box sentinel that disables a filter.
const AllOption = "All"

// Selection is the set of category values a filter keeps. The zero value keeps
// every row; a restricted selection with no values keeps none.
type Selection struct {
	restricted bool
	values     []string
}

// SelectAll returns the identity selection.
func SelectAll() Selection {
	return Selection{}
}

// SelectValues restricts a filter to exactly the given values.
func SelectValues(values ...string) Selection {
	return Selection{restricted: true, values: append([]string(nil), values...)}
}

// SelectOption converts a single-select control value. "All" and the empty
// string select everything.
func SelectOption(option string) Selection {
	if option == "" || option == AllOption {
		return SelectAll()
	}
	return SelectValues(option)
}

// ParseCountryList reads comma-separated free text. Tokens are trimmed and empty
// tokens dropped; an empty input selects every country.
func ParseCountryList(input string) Selection {
	if input == "" {
		return SelectAll()
	}

	parts := strings.Split(input, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return SelectValues(values...)
}

// IsAll reports whether the selection is the identity.
func (s Selection) IsAll() bool {
	return !s.restricted
}

// Values returns the selected values; nil for the identity selection.
func (s Selection) Values() []string {
	if !s.restricted {
		return nil
	}
	return append([]string(nil), s.values...)
}

// Matches reports whether a cell passes the selection. Missing cells only pass
// the identity selection.
func (s Selection) Matches(value string, present bool) bool {
	if !s.restricted {
		return true
	}
	if !present {
		return false
	}
	for _, candidate := range s.values {
		if candidate == value {
			return true
		}
	}
	return false
}

// FilterCountries keeps rows whose country is selected.
func FilterCountries(table *Table, selection Selection) *Table {
	return filterColumn(table, models.ColumnCountry, selection)
}

// FilterRelationshipStatus keeps rows whose relationship status is selected.
func FilterRelationshipStatus(table *Table, selection Selection) *Table {
	return filterColumn(table, models.ColumnRelationshipStatus, selection)
}

// FilterAcademicLevel keeps rows whose academic level is selected.
func FilterAcademicLevel(table *Table, selection Selection) *Table {
	return filterColumn(table, models.ColumnAcademicLevel, selection)
}

// filterColumn returns the input table itself for the identity selection.
func filterColumn(table *Table, column string, selection Selection) *Table {
	if selection.IsAll() {
		return table
	}
	return table.Where(func(record models.StudentRecord) bool {
		return selection.Matches(record.Label(column))
	})
}
