// Package validation collects per-field form errors as i18n codes.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/diewo77/go-missions/internal/mission"
)

// Violations maps a form field to an i18n code. Only the first problem of a
// field is kept.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Required flags blank values.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "required")
	}
}

// MaxLen flags values longer than max runes.
func MaxLen(field, value string, max int, v Violations) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		v.add(field, "too_long")
	}
}

// Date flags non-empty values that are not a date.
func Date(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, ok := mission.ParseDate(value); !ok {
		v.add(field, "invalid_date")
	}
}

// DateRange flags an end date before the start date. Same-day ranges are valid.
func DateRange(startField, start, endField, end string, v Violations) {
	s, okS := mission.ParseDate(start)
	e, okE := mission.ParseDate(end)
	if okS && okE && e.Before(s) {
		v.add(endField, "invalid_range")
	}
}

// NonEmptyIDs flags an empty selection.
func NonEmptyIDs(field string, ids []uint, v Violations) {
	if len(ids) == 0 {
		v.add(field, "required")
	}
}
