// Boundary coercion for entry creation requests.
//
// Request bodies are duck-typed JSON objects. ParseNewEntry turns one into
// a well-formed Entry (without an id) or reports which rule was broken, so
// handlers can map the failure to a 400 without inspecting the body again.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNewEntry builds an Entry (id left zero) from a decoded JSON object.
//
// The date is required: an absent key, JSON null, and an empty string are
// all treated identically as missing. Numeric fields default to 0 when
// absent or null, accept JSON numbers, and coerce numeric strings; any
// other type is rejected. Unknown keys are ignored.
func ParseNewEntry(fields map[string]any) (Entry, error) {
	date, err := requireDate(fields["date"])
	if err != nil {
		return Entry{}, err
	}

	e := Entry{Date: date}
	for name, dst := range map[string]*float64{
		"checking":        &e.Checking,
		"creditAvailable": &e.CreditAvailable,
		"hoursWorked":     &e.HoursWorked,
		"payPerHour":      &e.PayPerHour,
		"otherIncoming":   &e.OtherIncoming,
	} {
		v, err := coerceNumber(fields[name])
		if err != nil {
			return Entry{}, fmt.Errorf("field %q: %w", name, err)
		}
		*dst = v
	}

	if e.Note, err = coerceNote(fields["note"]); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func requireDate(v any) (string, error) {
	if v == nil {
		return "", ErrMissingDate
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrInvalidDate
	}
	if s == "" {
		return "", ErrMissingDate
	}
	return s, nil
}

func coerceNumber(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case string:
		// ParseFloat accepts "NaN" and "Inf", neither of which can live
		// in the stored JSON document.
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, ErrInvalidNumber
		}
		return f, nil
	default:
		return 0, ErrInvalidNumber
	}
}

func coerceNote(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", ErrInvalidNote
	}
}
