package core

import (
	"errors"
	"sort"
)

type (
	// Entry is a single dated financial record. Ids are assigned by the
	// server and never supplied by clients.
	Entry struct {
		ID              int     `json:"id"`
		Date            string  `json:"date"`
		Checking        float64 `json:"checking"`
		CreditAvailable float64 `json:"creditAvailable"`
		HoursWorked     float64 `json:"hoursWorked"`
		PayPerHour      float64 `json:"payPerHour"`
		OtherIncoming   float64 `json:"otherIncoming"`
		Note            string  `json:"note"`
	}

	// Collection is the complete ordered set of entries, persisted as one
	// JSON document.
	Collection []Entry
)

var (
	ErrMissingDate   = errors.New("missing date")
	ErrInvalidDate   = errors.New("date must be a string")
	ErrInvalidNumber = errors.New("invalid numeric value")
	ErrInvalidNote   = errors.New("note must be a string")
)

// NextID returns 1 + the maximum id among current entries, or 1 when the
// collection is empty. Deleted ids may be reassigned; only the current
// contents matter.
func (c Collection) NextID() int {
	max := 0
	for _, e := range c {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// SortByDate orders entries ascending by date string. The sort is stable,
// so entries sharing a date keep their relative insertion order.
func (c Collection) SortByDate() {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Date < c[j].Date
	})
}

// RemoveByID returns the collection without the entry carrying id and
// whether such an entry existed.
func (c Collection) RemoveByID(id int) (Collection, bool) {
	out := make(Collection, 0, len(c))
	found := false
	for _, e := range c {
		if e.ID == id {
			found = true
			continue
		}
		out = append(out, e)
	}
	return out, found
}
