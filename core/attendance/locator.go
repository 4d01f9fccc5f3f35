package attendance

import (
	"time"

	"github.com/trezcool/darasa/core/calendar"
)

// Find returns the record of studentID on day. Dates compare by calendar day only.
func Find(records []Record, studentID int, day time.Time) (Record, bool) {
	for _, r := range records {
		if r.StudentID == studentID && calendar.SameDay(r.Date, day) {
			return r, true
		}
	}
	return Record{}, false
}

// StatusFor returns the status shown in the (studentID, day) cell.
func StatusFor(records []Record, studentID int, day time.Time) Status {
	if r, ok := Find(records, studentID, day); ok {
		return r.Status
	}
	return StatusUnmarked
}

// OnDay returns the records dated on day.
func OnDay(records []Record, day time.Time) []Record {
	var out []Record
	for _, r := range records {
		if calendar.SameDay(r.Date, day) {
			out = append(out, r)
		}
	}
	return out
}
