package attendance

import (
	"time"

	"github.com/trezcool/darasa/core"
)

type Status string

// Statuses. Unmarked is never stored: it is the absence of a Record.
const (
	StatusUnmarked Status = ""
	StatusPresent  Status = "present"
	StatusLate     Status = "late"
	StatusAbsent   Status = "absent"
)

// cycle is the order a cell walks through on each click.
var cycle = [...]Status{StatusUnmarked, StatusPresent, StatusLate, StatusAbsent}

func (s Status) Valid() bool {
	for _, st := range cycle {
		if s == st {
			return true
		}
	}
	return false
}

// Next returns the status following s in the click cycle:
// Unmarked -> Present -> Late -> Absent -> Unmarked. Unknown statuses restart the cycle.
func (s Status) Next() Status {
	for i, st := range cycle {
		if s == st {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[1]
}

func (s Status) String() string {
	if s == StatusUnmarked {
		return "unmarked"
	}
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	st := Status(core.CleanString(s, true /* lower */))
	if st == "unmarked" {
		st = StatusUnmarked
	}
	if !st.Valid() {
		return StatusUnmarked, core.NewValidationError(nil, core.FieldError{
			Field: "status",
			Error: "status must be one of present, late, absent or unmarked",
		})
	}
	return st, nil
}

type Record struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Date      time.Time `json:"date"` // calendar day, midnight UTC
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
}

// Cell is the state of one (student, day) cell: Unmarked, Marked or Failed.
type Cell interface {
	isCell()
}

type (
	// Unmarked means no record exists for the cell.
	Unmarked struct{}

	// Marked holds the record stored for the cell.
	Marked struct {
		Record Record
	}

	// Failed means the store rejected the write; the persisted state is whatever it was before.
	Failed struct {
		Err error
	}
)

func (Unmarked) isCell() {}
func (Marked) isCell()   {}
func (Failed) isCell()   {}

// CellOf returns the state of a cell given the locator's answer.
func CellOf(rec Record, found bool) Cell {
	if !found {
		return Unmarked{}
	}
	return Marked{Record: rec}
}

// StatusOf returns the status displayed for c.
func StatusOf(c Cell) Status {
	if m, ok := c.(Marked); ok {
		return m.Record.Status
	}
	return StatusUnmarked
}
