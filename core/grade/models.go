package grade

import (
	"time"
)

type Grade struct {
	ID            int       `json:"id"`
	StudentID     int       `json:"student_id"`
	AssignmentID  int       `json:"assignment_id"`
	Score         *float64  `json:"score"` // nil means not graded
	SubmittedDate time.Time `json:"submitted_date"`
	Comments      string    `json:"comments,omitempty"`
}

func (g Grade) IsGraded() bool { return g.Score != nil }

// Cell is the state of one (student, assignment) cell: Ungraded, Graded or Failed.
type Cell interface {
	isCell()
}

type (
	// Ungraded means no grade exists for the cell.
	Ungraded struct{}

	// Graded holds the grade stored for the cell. Its Score may still be nil.
	Graded struct {
		Grade Grade
	}

	// Failed means the store rejected the write.
	Failed struct {
		Err error
	}
)

func (Ungraded) isCell() {}
func (Graded) isCell()   {}
func (Failed) isCell()   {}

func CellOf(g Grade, found bool) Cell {
	if !found {
		return Ungraded{}
	}
	return Graded{Grade: g}
}

// ScoreOf returns the score displayed in c, if any.
func ScoreOf(c Cell) (float64, bool) {
	if g, ok := c.(Graded); ok && g.Grade.Score != nil {
		return *g.Grade.Score, true
	}
	return 0, false
}

// Find returns the grade of studentID for assignmentID.
func Find(grades []Grade, studentID, assignmentID int) (Grade, bool) {
	for _, g := range grades {
		if g.StudentID == studentID && g.AssignmentID == assignmentID {
			return g, true
		}
	}
	return Grade{}, false
}

// OfStudent returns the grades of studentID.
func OfStudent(grades []Grade, studentID int) []Grade {
	var out []Grade
	for _, g := range grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out
}
