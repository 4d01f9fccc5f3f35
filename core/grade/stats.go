package grade

import (
	"math"

	"github.com/trezcool/darasa/core/assignment"
)

// UngradedLabel is what averages display when no score has been recorded.
const UngradedLabel = "—"

type Severity string

// Severities
const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Average is the percentage of points earned by studentID over the assignments that still exist.
// ok is false when the student has no scored grade at all.
func Average(studentID int, grades []Grade, assignments []assignment.Assignment) (pct int, ok bool) {
	earned, total, scored := sum(OfStudent(grades, studentID), assignments)
	if scored == 0 {
		return 0, false
	}
	return Percentage(earned, total), true
}

// ClassAverage is the percentage of points earned over every scored grade of the class.
// ok is false when no scored grade resolves to an assignment.
func ClassAverage(grades []Grade, assignments []assignment.Assignment) (pct int, ok bool) {
	earned, total, _ := sum(grades, assignments)
	if total <= 0 {
		return 0, false
	}
	return Percentage(earned, total), true
}

// sum adds up the scores of grades and the points of their assignments.
// scored counts every scored grade, resolved or not.
func sum(grades []Grade, assignments []assignment.Assignment) (earned, total float64, scored int) {
	for _, g := range grades {
		if !g.IsGraded() {
			continue
		}
		scored++
		a, found := assignment.Find(assignments, g.AssignmentID)
		if !found {
			continue
		}
		earned += *g.Score
		total += a.TotalPoints
	}
	return earned, total, scored
}

// GradedCount is the number of grades carrying a score.
func GradedCount(grades []Grade) int {
	var n int
	for _, g := range grades {
		if g.IsGraded() {
			n++
		}
	}
	return n
}

// Percentage of a single score; 0 when the assignment is worth no points.
func Percentage(score, totalPoints float64) int {
	if totalPoints <= 0 {
		return 0
	}
	return int(math.Round(score / totalPoints * 100))
}

func Letter(pct int) string {
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}

func SeverityOf(pct int) Severity {
	switch {
	case pct >= 90:
		return SeveritySuccess
	case pct >= 80:
		return SeverityInfo
	case pct >= 70:
		return SeverityWarning
	default:
		return SeverityError
	}
}
