package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

// Day returns the calendar day y-m-d at midnight UTC.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Score returns a pointer to v.
func Score(v float64) *float64 {
	return &v
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	firstName, lastName string,
	status student.Status,
	enrolledAt ...time.Time,
) student.Student {
	t.Helper()
	enrolled := Day(2024, time.January, 8)
	if len(enrolledAt) > 0 {
		enrolled = enrolledAt[0]
	}
	s, err := repo.CreateStudent(context.Background(), student.Student{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          firstName + "." + lastName + "@example.com",
		Phone:          "+255 700 000 000",
		DateOfBirth:    Day(2010, time.May, 4),
		GradeLevel:     "7",
		AcademicYear:   "2024",
		EnrollmentDate: enrolled,
		Status:         status,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func CreateAssignment(t *testing.T, repo assignment.Repository, title string, totalPoints float64, due time.Time) assignment.Assignment {
	t.Helper()
	a, err := repo.CreateAssignment(context.Background(), assignment.Assignment{
		Title:       title,
		Category:    assignment.CategoryHomework,
		TotalPoints: totalPoints,
		DueDate:     due,
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

func CreateRecord(t *testing.T, repo attendance.Repository, studentID int, day time.Time, status attendance.Status) attendance.Record {
	t.Helper()
	r, err := repo.CreateRecord(context.Background(), attendance.Record{
		StudentID: studentID,
		Date:      day,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}
	return r
}

func CreateGrade(t *testing.T, repo grade.Repository, studentID, assignmentID int, score *float64) grade.Grade {
	t.Helper()
	g, err := repo.CreateGrade(context.Background(), grade.Grade{
		StudentID:     studentID,
		AssignmentID:  assignmentID,
		Score:         score,
		SubmittedDate: Day(2024, time.March, 1),
	})
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return g
}
