package sqlxrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/storage/database"
	sqlxrepos "github.com/trezcool/darasa/storage/database/sqlx"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conf := &core.Config{Database: core.DatabaseConfig{Engine: database.EngineSQLite, Path: ":memory:"}}
	db, err := database.Open(conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStudentRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewStudentRepository(openDB(t))

	s, err := repo.CreateStudent(ctx, student.Student{
		FirstName:      "Amani",
		LastName:       "Juma",
		Email:          "amani@example.com",
		Phone:          "+255 700 000 001",
		DateOfBirth:    day(2010, time.May, 4),
		GradeLevel:     "7",
		AcademicYear:   "2024",
		EnrollmentDate: day(2024, time.January, 8),
		Status:         student.StatusActive,
	})
	require.NoError(t, err)
	assert.NotZero(t, s.ID)

	got, err := repo.GetStudentByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	s.Status = student.StatusOnHold
	_, err = repo.UpdateStudent(ctx, s)
	require.NoError(t, err)

	all, err := repo.QueryAllStudents(ctx)
	require.NoError(t, err)
	if assert.Len(t, all, 1) {
		assert.Equal(t, student.StatusOnHold, all[0].Status)
	}

	ok, err := repo.DeleteStudent(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetStudentByID(ctx, s.ID)
	assert.True(t, core.IsNotFound(err))
	_, err = repo.DeleteStudent(ctx, s.ID)
	assert.True(t, core.IsNotFound(err))
	_, err = repo.UpdateStudent(ctx, s)
	assert.True(t, core.IsNotFound(err))
}

func TestAssignmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewAssignmentRepository(openDB(t))

	later, err := repo.CreateAssignment(ctx, assignment.Assignment{
		Title:       "Fractions quiz",
		Category:    assignment.CategoryQuiz,
		TotalPoints: 20,
		DueDate:     day(2024, time.March, 15),
	})
	require.NoError(t, err)
	sooner, err := repo.CreateAssignment(ctx, assignment.Assignment{
		Title:       "Reading log",
		Category:    assignment.CategoryHomework,
		TotalPoints: 100,
		DueDate:     day(2024, time.March, 4),
		Description: "Chapters 1-3",
	})
	require.NoError(t, err)

	all, err := repo.QueryAllAssignments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []assignment.Assignment{sooner, later}, all)

	_, err = repo.GetAssignmentByID(ctx, 99)
	assert.True(t, core.IsNotFound(err))
}

func TestGradeRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewGradeRepository(openDB(t))

	score := 18.5
	g, err := repo.CreateGrade(ctx, grade.Grade{StudentID: 1, AssignmentID: 2, Score: &score, SubmittedDate: day(2024, time.March, 5)})
	require.NoError(t, err)

	got, err := repo.GetGradeByID(ctx, g.ID)
	require.NoError(t, err)
	if assert.NotNil(t, got.Score) {
		assert.Equal(t, 18.5, *got.Score)
	}
	assert.Equal(t, day(2024, time.March, 5), got.SubmittedDate)

	got.Score = nil
	_, err = repo.UpdateGrade(ctx, got)
	require.NoError(t, err)

	all, err := repo.QueryAllGrades(ctx)
	require.NoError(t, err)
	if assert.Len(t, all, 1) {
		assert.Nil(t, all[0].Score)
	}

	// at most one grade per (student, assignment)
	_, err = repo.CreateGrade(ctx, grade.Grade{StudentID: 1, AssignmentID: 2})
	assert.Error(t, err)
}

func TestAttendanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewAttendanceRepository(openDB(t))

	r, err := repo.CreateRecord(ctx, attendance.Record{
		StudentID: 7,
		Date:      day(2024, time.March, 4),
		Status:    attendance.StatusPresent,
	})
	require.NoError(t, err)

	r.Status = attendance.StatusAbsent
	r.Notes = "sick"
	_, err = repo.UpdateRecord(ctx, r)
	require.NoError(t, err)

	all, err := repo.QueryAllRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []attendance.Record{r}, all)

	found, ok := attendance.Find(all, 7, time.Date(2024, time.March, 4, 23, 59, 59, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, r.ID, found.ID)

	_, err = repo.CreateRecord(ctx, attendance.Record{StudentID: 7, Date: day(2024, time.March, 4), Status: attendance.StatusLate})
	assert.Error(t, err)

	ok, err = repo.DeleteRecord(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = repo.GetRecordByID(ctx, r.ID)
	assert.True(t, core.IsNotFound(err))
}
