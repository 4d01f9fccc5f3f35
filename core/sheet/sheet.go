// Package sheet builds the derived views of the class: the attendance sheet, the gradebook
// and the dashboard. Every build reloads the records it needs from the store.
package sheet

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

// RecentCount is the number of recent enrollments shown on the dashboard.
const RecentCount = 5

type (
	Builder struct {
		students    *student.Service
		assignments *assignment.Service
		grades      *grade.Service
		attendance  *attendance.Service
		nowFunc     func() time.Time
	}

	AttendanceRow struct {
		Student  student.Student     `json:"student"`
		Statuses []attendance.Status `json:"statuses"` // one per school day; "" is unmarked
		Present  int                 `json:"present"`
	}

	AttendanceSheet struct {
		Month        string          `json:"month"` // YYYY-MM
		Label        string          `json:"label"`
		Days         []time.Time     `json:"-"`
		DayKeys      []string        `json:"days"`
		Rows         []AttendanceRow `json:"rows"`
		PresentToday int             `json:"present_today"`
		MonthlyRate  int             `json:"monthly_rate"`
	}

	GradebookCell struct {
		AssignmentID int      `json:"assignment_id"`
		GradeID      int      `json:"grade_id,omitempty"`
		Score        *float64 `json:"score"`
		Percentage   *int     `json:"percentage,omitempty"`
	}

	GradebookRow struct {
		Student  student.Student `json:"student"`
		Cells    []GradebookCell `json:"cells"` // one per assignment
		Average  *int            `json:"average"`
		Letter   string          `json:"letter,omitempty"`
		Severity grade.Severity  `json:"severity,omitempty"`
	}

	Gradebook struct {
		Assignments  []assignment.Assignment `json:"assignments"`
		Rows         []GradebookRow          `json:"rows"`
		ClassAverage *int                    `json:"class_average"`
		GradedCount  int                     `json:"graded_count"`
	}

	Dashboard struct {
		Date           string              `json:"date"`
		TotalStudents  int                 `json:"total_students"`
		ActiveStudents int                 `json:"active_students"`
		AttendanceRate int                 `json:"attendance_rate"`
		Today          attendance.DayTally `json:"today"`
		ClassAverage   *int                `json:"class_average"`
		GradedCount    int                 `json:"graded_count"`
		RecentStudents []student.Student   `json:"recent_students"`
	}
)

func NewBuilder(
	students *student.Service,
	assignments *assignment.Service,
	grades *grade.Service,
	attendance *attendance.Service,
) *Builder {
	return &Builder{
		students:    students,
		assignments: assignments,
		grades:      grades,
		attendance:  attendance,
		nowFunc:     time.Now,
	}
}

func (b *Builder) today() time.Time {
	return calendar.Day(b.nowFunc())
}

// Attendance builds the attendance sheet of the active students for ref's month.
func (b *Builder) Attendance(ctx context.Context, ref time.Time) (AttendanceSheet, error) {
	cohort, err := b.students.QueryActive(ctx)
	if err != nil {
		return AttendanceSheet{}, err
	}
	records, err := b.attendance.QueryAll(ctx)
	if err != nil {
		return AttendanceSheet{}, err
	}
	return BuildAttendance(cohort, records, ref, b.today()), nil
}

// BuildAttendance lays records out on the school days of ref's month, one row per student.
func BuildAttendance(cohort []student.Student, records []attendance.Record, ref, today time.Time) AttendanceSheet {
	days := calendar.SchoolDays(ref)
	sh := AttendanceSheet{
		Month:        ref.Format(calendar.MonthLayout),
		Label:        ref.Format("January 2006"),
		Days:         days,
		DayKeys:      make([]string, 0, len(days)),
		Rows:         make([]AttendanceRow, 0, len(cohort)),
		PresentToday: attendance.Tally(records, today).Present,
		MonthlyRate:  attendance.MonthlyRate(records, ref, len(cohort)),
	}
	for _, d := range days {
		sh.DayKeys = append(sh.DayKeys, d.Format(calendar.DayLayout))
	}
	for _, s := range cohort {
		row := AttendanceRow{Student: s, Statuses: make([]attendance.Status, 0, len(days))}
		for _, d := range days {
			st := attendance.StatusFor(records, s.ID, d)
			if st == attendance.StatusPresent {
				row.Present++
			}
			row.Statuses = append(row.Statuses, st)
		}
		sh.Rows = append(sh.Rows, row)
	}
	return sh
}

// Gradebook builds the gradebook of the active students.
func (b *Builder) Gradebook(ctx context.Context) (Gradebook, error) {
	cohort, err := b.students.QueryActive(ctx)
	if err != nil {
		return Gradebook{}, err
	}
	assignments, err := b.assignments.QueryAll(ctx)
	if err != nil {
		return Gradebook{}, err
	}
	grades, err := b.grades.QueryAll(ctx)
	if err != nil {
		return Gradebook{}, err
	}
	return BuildGradebook(cohort, assignments, grades), nil
}

// BuildGradebook lays grades out on the assignments, one row per student.
func BuildGradebook(cohort []student.Student, assignments []assignment.Assignment, grades []grade.Grade) Gradebook {
	gb := Gradebook{
		Assignments: assignments,
		Rows:        make([]GradebookRow, 0, len(cohort)),
		GradedCount: grade.GradedCount(grades),
	}
	if pct, ok := grade.ClassAverage(grades, assignments); ok {
		gb.ClassAverage = &pct
	}

	for _, s := range cohort {
		row := GradebookRow{Student: s, Cells: make([]GradebookCell, 0, len(assignments))}
		for _, a := range assignments {
			cell := GradebookCell{AssignmentID: a.ID}
			if g, found := grade.Find(grades, s.ID, a.ID); found {
				cell.GradeID = g.ID
				if g.Score != nil {
					score, pct := *g.Score, grade.Percentage(*g.Score, a.TotalPoints)
					cell.Score, cell.Percentage = &score, &pct
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		if pct, ok := grade.Average(s.ID, grades, assignments); ok {
			row.Average = &pct
			row.Letter = grade.Letter(pct)
			row.Severity = grade.SeverityOf(pct)
		}
		gb.Rows = append(gb.Rows, row)
	}
	return gb
}

// Dashboard summarises the class on day.
func (b *Builder) Dashboard(ctx context.Context, day time.Time) (Dashboard, error) {
	students, err := b.students.QueryAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	records, err := b.attendance.QueryAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	assignments, err := b.assignments.QueryAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	grades, err := b.grades.QueryAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(students, records, assignments, grades, day), nil
}

func BuildDashboard(
	students []student.Student,
	records []attendance.Record,
	assignments []assignment.Assignment,
	grades []grade.Grade,
	day time.Time,
) Dashboard {
	active := len(student.ActiveOnly(students))
	d := Dashboard{
		Date:           calendar.Day(day).Format(calendar.DayLayout),
		TotalStudents:  len(students),
		ActiveStudents: active,
		AttendanceRate: attendance.DailyRate(records, day, active),
		Today:          attendance.Tally(records, day),
		GradedCount:    grade.GradedCount(grades),
		RecentStudents: student.Recent(students, RecentCount),
	}
	if pct, ok := grade.ClassAverage(grades, assignments); ok {
		d.ClassAverage = &pct
	}
	return d
}
