package sheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

func day(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }

func score(v float64) *float64 { return &v }

var (
	cohort = []student.Student{
		{ID: 1, FirstName: "Amani", LastName: "Juma", Status: student.StatusActive, EnrollmentDate: day(1)},
		{ID: 2, FirstName: "Baraka", LastName: "Mushi", Status: student.StatusActive, EnrollmentDate: day(2)},
	}
	assignments = []assignment.Assignment{
		{ID: 10, Title: "Quiz 1", TotalPoints: 20, DueDate: day(4)},
		{ID: 11, Title: "Essay", TotalPoints: 100, DueDate: day(5)},
	}
	grades = []grade.Grade{
		{ID: 1, StudentID: 1, AssignmentID: 10, Score: score(18)},
		{ID: 2, StudentID: 1, AssignmentID: 11, Score: score(80)},
		{ID: 3, StudentID: 2, AssignmentID: 10},                   // ungraded
		{ID: 4, StudentID: 2, AssignmentID: 99, Score: score(5)}, // assignment deleted
	}
	records = []attendance.Record{
		{ID: 1, StudentID: 1, Date: day(4), Status: attendance.StatusPresent},
		{ID: 2, StudentID: 2, Date: day(4).Add(23 * time.Hour), Status: attendance.StatusAbsent},
		{ID: 3, StudentID: 1, Date: day(5), Status: attendance.StatusPresent},
		{ID: 4, StudentID: 1, Date: time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
	}
)

func TestBuildAttendance(t *testing.T) {
	sh := BuildAttendance(cohort, records, day(15), day(4))

	assert.Equal(t, "2024-03", sh.Month)
	assert.Equal(t, "March 2024", sh.Label)
	assert.Len(t, sh.Days, 21)
	assert.Equal(t, len(sh.Days), len(sh.DayKeys))
	assert.Equal(t, 1, sh.PresentToday)
	assert.Equal(t, 100, sh.MonthlyRate) // 2 present records over 2 students

	require.Len(t, sh.Rows, 2)
	assert.Equal(t, []attendance.Status{"", attendance.StatusPresent, attendance.StatusPresent}, sh.Rows[0].Statuses[:3])
	assert.Equal(t, 2, sh.Rows[0].Present)
	assert.Equal(t, attendance.StatusAbsent, sh.Rows[1].Statuses[1])
	assert.Equal(t, 0, sh.Rows[1].Present)
}

func TestBuildGradebook(t *testing.T) {
	gb := BuildGradebook(cohort, assignments, grades)

	assert.Equal(t, 3, gb.GradedCount)
	require.NotNil(t, gb.ClassAverage)
	assert.Equal(t, 82, *gb.ClassAverage) // 98 of 120, the orphan grade is ignored

	require.Len(t, gb.Rows, 2)
	amani, baraka := gb.Rows[0], gb.Rows[1]
	require.NotNil(t, amani.Average)
	assert.Equal(t, 82, *amani.Average)
	assert.Equal(t, "B", amani.Letter)
	assert.Equal(t, 90, *amani.Cells[0].Percentage)
	assert.Equal(t, 80, *amani.Cells[1].Percentage)

	// an orphan score counts as scored but resolves no points
	require.NotNil(t, baraka.Average)
	assert.Equal(t, 0, *baraka.Average)
	assert.Equal(t, 3, baraka.Cells[0].GradeID)
	assert.Nil(t, baraka.Cells[0].Score)
	assert.Zero(t, baraka.Cells[1].GradeID)

	empty := BuildGradebook(cohort, assignments, nil)
	assert.Nil(t, empty.ClassAverage)
	assert.Nil(t, empty.Rows[0].Average)
	assert.Empty(t, empty.Rows[0].Letter)
}

func TestBuildDashboard(t *testing.T) {
	students := append([]student.Student{
		{ID: 3, FirstName: "Gone", Status: student.StatusInactive, EnrollmentDate: day(3)},
	}, cohort...)

	d := BuildDashboard(students, records, assignments, grades, day(4).Add(10*time.Hour))
	assert.Equal(t, "2024-03-04", d.Date)
	assert.Equal(t, 3, d.TotalStudents)
	assert.Equal(t, 2, d.ActiveStudents)
	assert.Equal(t, 50, d.AttendanceRate)
	assert.Equal(t, attendance.DayTally{Present: 1, Absent: 1}, d.Today)
	require.NotNil(t, d.ClassAverage)
	assert.Equal(t, 82, *d.ClassAverage)
	require.Len(t, d.RecentStudents, 3)
	assert.Equal(t, 3, d.RecentStudents[0].ID)

	none := BuildDashboard(nil, nil, nil, nil, day(4))
	assert.Zero(t, none.AttendanceRate)
	assert.Nil(t, none.ClassAverage)
}

func TestFormatPercent(t *testing.T) {
	pct := 82
	assert.Equal(t, "82%", FormatPercent(&pct))
	assert.Equal(t, grade.UngradedLabel, FormatPercent(nil))
}

func TestWriteXLSX(t *testing.T) {
	gb := BuildGradebook(cohort, assignments, grades)
	as := BuildAttendance(cohort, records, day(1), day(4))

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, &gb, &as))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Gradebook", "Attendance"}, f.GetSheetList())

	rows, err := f.GetRows("Gradebook")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Student", "Quiz 1 (20)", "Essay (100)", "Average", "Letter"}, rows[0])
	assert.Equal(t, []string{"Amani Juma", "18", "80", "82%", "B"}, rows[1])
	assert.Equal(t, "Class average", rows[3][0])
	assert.Equal(t, "82%", rows[3][3])

	mark, err := f.GetCellValue("Attendance", "C3")
	require.NoError(t, err)
	assert.Equal(t, "A", mark)
}

func TestParseRecipients(t *testing.T) {
	to, err := ParseRecipients([]string{"Head <head@example.com>", "ops@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Head", to[0].Name)
	assert.Equal(t, "ops@example.com", to[1].Address)

	_, err = ParseRecipients(nil)
	assert.EqualError(t, err, "to: at least one recipient is required")
	_, err = ParseRecipients([]string{"ops@example.com", "nope"})
	assert.EqualError(t, err, "to: invalid email address: nope")
}

func TestNewReportMessage(t *testing.T) {
	as := BuildAttendance(cohort, records, day(1), day(4))
	gb := BuildGradebook(cohort, assignments, grades)
	r := MonthlyReport{
		Month:          as.Label,
		TotalStudents:  2,
		ActiveStudents: 2,
		SchoolDays:     len(as.Days),
		AttendanceRate: as.MonthlyRate,
		ClassAverage:   FormatPercent(gb.ClassAverage),
		GradedCount:    gb.GradedCount,
		Attendance:     as,
		Gradebook:      gb,
	}
	to, err := ParseRecipients([]string{"head@example.com"})
	require.NoError(t, err)

	msg, err := NewReportMessage(r, to)
	require.NoError(t, err)
	assert.Equal(t, "Monthly summary for March 2024", msg.Subject)
	assert.Contains(t, msg.TextContent, "Class average: 82%")
	assert.Contains(t, msg.HTMLContent, "<td>82%</td>")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "report-2024-03.xlsx", msg.Attachments[0].Filename)
	assert.Equal(t, XLSXContentType, msg.Attachments[0].ContentType)
	assert.NotZero(t, msg.Attachments[0].Content.Len())
}
