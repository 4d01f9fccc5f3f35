package sheet

import (
	"bytes"
	"context"
	"net/mail"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

const ReportTemplate = "monthly_report"

// MonthlyReport is the data of the monthly summary email.
type MonthlyReport struct {
	Month          string
	TotalStudents  int
	ActiveStudents int
	SchoolDays     int
	AttendanceRate int
	ClassAverage   string
	GradedCount    int

	Attendance AttendanceSheet
	Gradebook  Gradebook
}

// MonthlyReport gathers the summary of ref's month along with the sheets attached to it.
func (b *Builder) MonthlyReport(ctx context.Context, ref time.Time) (MonthlyReport, error) {
	students, err := b.students.QueryAll(ctx)
	if err != nil {
		return MonthlyReport{}, err
	}
	records, err := b.attendance.QueryAll(ctx)
	if err != nil {
		return MonthlyReport{}, err
	}
	assignments, err := b.assignments.QueryAll(ctx)
	if err != nil {
		return MonthlyReport{}, err
	}
	grades, err := b.grades.QueryAll(ctx)
	if err != nil {
		return MonthlyReport{}, err
	}

	cohort := student.ActiveOnly(students)
	as := BuildAttendance(cohort, records, ref, b.today())
	gb := BuildGradebook(cohort, assignments, grades)

	r := MonthlyReport{
		Month:          as.Label,
		TotalStudents:  len(students),
		ActiveStudents: len(cohort),
		SchoolDays:     len(calendar.SchoolDays(ref)),
		AttendanceRate: as.MonthlyRate,
		ClassAverage:   FormatPercent(gb.ClassAverage),
		GradedCount:    gb.GradedCount,
		Attendance:     as,
		Gradebook:      gb,
	}
	return r, nil
}

// FormatPercent prints pct as "82%", or the ungraded label when pct is nil.
func FormatPercent(pct *int) string {
	if pct == nil {
		return grade.UngradedLabel
	}
	return strconv.Itoa(*pct) + "%"
}

// ParseRecipients parses a list of email addresses, failing on the first invalid one.
func ParseRecipients(recipients []string) ([]mail.Address, error) {
	to := make([]mail.Address, 0, len(recipients))
	for _, r := range recipients {
		addr, err := mail.ParseAddress(r)
		if err != nil {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "to", Error: "invalid email address: " + r})
		}
		to = append(to, *addr)
	}
	if len(to) == 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "to", Error: "at least one recipient is required"})
	}
	return to, nil
}

// NewReportMessage renders the monthly report email with both sheets attached as a workbook.
func NewReportMessage(r MonthlyReport, to []mail.Address) (*core.EmailMessage, error) {
	msg := &core.EmailMessage{
		To:           to,
		Subject:      "Monthly summary for " + r.Month,
		TemplateName: ReportTemplate,
		TemplateData: r,
	}
	if err := msg.Render(); err != nil {
		return nil, errors.Wrap(err, "rendering monthly report")
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, &r.Gradebook, &r.Attendance); err != nil {
		return nil, err
	}
	filename := "report-" + r.Attendance.Month + ".xlsx"
	if err := msg.Attach(&buf, filename, XLSXContentType); err != nil {
		return nil, errors.Wrap(err, "attaching workbook")
	}
	return msg, nil
}

// SendMonthlyReport builds ref's report and hands it to mailer. Delivery is asynchronous.
func (b *Builder) SendMonthlyReport(ctx context.Context, mailer core.EmailService, ref time.Time, to []mail.Address) (MonthlyReport, error) {
	r, err := b.MonthlyReport(ctx, ref)
	if err != nil {
		return MonthlyReport{}, err
	}
	msg, err := NewReportMessage(r, to)
	if err != nil {
		return MonthlyReport{}, err
	}
	mailer.SendMessages(msg)
	return r, nil
}
