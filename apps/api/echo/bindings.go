package echoapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

// Day is a calendar day sent as YYYY-MM-DD (RFC 3339 timestamps are accepted too).
type Day time.Time

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "decoding date")
	}
	if s == "" {
		*d = Day{}
		return nil
	}
	t, err := calendar.ParseDay(s)
	if err != nil {
		return err
	}
	*d = Day(t)
	return nil
}

func (d Day) Time() time.Time { return time.Time(d) }

// parseDay reads a required date field.
func parseDay(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: field, Error: "this field is required"})
	}
	t, err := calendar.ParseDay(s)
	if err != nil {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: field, Error: err.Error()})
	}
	return calendar.Day(t), nil
}

// RawScore is the score typed in a gradebook cell: a JSON number, string or null.
type RawScore string

func (rs *RawScore) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*rs = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*rs = RawScore(s)
	default:
		var f json.Number
		if err := json.Unmarshal(b, &f); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "score", Error: "score must be a number"})
		}
		*rs = RawScore(f.String())
	}
	return nil
}

type (
	StudentRequest struct {
		FirstName    string         `json:"first_name"`
		LastName     string         `json:"last_name"`
		Email        string         `json:"email"`
		Phone        string         `json:"phone"`
		DateOfBirth  Day            `json:"date_of_birth"`
		GradeLevel   string         `json:"grade_level"`
		AcademicYear string         `json:"academic_year"`
		Status       student.Status `json:"status"`
	}

	AssignmentRequest struct {
		Title       string              `json:"title"`
		Category    assignment.Category `json:"category"`
		TotalPoints float64             `json:"total_points"`
		DueDate     Day                 `json:"due_date"`
		Description *string             `json:"description"`
	}

	AttendanceCellRequest struct {
		StudentID int    `json:"student_id"`
		Date      string `json:"date"`
		Status    string `json:"status"`
	}

	MarkAllRequest struct {
		Date       string `json:"date"`
		StudentIDs []int  `json:"student_ids"` // defaults to every active student
	}

	GradeCellRequest struct {
		StudentID    int      `json:"student_id"`
		AssignmentID int      `json:"assignment_id"`
		Score        RawScore `json:"score"`
	}
)

func (r StudentRequest) newStudent() student.NewStudent {
	return student.NewStudent{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		DateOfBirth:  r.DateOfBirth.Time(),
		GradeLevel:   r.GradeLevel,
		AcademicYear: r.AcademicYear,
		Status:       r.Status,
	}
}

func (r StudentRequest) updateStudent() student.UpdateStudent {
	return student.UpdateStudent{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		DateOfBirth:  r.DateOfBirth.Time(),
		GradeLevel:   r.GradeLevel,
		AcademicYear: r.AcademicYear,
		Status:       r.Status,
	}
}

func (r AssignmentRequest) newAssignment() assignment.NewAssignment {
	na := assignment.NewAssignment{
		Title:       r.Title,
		Category:    r.Category,
		TotalPoints: r.TotalPoints,
		DueDate:     r.DueDate.Time(),
	}
	if r.Description != nil {
		na.Description = *r.Description
	}
	return na
}

func (r AssignmentRequest) updateAssignment() assignment.UpdateAssignment {
	return assignment.UpdateAssignment{
		Title:       r.Title,
		Category:    r.Category,
		TotalPoints: r.TotalPoints,
		DueDate:     r.DueDate.Time(),
		Description: r.Description,
	}
}

type (
	AttendanceCellResponse struct {
		Action string             `json:"action"`
		Status string             `json:"status"`
		Record *attendance.Record `json:"record"`
	}

	GradeCellResponse struct {
		Action     string       `json:"action"`
		Grade      *grade.Grade `json:"grade"`
		Percentage *int         `json:"percentage"`
	}

	BatchFailure struct {
		StudentID int    `json:"student_id"`
		Error     string `json:"error"`
	}

	BatchResponse struct {
		Success   bool           `json:"success"`
		Created   int            `json:"created"`
		Updated   int            `json:"updated"`
		Unchanged int            `json:"unchanged"`
		Failures  []BatchFailure `json:"failures"`
	}
)

func newAttendanceCellResponse(res attendance.Result) AttendanceCellResponse {
	resp := AttendanceCellResponse{
		Action: res.Action.String(),
		Status: attendance.StatusOf(res.Cell).String(),
	}
	if m, ok := res.Cell.(attendance.Marked); ok {
		rec := m.Record
		resp.Record = &rec
	}
	return resp
}

func newGradeCellResponse(res grade.Result, totalPoints float64) GradeCellResponse {
	resp := GradeCellResponse{Action: res.Action.String()}
	if g, ok := res.Cell.(grade.Graded); ok {
		gr := g.Grade
		resp.Grade = &gr
		if gr.Score != nil {
			pct := grade.Percentage(*gr.Score, totalPoints)
			resp.Percentage = &pct
		}
	}
	return resp
}

func newBatchResponse(res core.BatchResult) BatchResponse {
	resp := BatchResponse{
		Success:   res.Succeeded(),
		Created:   res.Created,
		Updated:   res.Updated,
		Unchanged: res.Unchanged,
		Failures:  make([]BatchFailure, 0, len(res.Failures)),
	}
	for _, f := range res.Failures {
		resp.Failures = append(resp.Failures, BatchFailure{StudentID: f.ID, Error: f.Err.Error()})
	}
	return resp
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	return id, err == nil && id > 0
}
