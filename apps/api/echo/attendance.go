package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/student"
)

type attendanceApi struct {
	svc      *attendance.Service
	students *student.Service
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service, students *student.Service) {
	api := attendanceApi{svc: svc, students: students}

	ag := g.Group("/attendance")
	ag.GET("", api.query)
	ag.PUT("/cell", api.mark)
	ag.POST("/cycle", api.cycle)
	ag.POST("/mark-all-present", api.markAllPresent)
}

// Handlers

// query lists the records of ?date= (a day) or ?month= (YYYY-MM); every record without filter.
func (api *attendanceApi) query(ctx echo.Context) error {
	records, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}

	if d := ctx.QueryParam("date"); d != "" {
		day, err := parseDay("date", d)
		if err != nil {
			return err
		}
		records = attendance.OnDay(records, day)
	} else if m := ctx.QueryParam("month"); m != "" {
		ref, err := calendar.ParseMonth(m)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "month", Error: err.Error()})
		}
		inMonth := make([]attendance.Record, 0, len(records))
		for _, r := range records {
			if calendar.SameMonth(r.Date, ref) {
				inMonth = append(inMonth, r)
			}
		}
		records = inMonth
	}

	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

// mark sets the status of one (student, day) cell. "unmarked" clears it.
func (api *attendanceApi) mark(ctx echo.Context) error {
	var data AttendanceCellRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceCellRequest")
	}
	day, err := parseDay("date", data.Date)
	if err != nil {
		return err
	}
	status, err := attendance.ParseStatus(data.Status)
	if err != nil {
		return err
	}

	res, err := api.svc.Mark(ctx.Request().Context(), data.StudentID, day, status)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusOK, newAttendanceCellResponse(res))
}

// cycle advances a cell to the next status of the click cycle.
func (api *attendanceApi) cycle(ctx echo.Context) error {
	var data AttendanceCellRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceCellRequest")
	}
	day, err := parseDay("date", data.Date)
	if err != nil {
		return err
	}

	res, err := api.svc.Cycle(ctx.Request().Context(), data.StudentID, day)
	if err != nil {
		return errors.Wrap(err, "cycling attendance")
	}
	return ctx.JSON(http.StatusOK, newAttendanceCellResponse(res))
}

// markAllPresent marks the cohort (or the given students) present on a day. Defaults to today.
// Partial failures are reported in the response body; they do not fail the request.
func (api *attendanceApi) markAllPresent(ctx echo.Context) error {
	var data MarkAllRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAllRequest")
	}
	day := calendar.Day(time.Now())
	if data.Date != "" {
		d, err := parseDay("date", data.Date)
		if err != nil {
			return err
		}
		day = d
	}

	ids := data.StudentIDs
	if len(ids) == 0 {
		cohort, err := api.students.QueryActive(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "querying active students")
		}
		ids = make([]int, 0, len(cohort))
		for _, s := range cohort {
			ids = append(ids, s.ID)
		}
	}

	res, err := api.svc.MarkAllPresent(ctx.Request().Context(), ids, day)
	if err != nil {
		return errors.Wrap(err, "marking all present")
	}
	return ctx.JSON(http.StatusOK, newBatchResponse(res))
}
