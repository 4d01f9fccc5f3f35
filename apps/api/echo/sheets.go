package echoapi

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/sheet"
)

type sheetApi struct {
	builder *sheet.Builder
}

func registerSheetAPI(g *echo.Group, builder *sheet.Builder) {
	api := sheetApi{builder: builder}

	g.GET("/dashboard", api.dashboard)

	sg := g.Group("/sheets")
	sg.GET("/attendance", api.attendance)
	sg.GET("/attendance.xlsx", api.attendanceXLSX)
	sg.GET("/gradebook", api.gradebook)
	sg.GET("/gradebook.xlsx", api.gradebookXLSX)
}

// month reads ?month= (YYYY-MM), defaulting to the current month.
func month(ctx echo.Context) (time.Time, error) {
	m := ctx.QueryParam("month")
	if m == "" {
		return calendar.Day(time.Now()), nil
	}
	ref, err := calendar.ParseMonth(m)
	if err != nil {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: "month", Error: err.Error()})
	}
	return ref, nil
}

func sendXLSX(ctx echo.Context, filename string, gb *sheet.Gradebook, as *sheet.AttendanceSheet) error {
	var buf bytes.Buffer
	if err := sheet.WriteXLSX(&buf, gb, as); err != nil {
		return errors.Wrap(err, "exporting workbook")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK, sheet.XLSXContentType, buf.Bytes())
}

// Handlers

func (api *sheetApi) dashboard(ctx echo.Context) error {
	day := calendar.Day(time.Now())
	if d := ctx.QueryParam("date"); d != "" {
		var err error
		if day, err = parseDay("date", d); err != nil {
			return err
		}
	}
	res, err := api.builder.Dashboard(ctx.Request().Context(), day)
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *sheetApi) attendance(ctx echo.Context) error {
	ref, err := month(ctx)
	if err != nil {
		return err
	}
	res, err := api.builder.Attendance(ctx.Request().Context(), ref)
	if err != nil {
		return errors.Wrap(err, "building attendance sheet")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *sheetApi) attendanceXLSX(ctx echo.Context) error {
	ref, err := month(ctx)
	if err != nil {
		return err
	}
	res, err := api.builder.Attendance(ctx.Request().Context(), ref)
	if err != nil {
		return errors.Wrap(err, "building attendance sheet")
	}
	return sendXLSX(ctx, "attendance-"+res.Month+".xlsx", nil, &res)
}

func (api *sheetApi) gradebook(ctx echo.Context) error {
	res, err := api.builder.Gradebook(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building gradebook")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *sheetApi) gradebookXLSX(ctx echo.Context) error {
	res, err := api.builder.Gradebook(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building gradebook")
	}
	return sendXLSX(ctx, "gradebook.xlsx", &res, nil)
}
