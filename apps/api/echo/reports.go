package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/sheet"
)

type reportApi struct {
	builder    *sheet.Builder
	mailer     core.EmailService
	recipients []string
}

type (
	ReportRequest struct {
		Month string   `json:"month"` // YYYY-MM; defaults to the current month
		To    []string `json:"to"`    // defaults to the configured recipients
	}

	ReportResponse struct {
		Month          string   `json:"month"`
		Recipients     []string `json:"recipients"`
		AttendanceRate int      `json:"attendance_rate"`
		ClassAverage   string   `json:"class_average"`
	}
)

func registerReportAPI(g *echo.Group, builder *sheet.Builder, mailer core.EmailService, recipients []string) {
	if mailer == nil {
		return
	}
	api := reportApi{builder: builder, mailer: mailer, recipients: recipients}
	g.POST("/reports/monthly", api.sendMonthly)
}

// sendMonthly emails the monthly summary with the sheets attached. Delivery happens in the background.
func (api *reportApi) sendMonthly(ctx echo.Context) error {
	var data ReportRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReportRequest")
	}

	ref := calendar.Day(time.Now())
	if data.Month != "" {
		m, err := calendar.ParseMonth(data.Month)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "month", Error: err.Error()})
		}
		ref = m
	}
	recipients := data.To
	if len(recipients) == 0 {
		recipients = api.recipients
	}
	to, err := sheet.ParseRecipients(recipients)
	if err != nil {
		return err
	}

	r, err := api.builder.SendMonthlyReport(ctx.Request().Context(), api.mailer, ref, to)
	if err != nil {
		return errors.Wrap(err, "sending monthly report")
	}

	resp := ReportResponse{
		Month:          r.Month,
		AttendanceRate: r.AttendanceRate,
		ClassAverage:   r.ClassAverage,
	}
	for _, addr := range to {
		resp.Recipients = append(resp.Recipients, addr.Address)
	}
	return ctx.JSON(http.StatusAccepted, resp)
}
