package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/grade"
)

type gradeApi struct {
	svc         *grade.Service
	assignments *assignment.Service
}

func registerGradeAPI(g *echo.Group, svc *grade.Service, assignments *assignment.Service) {
	api := gradeApi{svc: svc, assignments: assignments}

	gg := g.Group("/grades")
	gg.GET("", api.query)
	gg.PUT("/cell", api.submit)
}

// Handlers

// query lists every grade, or those of ?student_id= when set.
func (api *gradeApi) query(ctx echo.Context) error {
	grades, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if s := ctx.QueryParam("student_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "student_id must be an integer")
		}
		grades = grade.OfStudent(grades, id)
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

// submit writes the score typed in one (student, assignment) cell. An empty score clears it.
func (api *gradeApi) submit(ctx echo.Context) error {
	var data GradeCellRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeCellRequest")
	}

	res, err := api.svc.Submit(ctx.Request().Context(), data.StudentID, data.AssignmentID, string(data.Score))
	if err != nil {
		return errors.Wrap(err, "submitting grade")
	}

	var total float64
	if _, ok := res.Cell.(grade.Graded); ok {
		a, err := api.assignments.GetByID(ctx.Request().Context(), data.AssignmentID)
		if err != nil {
			return errors.Wrap(err, "getting assignment")
		}
		total = a.TotalPoints
	}
	return ctx.JSON(http.StatusOK, newGradeCellResponse(res, total))
}
