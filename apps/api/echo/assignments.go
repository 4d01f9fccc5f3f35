package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
)

type assignmentApi struct {
	svc *assignment.Service
}

func registerAssignmentAPI(g *echo.Group, svc *assignment.Service) {
	api := assignmentApi{svc: svc}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.GET("/categories", api.queryCategories)

	// detail endpoints
	dg := ag.Group("/:id", objectMiddleware(func(ctx context.Context, id int) (interface{}, error) {
		return svc.GetByID(ctx, id)
	}))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *assignmentApi) query(ctx echo.Context) error {
	res, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *assignmentApi) queryCategories(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, assignment.Categories)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data AssignmentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignmentRequest")
	}
	a, err := api.svc.Create(ctx.Request().Context(), data.newAssignment())
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	a, ok := ctx.Get(ctxObjectKey).(assignment.Assignment)
	if !ok {
		return errObjNotFoundCtx
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	a, ok := ctx.Get(ctxObjectKey).(assignment.Assignment)
	if !ok {
		return errObjNotFoundCtx
	}
	var data AssignmentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignmentRequest")
	}
	updated, err := api.svc.Update(ctx.Request().Context(), a.ID, data.updateAssignment())
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	a, ok := ctx.Get(ctxObjectKey).(assignment.Assignment)
	if !ok {
		return errObjNotFoundCtx
	}
	if err := api.svc.Delete(ctx.Request().Context(), a.ID); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
