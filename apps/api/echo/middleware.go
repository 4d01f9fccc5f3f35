package echoapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

const ctxObjectKey = "object"

// objectMiddleware loads the object named by the :id path param into the context.
// Unknown or malformed ids are answered with a 404.
func objectMiddleware(get func(ctx context.Context, id int) (interface{}, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, ok := parseID(ctx.Param("id"))
			if !ok {
				return errHttpNotFound
			}
			obj, err := get(ctx.Request().Context(), id)
			if err != nil {
				if core.IsNotFound(err) {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding object by ID")
			}
			ctx.Set(ctxObjectKey, obj)
			return next(ctx)
		}
	}
}
