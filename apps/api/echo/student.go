package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
)

type studentApi struct {
	svc      *student.Service
	classes  *class.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *student.Service, classSvc *class.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, classes: classSvc, validate: validate}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)

	mg := sg.Group("", manageStudentsMiddleware())
	mg.POST("", api.create)
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
}

func (api *studentApi) query(ctx echo.Context) error {
	students := api.svc.Filter(ctx.QueryParam("search"))
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := api.svc.Get(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	std, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	if std.Class != "" {
		if err := api.classes.AdjustStudentCount(ctx.Request().Context(), std.Class, 1); err != nil {
			return errors.Wrap(err, "adjusting class student count")
		}
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prev, err := api.svc.Get(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}

	std, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating student")
	}
	if std.Class != prev.Class {
		if err := api.moveClass(ctx, prev.Class, std.Class); err != nil {
			return err
		}
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) moveClass(ctx echo.Context, from, to string) error {
	if from != "" {
		if err := api.classes.AdjustStudentCount(ctx.Request().Context(), from, -1); err != nil {
			return errors.Wrap(err, "adjusting class student count")
		}
	}
	if to != "" {
		if err := api.classes.AdjustStudentCount(ctx.Request().Context(), to, 1); err != nil {
			return errors.Wrap(err, "adjusting class student count")
		}
	}
	return nil
}

func (api *studentApi) destroy(ctx echo.Context) error {
	prev, err := api.svc.Get(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}

	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting student")
	}
	if prev.Class != "" {
		if err := api.classes.AdjustStudentCount(ctx.Request().Context(), prev.Class, -1); err != nil {
			return errors.Wrap(err, "adjusting class student count")
		}
	}
	return ctx.NoContent(http.StatusNoContent)
}
