package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/grade"
)

type gradeApi struct {
	svc      *grade.Service
	validate *validator.Validate
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *grade.Service, validate *validator.Validate) {
	api := gradeApi{svc: svc, validate: validate}

	gg := g.Group("/grades", jwt)
	gg.GET("", api.query)
	gg.GET("/average", api.studentAverage)
	gg.GET("/:id", api.retrieve)

	mg := gg.Group("", manageStudentsMiddleware())
	mg.POST("", api.create)
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
}

func (api *gradeApi) query(ctx echo.Context) error {
	var grades []grade.Grade
	switch {
	case ctx.QueryParam("student_id") != "":
		grades = api.svc.ByStudent(ctx.QueryParam("student_id"))
	case ctx.QueryParam("subject") != "":
		grades = api.svc.BySubject(ctx.QueryParam("subject"))
	default:
		grades = api.svc.Filter(ctx.QueryParam("search"))
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) studentAverage(ctx echo.Context) error {
	avg := api.svc.StudentAverage(ctx.QueryParam("student_id"))
	return ctx.JSON(http.StatusOK, echo.Map{"average": avg})
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	grd, err := api.svc.Get(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding grade by ID")
	}
	return ctx.JSON(http.StatusOK, grd)
}

func (api *gradeApi) create(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	grd, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, grd)
}

func (api *gradeApi) update(ctx echo.Context) error {
	var data grade.UpdateGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	grd, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, grd)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
