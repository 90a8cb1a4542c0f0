package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/finance"
)

type financeApi struct {
	svc      *finance.Service
	validate *validator.Validate
}

func registerFinanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *finance.Service, validate *validator.Validate) {
	api := financeApi{svc: svc, validate: validate}

	fg := g.Group("/finances", jwt)
	fg.GET("/stats", api.stats)
	fg.GET("/payments", api.queryPayments)
	fg.GET("/payments/overdue", api.queryOverdue)
	fg.GET("/payments/:id", api.retrievePayment)
	fg.GET("/payment-types", api.queryPaymentTypes)

	mg := fg.Group("", manageFinancesMiddleware())
	mg.POST("/payments", api.createPayment)
	mg.PUT("/payments/:id/status", api.updatePaymentStatus)
	mg.DELETE("/payments/:id", api.destroyPayment)
	mg.POST("/payment-types", api.createPaymentType)
	mg.DELETE("/payment-types/:id", api.destroyPaymentType)
}

func (api *financeApi) stats(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Stats(time.Now()))
}

func (api *financeApi) queryPayments(ctx echo.Context) error {
	payments := api.svc.Filter(ctx.QueryParam("search"))
	if payments == nil {
		payments = []finance.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *financeApi) queryOverdue(ctx echo.Context) error {
	payments := api.svc.OverduePayments()
	if payments == nil {
		payments = []finance.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *financeApi) retrievePayment(ctx echo.Context) error {
	pmt, err := api.svc.GetPayment(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == finance.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding payment by ID")
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *financeApi) createPayment(ctx echo.Context) error {
	var data finance.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	pmt, err := api.svc.CreatePayment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating payment")
	}
	return ctx.JSON(http.StatusCreated, pmt)
}

func (api *financeApi) updatePaymentStatus(ctx echo.Context) error {
	var data PaymentStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PaymentStatusRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	pmt, err := api.svc.UpdatePaymentStatus(ctx.Request().Context(), ctx.Param("id"), data.Status)
	if err != nil {
		if errors.Cause(err) == finance.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating payment status")
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *financeApi) destroyPayment(ctx echo.Context) error {
	if err := api.svc.DeletePayment(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == finance.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting payment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *financeApi) queryPaymentTypes(ctx echo.Context) error {
	types := api.svc.PaymentTypes()
	if types == nil {
		types = []finance.PaymentType{}
	}
	return ctx.JSON(http.StatusOK, types)
}

func (api *financeApi) createPaymentType(ctx echo.Context) error {
	var data finance.NewPaymentType
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPaymentType")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	pt, err := api.svc.CreatePaymentType(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating payment type")
	}
	return ctx.JSON(http.StatusCreated, pt)
}

func (api *financeApi) destroyPaymentType(ctx echo.Context) error {
	if err := api.svc.DeletePaymentType(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == finance.ErrTypeNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting payment type")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type PaymentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (pr *PaymentStatusRequest) Validate(validate *validator.Validate) error {
	pr.Status = core.CleanString(pr.Status)
	return validate.Struct(pr)
}
