package echoapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/report"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports", jwt, generateReportsMiddleware())
	rg.GET("/data", api.data)
	rg.GET("/totals", api.totals)
	rg.GET("/exports/students-csv", api.studentsCSV)
	rg.GET("/exports/overdue-csv", api.overdueCSV)
	rg.GET("/exports/global-json", api.globalJSON)
	rg.GET("/exports/pdf", api.pdf)
	rg.GET("/exports/excel", api.excel)
	rg.POST("/reminders", api.sendReminders)
}

func (api *reportApi) data(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Data(time.Now()))
}

func (api *reportApi) totals(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Totals(time.Now()))
}

func (api *reportApi) studentsCSV(ctx echo.Context) error {
	exp, err := api.svc.StudentsListCSV(time.Now())
	if err != nil {
		return errors.Wrap(err, "exporting students list")
	}
	return sendExport(ctx, exp)
}

func (api *reportApi) overdueCSV(ctx echo.Context) error {
	exp, err := api.svc.OverduePaymentsCSV(time.Now())
	if err != nil {
		return errors.Wrap(err, "exporting overdue payments")
	}
	return sendExport(ctx, exp)
}

func (api *reportApi) globalJSON(ctx echo.Context) error {
	exp, err := api.svc.GlobalReportJSON(time.Now())
	if err != nil {
		return errors.Wrap(err, "exporting global report")
	}
	return sendExport(ctx, exp)
}

func (api *reportApi) pdf(ctx echo.Context) error {
	exp := report.PDFReport(ctx.QueryParam("type"), ctx.QueryParam("period"), time.Now())
	return sendExport(ctx, exp)
}

func (api *reportApi) excel(ctx echo.Context) error {
	exp := report.ExcelReport(ctx.QueryParam("type"), ctx.QueryParam("period"), time.Now())
	return sendExport(ctx, exp)
}

func (api *reportApi) sendReminders(ctx echo.Context) error {
	sent := api.svc.SendOverdueReminders()
	return ctx.JSON(http.StatusOK, echo.Map{"sent": sent})
}

func sendExport(ctx echo.Context, exp report.Export) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exp.Filename))
	return ctx.Blob(http.StatusOK, exp.ContentType, exp.Content)
}
