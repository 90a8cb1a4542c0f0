package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
)

func Test_reportApi_permissions(t *testing.T) {
	ts := newTestServer(t)

	reader := ts.createUser(t, "reader@test.ci", "LePassword123", settings.Permissions{ManageStudents: true, ManageFinances: true})
	readerToken := getToken(t, reader)

	// the whole group is gated, exports included
	for _, path := range []string{
		"/v1/reports/data",
		"/v1/reports/totals",
		"/v1/reports/exports/students-csv",
		"/v1/reports/exports/pdf",
	} {
		req, rec := newAuthRequest(http.MethodGet, path, readerToken)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		checkCodeAndData(t, tt, rec)
	}
}

func Test_reportApi_data(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	_, err := ts.students.Create(ctx, student.NewStudent{FirstName: "Kouassi", LastName: "N'Guessan", Class: "CP1"})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	reporter := ts.createUser(t, "dir@test.ci", "LePassword123", settings.Permissions{GenerateReports: true})
	reporterToken := getToken(t, reporter)

	t.Run("data", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/reports/data", reporterToken)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var data report.Data
		if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if data.TotalStudents != 1 {
			t.Errorf("total students = %v; want 1", data.TotalStudents)
		}
	})

	t.Run("totals", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/reports/totals", reporterToken)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
	})
}

func Test_reportApi_exports(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	_, err := ts.students.Create(ctx, student.NewStudent{FirstName: "Kouassi", LastName: "N'Guessan", Class: "CP1"})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	reporter := ts.createUser(t, "dir@test.ci", "LePassword123", settings.Permissions{GenerateReports: true})
	reporterToken := getToken(t, reporter)

	t.Run("students csv", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/reports/exports/students-csv", reporterToken)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "liste-eleves") {
			t.Errorf("content disposition = %q", cd)
		}
		if body := rec.Body.String(); !strings.Contains(body, "Classe,Nom,Prénom,Date de naissance") {
			t.Errorf("unexpected CSV header; body %v", body)
		}
	})

	t.Run("pdf", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/reports/exports/pdf?type=mensuel&period=2026-06", reporterToken)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		if body := rec.Body.String(); body != "%PDF-SIMULATED-CONTENT-mensuel-2026-06" {
			t.Errorf("body = %q", body)
		}
	})

	t.Run("excel", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/reports/exports/excel?type=annuel&period=2026", reporterToken)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		if body := rec.Body.String(); body != "EXCEL-SIMULATED-CONTENT-annuel-2026" {
			t.Errorf("body = %q", body)
		}
	})
}

func Test_reportApi_sendReminders(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	std, err := ts.students.Create(ctx, student.NewStudent{
		FirstName:   "Kouassi",
		LastName:    "N'Guessan",
		ParentEmail: "parent@test.ci",
	})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	_, err = ts.finances.CreatePayment(ctx, finance.NewPayment{
		StudentID:   std.ID,
		StudentName: "Kouassi N'Guessan",
		Type:        "Scolarité",
		Amount:      25000,
		Status:      finance.StatusOverdue,
		Date:        time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePayment(): %v", err)
	}

	reporter := ts.createUser(t, "dir@test.ci", "LePassword123", settings.Permissions{GenerateReports: true})
	reporterToken := getToken(t, reporter)

	req, rec := newAuthRequest(http.MethodPost, "/v1/reports/reminders", reporterToken)
	ts.app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, echo.Map{"sent": 1})}
	checkCodeAndData(t, tt, rec)
}
