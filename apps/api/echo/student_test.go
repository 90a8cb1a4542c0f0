package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
)

func Test_studentApi_query(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	kouassi, err := ts.students.Create(ctx, student.NewStudent{FirstName: "Kouassi", LastName: "N'Guessan", Class: "CP1"})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	ama, err := ts.students.Create(ctx, student.NewStudent{FirstName: "Ama", LastName: "Koné", Class: "CE1"})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	reader := ts.createUser(t, "reader@test.ci", "LePassword123", settings.Permissions{})
	readerToken := getToken(t, reader)

	path := func(search string) string {
		v := make(url.Values)
		v.Add("search", search)
		return "/v1/students?" + v.Encode()
	}
	empty := marchallList(t)

	tests := []httpTest{
		{name: "auth required", path: "/v1/students", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "get all", path: "/v1/students", token: readerToken, wantCode: http.StatusOK, wantData: marchallList(t, kouassi, ama)},
		{name: "search by last name", path: path("koné"), token: readerToken, wantCode: http.StatusOK, wantData: marchallList(t, ama)},
		{name: "search by class", path: path("cp1"), token: readerToken, wantCode: http.StatusOK, wantData: marchallList(t, kouassi)},
		{name: "search (unknown)", path: path("zzz"), token: readerToken, wantCode: http.StatusOK, wantData: empty},
		{name: "retrieve", path: "/v1/students/" + kouassi.ID, token: readerToken, wantCode: http.StatusOK, wantData: marchallObj(t, kouassi)},
		{name: "retrieve (not found)", path: "/v1/students/nope", token: readerToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_create(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	cp1, err := ts.classes.Create(ctx, class.NewClass{Name: "CP1", Level: "Primaire", Capacity: 30})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	manager := ts.createUser(t, "manager@test.ci", "LePassword123", settings.Permissions{ManageStudents: true})
	reader := ts.createUser(t, "reader@test.ci", "LePassword123", settings.Permissions{})
	managerToken := getToken(t, manager)
	readerToken := getToken(t, reader)

	t.Run("permission denied", func(t *testing.T) {
		body := marchallObj(t, student.NewStudent{FirstName: "Kouassi", LastName: "N'Guessan"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", readerToken, body)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("validation error", func(t *testing.T) {
		body := marchallObj(t, student.NewStudent{FirstName: "Kouassi"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", managerToken, body)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"last_name": "this field is required"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("ok", func(t *testing.T) {
		body := marchallObj(t, student.NewStudent{
			FirstName:   "Kouassi",
			LastName:    "N'Guessan",
			Class:       "CP1",
			ParentEmail: "parent@test.ci",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", managerToken, body)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var std student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &std); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if std.ID == "" {
			t.Error("expected a generated ID")
		}
		if std.Status != student.StatusActive {
			t.Errorf("status = %v; want %v", std.Status, student.StatusActive)
		}
		if got, err := ts.students.Get(std.ID); err != nil || got.LastName != "N'Guessan" {
			t.Errorf("student not stored; got %+v, err %v", got, err)
		}
		if cls, err := ts.classes.Get(cp1.ID); err != nil || cls.StudentCount != 1 {
			t.Errorf("class count = %+v, err %v; want 1", cls.StudentCount, err)
		}
	})
}

func Test_studentApi_updateDestroy(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	cp1, err := ts.classes.Create(ctx, class.NewClass{Name: "CP1", Level: "Primaire", Capacity: 30})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	ce1, err := ts.classes.Create(ctx, class.NewClass{Name: "CE1", Level: "Primaire", Capacity: 30})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if err := ts.classes.AdjustStudentCount(ctx, "CP1", 1); err != nil {
		t.Fatalf("AdjustStudentCount(): %v", err)
	}

	std, err := ts.students.Create(ctx, student.NewStudent{FirstName: "Kouassi", LastName: "N'Guessan", Class: "CP1"})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	manager := ts.createUser(t, "manager@test.ci", "LePassword123", settings.Permissions{ManageStudents: true})
	managerToken := getToken(t, manager)

	t.Run("partial update", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"class": "CE1"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+std.ID, managerToken, body)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var updated student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if updated.Class != "CE1" {
			t.Errorf("class = %v; want CE1", updated.Class)
		}
		if updated.FirstName != "Kouassi" { // untouched
			t.Errorf("first name = %v; want Kouassi", updated.FirstName)
		}
		// the move is reflected in the denormalized class counts
		if cls, _ := ts.classes.Get(cp1.ID); cls.StudentCount != 0 {
			t.Errorf("CP1 count = %v; want 0", cls.StudentCount)
		}
		if cls, _ := ts.classes.Get(ce1.ID); cls.StudentCount != 1 {
			t.Errorf("CE1 count = %v; want 1", cls.StudentCount)
		}
	})

	t.Run("update (not found)", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"class": "CE1"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/nope", managerToken, body)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/students/"+std.ID, managerToken)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		if _, err := ts.students.Get(std.ID); err != student.ErrNotFound {
			t.Errorf("expected student to be gone; err %v", err)
		}
		if cls, _ := ts.classes.Get(ce1.ID); cls.StudentCount != 0 {
			t.Errorf("CE1 count = %v; want 0", cls.StudentCount)
		}
	})
}
