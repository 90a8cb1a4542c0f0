package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/shule/core/settings"
)

func Test_settingsApi_login(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "admin@test.ci", "LePassword123", settings.Permissions{SystemAdmin: true})

	t.Run("ok", func(t *testing.T) {
		body := marchallObj(t, LoginRequest{Email: "admin@test.ci", Password: "LePassword123"})
		req, rec := newRequest(http.MethodPost, "/v1/login", body)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var resp LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if resp.Token == "" {
			t.Fatal("expected a token")
		}

		// the token grants access to protected routes
		req, rec = newAuthRequest(http.MethodGet, "/v1/settings", resp.Token)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		body := marchallObj(t, LoginRequest{Email: "Admin@Test.CI", Password: "LePassword123"})
		req, rec := newRequest(http.MethodPost, "/v1/login", body)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
	})

	authFailed := marchallObj(t, httpErr{Error: "authentication failed"})
	tests := []httpTest{
		{name: "wrong password", body: marchallObj(t, LoginRequest{Email: "admin@test.ci", Password: "nope"}),
			wantCode: http.StatusBadRequest, wantData: authFailed},
		{name: "unknown email", body: marchallObj(t, LoginRequest{Email: "who@test.ci", Password: "LePassword123"}),
			wantCode: http.StatusBadRequest, wantData: authFailed},
		{name: "missing fields", body: marchallObj(t, LoginRequest{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/login", tt.body)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_settingsApi_save(t *testing.T) {
	ts := newTestServer(t)

	admin := ts.createUser(t, "admin@test.ci", "LePassword123", settings.Permissions{SystemAdmin: true})
	reader := ts.createUser(t, "reader@test.ci", "LePassword123", settings.Permissions{ManageStudents: true})
	adminToken := getToken(t, admin)
	readerToken := getToken(t, reader)

	t.Run("retrieve defaults", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/settings", readerToken)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, ts.settings.Settings())}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("save needs system admin", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"name": "École Primaire Les Colibris"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/settings", readerToken, body)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("save", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"name": "École Primaire Les Colibris", "currency": "XOF"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/settings", adminToken, body)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		setts := ts.settings.Settings()
		if setts.Name != "École Primaire Les Colibris" || setts.Currency != "XOF" {
			t.Errorf("settings not saved; got %+v", setts)
		}
		if !setts.EmailNotifications { // untouched by the partial payload
			t.Error("email notifications flag should be unchanged")
		}
	})
}

func Test_settingsApi_users(t *testing.T) {
	ts := newTestServer(t)

	admin := ts.createUser(t, "admin@test.ci", "LePassword123", settings.Permissions{SystemAdmin: true})
	reader := ts.createUser(t, "reader@test.ci", "LePassword123", settings.Permissions{})
	adminToken := getToken(t, admin)
	readerToken := getToken(t, reader)

	forbidden := marchallObj(t, httpErr{Error: "permission denied"})

	t.Run("admin only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users", readerToken)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: forbidden}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("query", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users", adminToken)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, admin, reader)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("create", func(t *testing.T) {
		body := marchallObj(t, settings.NewUser{
			Email:           "compta@test.ci",
			Role:            "Comptable",
			Password:        "LePassword123",
			PasswordConfirm: "LePassword123",
			Permissions:     settings.Permissions{ManageFinances: true},
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/users", adminToken, body)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var usr settings.User
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if !usr.Permissions.ManageFinances {
			t.Error("expected the finance permission to be set")
		}
	})

	t.Run("create (duplicate email)", func(t *testing.T) {
		body := marchallObj(t, settings.NewUser{
			Email:           "reader@test.ci",
			Password:        "LePassword123",
			PasswordConfirm: "LePassword123",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/users", adminToken, body)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": settings.ErrEmailExists.Error()}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("update role", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"role": "Directrice"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+reader.ID, adminToken, body)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		usr, err := ts.settings.GetUser(reader.ID)
		if err != nil || usr.Role != "Directrice" {
			t.Errorf("role not updated; got %+v, err %v", usr, err)
		}
	})

	t.Run("no self-delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/"+admin.ID, adminToken)
		ts.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: forbidden}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/"+reader.ID, adminToken)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		if _, err := ts.settings.GetUser(reader.ID); err != settings.ErrUserNotFound {
			t.Errorf("expected user to be gone; err %v", err)
		}
	})
}
