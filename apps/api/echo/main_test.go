package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	stdlog "log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
	"github.com/trezcool/shule/core/teacher"
	emailsvc "github.com/trezcool/shule/services/email"
	logsvc "github.com/trezcool/shule/services/logger"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

// testServer wires a full API over the in-memory store so each test gets an
// isolated state.
type testServer struct {
	app      *Server
	students *student.Service
	classes  *class.Service
	teachers *teacher.Service
	subjects *subject.Service
	grades   *grade.Service
	finances *finance.Service
	settings *settings.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conf := &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Shule",
		SecretKey: "poq5-wer)#@(7&q0u&92!kql1@$2=pll",
	}
	conf.Server.JWTExpirationDelta = 10 * time.Minute

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("newTestServer(): %v", err)
	}

	ts := &testServer{
		students: student.NewService(inmemdb.NewStudentRepository(db)),
		classes:  class.NewService(inmemdb.NewClassRepository(db)),
		teachers: teacher.NewService(inmemdb.NewTeacherRepository(db)),
		subjects: subject.NewService(inmemdb.NewSubjectRepository(db)),
		grades:   grade.NewService(inmemdb.NewGradeRepository(db)),
		finances: finance.NewService(inmemdb.NewFinanceRepository(db)),
		settings: settings.NewService(inmemdb.NewSettingsRepository(db)),
	}

	ctx := context.Background()
	for _, load := range []func(context.Context) error{
		ts.students.Load, ts.classes.Load, ts.teachers.Load, ts.subjects.Load,
		ts.grades.Load, ts.finances.Load, ts.settings.Load,
	} {
		if err := load(ctx); err != nil {
			t.Fatalf("newTestServer(): %v", err)
		}
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	reportSvc := report.NewService(
		ts.students, ts.classes, ts.teachers, ts.grades, ts.finances, ts.settings, mailSvc)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)

	ts.app = NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logsvc.NewConsoleLogger(stdlog.New(os.Stdout, "TEST : ", stdlog.LstdFlags)),
		StudentSvc:  ts.students,
		ClassSvc:    ts.classes,
		TeacherSvc:  ts.teachers,
		SubjectSvc:  ts.subjects,
		GradeSvc:    ts.grades,
		FinanceSvc:  ts.finances,
		SettingsSvc: ts.settings,
		ReportSvc:   reportSvc,
		Validate:    validate,
		Translator:  translator,
	})
	return ts
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func (ts *testServer) createUser(t *testing.T, email, pwd string, perms settings.Permissions) settings.User {
	t.Helper()
	usr, err := ts.settings.CreateUser(context.Background(), settings.NewUser{
		Email:           email,
		Password:        pwd,
		PasswordConfirm: pwd,
		Permissions:     perms,
	})
	if err != nil {
		t.Fatalf("createUser(): %v", err)
	}
	return usr
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr settings.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
