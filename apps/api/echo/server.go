package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
	"github.com/trezcool/shule/core/teacher"
)

type (
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		StudentSvc  *student.Service
		ClassSvc    *class.Service
		TeacherSvc  *teacher.Service
		SubjectSvc  *subject.Service
		GradeSvc    *grade.Service
		FinanceSvc  *finance.Service
		SettingsSvc *settings.Service
		ReportSvc   *report.Service
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server struct {
		deps       ServerDeps
		app        *echo.Echo
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:       deps,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := ConfigureAuth(conf)

	registerAuthAPI(v1, jwt, s.deps.SettingsSvc, s.deps.Validate)
	registerStudentAPI(v1, jwt, s.deps.StudentSvc, s.deps.ClassSvc, s.deps.Validate)
	registerClassAPI(v1, jwt, s.deps.ClassSvc, s.deps.Validate)
	registerTeacherAPI(v1, jwt, s.deps.TeacherSvc, s.deps.Validate)
	registerSubjectAPI(v1, jwt, s.deps.SubjectSvc, s.deps.Validate)
	registerGradeAPI(v1, jwt, s.deps.GradeSvc, s.deps.Validate)
	registerFinanceAPI(v1, jwt, s.deps.FinanceSvc, s.deps.Validate)
	registerReportAPI(v1, jwt, s.deps.ReportSvc)
	registerSettingsAPI(v1, jwt, s.deps.SettingsSvc, s.deps.Validate)
}

func (s *Server) Start() {
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGTERM)
	s.errCh <- s.app.Start(s.deps.Conf.Server.Addr())
}

// Errors reports fatal server errors.
func (s *Server) Errors() <-chan error { return s.errCh }

// ShutdownSignal reports OS signals and in-app shutdown requests.
func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdownCh }

// SignalShutdown requests a graceful shutdown from within the app.
func (s *Server) SignalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Shule API!")
}
