package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"io/ioutil"
	stdlog "log"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
	emailsvc "github.com/trezcool/shule/services/email"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	logger = stdlog.New(ioutil.Discard, "", 0)

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	conf := &core.Config{TestMode: true, Env: "TEST", AppName: "Shule"}
	return &commandLine{
		conf:         conf,
		db:           &sqlx.DB{},
		studentRepo:  inmemdb.NewStudentRepository(db),
		classRepo:    inmemdb.NewClassRepository(db),
		teacherRepo:  inmemdb.NewTeacherRepository(db),
		subjectRepo:  inmemdb.NewSubjectRepository(db),
		gradeRepo:    inmemdb.NewGradeRepository(db),
		financeRepo:  inmemdb.NewFinanceRepository(db),
		settingsRepo: inmemdb.NewSettingsRepository(db),
		mailSvc:      emailsvc.NewConsoleServiceMock(conf),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version", "fix": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"adduser", "-email", "dir@test.ci"}, wantErr: errHelp},
		{name: "create", args: []string{"adduser", "-email", "Dir@Test.CI", "-role", "Directrice", "-admin"}, extra: extra{pwd: "LePassword123"}},
		{name: "update password", args: []string{"adduser", "-email", "dir@test.ci"}, extra: extra{pwd: "UnAutre456"}},
	}
	var prevHash []byte
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				svc := settings.NewService(cli.settingsRepo)
				if err := svc.Load(context.Background()); err != nil {
					t.Fatalf("Load(): %v", err)
				}
				usr, err := svc.GetUserByEmail("dir@test.ci")
				if err != nil {
					t.Fatalf("GetUserByEmail(): %v", err)
				}
				if usr.Role != "Directrice" {
					t.Errorf("role = %v; want Directrice", usr.Role)
				}
				if !usr.Permissions.SystemAdmin {
					t.Error("expected admin permissions")
				}
				if bytes.Equal(usr.PasswordHash, prevHash) {
					t.Error("failed to update password")
				}
				prevHash = usr.PasswordHash
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	// pre-existing entries are left untouched
	classSvc := class.NewService(cli.classRepo)
	if err := classSvc.Load(ctx); err != nil {
		t.Fatalf("Load(): %v", err)
	}
	existing, err := classSvc.Create(ctx, class.NewClass{Name: "CP", Level: "Primaire", Capacity: 28})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	classSvc = class.NewService(cli.classRepo)
	if err := classSvc.Load(ctx); err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if got, want := len(classSvc.All()), len(defaultClasses); got != want {
		t.Errorf("classes = %v; want %v", got, want)
	}
	cp, err := classSvc.Get(existing.ID)
	if err != nil || cp.Capacity != 28 {
		t.Errorf("pre-existing class touched; got %+v, err %v", cp, err)
	}

	subjectSvc := subject.NewService(cli.subjectRepo)
	if err := subjectSvc.Load(ctx); err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if got, want := len(subjectSvc.All()), len(defaultSubjects); got != want {
		t.Errorf("subjects = %v; want %v", got, want)
	}

	// seeding twice must not duplicate
	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	classSvc = class.NewService(cli.classRepo)
	if err := classSvc.Load(ctx); err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if got, want := len(classSvc.All()), len(defaultClasses); got != want {
		t.Errorf("classes after reseed = %v; want %v", got, want)
	}
}

func Test_commandLine_remindOverdue(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	studentSvc := student.NewService(cli.studentRepo)
	if err := studentSvc.Load(ctx); err != nil {
		t.Fatalf("Load(): %v", err)
	}
	std, err := studentSvc.Create(ctx, student.NewStudent{
		FirstName:   "Kouassi",
		LastName:    "N'Guessan",
		ParentEmail: "parent@test.ci",
	})
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}

	financeSvc := finance.NewService(cli.financeRepo)
	if err := financeSvc.Load(ctx); err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if _, err := financeSvc.CreatePayment(ctx, finance.NewPayment{
		StudentID:   std.ID,
		StudentName: "Kouassi N'Guessan",
		Type:        "Scolarité",
		Amount:      25000,
		Status:      finance.StatusOverdue,
		Date:        time.Now(),
	}); err != nil {
		t.Fatalf("CreatePayment(): %v", err)
	}

	if err := cli.run([]string{"admin", "remindoverdue"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
}
