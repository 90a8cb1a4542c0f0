package main

import (
	"log"
	"os"

	"github.com/trezcool/shule/core"
	emailsvc "github.com/trezcool/shule/services/email"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage/database"
	sqlxrepos "github.com/trezcool/shule/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logsvc.NewConsoleLogger(logger))
	}

	// start CLI
	cli := commandLine{
		conf:         conf,
		db:           db,
		studentRepo:  sqlxrepos.NewStudentRepository(db),
		classRepo:    sqlxrepos.NewClassRepository(db),
		teacherRepo:  sqlxrepos.NewTeacherRepository(db),
		subjectRepo:  sqlxrepos.NewSubjectRepository(db),
		gradeRepo:    sqlxrepos.NewGradeRepository(db),
		financeRepo:  sqlxrepos.NewFinanceRepository(db),
		settingsRepo: sqlxrepos.NewSettingsRepository(db),
		mailSvc:      mailSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
