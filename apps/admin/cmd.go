package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
	"github.com/trezcool/shule/core/teacher"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf         *core.Config
	db           *sqlx.DB
	studentRepo  student.Repository
	classRepo    class.Repository
	teacherRepo  teacher.Repository
	subjectRepo  subject.Repository
	gradeRepo    grade.Repository
	financeRepo  finance.Repository
	settingsRepo settings.Repository
	mailSvc      core.EmailService
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args]                     - run database migrations")
	fmt.Println("  adduser -email EMAIL [-role ROLE] [-admin] - update or create a dashboard user; password is prompted")
	fmt.Println("  seed                                       - create the default classes and subjects")
	fmt.Println("  remindoverdue                              - email payment reminders for overdue payments")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", "", "A free-text role label.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Grant all permissions.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserEmail, *addUserRole, string(pwd), *addUserAdmin)
	case "seed":
		return cli.seed()
	case "remindoverdue":
		return cli.remindOverdue()
	default:
		cli.printUsage()
		return errHelp
	}
}
