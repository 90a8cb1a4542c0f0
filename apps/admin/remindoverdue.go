package main

import (
	"context"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
)

// remindOverdue emails a payment reminder to the parents of every student
// with overdue payments. Intended to be run from a cron job.
func (cli *commandLine) remindOverdue() error {
	ctx := context.Background()

	studentSvc := student.NewService(cli.studentRepo)
	classSvc := class.NewService(cli.classRepo)
	teacherSvc := teacher.NewService(cli.teacherRepo)
	gradeSvc := grade.NewService(cli.gradeRepo)
	financeSvc := finance.NewService(cli.financeRepo)
	settingsSvc := settings.NewService(cli.settingsRepo)

	for _, load := range []func(context.Context) error{
		studentSvc.Load,
		classSvc.Load,
		teacherSvc.Load,
		gradeSvc.Load,
		financeSvc.Load,
		settingsSvc.Load,
	} {
		if err := load(ctx); err != nil {
			return err
		}
	}

	svc := report.NewService(studentSvc, classSvc, teacherSvc, gradeSvc, financeSvc, settingsSvc, cli.mailSvc)
	sent := svc.SendOverdueReminders()
	logger.Printf("sent %d reminder(s)\n", sent)
	return nil
}
