package report

import (
	"time"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"

	"github.com/trezcool/shule/core"
)

// Service composes the entity stores into report snapshots, exports and
// parent notifications. It holds no state of its own; every call works on
// fresh store snapshots.
type Service struct {
	students *student.Service
	classes  *class.Service
	teachers *teacher.Service
	grades   *grade.Service
	finances *finance.Service
	settings *settings.Service
	mailSvc  core.EmailService
}

func NewService(
	students *student.Service,
	classes *class.Service,
	teachers *teacher.Service,
	grades *grade.Service,
	finances *finance.Service,
	setts *settings.Service,
	mailSvc core.EmailService,
) *Service {
	return &Service{
		students: students,
		classes:  classes,
		teachers: teachers,
		grades:   grades,
		finances: finances,
		settings: setts,
		mailSvc:  mailSvc,
	}
}

// Data assembles the report snapshot as of `now`.
func (svc *Service) Data(now time.Time) Data {
	return BuildData(
		svc.students.All(),
		svc.classes.All(),
		len(svc.teachers.All()),
		svc.finances.Stats(now),
		svc.grades.All(),
	)
}

// Totals sums the class-stat sub-counts as of `now`.
func (svc *Service) Totals(now time.Time) TotalStats {
	return Totals(svc.Data(now))
}

func (svc *Service) StudentsListCSV(now time.Time) (Export, error) {
	return StudentsListCSV(svc.students.All(), now)
}

func (svc *Service) OverduePaymentsCSV(now time.Time) (Export, error) {
	return OverduePaymentsCSV(svc.finances.Payments(), now)
}

func (svc *Service) GlobalReportJSON(now time.Time) (Export, error) {
	return GlobalReportJSON(svc.Data(now), now)
}
