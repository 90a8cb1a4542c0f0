package report

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/teacher"
	inmemdb "github.com/trezcool/shule/storage/database/inmem"
)

// mailRecorder captures messages synchronously.
type mailRecorder struct {
	mu       sync.Mutex
	messages []*core.EmailMessage
}

func (r *mailRecorder) SendMessages(messages ...*core.EmailMessage) {
	r.mu.Lock()
	r.messages = append(r.messages, messages...)
	r.mu.Unlock()
}

type fixture struct {
	students *student.Service
	classes  *class.Service
	teachers *teacher.Service
	grades   *grade.Service
	finances *finance.Service
	settings *settings.Service
	mail     *mailRecorder
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := inmemdb.Open()
	require.NoError(t, err)

	f := &fixture{
		students: student.NewService(inmemdb.NewStudentRepository(db)),
		classes:  class.NewService(inmemdb.NewClassRepository(db)),
		teachers: teacher.NewService(inmemdb.NewTeacherRepository(db)),
		grades:   grade.NewService(inmemdb.NewGradeRepository(db)),
		finances: finance.NewService(inmemdb.NewFinanceRepository(db)),
		settings: settings.NewService(inmemdb.NewSettingsRepository(db)),
		mail:     &mailRecorder{},
	}

	ctx := context.Background()
	for _, load := range []func(context.Context) error{
		f.students.Load, f.classes.Load, f.teachers.Load,
		f.grades.Load, f.finances.Load, f.settings.Load,
	} {
		require.NoError(t, load(ctx))
	}

	f.svc = NewService(f.students, f.classes, f.teachers, f.grades, f.finances, f.settings, f.mail)
	return f
}

func TestSendOverdueReminders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	std, err := f.students.Create(ctx, student.NewStudent{
		FirstName:   "Kouassi",
		LastName:    "N'Guessan",
		Class:       "CP1",
		ParentName:  "M. N'Guessan",
		ParentEmail: "parent@test.ci",
	})
	require.NoError(t, err)
	noEmail, err := f.students.Create(ctx, student.NewStudent{
		FirstName: "Ama",
		LastName:  "Koné",
	})
	require.NoError(t, err)

	// two overdue payments for the same student must yield one reminder
	for _, amount := range []float64{25000, 5000} {
		_, err = f.finances.CreatePayment(ctx, finance.NewPayment{
			StudentID:   std.ID,
			StudentName: "Kouassi N'Guessan",
			Type:        "Scolarité",
			Amount:      amount,
			Status:      finance.StatusOverdue,
			Date:        time.Now(),
		})
		require.NoError(t, err)
	}
	_, err = f.finances.CreatePayment(ctx, finance.NewPayment{
		StudentID:   noEmail.ID,
		StudentName: "Ama Koné",
		Type:        "Cantine",
		Amount:      5000,
		Status:      finance.StatusOverdue,
		Date:        time.Now(),
	})
	require.NoError(t, err)

	sent := f.svc.SendOverdueReminders()
	assert.Equal(t, 1, sent) // the student without a parent email is skipped
	require.Len(t, f.mail.messages, 1)

	msg := f.mail.messages[0]
	assert.Equal(t, "Rappel de paiement", msg.Subject)
	require.Len(t, msg.To, 1)
	assert.Equal(t, "parent@test.ci", msg.To[0].Address)
	assert.Contains(t, msg.TextContent, "Kouassi N'Guessan")
	assert.Contains(t, msg.TextContent, "Total dû : 30000 FCFA")
}

func TestSendOverdueRemindersDisabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	setts := f.settings.Settings()
	setts.EmailNotifications = false
	require.NoError(t, f.settings.Save(ctx, setts))

	std, err := f.students.Create(ctx, student.NewStudent{
		FirstName:   "Kouassi",
		LastName:    "N'Guessan",
		ParentEmail: "parent@test.ci",
	})
	require.NoError(t, err)
	_, err = f.finances.CreatePayment(ctx, finance.NewPayment{
		StudentID:   std.ID,
		StudentName: "Kouassi N'Guessan",
		Type:        "Scolarité",
		Amount:      25000,
		Status:      finance.StatusOverdue,
		Date:        time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, f.svc.SendOverdueReminders())
	assert.Empty(t, f.mail.messages)
}

func TestSendOverdueRemindersNoOverdue(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 0, f.svc.SendOverdueReminders())
}

func TestServiceData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.classes.Create(ctx, class.NewClass{Name: "CP1", Level: "Primaire", Capacity: 30})
	require.NoError(t, err)
	_, err = f.students.Create(ctx, student.NewStudent{FirstName: "Kouassi", LastName: "N'Guessan", Class: "CP1"})
	require.NoError(t, err)
	_, err = f.teachers.Create(ctx, teacher.NewTeacher{FirstName: "Akissi", LastName: "Brou"})
	require.NoError(t, err)

	data := f.svc.Data(time.Now())
	assert.Equal(t, 1, data.TotalStudents)
	assert.Equal(t, 1, data.TotalClasses)
	assert.Equal(t, 1, data.TotalTeachers)
	require.Len(t, data.ClassStats, 1)
	assert.Equal(t, "CP1", data.ClassStats[0].ClassName)
	assert.Equal(t, 1, data.ClassStats[0].TotalStudents)

	totals := f.svc.Totals(time.Now())
	assert.Equal(t, 1, totals.TotalStudents)

	// exports come straight from the same snapshots
	exp, err := f.svc.StudentsListCSV(time.Now())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(exp.Content), "N'Guessan"))
}
