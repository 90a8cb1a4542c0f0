package inmemdb

import (
	"sync"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/settings"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
	"github.com/trezcool/shule/core/teacher"
)

type (
	DB struct {
		student  *studentTable
		class    *classTable
		teacher  *teacherTable
		subject  *subjectTable
		grade    *gradeTable
		finance  *financeTable
		settings *settingsTable
	}

	studentTable struct {
		t     map[string]*student.Student
		mutex sync.RWMutex
	}

	classTable struct {
		t     map[string]*class.Class
		mutex sync.RWMutex
	}

	teacherTable struct {
		t     map[string]*teacher.Teacher
		mutex sync.RWMutex
	}

	subjectTable struct {
		t     map[string]*subject.Subject
		mutex sync.RWMutex
	}

	gradeTable struct {
		t     map[string]*grade.Grade
		mutex sync.RWMutex
	}

	financeTable struct {
		payments map[string]*finance.Payment
		types    map[string]*finance.PaymentType
		mutex    sync.RWMutex
	}

	settingsTable struct {
		settings settings.Settings
		users    map[string]*settings.User
		mutex    sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{t: make(map[string]*student.Student)},
		class:   &classTable{t: make(map[string]*class.Class)},
		teacher: &teacherTable{t: make(map[string]*teacher.Teacher)},
		subject: &subjectTable{t: make(map[string]*subject.Subject)},
		grade:   &gradeTable{t: make(map[string]*grade.Grade)},
		finance: &financeTable{
			payments: make(map[string]*finance.Payment),
			types:    make(map[string]*finance.PaymentType),
		},
		settings: &settingsTable{
			// same defaults as the seeded school_settings row
			settings: settings.Settings{Currency: "FCFA", EmailNotifications: true},
			users:    make(map[string]*settings.User),
		},
	}
	return db, nil
}
