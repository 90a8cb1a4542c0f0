package report

import (
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/grade"
	"github.com/trezcool/shule/core/student"
)

type (
	// ClassStats are the per-class figures of the school report.
	ClassStats struct {
		ClassName     string `json:"class_name"`
		TotalStudents int    `json:"total_students"`
		// Boys and Girls are always 0: the Student model carries no gender
		// attribute. They are reported rather than omitted so report layouts
		// stay stable.
		Boys         int     `json:"boys"`
		Girls        int     `json:"girls"`
		AverageGrade float64 `json:"average_grade"`
		SuccessRate  float64 `json:"success_rate"`
	}

	// Data is the school-wide report snapshot.
	Data struct {
		TotalStudents   int          `json:"total_students"`
		TotalClasses    int          `json:"total_classes"`
		TotalTeachers   int          `json:"total_teachers"`
		MonthlyIncome   float64      `json:"monthly_income"`
		OverduePayments int          `json:"overdue_payments"`
		ClassStats      []ClassStats `json:"class_stats"`
	}

	// TotalStats aggregates the class-stat sub-counts school-wide.
	TotalStats struct {
		TotalStudents int `json:"total_students"`
		TotalBoys     int `json:"total_boys"`
		TotalGirls    int `json:"total_girls"`
		TotalClasses  int `json:"total_classes"`
	}
)

// ClassStatistics computes per-class statistics from snapshots. Students are
// counted into a class by exact, case-sensitive match of their denormalized
// class name; a student whose class matches no Class.Name is counted nowhere.
// The average grade of a class is the weighted average of the grades recorded
// under its name, 0 when it has none. Pure: inputs are never mutated.
func ClassStatistics(classes []class.Class, students []student.Student, grades []grade.Grade) []ClassStats {
	stats := make([]ClassStats, 0, len(classes))
	for _, cls := range classes {
		var count int
		for _, std := range students {
			if std.Class == cls.Name {
				count++
			}
		}
		clsGrades := make([]grade.Grade, 0)
		var passed int
		for _, g := range grades {
			if g.ClassName == cls.Name {
				clsGrades = append(clsGrades, g)
				if g.Value >= 10 {
					passed++
				}
			}
		}
		var successRate float64
		if len(clsGrades) > 0 {
			successRate = float64(passed) / float64(len(clsGrades)) * 100
		}
		stats = append(stats, ClassStats{
			ClassName:     cls.Name,
			TotalStudents: count,
			AverageGrade:  grade.WeightedAverage(clsGrades),
			SuccessRate:   successRate,
		})
	}
	return stats
}

// BuildData assembles the school-wide report snapshot.
func BuildData(
	students []student.Student,
	classes []class.Class,
	teacherCount int,
	financeStats finance.Stats,
	grades []grade.Grade,
) Data {
	return Data{
		TotalStudents:   len(students),
		TotalClasses:    len(classes),
		TotalTeachers:   teacherCount,
		MonthlyIncome:   financeStats.MonthlyIncome,
		OverduePayments: financeStats.OverdueCount,
		ClassStats:      ClassStatistics(classes, students, grades),
	}
}

// Totals sums the class-stat sub-counts. Boys/girls totals inherit the
// always-zero limitation of ClassStats.
func Totals(data Data) TotalStats {
	totals := TotalStats{
		TotalStudents: data.TotalStudents,
		TotalClasses:  data.TotalClasses,
	}
	for _, cls := range data.ClassStats {
		totals.TotalBoys += cls.Boys
		totals.TotalGirls += cls.Girls
	}
	return totals
}
