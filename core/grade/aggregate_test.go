package grade

import (
	"testing"
	"time"
)

func TestByStudentAndBySubject(t *testing.T) {
	now := time.Now()
	grades := []Grade{
		{ID: "1", StudentID: "s1", SubjectName: "MATHÉMATIQUES", Value: 15, Coefficient: 2, Type: TypeDS, Date: now},
		{ID: "2", StudentID: "s1", SubjectName: "LECTURE", Value: 9, Coefficient: 1, Type: TypeInterrogation, Date: now},
		{ID: "3", StudentID: "s2", SubjectName: "MATHÉMATIQUES", Value: 12, Coefficient: 2, Type: TypeExamen, Date: now},
	}

	if got := ByStudent(grades, "s1"); len(got) != 2 {
		t.Errorf("ByStudent(s1) = %d grades, want 2", len(got))
	}
	if got := ByStudent(grades, "unknown"); len(got) != 0 {
		t.Errorf("ByStudent(unknown) = %d grades, want 0", len(got))
	}
	if got := BySubject(grades, "MATHÉMATIQUES"); len(got) != 2 {
		t.Errorf("BySubject(MATHÉMATIQUES) = %d grades, want 2", len(got))
	}
	// exact, case-sensitive match
	if got := BySubject(grades, "mathématiques"); len(got) != 0 {
		t.Errorf("BySubject(mathématiques) = %d grades, want 0", len(got))
	}
}

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name   string
		grades []Grade
		want   float64
	}{
		{name: "empty set is 0", grades: nil, want: 0},
		{name: "single grade", grades: []Grade{{Value: 12, Coefficient: 3}}, want: 12},
		{
			name: "weighted",
			grades: []Grade{
				{Value: 15, Coefficient: 2},
				{Value: 9, Coefficient: 1},
			},
			want: 13, // (15*2 + 9*1) / 3
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightedAverage(tt.grades); got != tt.want {
				t.Errorf("WeightedAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeightedAverageOrderIndependent(t *testing.T) {
	grades := []Grade{
		{Value: 15, Coefficient: 2},
		{Value: 9, Coefficient: 1},
		{Value: 18, Coefficient: 4},
	}
	reversed := []Grade{grades[2], grades[1], grades[0]}

	if WeightedAverage(grades) != WeightedAverage(reversed) {
		t.Error("WeightedAverage() should not depend on grade order")
	}
}
