package grade

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

var (
	ErrNotFound        = errors.New("grade not found")
	errValueOutOfRange = errors.New("grade value must be between 0 and 20")
)

type (
	Repository interface {
		SelectGrades(ctx context.Context) ([]Grade, error)
		InsertGrade(ctx context.Context, grd Grade) error
		UpdateGrade(ctx context.Context, grd Grade) error
		DeleteGrade(ctx context.Context, id string) error
	}

	// Service is the grades entity store. See student.Service for the
	// store contract.
	Service struct {
		repo Repository

		mu     sync.RWMutex
		grades []Grade
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Load(ctx context.Context) error {
	grades, err := svc.repo.SelectGrades(ctx)
	if err != nil {
		return errors.Wrap(err, "selecting grades")
	}
	svc.mu.Lock()
	svc.grades = grades
	svc.mu.Unlock()
	return nil
}

func (svc *Service) All() []Grade {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	snapshot := make([]Grade, len(svc.grades))
	copy(snapshot, svc.grades)
	return snapshot
}

func (svc *Service) Get(id string) (Grade, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, grd := range svc.grades {
		if grd.ID == id {
			return grd, nil
		}
	}
	return Grade{}, ErrNotFound
}

func (svc *Service) Filter(query string) []Grade {
	query = core.CleanString(query)
	matches := make([]Grade, 0)
	for _, grd := range svc.All() {
		if core.MatchAny(query, grd.StudentName, grd.SubjectName, grd.ClassName, grd.Type) {
			matches = append(matches, grd)
		}
	}
	return matches
}

// ByStudent returns the cached grades of one student.
func (svc *Service) ByStudent(studentID string) []Grade {
	return ByStudent(svc.All(), studentID)
}

// BySubject returns the cached grades of one subject name.
func (svc *Service) BySubject(subjectName string) []Grade {
	return BySubject(svc.All(), subjectName)
}

// StudentAverage returns the weighted average of one student's grades;
// 0 if the student has none.
func (svc *Service) StudentAverage(studentID string) float64 {
	return WeightedAverage(svc.ByStudent(studentID))
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	// out-of-range values are a caller error, never clamped
	if ng.Value < MinValue || ng.Value > MaxValue {
		return Grade{}, core.NewValidationError(errValueOutOfRange,
			core.FieldError{Field: "value", Error: errValueOutOfRange.Error()})
	}
	grd := Grade{
		ID:          uuid.New().String(),
		StudentID:   ng.StudentID,
		StudentName: ng.StudentName,
		SubjectID:   null.NewString(ng.SubjectID, ng.SubjectID != ""),
		SubjectName: ng.SubjectName,
		ClassName:   ng.ClassName,
		Value:       ng.Value,
		Coefficient: ng.Coefficient,
		Type:        ng.Type,
		Date:        ng.Date,
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.repo.InsertGrade(ctx, grd); err != nil {
		return Grade{}, errors.Wrap(err, "inserting grade")
	}
	svc.mu.Lock()
	svc.grades = append(svc.grades, grd)
	svc.mu.Unlock()
	return grd, nil
}

// Update merges the set fields of `ug` into the grade with the given id.
// Overlapping updates to the same id are last-write-wins.
func (svc *Service) Update(ctx context.Context, id string, ug UpdateGrade) (Grade, error) {
	if ug.Value != nil && (*ug.Value < MinValue || *ug.Value > MaxValue) {
		return Grade{}, core.NewValidationError(errValueOutOfRange,
			core.FieldError{Field: "value", Error: errValueOutOfRange.Error()})
	}
	grd, err := svc.Get(id)
	if err != nil {
		return Grade{}, err
	}
	merge(&grd, ug)
	if err := svc.repo.UpdateGrade(ctx, grd); err != nil {
		return Grade{}, errors.Wrap(err, "updating grade")
	}
	svc.mu.Lock()
	for i := range svc.grades {
		if svc.grades[i].ID == id {
			svc.grades[i] = grd
			break
		}
	}
	svc.mu.Unlock()
	return grd, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.Get(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteGrade(ctx, id); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	svc.mu.Lock()
	for i := range svc.grades {
		if svc.grades[i].ID == id {
			svc.grades = append(svc.grades[:i], svc.grades[i+1:]...)
			break
		}
	}
	svc.mu.Unlock()
	return nil
}

func merge(grd *Grade, ug UpdateGrade) {
	if ug.Value != nil {
		grd.Value = *ug.Value
	}
	if ug.Coefficient != nil {
		grd.Coefficient = *ug.Coefficient
	}
	if ug.Type != nil {
		grd.Type = *ug.Type
	}
	if ug.Date != nil {
		grd.Date = *ug.Date
	}
}
