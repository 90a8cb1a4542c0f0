package teacher

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = errors.New("teacher not found")

type (
	Repository interface {
		SelectTeachers(ctx context.Context) ([]Teacher, error)
		InsertTeacher(ctx context.Context, tch Teacher) error
		UpdateTeacher(ctx context.Context, tch Teacher) error
		DeleteTeacher(ctx context.Context, id string) error
	}

	// Service is the teachers entity store. See student.Service for the
	// store contract.
	Service struct {
		repo Repository

		mu       sync.RWMutex
		teachers []Teacher
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Load(ctx context.Context) error {
	teachers, err := svc.repo.SelectTeachers(ctx)
	if err != nil {
		return errors.Wrap(err, "selecting teachers")
	}
	svc.mu.Lock()
	svc.teachers = teachers
	svc.mu.Unlock()
	return nil
}

func (svc *Service) All() []Teacher {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	snapshot := make([]Teacher, len(svc.teachers))
	copy(snapshot, svc.teachers)
	return snapshot
}

func (svc *Service) Get(id string) (Teacher, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, tch := range svc.teachers {
		if tch.ID == id {
			return tch, nil
		}
	}
	return Teacher{}, ErrNotFound
}

// Filter returns the teachers matching `query` on name, email or any of
// their subject names.
func (svc *Service) Filter(query string) []Teacher {
	query = core.CleanString(query)
	matches := make([]Teacher, 0)
	for _, tch := range svc.All() {
		fields := append([]string{tch.FirstName, tch.LastName, tch.Email}, tch.Subjects...)
		if core.MatchAny(query, fields...) {
			matches = append(matches, tch)
		}
	}
	return matches
}

func (svc *Service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	status := nt.Status
	if status == "" {
		status = StatusActive
	}
	tch := Teacher{
		ID:        uuid.New().String(),
		FirstName: nt.FirstName,
		LastName:  nt.LastName,
		Email:     nt.Email,
		Phone:     nt.Phone,
		Subjects:  []string{},
		Classes:   nt.Classes,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if tch.Classes == nil {
		tch.Classes = []string{}
	}
	if err := svc.repo.InsertTeacher(ctx, tch); err != nil {
		return Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	svc.mu.Lock()
	svc.teachers = append(svc.teachers, tch)
	svc.mu.Unlock()
	return tch, nil
}

// Update merges the set fields of `ut` into the teacher with the given id.
// Overlapping updates to the same id are last-write-wins.
func (svc *Service) Update(ctx context.Context, id string, ut UpdateTeacher) (Teacher, error) {
	tch, err := svc.Get(id)
	if err != nil {
		return Teacher{}, err
	}
	merge(&tch, ut)
	if err := svc.repo.UpdateTeacher(ctx, tch); err != nil {
		return Teacher{}, errors.Wrap(err, "updating teacher")
	}
	svc.mu.Lock()
	for i := range svc.teachers {
		if svc.teachers[i].ID == id {
			svc.teachers[i] = tch
			break
		}
	}
	svc.mu.Unlock()
	return tch, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.Get(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteTeacher(ctx, id); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	svc.mu.Lock()
	for i := range svc.teachers {
		if svc.teachers[i].ID == id {
			svc.teachers = append(svc.teachers[:i], svc.teachers[i+1:]...)
			break
		}
	}
	svc.mu.Unlock()
	return nil
}

func merge(tch *Teacher, ut UpdateTeacher) {
	if ut.FirstName != nil {
		tch.FirstName = strings.TrimSpace(*ut.FirstName)
	}
	if ut.LastName != nil {
		tch.LastName = strings.TrimSpace(*ut.LastName)
	}
	if ut.Email != nil {
		tch.Email = core.CleanString(*ut.Email, true /* lower */)
	}
	if ut.Phone != nil {
		tch.Phone = *ut.Phone
	}
	if ut.Subjects != nil {
		tch.Subjects = ut.Subjects
	}
	if ut.Classes != nil {
		tch.Classes = ut.Classes
	}
	if ut.Status != nil {
		tch.Status = *ut.Status
	}
}
