package subject

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = errors.New("subject not found")

type (
	Repository interface {
		SelectSubjects(ctx context.Context) ([]Subject, error)
		InsertSubject(ctx context.Context, sub Subject) error
		UpdateSubject(ctx context.Context, sub Subject) error
		DeleteSubject(ctx context.Context, id string) error
	}

	// Service is the subjects entity store. See student.Service for the
	// store contract.
	Service struct {
		repo Repository

		mu       sync.RWMutex
		subjects []Subject
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Load(ctx context.Context) error {
	subjects, err := svc.repo.SelectSubjects(ctx)
	if err != nil {
		return errors.Wrap(err, "selecting subjects")
	}
	svc.mu.Lock()
	svc.subjects = subjects
	svc.mu.Unlock()
	return nil
}

func (svc *Service) All() []Subject {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	snapshot := make([]Subject, len(svc.subjects))
	copy(snapshot, svc.subjects)
	return snapshot
}

func (svc *Service) Get(id string) (Subject, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, sub := range svc.subjects {
		if sub.ID == id {
			return sub, nil
		}
	}
	return Subject{}, ErrNotFound
}

func (svc *Service) Filter(query string) []Subject {
	query = core.CleanString(query)
	matches := make([]Subject, 0)
	for _, sub := range svc.All() {
		if core.MatchAny(query, sub.Name, sub.Category) {
			matches = append(matches, sub)
		}
	}
	return matches
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	sub := Subject{
		ID:          uuid.New().String(),
		Name:        ns.Name,
		Coefficient: ns.Coefficient,
		Category:    ns.Category,
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.repo.InsertSubject(ctx, sub); err != nil {
		return Subject{}, errors.Wrap(err, "inserting subject")
	}
	svc.mu.Lock()
	svc.subjects = append(svc.subjects, sub)
	svc.mu.Unlock()
	return sub, nil
}

// Update merges the set fields of `us` into the subject with the given id.
// Overlapping updates to the same id are last-write-wins.
func (svc *Service) Update(ctx context.Context, id string, us UpdateSubject) (Subject, error) {
	sub, err := svc.Get(id)
	if err != nil {
		return Subject{}, err
	}
	merge(&sub, us)
	if err := svc.repo.UpdateSubject(ctx, sub); err != nil {
		return Subject{}, errors.Wrap(err, "updating subject")
	}
	svc.mu.Lock()
	for i := range svc.subjects {
		if svc.subjects[i].ID == id {
			svc.subjects[i] = sub
			break
		}
	}
	svc.mu.Unlock()
	return sub, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.Get(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteSubject(ctx, id); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	svc.mu.Lock()
	for i := range svc.subjects {
		if svc.subjects[i].ID == id {
			svc.subjects = append(svc.subjects[:i], svc.subjects[i+1:]...)
			break
		}
	}
	svc.mu.Unlock()
	return nil
}

func merge(sub *Subject, us UpdateSubject) {
	if us.Name != nil {
		sub.Name = core.CleanString(*us.Name)
	}
	if us.Coefficient != nil {
		sub.Coefficient = *us.Coefficient
	}
	if us.Category != nil {
		sub.Category = *us.Category
	}
}
