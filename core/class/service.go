package class

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = errors.New("class not found")

type (
	Repository interface {
		SelectClasses(ctx context.Context) ([]Class, error)
		InsertClass(ctx context.Context, cls Class) error
		UpdateClass(ctx context.Context, cls Class) error
		DeleteClass(ctx context.Context, id string) error
	}

	// Service is the classes entity store. See student.Service for the
	// store contract; the cached list is only mutated after the repository
	// call succeeds.
	Service struct {
		repo Repository

		mu      sync.RWMutex
		classes []Class
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Load(ctx context.Context) error {
	classes, err := svc.repo.SelectClasses(ctx)
	if err != nil {
		return errors.Wrap(err, "selecting classes")
	}
	svc.mu.Lock()
	svc.classes = classes
	svc.mu.Unlock()
	return nil
}

func (svc *Service) All() []Class {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	snapshot := make([]Class, len(svc.classes))
	copy(snapshot, svc.classes)
	return snapshot
}

func (svc *Service) Get(id string) (Class, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, cls := range svc.classes {
		if cls.ID == id {
			return cls, nil
		}
	}
	return Class{}, ErrNotFound
}

func (svc *Service) Filter(query string) []Class {
	query = core.CleanString(query)
	matches := make([]Class, 0)
	for _, cls := range svc.All() {
		if core.MatchAny(query, cls.Name, cls.Level, cls.Teacher) {
			matches = append(matches, cls)
		}
	}
	return matches
}

func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	cls := Class{
		ID:        uuid.New().String(),
		Name:      nc.Name,
		Level:     nc.Level,
		Teacher:   nc.Teacher,
		Capacity:  nc.Capacity,
		CreatedAt: time.Now().UTC(),
	}
	if err := svc.repo.InsertClass(ctx, cls); err != nil {
		return Class{}, errors.Wrap(err, "inserting class")
	}
	svc.mu.Lock()
	svc.classes = append(svc.classes, cls)
	svc.mu.Unlock()
	return cls, nil
}

// Update merges the set fields of `uc` into the class with the given id.
// Renaming a class does not cascade to students holding the old name.
// Overlapping updates to the same id are last-write-wins.
func (svc *Service) Update(ctx context.Context, id string, uc UpdateClass) (Class, error) {
	cls, err := svc.Get(id)
	if err != nil {
		return Class{}, err
	}
	merge(&cls, uc)
	if err := svc.repo.UpdateClass(ctx, cls); err != nil {
		return Class{}, errors.Wrap(err, "updating class")
	}
	svc.mu.Lock()
	for i := range svc.classes {
		if svc.classes[i].ID == id {
			svc.classes[i] = cls
			break
		}
	}
	svc.mu.Unlock()
	return cls, nil
}

// AdjustStudentCount adds delta to the denormalized student count of the class
// named name, clamping at 0. Unknown names are a no-op: Student.Class is a free
// string and may not match an open class.
func (svc *Service) AdjustStudentCount(ctx context.Context, name string, delta int) error {
	svc.mu.RLock()
	var cls Class
	var found bool
	for _, c := range svc.classes {
		if c.Name == name {
			cls, found = c, true
			break
		}
	}
	svc.mu.RUnlock()
	if !found {
		return nil
	}

	cls.StudentCount += delta
	if cls.StudentCount < 0 {
		cls.StudentCount = 0
	}
	if err := svc.repo.UpdateClass(ctx, cls); err != nil {
		return errors.Wrap(err, "updating class")
	}
	svc.mu.Lock()
	for i := range svc.classes {
		if svc.classes[i].ID == cls.ID {
			svc.classes[i] = cls
			break
		}
	}
	svc.mu.Unlock()
	return nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.Get(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteClass(ctx, id); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	svc.mu.Lock()
	for i := range svc.classes {
		if svc.classes[i].ID == id {
			svc.classes = append(svc.classes[:i], svc.classes[i+1:]...)
			break
		}
	}
	svc.mu.Unlock()
	return nil
}

func merge(cls *Class, uc UpdateClass) {
	if uc.Name != nil {
		cls.Name = core.CleanString(*uc.Name)
	}
	if uc.Level != nil {
		cls.Level = core.CleanString(*uc.Level)
	}
	if uc.Teacher != nil {
		cls.Teacher = core.CleanString(*uc.Teacher)
	}
	if uc.Capacity != nil {
		cls.Capacity = *uc.Capacity
	}
	if uc.StudentCount != nil {
		cls.StudentCount = *uc.StudentCount
	}
}
