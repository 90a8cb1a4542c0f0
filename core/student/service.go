package student

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		SelectStudents(ctx context.Context) ([]Student, error)
		InsertStudent(ctx context.Context, std Student) error
		UpdateStudent(ctx context.Context, std Student) error
		DeleteStudent(ctx context.Context, id string) error
	}

	// Service is the students entity store: it owns the authoritative in-memory
	// list and mediates all mutations against the remote repository. The cached
	// list is only touched after the repository call succeeds, so a storage
	// failure never leaves local state half-mutated.
	Service struct {
		repo Repository

		mu       sync.RWMutex
		students []Student
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Load replaces the cached list with the repository contents.
func (svc *Service) Load(ctx context.Context) error {
	students, err := svc.repo.SelectStudents(ctx)
	if err != nil {
		return errors.Wrap(err, "selecting students")
	}
	svc.mu.Lock()
	svc.students = students
	svc.mu.Unlock()
	return nil
}

// All returns a snapshot copy of the cached list; mutating it does not
// affect the store.
func (svc *Service) All() []Student {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	snapshot := make([]Student, len(svc.students))
	copy(snapshot, svc.students)
	return snapshot
}

func (svc *Service) Get(id string) (Student, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, std := range svc.students {
		if std.ID == id {
			return std, nil
		}
	}
	return Student{}, ErrNotFound
}

// Filter returns the students matching `query` on name, class or parent name.
func (svc *Service) Filter(query string) []Student {
	query = core.CleanString(query)
	matches := make([]Student, 0)
	for _, std := range svc.All() {
		if core.MatchAny(query, std.FirstName, std.LastName, std.Class, std.ParentName) {
			matches = append(matches, std)
		}
	}
	return matches
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	status := ns.Status
	if status == "" {
		status = StatusActive
	}
	std := Student{
		ID:          uuid.New().String(),
		FirstName:   ns.FirstName,
		LastName:    ns.LastName,
		DateOfBirth: ns.DateOfBirth,
		Class:       ns.Class,
		Status:      status,
		ParentName:  ns.ParentName,
		ParentPhone: ns.ParentPhone,
		ParentEmail: ns.ParentEmail,
		Address:     ns.Address,
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.repo.InsertStudent(ctx, std); err != nil {
		return Student{}, errors.Wrap(err, "inserting student")
	}
	svc.mu.Lock()
	svc.students = append(svc.students, std)
	svc.mu.Unlock()
	return std, nil
}

// Update merges the set fields of `us` into the student with the given id.
// Overlapping updates to the same id are last-write-wins: the lock only
// orders the local list mutation, not the remote write.
func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	std, err := svc.Get(id)
	if err != nil {
		return Student{}, err
	}
	merge(&std, us)
	if err := svc.repo.UpdateStudent(ctx, std); err != nil {
		return Student{}, errors.Wrap(err, "updating student")
	}
	svc.mu.Lock()
	for i := range svc.students {
		if svc.students[i].ID == id {
			svc.students[i] = std
			break
		}
	}
	svc.mu.Unlock()
	return std, nil
}

// Delete removes the student; denormalized references in grades and payments
// are left as-is.
func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.Get(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteStudent(ctx, id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	svc.mu.Lock()
	for i := range svc.students {
		if svc.students[i].ID == id {
			svc.students = append(svc.students[:i], svc.students[i+1:]...)
			break
		}
	}
	svc.mu.Unlock()
	return nil
}

func merge(std *Student, us UpdateStudent) {
	if us.FirstName != nil {
		std.FirstName = core.CleanString(*us.FirstName)
	}
	if us.LastName != nil {
		std.LastName = core.CleanString(*us.LastName)
	}
	if us.DateOfBirth != nil {
		std.DateOfBirth = *us.DateOfBirth
	}
	if us.Class != nil {
		std.Class = core.CleanString(*us.Class)
	}
	if us.Status != nil {
		std.Status = *us.Status
	}
	if us.ParentName != nil {
		std.ParentName = core.CleanString(*us.ParentName)
	}
	if us.ParentPhone != nil {
		std.ParentPhone = *us.ParentPhone
	}
	if us.ParentEmail != nil {
		std.ParentEmail = core.CleanString(*us.ParentEmail, true /* lower */)
	}
	if us.Address != nil {
		std.Address = *us.Address
	}
}
