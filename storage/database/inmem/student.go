package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/student"
)

type studentRepository struct {
	db *studentTable
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) SelectStudents(_ context.Context) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0, len(repo.db.t))
	for _, std := range repo.db.t {
		students = append(students, *std)
	}
	return students, nil
}

func (repo *studentRepository) InsertStudent(_ context.Context, std student.Student) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.t[std.ID] = &std
	return nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, std student.Student) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[std.ID]; !ok {
		return student.ErrNotFound
	}
	repo.db.t[std.ID] = &std
	return nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, id)
	return nil
}
