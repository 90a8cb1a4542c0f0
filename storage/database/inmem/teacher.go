package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) SelectTeachers(_ context.Context) ([]teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(repo.db.t))
	for _, tch := range repo.db.t {
		teachers = append(teachers, *tch)
	}
	return teachers, nil
}

func (repo *teacherRepository) InsertTeacher(_ context.Context, tch teacher.Teacher) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.t[tch.ID] = &tch
	return nil
}

func (repo *teacherRepository) UpdateTeacher(_ context.Context, tch teacher.Teacher) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[tch.ID]; !ok {
		return teacher.ErrNotFound
	}
	repo.db.t[tch.ID] = &tch
	return nil
}

func (repo *teacherRepository) DeleteTeacher(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, id)
	return nil
}
