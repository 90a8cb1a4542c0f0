package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) SelectGrades(_ context.Context) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	grades := make([]grade.Grade, 0, len(repo.db.t))
	for _, grd := range repo.db.t {
		grades = append(grades, *grd)
	}
	return grades, nil
}

func (repo *gradeRepository) InsertGrade(_ context.Context, grd grade.Grade) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.t[grd.ID] = &grd
	return nil
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, grd grade.Grade) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[grd.ID]; !ok {
		return grade.ErrNotFound
	}
	repo.db.t[grd.ID] = &grd
	return nil
}

func (repo *gradeRepository) DeleteGrade(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, id)
	return nil
}
