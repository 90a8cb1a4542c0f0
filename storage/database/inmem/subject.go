package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/subject"
)

type subjectRepository struct {
	db *subjectTable
}

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db.subject}
}

func (repo *subjectRepository) SelectSubjects(_ context.Context) ([]subject.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subjects := make([]subject.Subject, 0, len(repo.db.t))
	for _, sub := range repo.db.t {
		subjects = append(subjects, *sub)
	}
	return subjects, nil
}

func (repo *subjectRepository) InsertSubject(_ context.Context, sub subject.Subject) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.t[sub.ID] = &sub
	return nil
}

func (repo *subjectRepository) UpdateSubject(_ context.Context, sub subject.Subject) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[sub.ID]; !ok {
		return subject.ErrNotFound
	}
	repo.db.t[sub.ID] = &sub
	return nil
}

func (repo *subjectRepository) DeleteSubject(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, id)
	return nil
}
