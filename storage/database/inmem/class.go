package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/class"
)

type classRepository struct {
	db *classTable
}

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{db: db.class}
}

func (repo *classRepository) SelectClasses(_ context.Context) ([]class.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	classes := make([]class.Class, 0, len(repo.db.t))
	for _, cls := range repo.db.t {
		classes = append(classes, *cls)
	}
	return classes, nil
}

func (repo *classRepository) InsertClass(_ context.Context, cls class.Class) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.t[cls.ID] = &cls
	return nil
}

func (repo *classRepository) UpdateClass(_ context.Context, cls class.Class) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[cls.ID]; !ok {
		return class.ErrNotFound
	}
	repo.db.t[cls.ID] = &cls
	return nil
}

func (repo *classRepository) DeleteClass(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, id)
	return nil
}
