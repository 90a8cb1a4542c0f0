package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/settings"
)

type settingsRepository struct {
	db *settingsTable
}

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db.settings}
}

func (repo *settingsRepository) GetSettings(_ context.Context) (settings.Settings, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.db.settings, nil
}

func (repo *settingsRepository) SaveSettings(_ context.Context, s settings.Settings) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.settings = s
	return nil
}

func (repo *settingsRepository) SelectUsers(_ context.Context) ([]settings.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	users := make([]settings.User, 0, len(repo.db.users))
	for _, usr := range repo.db.users {
		users = append(users, *usr)
	}
	return users, nil
}

func (repo *settingsRepository) InsertUser(_ context.Context, usr settings.User) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.users[usr.ID] = &usr
	return nil
}

func (repo *settingsRepository) UpdateUser(_ context.Context, usr settings.User) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.users[usr.ID]; !ok {
		return settings.ErrUserNotFound
	}
	repo.db.users[usr.ID] = &usr
	return nil
}

func (repo *settingsRepository) DeleteUser(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.users, id)
	return nil
}
