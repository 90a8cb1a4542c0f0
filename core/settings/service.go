package settings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("a user with this email already exists")
)

type (
	Repository interface {
		GetSettings(ctx context.Context) (Settings, error)
		SaveSettings(ctx context.Context, s Settings) error

		SelectUsers(ctx context.Context) ([]User, error)
		InsertUser(ctx context.Context, usr User) error
		UpdateUser(ctx context.Context, usr User) error
		DeleteUser(ctx context.Context, id string) error
	}

	// Service is the settings entity store: the school configuration
	// singleton plus the dashboard user accounts.
	Service struct {
		repo Repository

		mu       sync.RWMutex
		settings Settings
		users    []User
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Load(ctx context.Context) error {
	s, err := svc.repo.GetSettings(ctx)
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	users, err := svc.repo.SelectUsers(ctx)
	if err != nil {
		return errors.Wrap(err, "selecting users")
	}
	svc.mu.Lock()
	svc.settings = s
	svc.users = users
	svc.mu.Unlock()
	return nil
}

func (svc *Service) Settings() Settings {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.settings
}

// Save replaces the settings singleton.
func (svc *Service) Save(ctx context.Context, s Settings) error {
	if err := svc.repo.SaveSettings(ctx, s); err != nil {
		return errors.Wrap(err, "saving settings")
	}
	svc.mu.Lock()
	svc.settings = s
	svc.mu.Unlock()
	return nil
}

func (svc *Service) Users() []User {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	snapshot := make([]User, len(svc.users))
	copy(snapshot, svc.users)
	return snapshot
}

func (svc *Service) GetUser(id string) (User, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, usr := range svc.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (svc *Service) GetUserByEmail(email string) (User, error) {
	email = core.CleanString(email, true /* lower */)
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, usr := range svc.users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (svc *Service) CreateUser(ctx context.Context, nu NewUser) (User, error) {
	if _, err := svc.GetUserByEmail(nu.Email); err == nil {
		return User{}, core.NewValidationError(ErrEmailExists,
			core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}
	usr := User{
		ID:          uuid.New().String(),
		Email:       nu.Email,
		Role:        nu.Role,
		Permissions: nu.Permissions,
		CreatedAt:   time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}
	if err := svc.repo.InsertUser(ctx, usr); err != nil {
		return User{}, errors.Wrap(err, "inserting user")
	}
	svc.mu.Lock()
	svc.users = append(svc.users, usr)
	svc.mu.Unlock()
	return usr, nil
}

// UpdateUser merges the set fields of `uu` into the user with the given id.
// Overlapping updates to the same id are last-write-wins.
func (svc *Service) UpdateUser(ctx context.Context, id string, uu UpdateUser) (User, error) {
	usr, err := svc.GetUser(id)
	if err != nil {
		return User{}, err
	}
	if uu.Email != nil {
		if other, err := svc.GetUserByEmail(*uu.Email); err == nil && other.ID != id {
			return User{}, core.NewValidationError(ErrEmailExists,
				core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
		}
		usr.Email = *uu.Email
	}
	if uu.Role != nil {
		usr.Role = *uu.Role
	}
	if uu.Permissions != nil {
		usr.Permissions = *uu.Permissions
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, errors.Wrap(err, "setting password")
		}
	}
	if err := svc.repo.UpdateUser(ctx, usr); err != nil {
		return User{}, errors.Wrap(err, "updating user")
	}
	svc.mu.Lock()
	for i := range svc.users {
		if svc.users[i].ID == id {
			svc.users[i] = usr
			break
		}
	}
	svc.mu.Unlock()
	return usr, nil
}

func (svc *Service) DeleteUser(ctx context.Context, id string) error {
	if _, err := svc.GetUser(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteUser(ctx, id); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	svc.mu.Lock()
	for i := range svc.users {
		if svc.users[i].ID == id {
			svc.users = append(svc.users[:i], svc.users[i+1:]...)
			break
		}
	}
	svc.mu.Unlock()
	return nil
}
