package settings

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/shule/core"
)

// Settings is the school-wide configuration singleton.
type Settings struct {
	Name               string `json:"name" db:"name"`
	Type               string `json:"type" db:"type"`
	Address            string `json:"address" db:"address"`
	Phone              string `json:"phone" db:"phone"`
	Email              string `json:"email" db:"email"`
	SchoolYear         string `json:"school_year" db:"school_year"`
	Currency           string `json:"currency" db:"currency"`
	EmailNotifications bool   `json:"email_notifications" db:"email_notifications"`
	MaintenanceMode    bool   `json:"maintenance_mode" db:"maintenance_mode"`
}

func (s *Settings) Validate(validate *validator.Validate) error {
	s.Name = core.CleanString(s.Name)
	s.Email = core.CleanString(s.Email, true /* lower */)
	s.SchoolYear = core.CleanString(s.SchoolYear)
	return validate.Struct(s)
}

// Permissions are static boolean flags; there is no role hierarchy behind them.
type Permissions struct {
	ManageStudents  bool `json:"manage_students" db:"manage_students"`
	ManageFinances  bool `json:"manage_finances" db:"manage_finances"`
	GenerateReports bool `json:"generate_reports" db:"generate_reports"`
	SystemAdmin     bool `json:"system_admin" db:"system_admin"`
}

// User is a dashboard account.
type User struct {
	ID           string      `json:"id" db:"id"`
	Email        string      `json:"email" db:"email"`
	Role         string      `json:"role" db:"role"` // free-text label
	Permissions  Permissions `json:"permissions"`
	PasswordHash []byte      `json:"-" db:"password_hash"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to create a new dashboard User.
type NewUser struct {
	Email           string      `json:"email" validate:"required,email"`
	Role            string      `json:"role"`
	Password        string      `json:"password" validate:"required"`
	PasswordConfirm string      `json:"password_confirm" validate:"required,eqfield=Password"`
	Permissions     Permissions `json:"permissions"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role)
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing
// User. Nil fields are left untouched.
type UpdateUser struct {
	Email           *string      `json:"email" validate:"omitempty,email"`
	Role            *string      `json:"role"`
	Permissions     *Permissions `json:"permissions"`
	Password        string       `json:"password"`
	PasswordConfirm string       `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	if uu.Email != nil {
		email := core.CleanString(*uu.Email, true /* lower */)
		uu.Email = &email
	}
	return validate.Struct(uu)
}
