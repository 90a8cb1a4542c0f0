package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Student struct {
	ID          string    `json:"id" db:"id"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	DateOfBirth string    `json:"date_of_birth" db:"date_of_birth"`
	Class       string    `json:"class" db:"class_name"` // denormalized Class.Name; not a FK
	Status      string    `json:"status" db:"status"`
	ParentName  string    `json:"parent_name" db:"parent_name"`
	ParentPhone string    `json:"parent_phone" db:"parent_phone"`
	ParentEmail string    `json:"parent_email" db:"parent_email"`
	Address     string    `json:"address" db:"address"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth"`
	Class       string `json:"class"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
	ParentName  string `json:"parent_name"`
	ParentPhone string `json:"parent_phone"`
	ParentEmail string `json:"parent_email" validate:"omitempty,email"`
	Address     string `json:"address"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Class = core.CleanString(ns.Class)
	ns.ParentName = core.CleanString(ns.ParentName)
	ns.ParentEmail = core.CleanString(ns.ParentEmail, true /* lower */)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing
// Student. Nil fields are left untouched.
type UpdateStudent struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	Class       *string `json:"class"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
	ParentName  *string `json:"parent_name"`
	ParentPhone *string `json:"parent_phone"`
	ParentEmail *string `json:"parent_email" validate:"omitempty,email"`
	Address     *string `json:"address"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}
