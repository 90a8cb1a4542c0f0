package teacher

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Teacher struct {
	ID        string    `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Subjects  []string  `json:"subjects" db:"-"` // subject names, not FKs
	Classes   []string  `json:"classes" db:"-"`  // class names, not FKs
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

func (t Teacher) Teaches(subjectName string) bool {
	for _, name := range t.Subjects {
		if name == subjectName {
			return true
		}
	}
	return false
}

// NewTeacher contains information needed to register a new Teacher.
// Subjects start out empty and are assigned through updates.
type NewTeacher struct {
	FirstName string   `json:"first_name" validate:"required"`
	LastName  string   `json:"last_name" validate:"required"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Phone     string   `json:"phone"`
	Classes   []string `json:"classes"`
	Status    string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.FirstName = core.CleanString(nt.FirstName)
	nt.LastName = core.CleanString(nt.LastName)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Classes = cleanSet(nt.Classes)
	return validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an existing
// Teacher. Nil fields are left untouched.
type UpdateTeacher struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Email     *string  `json:"email" validate:"omitempty,email"`
	Phone     *string  `json:"phone"`
	Subjects  []string `json:"subjects"`
	Classes   []string `json:"classes"`
	Status    *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate) error {
	ut.Subjects = cleanSet(ut.Subjects)
	ut.Classes = cleanSet(ut.Classes)
	return validate.Struct(ut)
}

// cleanSet trims entries and drops empties and duplicates, preserving order.
func cleanSet(names []string) []string {
	if names == nil {
		return nil
	}
	seen := make(map[string]bool, len(names))
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}
	return cleaned
}
