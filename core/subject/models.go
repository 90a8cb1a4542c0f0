package subject

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

// Categories
const (
	CategoryCore     = "core"
	CategoryOptional = "optional"
	CategoryExtra    = "extra"
)

type Subject struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Coefficient int       `json:"coefficient" db:"coefficient"` // positive weighting factor
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewSubject contains information needed to add a new Subject.
type NewSubject struct {
	Name        string `json:"name" validate:"required"`
	Coefficient int    `json:"coefficient" validate:"gt=0"`
	Category    string `json:"category" validate:"required,oneof=core optional extra"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing
// Subject. Nil fields are left untouched. Renaming a subject does not cascade
// to historical grade records.
type UpdateSubject struct {
	Name        *string `json:"name"`
	Coefficient *int    `json:"coefficient" validate:"omitempty,gt=0"`
	Category    *string `json:"category" validate:"omitempty,oneof=core optional extra"`
}

func (us *UpdateSubject) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}
