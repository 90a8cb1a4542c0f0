package class

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

type Class struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Level    string `json:"level" db:"level"`
	Teacher  string `json:"teacher" db:"teacher_name"` // denormalized teacher name; not a FK
	Capacity int    `json:"capacity" db:"capacity"`
	// StudentCount is caller-maintained: whoever moves a student in or out of
	// a class is responsible for adjusting it. Reports compute live counts
	// separately and never write them back.
	StudentCount int       `json:"student_count" db:"student_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewClass contains information needed to open a new Class.
type NewClass struct {
	Name     string `json:"name" validate:"required"`
	Level    string `json:"level" validate:"required"`
	Teacher  string `json:"teacher"`
	Capacity int    `json:"capacity" validate:"gt=0"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Level = core.CleanString(nc.Level)
	nc.Teacher = core.CleanString(nc.Teacher)
	return validate.Struct(nc)
}

// UpdateClass defines what information may be provided to modify an existing
// Class. Nil fields are left untouched.
type UpdateClass struct {
	Name         *string `json:"name"`
	Level        *string `json:"level"`
	Teacher      *string `json:"teacher"`
	Capacity     *int    `json:"capacity" validate:"omitempty,gt=0"`
	StudentCount *int    `json:"student_count" validate:"omitempty,gte=0"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate) error {
	return validate.Struct(uc)
}
