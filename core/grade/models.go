package grade

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

// Types
const (
	TypeDS            = "DS"
	TypeInterrogation = "Interrogation"
	TypeExamen        = "Examen"
)

// Grade values are on the 0-20 scale.
const (
	MinValue = 0
	MaxValue = 20
)

// Grade records a mark a student obtained in a subject. Student, subject and
// class names are denormalized at recording time: renaming a student or a
// subject afterwards does not rewrite historical grades.
type Grade struct {
	ID          string      `json:"id" db:"id"`
	StudentID   string      `json:"student_id" db:"student_id"`
	StudentName string      `json:"student_name" db:"student_name"`
	SubjectID   null.String `json:"subject_id,omitempty" db:"subject_id"`
	SubjectName string      `json:"subject_name" db:"subject_name"`
	ClassName   string      `json:"class_name" db:"class_name"`
	Value       float64     `json:"value" db:"value"`
	Coefficient int         `json:"coefficient" db:"coefficient"`
	Type        string      `json:"type" db:"type"`
	Date        time.Time   `json:"date" db:"date"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"` // UTC
}

// NewGrade contains information needed to record a new Grade.
type NewGrade struct {
	StudentID   string    `json:"student_id" validate:"required"`
	StudentName string    `json:"student_name" validate:"required"`
	SubjectID   string    `json:"subject_id"`
	SubjectName string    `json:"subject_name" validate:"required"`
	ClassName   string    `json:"class_name"`
	Value       float64   `json:"value" validate:"gte=0,lte=20"`
	Coefficient int       `json:"coefficient" validate:"gt=0"`
	Type        string    `json:"type" validate:"required,oneof=DS Interrogation Examen"`
	Date        time.Time `json:"date" validate:"required"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.StudentName = core.CleanString(ng.StudentName)
	ng.SubjectName = core.CleanString(ng.SubjectName)
	ng.ClassName = core.CleanString(ng.ClassName)
	return validate.Struct(ng)
}

// UpdateGrade defines what information may be provided to modify an existing
// Grade. Nil fields are left untouched; denormalized names are frozen at
// recording time and cannot be patched.
type UpdateGrade struct {
	Value       *float64   `json:"value" validate:"omitempty,gte=0,lte=20"`
	Coefficient *int       `json:"coefficient" validate:"omitempty,gt=0"`
	Type        *string    `json:"type" validate:"omitempty,oneof=DS Interrogation Examen"`
	Date        *time.Time `json:"date"`
}

func (ug *UpdateGrade) Validate(validate *validator.Validate) error {
	return validate.Struct(ug)
}
