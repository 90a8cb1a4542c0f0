package finance

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

// Payment statuses
const (
	StatusPaid    = "Payé"
	StatusPending = "En attente"
	StatusOverdue = "En retard"
)

var Statuses = []string{StatusPaid, StatusPending, StatusOverdue}

// Payment records money received (or expected) for a student. Student and
// class names are denormalized at recording time.
type Payment struct {
	ID          string    `json:"id" db:"id"`
	StudentID   string    `json:"student_id" db:"student_id"`
	StudentName string    `json:"student_name" db:"student_name"`
	ClassName   string    `json:"class_name" db:"class_name"`
	Type        string    `json:"type" db:"type"` // payment-type name, not a FK
	Amount      float64   `json:"amount" db:"amount"`
	Status      string    `json:"status" db:"status"`
	Date        time.Time `json:"date" db:"date"`
	DueDate     null.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

// PaymentType is a named payment category with a default amount
// (e.g. "Scolarité", "Cantine").
type PaymentType struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Amount      float64     `json:"amount" db:"amount"`
	Description null.String `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"` // UTC
}

// NewPayment contains information needed to record a new Payment.
// Payments are recorded as paid unless another status is supplied.
type NewPayment struct {
	StudentID   string     `json:"student_id" validate:"required"`
	StudentName string     `json:"student_name" validate:"required"`
	ClassName   string     `json:"class_name"`
	Type        string     `json:"type" validate:"required"`
	Amount      float64    `json:"amount" validate:"gt=0"`
	Status      string     `json:"status" validate:"omitempty,oneof=Payé 'En attente' 'En retard'"`
	Date        time.Time  `json:"date" validate:"required"`
	DueDate     *time.Time `json:"due_date"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.StudentName = core.CleanString(np.StudentName)
	np.ClassName = core.CleanString(np.ClassName)
	np.Type = core.CleanString(np.Type)
	return validate.Struct(np)
}

// NewPaymentType contains information needed to add a new PaymentType.
type NewPaymentType struct {
	Name        string  `json:"name" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description"`
}

func (nt *NewPaymentType) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Description = core.CleanString(nt.Description)
	return validate.Struct(nt)
}
