package finance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

var (
	ErrNotFound      = errors.New("payment not found")
	ErrTypeNotFound  = errors.New("payment type not found")
	errInvalidStatus = errors.New("unknown payment status")
)

type (
	Repository interface {
		SelectPayments(ctx context.Context) ([]Payment, error)
		InsertPayment(ctx context.Context, pmt Payment) error
		UpdatePayment(ctx context.Context, pmt Payment) error
		DeletePayment(ctx context.Context, id string) error

		SelectPaymentTypes(ctx context.Context) ([]PaymentType, error)
		InsertPaymentType(ctx context.Context, pt PaymentType) error
		DeletePaymentType(ctx context.Context, id string) error
	}

	// Service is the finances entity store. It owns two lists (payments and
	// payment types), both mediated against the remote repository like
	// student.Service.
	Service struct {
		repo Repository

		mu       sync.RWMutex
		payments []Payment
		types    []PaymentType
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Load(ctx context.Context) error {
	payments, err := svc.repo.SelectPayments(ctx)
	if err != nil {
		return errors.Wrap(err, "selecting payments")
	}
	types, err := svc.repo.SelectPaymentTypes(ctx)
	if err != nil {
		return errors.Wrap(err, "selecting payment types")
	}
	svc.mu.Lock()
	svc.payments = payments
	svc.types = types
	svc.mu.Unlock()
	return nil
}

func (svc *Service) Payments() []Payment {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	snapshot := make([]Payment, len(svc.payments))
	copy(snapshot, svc.payments)
	return snapshot
}

func (svc *Service) PaymentTypes() []PaymentType {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	snapshot := make([]PaymentType, len(svc.types))
	copy(snapshot, svc.types)
	return snapshot
}

func (svc *Service) GetPayment(id string) (Payment, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, pmt := range svc.payments {
		if pmt.ID == id {
			return pmt, nil
		}
	}
	return Payment{}, ErrNotFound
}

// Stats computes the financial statistics over the current payment snapshot.
func (svc *Service) Stats(now time.Time) Stats {
	return CalcStats(svc.Payments(), now)
}

// OverduePayments returns the cached overdue payments.
func (svc *Service) OverduePayments() []Payment {
	return Overdue(svc.Payments())
}

// Filter returns the payments matching `query` on student name, class name
// or payment type.
func (svc *Service) Filter(query string) []Payment {
	query = core.CleanString(query)
	matches := make([]Payment, 0)
	for _, pmt := range svc.Payments() {
		if core.MatchAny(query, pmt.StudentName, pmt.ClassName, pmt.Type) {
			matches = append(matches, pmt)
		}
	}
	return matches
}

func (svc *Service) CreatePayment(ctx context.Context, np NewPayment) (Payment, error) {
	status := np.Status
	if status == "" {
		status = StatusPaid
	}
	pmt := Payment{
		ID:          uuid.New().String(),
		StudentID:   np.StudentID,
		StudentName: np.StudentName,
		ClassName:   np.ClassName,
		Type:        np.Type,
		Amount:      np.Amount,
		Status:      status,
		Date:        np.Date,
		DueDate:     null.TimeFromPtr(np.DueDate),
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.repo.InsertPayment(ctx, pmt); err != nil {
		return Payment{}, errors.Wrap(err, "inserting payment")
	}
	svc.mu.Lock()
	svc.payments = append(svc.payments, pmt)
	svc.mu.Unlock()
	return pmt, nil
}

// UpdatePaymentStatus moves a payment to another status.
// Overlapping updates to the same id are last-write-wins.
func (svc *Service) UpdatePaymentStatus(ctx context.Context, id, status string) (Payment, error) {
	switch status {
	case StatusPaid, StatusPending, StatusOverdue:
	default:
		return Payment{}, core.NewValidationError(errInvalidStatus,
			core.FieldError{Field: "status", Error: errInvalidStatus.Error()})
	}
	pmt, err := svc.GetPayment(id)
	if err != nil {
		return Payment{}, err
	}
	pmt.Status = status
	if err := svc.repo.UpdatePayment(ctx, pmt); err != nil {
		return Payment{}, errors.Wrap(err, "updating payment")
	}
	svc.mu.Lock()
	for i := range svc.payments {
		if svc.payments[i].ID == id {
			svc.payments[i] = pmt
			break
		}
	}
	svc.mu.Unlock()
	return pmt, nil
}

func (svc *Service) DeletePayment(ctx context.Context, id string) error {
	if _, err := svc.GetPayment(id); err != nil {
		return err
	}
	if err := svc.repo.DeletePayment(ctx, id); err != nil {
		return errors.Wrap(err, "deleting payment")
	}
	svc.mu.Lock()
	for i := range svc.payments {
		if svc.payments[i].ID == id {
			svc.payments = append(svc.payments[:i], svc.payments[i+1:]...)
			break
		}
	}
	svc.mu.Unlock()
	return nil
}

func (svc *Service) CreatePaymentType(ctx context.Context, nt NewPaymentType) (PaymentType, error) {
	pt := PaymentType{
		ID:          uuid.New().String(),
		Name:        nt.Name,
		Amount:      nt.Amount,
		Description: null.NewString(nt.Description, nt.Description != ""),
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.repo.InsertPaymentType(ctx, pt); err != nil {
		return PaymentType{}, errors.Wrap(err, "inserting payment type")
	}
	svc.mu.Lock()
	svc.types = append(svc.types, pt)
	svc.mu.Unlock()
	return pt, nil
}

// DeletePaymentType removes a payment type; payments recorded under its name
// keep the name (denormalized, no cascade).
func (svc *Service) DeletePaymentType(ctx context.Context, id string) error {
	svc.mu.RLock()
	found := false
	for _, pt := range svc.types {
		if pt.ID == id {
			found = true
			break
		}
	}
	svc.mu.RUnlock()
	if !found {
		return ErrTypeNotFound
	}
	if err := svc.repo.DeletePaymentType(ctx, id); err != nil {
		return errors.Wrap(err, "deleting payment type")
	}
	svc.mu.Lock()
	for i := range svc.types {
		if svc.types[i].ID == id {
			svc.types = append(svc.types[:i], svc.types[i+1:]...)
			break
		}
	}
	svc.mu.Unlock()
	return nil
}
