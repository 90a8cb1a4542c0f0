package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/finance"
)

type financeRepository struct {
	db *sqlx.DB
}

func NewFinanceRepository(db *sqlx.DB) finance.Repository {
	return &financeRepository{db: db}
}

func (repo *financeRepository) SelectPayments(ctx context.Context) ([]finance.Payment, error) {
	payments := make([]finance.Payment, 0)
	err := repo.db.SelectContext(ctx, &payments,
		`SELECT id, student_id, student_name, class_name, type, amount, status, date, due_date, created_at
		 FROM payments ORDER BY `+defaultOrdering.String())
	if err != nil {
		return nil, errors.Wrap(err, "selecting payments")
	}
	return payments, nil
}

func (repo *financeRepository) InsertPayment(ctx context.Context, pmt finance.Payment) error {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO payments (id, student_id, student_name, class_name, type, amount, status, date, due_date, created_at)
		 VALUES (:id, :student_id, :student_name, :class_name, :type, :amount, :status, :date, :due_date, :created_at)`, pmt)
	return errors.Wrap(err, "inserting payment")
}

func (repo *financeRepository) UpdatePayment(ctx context.Context, pmt finance.Payment) error {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE payments
		 SET status = :status, amount = :amount, date = :date, due_date = :due_date
		 WHERE id = :id`, pmt)
	if err != nil {
		return errors.Wrap(err, "updating payment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return finance.ErrNotFound
	}
	return nil
}

func (repo *financeRepository) DeletePayment(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return errors.Wrap(err, "deleting payment")
}

func (repo *financeRepository) SelectPaymentTypes(ctx context.Context) ([]finance.PaymentType, error) {
	types := make([]finance.PaymentType, 0)
	err := repo.db.SelectContext(ctx, &types,
		`SELECT id, name, amount, description, created_at
		 FROM payment_types ORDER BY `+defaultOrdering.String())
	if err != nil {
		return nil, errors.Wrap(err, "selecting payment types")
	}
	return types, nil
}

func (repo *financeRepository) InsertPaymentType(ctx context.Context, pt finance.PaymentType) error {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO payment_types (id, name, amount, description, created_at)
		 VALUES (:id, :name, :amount, :description, :created_at)`, pt)
	return errors.Wrap(err, "inserting payment type")
}

func (repo *financeRepository) DeletePaymentType(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM payment_types WHERE id = $1`, id)
	return errors.Wrap(err, "deleting payment type")
}
