package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/finance"
)

type financeRepository struct {
	db *financeTable
}

func NewFinanceRepository(db *DB) finance.Repository {
	return &financeRepository{db: db.finance}
}

func (repo *financeRepository) SelectPayments(_ context.Context) ([]finance.Payment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	payments := make([]finance.Payment, 0, len(repo.db.payments))
	for _, pmt := range repo.db.payments {
		payments = append(payments, *pmt)
	}
	return payments, nil
}

func (repo *financeRepository) InsertPayment(_ context.Context, pmt finance.Payment) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.payments[pmt.ID] = &pmt
	return nil
}

func (repo *financeRepository) UpdatePayment(_ context.Context, pmt finance.Payment) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.payments[pmt.ID]; !ok {
		return finance.ErrNotFound
	}
	repo.db.payments[pmt.ID] = &pmt
	return nil
}

func (repo *financeRepository) DeletePayment(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.payments, id)
	return nil
}

func (repo *financeRepository) SelectPaymentTypes(_ context.Context) ([]finance.PaymentType, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	types := make([]finance.PaymentType, 0, len(repo.db.types))
	for _, pt := range repo.db.types {
		types = append(types, *pt)
	}
	return types, nil
}

func (repo *financeRepository) InsertPaymentType(_ context.Context, pt finance.PaymentType) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.types[pt.ID] = &pt
	return nil
}

func (repo *financeRepository) DeletePaymentType(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.types, id)
	return nil
}
