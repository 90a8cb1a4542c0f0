package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/subject"
)

type subjectRepository struct {
	db *sqlx.DB
}

func NewSubjectRepository(db *sqlx.DB) subject.Repository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) SelectSubjects(ctx context.Context) ([]subject.Subject, error) {
	subjects := make([]subject.Subject, 0)
	err := repo.db.SelectContext(ctx, &subjects,
		`SELECT id, name, coefficient, category, created_at
		 FROM subjects ORDER BY `+defaultOrdering.String())
	if err != nil {
		return nil, errors.Wrap(err, "selecting subjects")
	}
	return subjects, nil
}

func (repo *subjectRepository) InsertSubject(ctx context.Context, sub subject.Subject) error {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO subjects (id, name, coefficient, category, created_at)
		 VALUES (:id, :name, :coefficient, :category, :created_at)`, sub)
	return errors.Wrap(err, "inserting subject")
}

func (repo *subjectRepository) UpdateSubject(ctx context.Context, sub subject.Subject) error {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE subjects
		 SET name = :name, coefficient = :coefficient, category = :category
		 WHERE id = :id`, sub)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return subject.ErrNotFound
	}
	return nil
}

func (repo *subjectRepository) DeleteSubject(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	return errors.Wrap(err, "deleting subject")
}
