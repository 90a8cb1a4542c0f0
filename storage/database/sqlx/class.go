package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/class"
)

type classRepository struct {
	db *sqlx.DB
}

func NewClassRepository(db *sqlx.DB) class.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) SelectClasses(ctx context.Context) ([]class.Class, error) {
	classes := make([]class.Class, 0)
	err := repo.db.SelectContext(ctx, &classes,
		`SELECT id, name, level, teacher_name, capacity, student_count, created_at
		 FROM classes ORDER BY `+defaultOrdering.String())
	if err != nil {
		return nil, errors.Wrap(err, "selecting classes")
	}
	return classes, nil
}

func (repo *classRepository) InsertClass(ctx context.Context, cls class.Class) error {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO classes (id, name, level, teacher_name, capacity, student_count, created_at)
		 VALUES (:id, :name, :level, :teacher_name, :capacity, :student_count, :created_at)`, cls)
	return errors.Wrap(err, "inserting class")
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls class.Class) error {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE classes
		 SET name = :name, level = :level, teacher_name = :teacher_name,
		     capacity = :capacity, student_count = :student_count
		 WHERE id = :id`, cls)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return class.ErrNotFound
	}
	return nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return errors.Wrap(err, "deleting class")
}
