package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/grade"
)

type gradeRepository struct {
	db *sqlx.DB
}

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) SelectGrades(ctx context.Context) ([]grade.Grade, error) {
	grades := make([]grade.Grade, 0)
	err := repo.db.SelectContext(ctx, &grades,
		`SELECT id, student_id, student_name, subject_id, subject_name, class_name,
		        value, coefficient, type, date, created_at
		 FROM grades ORDER BY `+defaultOrdering.String())
	if err != nil {
		return nil, errors.Wrap(err, "selecting grades")
	}
	return grades, nil
}

func (repo *gradeRepository) InsertGrade(ctx context.Context, grd grade.Grade) error {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO grades (id, student_id, student_name, subject_id, subject_name, class_name,
		                     value, coefficient, type, date, created_at)
		 VALUES (:id, :student_id, :student_name, :subject_id, :subject_name, :class_name,
		         :value, :coefficient, :type, :date, :created_at)`, grd)
	return errors.Wrap(err, "inserting grade")
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, grd grade.Grade) error {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE grades
		 SET value = :value, coefficient = :coefficient, type = :type, date = :date
		 WHERE id = :id`, grd)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return grade.ErrNotFound
	}
	return nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id)
	return errors.Wrap(err, "deleting grade")
}
