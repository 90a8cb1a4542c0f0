package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

// rows come back in remote order; stable within a session
var defaultOrdering = core.DBOrdering{Field: "created_at", Ascending: true}

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) SelectStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.SelectContext(ctx, &students,
		`SELECT id, first_name, last_name, date_of_birth, class_name, status,
		        parent_name, parent_phone, parent_email, address, created_at
		 FROM students ORDER BY `+defaultOrdering.String())
	if err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	return students, nil
}

func (repo *studentRepository) InsertStudent(ctx context.Context, std student.Student) error {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO students (id, first_name, last_name, date_of_birth, class_name, status,
		                       parent_name, parent_phone, parent_email, address, created_at)
		 VALUES (:id, :first_name, :last_name, :date_of_birth, :class_name, :status,
		         :parent_name, :parent_phone, :parent_email, :address, :created_at)`, std)
	return errors.Wrap(err, "inserting student")
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) error {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE students
		 SET first_name = :first_name, last_name = :last_name, date_of_birth = :date_of_birth,
		     class_name = :class_name, status = :status, parent_name = :parent_name,
		     parent_phone = :parent_phone, parent_email = :parent_email, address = :address
		 WHERE id = :id`, std)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	return errors.Wrap(err, "deleting student")
}
