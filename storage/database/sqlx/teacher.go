package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/teacher"
)

type teacherRepository struct {
	db *sqlx.DB
}

func NewTeacherRepository(db *sqlx.DB) teacher.Repository {
	return &teacherRepository{db: db}
}

// teacherRow maps the text[] columns that sqlx cannot scan into []string.
type teacherRow struct {
	ID        string         `db:"id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Email     string         `db:"email"`
	Phone     string         `db:"phone"`
	Subjects  pq.StringArray `db:"subjects"`
	Classes   pq.StringArray `db:"classes"`
	Status    string         `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
}

func (row teacherRow) toTeacher() teacher.Teacher {
	return teacher.Teacher{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		Phone:     row.Phone,
		Subjects:  []string(row.Subjects),
		Classes:   []string(row.Classes),
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}
}

func toTeacherRow(tch teacher.Teacher) teacherRow {
	return teacherRow{
		ID:        tch.ID,
		FirstName: tch.FirstName,
		LastName:  tch.LastName,
		Email:     tch.Email,
		Phone:     tch.Phone,
		Subjects:  pq.StringArray(tch.Subjects),
		Classes:   pq.StringArray(tch.Classes),
		Status:    tch.Status,
		CreatedAt: tch.CreatedAt,
	}
}

func (repo *teacherRepository) SelectTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	rows := make([]teacherRow, 0)
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, first_name, last_name, email, phone, subjects, classes, status, created_at
		 FROM teachers ORDER BY `+defaultOrdering.String())
	if err != nil {
		return nil, errors.Wrap(err, "selecting teachers")
	}
	teachers := make([]teacher.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, row.toTeacher())
	}
	return teachers, nil
}

func (repo *teacherRepository) InsertTeacher(ctx context.Context, tch teacher.Teacher) error {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO teachers (id, first_name, last_name, email, phone, subjects, classes, status, created_at)
		 VALUES (:id, :first_name, :last_name, :email, :phone, :subjects, :classes, :status, :created_at)`,
		toTeacherRow(tch))
	return errors.Wrap(err, "inserting teacher")
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, tch teacher.Teacher) error {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE teachers
		 SET first_name = :first_name, last_name = :last_name, email = :email, phone = :phone,
		     subjects = :subjects, classes = :classes, status = :status
		 WHERE id = :id`, toTeacherRow(tch))
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return teacher.ErrNotFound
	}
	return nil
}

func (repo *teacherRepository) DeleteTeacher(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	return errors.Wrap(err, "deleting teacher")
}
