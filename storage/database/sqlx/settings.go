package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/settings"
)

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) settings.Repository {
	return &settingsRepository{db: db}
}

func (repo *settingsRepository) GetSettings(ctx context.Context) (settings.Settings, error) {
	var s settings.Settings
	err := repo.db.GetContext(ctx, &s,
		`SELECT name, type, address, phone, email, school_year, currency, email_notifications, maintenance_mode
		 FROM school_settings WHERE id = 1`)
	if err != nil {
		return settings.Settings{}, errors.Wrap(err, "getting settings")
	}
	return s, nil
}

func (repo *settingsRepository) SaveSettings(ctx context.Context, s settings.Settings) error {
	_, err := repo.db.NamedExecContext(ctx,
		`UPDATE school_settings
		 SET name = :name, type = :type, address = :address, phone = :phone, email = :email,
		     school_year = :school_year, currency = :currency,
		     email_notifications = :email_notifications, maintenance_mode = :maintenance_mode
		 WHERE id = 1`, s)
	return errors.Wrap(err, "saving settings")
}

// userRow flattens the permissions for scanning.
type userRow struct {
	ID              string    `db:"id"`
	Email           string    `db:"email"`
	Role            string    `db:"role"`
	ManageStudents  bool      `db:"manage_students"`
	ManageFinances  bool      `db:"manage_finances"`
	GenerateReports bool      `db:"generate_reports"`
	SystemAdmin     bool      `db:"system_admin"`
	PasswordHash    []byte    `db:"password_hash"`
	CreatedAt       time.Time `db:"created_at"`
}

func (row userRow) toUser() settings.User {
	return settings.User{
		ID:    row.ID,
		Email: row.Email,
		Role:  row.Role,
		Permissions: settings.Permissions{
			ManageStudents:  row.ManageStudents,
			ManageFinances:  row.ManageFinances,
			GenerateReports: row.GenerateReports,
			SystemAdmin:     row.SystemAdmin,
		},
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}

func toUserRow(usr settings.User) userRow {
	return userRow{
		ID:              usr.ID,
		Email:           usr.Email,
		Role:            usr.Role,
		ManageStudents:  usr.Permissions.ManageStudents,
		ManageFinances:  usr.Permissions.ManageFinances,
		GenerateReports: usr.Permissions.GenerateReports,
		SystemAdmin:     usr.Permissions.SystemAdmin,
		PasswordHash:    usr.PasswordHash,
		CreatedAt:       usr.CreatedAt,
	}
}

func (repo *settingsRepository) SelectUsers(ctx context.Context) ([]settings.User, error) {
	rows := make([]userRow, 0)
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, email, role, manage_students, manage_finances, generate_reports, system_admin,
		        password_hash, created_at
		 FROM users ORDER BY `+defaultOrdering.String())
	if err != nil {
		return nil, errors.Wrap(err, "selecting users")
	}
	users := make([]settings.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

func (repo *settingsRepository) InsertUser(ctx context.Context, usr settings.User) error {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO users (id, email, role, manage_students, manage_finances, generate_reports,
		                    system_admin, password_hash, created_at)
		 VALUES (:id, :email, :role, :manage_students, :manage_finances, :generate_reports,
		         :system_admin, :password_hash, :created_at)`, toUserRow(usr))
	return errors.Wrap(err, "inserting user")
}

func (repo *settingsRepository) UpdateUser(ctx context.Context, usr settings.User) error {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE users
		 SET email = :email, role = :role, manage_students = :manage_students,
		     manage_finances = :manage_finances, generate_reports = :generate_reports,
		     system_admin = :system_admin, password_hash = :password_hash
		 WHERE id = :id`, toUserRow(usr))
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return settings.ErrUserNotFound
	}
	return nil
}

func (repo *settingsRepository) DeleteUser(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return errors.Wrap(err, "deleting user")
}
