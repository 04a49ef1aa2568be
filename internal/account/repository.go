package account

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/FrancoGW/fit-app/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const accountColumns = `id, username, password_hash, email, kind, gym_name, registered_at, last_access_at, active`

func (r *repository) FindActiveByUsername(ctx context.Context, username string) (*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE username = $1 AND active = TRUE
	`

	var acct Account
	err := r.db.GetContext(ctx, &acct, query, username)
	if err != nil {
		return nil, err
	}

	return &acct, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`

	var acct Account
	err := r.db.GetContext(ctx, &acct, query, id)
	if err != nil {
		return nil, err
	}

	return &acct, nil
}

func (r *repository) ListGyms(ctx context.Context) ([]Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE kind = 'gym'
		ORDER BY gym_name
	`

	var gyms []Account
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) Create(ctx context.Context, kind, gymName, username, email, passwordHash string) (*Account, error) {
	query := `
		INSERT INTO accounts (username, password_hash, email, kind, gym_name, registered_at, active)
		VALUES ($1, $2, $3, $4, $5, NOW(), TRUE)
		RETURNING ` + accountColumns + `
	`

	var acct Account
	err := r.db.GetContext(ctx, &acct, query, username, passwordHash, email, kind, gymName)
	if err != nil {
		return nil, err
	}

	return &acct, nil
}

func (r *repository) Update(ctx context.Context, id int, gymName, username, email string, passwordHash *string) error {
	if passwordHash != nil {
		query := `
			UPDATE accounts
			SET gym_name = $1, username = $2, email = $3, password_hash = $4
			WHERE id = $5
		`
		_, err := r.db.ExecContext(ctx, query, gymName, username, email, *passwordHash, id)
		return err
	}

	query := `
		UPDATE accounts
		SET gym_name = $1, username = $2, email = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, gymName, username, email, id)
	return err
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, passwordHash, id)
	return err
}

// ToggleActive flips the flag in a single statement and reports the new
// state.
func (r *repository) ToggleActive(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE accounts
		SET active = NOT active
		WHERE id = $1
		RETURNING active
	`

	var active bool
	err := r.db.GetContext(ctx, &active, query, id)
	if err != nil {
		return false, err
	}

	return active, nil
}

func (r *repository) TouchLastAccess(ctx context.Context, id int) error {
	query := `UPDATE accounts SET last_access_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *repository) UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1 AND id != $2)`
	return db.Exists(ctx, r.db, query, username, excludeID)
}

func (r *repository) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1 AND id != $2)`
	return db.Exists(ctx, r.db, query, email, excludeID)
}

func (r *repository) GymName(ctx context.Context, id int) (string, error) {
	query := `SELECT gym_name FROM accounts WHERE id = $1`

	var name string
	err := r.db.GetContext(ctx, &name, query, id)
	if err != nil {
		return "", err
	}

	return name, nil
}

func (r *repository) ExportGyms(ctx context.Context) ([]GymExportRow, error) {
	query := `
		SELECT id, gym_name, username, email, registered_at, last_access_at, active
		FROM accounts
		WHERE kind = 'gym'
		ORDER BY gym_name
	`

	var rows []GymExportRow
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
