package license

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Grant deactivates any currently active license for the account and
// inserts the new one inside a single transaction, so the at-most-one-
// active invariant holds even if the process dies mid-grant.
func (r *repository) Grant(ctx context.Context, accountID int, licenseType LicenseType, start, end time.Time, price float64) (*License, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin grant transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE licenses
		SET active = FALSE
		WHERE account_id = $1 AND active = TRUE
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to supersede active license: %w", err)
	}

	var lic License
	err = tx.GetContext(ctx, &lic, `
		INSERT INTO licenses (account_id, type, start_date, end_date, price, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, account_id, type, start_date, end_date, price, active, created_at
	`, accountID, licenseType, start, end, price)
	if err != nil {
		return nil, fmt.Errorf("failed to insert license: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit grant: %w", err)
	}

	return &lic, nil
}

// Revoke is idempotent: revoking an inactive or unknown license is a
// no-op.
func (r *repository) Revoke(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE licenses
		SET active = FALSE
		WHERE id = $1
	`, id)
	return err
}

func (r *repository) ActiveEndDate(ctx context.Context, accountID int) (*time.Time, error) {
	query := `
		SELECT end_date
		FROM licenses
		WHERE account_id = $1 AND active = TRUE
		ORDER BY end_date DESC
		LIMIT 1
	`

	var endDate time.Time
	err := r.db.GetContext(ctx, &endDate, query, accountID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &endDate, nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats

	if err := r.db.GetContext(ctx, &stats.TotalGyms,
		`SELECT COUNT(*) FROM accounts WHERE kind = 'gym'`); err != nil {
		return nil, err
	}

	if err := r.db.GetContext(ctx, &stats.ActiveGyms,
		`SELECT COUNT(*) FROM accounts WHERE kind = 'gym' AND active = TRUE`); err != nil {
		return nil, err
	}

	if err := r.db.GetContext(ctx, &stats.ActiveLicenses,
		`SELECT COUNT(*) FROM licenses WHERE active = TRUE`); err != nil {
		return nil, err
	}

	// Revenue counts every license ever sold, superseded and revoked ones
	// included.
	if err := r.db.GetContext(ctx, &stats.TotalRevenue,
		`SELECT COALESCE(SUM(price), 0) FROM licenses`); err != nil {
		return nil, err
	}

	if stats.TotalGyms > 0 {
		stats.PercentActive = float64(stats.ActiveGyms) / float64(stats.TotalGyms) * 100
	}

	return &stats, nil
}

func (r *repository) List(ctx context.Context) ([]ListedLicense, error) {
	query := `
		SELECT l.id, l.account_id, l.type, l.start_date, l.end_date, l.price, l.active, l.created_at, a.gym_name
		FROM licenses l
		JOIN accounts a ON l.account_id = a.id
		ORDER BY l.end_date DESC
	`

	var licenses []ListedLicense
	err := r.db.SelectContext(ctx, &licenses, query)
	if err != nil {
		return nil, err
	}

	return licenses, nil
}

func (r *repository) ListActiveGyms(ctx context.Context) ([]ActiveGym, error) {
	query := `
		SELECT id, gym_name
		FROM accounts
		WHERE kind = 'gym' AND active = TRUE
		ORDER BY gym_name
	`

	var gyms []ActiveGym
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GymContact(ctx context.Context, accountID int) (*GymContact, error) {
	query := `SELECT email, gym_name FROM accounts WHERE id = $1`

	var contact GymContact
	err := r.db.GetContext(ctx, &contact, query, accountID)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (r *repository) ContactForLicense(ctx context.Context, licenseID int) (*GymContact, error) {
	query := `
		SELECT a.email, a.gym_name
		FROM licenses l
		JOIN accounts a ON l.account_id = a.id
		WHERE l.id = $1
	`

	var contact GymContact
	err := r.db.GetContext(ctx, &contact, query, licenseID)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (r *repository) ExportLicenses(ctx context.Context) ([]LicenseExportRow, error) {
	query := `
		SELECT l.id, a.gym_name, l.type, l.start_date, l.end_date, l.price, l.active
		FROM licenses l
		JOIN accounts a ON l.account_id = a.id
		ORDER BY l.end_date DESC
	`

	var rows []LicenseExportRow
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
