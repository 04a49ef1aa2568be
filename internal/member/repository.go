package member

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/FrancoGW/fit-app/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, gymID int) ([]ListedMember, error) {
	query := `
		SELECT m.id, m.first_name, m.last_name, m.national_id, m.phone, m.plan_id,
		       m.registered_at, m.due_date, m.payment_status, m.gym_id,
		       p.name AS plan_name
		FROM members m
		LEFT JOIN plans p ON m.plan_id = p.id
		WHERE m.gym_id = $1
		ORDER BY m.last_name, m.first_name
	`

	var members []ListedMember
	err := r.db.SelectContext(ctx, &members, query, gymID)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Member, error) {
	query := `
		SELECT id, first_name, last_name, national_id, phone, plan_id,
		       registered_at, due_date, payment_status, gym_id
		FROM members
		WHERE id = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByNationalID(ctx context.Context, nationalID string, gymID int) (*MemberWithPlan, error) {
	query := `
		SELECT m.id, m.first_name, m.last_name, m.due_date, m.payment_status,
		       p.name AS plan_name, p.description AS plan_description
		FROM members m
		LEFT JOIN plans p ON m.plan_id = p.id
		WHERE m.national_id = $1 AND m.gym_id = $2
	`

	var m MemberWithPlan
	err := r.db.GetContext(ctx, &m, query, nationalID, gymID)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// NationalIDTaken checks across every gym, not just the caller's.
func (r *repository) NationalIDTaken(ctx context.Context, nationalID string, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE national_id = $1 AND id != $2)`
	return db.Exists(ctx, r.db, query, nationalID, excludeID)
}

func (r *repository) Create(ctx context.Context, gymID int, req MemberRequest, dueDate time.Time) (*Member, error) {
	query := `
		INSERT INTO members (first_name, last_name, national_id, phone, plan_id,
		                     registered_at, due_date, payment_status, gym_id)
		VALUES ($1, $2, $3, $4, $5, NOW(), $6, $7, $8)
		RETURNING id, first_name, last_name, national_id, phone, plan_id,
		          registered_at, due_date, payment_status, gym_id
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query,
		req.FirstName, req.LastName, req.NationalID, req.Phone, req.PlanID,
		dueDate, req.PaymentStatus, gymID)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Update rewrites the editable fields. A nil newDueDate keeps the stored
// due date.
func (r *repository) Update(ctx context.Context, id int, req MemberRequest, newDueDate *time.Time) error {
	if newDueDate != nil {
		query := `
			UPDATE members
			SET first_name = $1, last_name = $2, national_id = $3, phone = $4,
			    plan_id = $5, payment_status = $6, due_date = $7
			WHERE id = $8
		`
		_, err := r.db.ExecContext(ctx, query,
			req.FirstName, req.LastName, req.NationalID, req.Phone,
			req.PlanID, req.PaymentStatus, *newDueDate, id)
		return err
	}

	query := `
		UPDATE members
		SET first_name = $1, last_name = $2, national_id = $3, phone = $4,
		    plan_id = $5, payment_status = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		req.FirstName, req.LastName, req.NationalID, req.Phone,
		req.PlanID, req.PaymentStatus, id)
	return err
}

func (r *repository) MarkUnpaid(ctx context.Context, id int) error {
	query := `UPDATE members SET payment_status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, PaymentUnpaid, id)
	return err
}

// Delete removes the member and their attendance history together; there
// is no FK cascade on the attendance table.
func (r *repository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE member_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete attendance records: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	return tx.Commit()
}

func (r *repository) StatusStats(ctx context.Context, gymID int) (*StatusStats, error) {
	var stats StatusStats

	if err := r.db.GetContext(ctx, &stats.Total,
		`SELECT COUNT(*) FROM members WHERE gym_id = $1`, gymID); err != nil {
		return nil, err
	}

	if err := r.db.GetContext(ctx, &stats.Paid,
		`SELECT COUNT(*) FROM members WHERE gym_id = $1 AND payment_status = $2`,
		gymID, PaymentPaid); err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		stats.PercentPaid = float64(stats.Paid) / float64(stats.Total) * 100
	}

	return &stats, nil
}

func (r *repository) ExportMembers(ctx context.Context, gymID int) ([]MemberExportRow, error) {
	query := `
		SELECT m.id, m.first_name, m.last_name, m.national_id, m.phone,
		       m.registered_at, m.due_date, m.payment_status,
		       p.name AS plan_name
		FROM members m
		LEFT JOIN plans p ON m.plan_id = p.id
		WHERE m.gym_id = $1
		ORDER BY m.last_name, m.first_name
	`

	var rows []MemberExportRow
	err := r.db.SelectContext(ctx, &rows, query, gymID)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
