package attendance

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Register(ctx context.Context, memberID int) (*Attendance, error) {
	query := `
		INSERT INTO attendance (member_id, recorded_at)
		VALUES ($1, NOW())
		RETURNING id, member_id, recorded_at
	`

	var att Attendance
	err := r.db.GetContext(ctx, &att, query, memberID)
	if err != nil {
		return nil, err
	}

	return &att, nil
}

func (r *repository) MonthlyCount(ctx context.Context, gymID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM attendance a
		JOIN members m ON a.member_id = m.id
		WHERE m.gym_id = $1 AND a.recorded_at >= date_trunc('month', NOW())
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, gymID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) MonthlyList(ctx context.Context, gymID int) ([]MonthlyRow, error) {
	query := `
		SELECT a.recorded_at, m.first_name, m.last_name, m.national_id
		FROM attendance a
		JOIN members m ON a.member_id = m.id
		WHERE m.gym_id = $1 AND a.recorded_at >= date_trunc('month', NOW())
		ORDER BY a.recorded_at DESC
	`

	var rows []MonthlyRow
	err := r.db.SelectContext(ctx, &rows, query, gymID)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *repository) ExportAttendance(ctx context.Context, gymID int) ([]MonthlyRow, error) {
	query := `
		SELECT a.recorded_at, m.first_name, m.last_name, m.national_id
		FROM attendance a
		JOIN members m ON a.member_id = m.id
		WHERE m.gym_id = $1 AND a.recorded_at >= date_trunc('month', NOW())
		ORDER BY a.recorded_at DESC, m.last_name, m.first_name
	`

	var rows []MonthlyRow
	err := r.db.SelectContext(ctx, &rows, query, gymID)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
