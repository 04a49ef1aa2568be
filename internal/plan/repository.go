package plan

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

func (r *repository) List(ctx context.Context, gymID int) ([]Plan, error) {
	query := `
		SELECT id, gym_id, name, description, price
		FROM plans
		WHERE gym_id = $1
		ORDER BY name
	`

	var plans []Plan
	err := r.db.SelectContext(ctx, &plans, query, gymID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) GetByID(ctx context.Context, id, gymID int) (*Plan, error) {
	query := `
		SELECT id, gym_id, name, description, price
		FROM plans
		WHERE id = $1 AND gym_id = $2
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, id, gymID)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListNames(ctx context.Context, gymID int) ([]string, error) {
	query := `SELECT name FROM plans WHERE gym_id = $1 ORDER BY name`

	var names []string
	err := r.db.SelectContext(ctx, &names, query, gymID)
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *repository) Create(ctx context.Context, gymID int, name, description string, price float64) (*Plan, error) {
	query := `
		INSERT INTO plans (gym_id, name, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, gym_id, name, description, price
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, gymID, name, description, price)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, id, gymID int, name, description string, price float64) error {
	query := `
		UPDATE plans
		SET name = $1, description = $2, price = $3
		WHERE id = $4 AND gym_id = $5
	`
	_, err := r.db.ExecContext(ctx, query, name, description, price, id, gymID)
	return err
}

func (r *repository) Delete(ctx context.Context, id, gymID int) error {
	query := `DELETE FROM plans WHERE id = $1 AND gym_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, gymID)
	return err
}

func (r *repository) NameTaken(ctx context.Context, gymID int, name string, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM plans WHERE gym_id = $1 AND name = $2 AND id != $3)`
	return db.Exists(ctx, r.db, query, gymID, name, excludeID)
}

func (r *repository) CountMembersOnPlan(ctx context.Context, id, gymID int) (int, error) {
	query := `SELECT COUNT(*) FROM members WHERE plan_id = $1 AND gym_id = $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, id, gymID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
