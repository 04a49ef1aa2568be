package plan

import "context"

type Repository interface {
	List(ctx context.Context, gymID int) ([]Plan, error)
	GetByID(ctx context.Context, id, gymID int) (*Plan, error)
	ListNames(ctx context.Context, gymID int) ([]string, error)
	Create(ctx context.Context, gymID int, name, description string, price float64) (*Plan, error)
	Update(ctx context.Context, id, gymID int, name, description string, price float64) error
	Delete(ctx context.Context, id, gymID int) error
	NameTaken(ctx context.Context, gymID int, name string, excludeID int) (bool, error)
	CountMembersOnPlan(ctx context.Context, id, gymID int) (int, error)
}
