package plan

import "context"

type Service interface {
	List(ctx context.Context, gymID int) ([]Plan, error)
	GetByID(ctx context.Context, id, gymID int) (*Plan, error)
	ListNames(ctx context.Context, gymID int) ([]string, error)
	Create(ctx context.Context, gymID int, req PlanRequest) (*Plan, error)
	Update(ctx context.Context, id, gymID int, req PlanRequest) error
	Delete(ctx context.Context, id, gymID int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, gymID int) ([]Plan, error) {
	return s.repo.List(ctx, gymID)
}

func (s *service) GetByID(ctx context.Context, id, gymID int) (*Plan, error) {
	return s.repo.GetByID(ctx, id, gymID)
}

func (s *service) ListNames(ctx context.Context, gymID int) ([]string, error) {
	return s.repo.ListNames(ctx, gymID)
}

func (s *service) Create(ctx context.Context, gymID int, req PlanRequest) (*Plan, error) {
	taken, err := s.repo.NameTaken(ctx, gymID, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ConflictError{Name: req.Name}
	}

	return s.repo.Create(ctx, gymID, req.Name, req.Description, req.Price)
}

func (s *service) Update(ctx context.Context, id, gymID int, req PlanRequest) error {
	taken, err := s.repo.NameTaken(ctx, gymID, req.Name, id)
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{Name: req.Name}
	}

	return s.repo.Update(ctx, id, gymID, req.Name, req.Description, req.Price)
}

// Delete refuses to remove a plan while members reference it, reporting
// how many do.
func (s *service) Delete(ctx context.Context, id, gymID int) error {
	count, err := s.repo.CountMembersOnPlan(ctx, id, gymID)
	if err != nil {
		return err
	}
	if count > 0 {
		return &InUseError{Count: count}
	}

	return s.repo.Delete(ctx, id, gymID)
}
