package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPlanRepo struct{ mock.Mock }

func (m *MockPlanRepo) List(ctx context.Context, gymID int) ([]Plan, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Plan), args.Error(1)
}

func (m *MockPlanRepo) GetByID(ctx context.Context, id, gymID int) (*Plan, error) {
	args := m.Called(ctx, id, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Plan), args.Error(1)
}

func (m *MockPlanRepo) ListNames(ctx context.Context, gymID int) ([]string, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPlanRepo) Create(ctx context.Context, gymID int, name, description string, price float64) (*Plan, error) {
	args := m.Called(ctx, gymID, name, description, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Plan), args.Error(1)
}

func (m *MockPlanRepo) Update(ctx context.Context, id, gymID int, name, description string, price float64) error {
	return m.Called(ctx, id, gymID, name, description, price).Error(0)
}

func (m *MockPlanRepo) Delete(ctx context.Context, id, gymID int) error {
	return m.Called(ctx, id, gymID).Error(0)
}

func (m *MockPlanRepo) NameTaken(ctx context.Context, gymID int, name string, excludeID int) (bool, error) {
	args := m.Called(ctx, gymID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanRepo) CountMembersOnPlan(ctx context.Context, id, gymID int) (int, error) {
	args := m.Called(ctx, id, gymID)
	return args.Int(0), args.Error(1)
}

func TestService_CreatePlan(t *testing.T) {
	req := PlanRequest{Name: "Full Access", Description: "All hours", Price: 40.0}

	t.Run("creates when name is free", func(t *testing.T) {
		repo := new(MockPlanRepo)
		repo.On("NameTaken", mock.Anything, 2, "Full Access", 0).Return(false, nil)
		repo.On("Create", mock.Anything, 2, "Full Access", "All hours", 40.0).
			Return(&Plan{ID: 3, GymID: 2, Name: "Full Access", Description: "All hours", Price: 40.0}, nil)

		service := NewService(repo)
		p, err := service.Create(context.Background(), 2, req)

		assert.NoError(t, err)
		assert.Equal(t, 3, p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name within the gym is a conflict", func(t *testing.T) {
		repo := new(MockPlanRepo)
		repo.On("NameTaken", mock.Anything, 2, "Full Access", 0).Return(true, nil)

		service := NewService(repo)
		_, err := service.Create(context.Background(), 2, req)

		var conflict *ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "Full Access", conflict.Name)
	})
}

func TestService_UpdatePlan(t *testing.T) {
	req := PlanRequest{Name: "Full Access", Description: "All hours", Price: 45.0}

	t.Run("renaming onto another plan is a conflict", func(t *testing.T) {
		repo := new(MockPlanRepo)
		repo.On("NameTaken", mock.Anything, 2, "Full Access", 3).Return(true, nil)

		service := NewService(repo)
		err := service.Update(context.Background(), 3, 2, req)

		var conflict *ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("keeping its own name is not a conflict", func(t *testing.T) {
		repo := new(MockPlanRepo)
		repo.On("NameTaken", mock.Anything, 2, "Full Access", 3).Return(false, nil)
		repo.On("Update", mock.Anything, 3, 2, "Full Access", "All hours", 45.0).Return(nil)

		service := NewService(repo)
		err := service.Update(context.Background(), 3, 2, req)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_DeletePlan(t *testing.T) {
	t.Run("blocked while members use it", func(t *testing.T) {
		repo := new(MockPlanRepo)
		repo.On("CountMembersOnPlan", mock.Anything, 3, 2).Return(4, nil)

		service := NewService(repo)
		err := service.Delete(context.Background(), 3, 2)

		var inUse *InUseError
		assert.ErrorAs(t, err, &inUse)
		assert.Equal(t, 4, inUse.Count)
		assert.Contains(t, err.Error(), "4 members")
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes an unused plan", func(t *testing.T) {
		repo := new(MockPlanRepo)
		repo.On("CountMembersOnPlan", mock.Anything, 3, 2).Return(0, nil)
		repo.On("Delete", mock.Anything, 3, 2).Return(nil)

		service := NewService(repo)
		err := service.Delete(context.Background(), 3, 2)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
