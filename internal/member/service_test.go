package member

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMemberRepo struct{ mock.Mock }

func (m *MockMemberRepo) List(ctx context.Context, gymID int) ([]ListedMember, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ListedMember), args.Error(1)
}

func (m *MockMemberRepo) FindByID(ctx context.Context, id int) (*Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) FindByNationalID(ctx context.Context, nationalID string, gymID int) (*MemberWithPlan, error) {
	args := m.Called(ctx, nationalID, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MemberWithPlan), args.Error(1)
}

func (m *MockMemberRepo) NationalIDTaken(ctx context.Context, nationalID string, excludeID int) (bool, error) {
	args := m.Called(ctx, nationalID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepo) Create(ctx context.Context, gymID int, req MemberRequest, dueDate time.Time) (*Member, error) {
	args := m.Called(ctx, gymID, req, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) Update(ctx context.Context, id int, req MemberRequest, newDueDate *time.Time) error {
	return m.Called(ctx, id, req, newDueDate).Error(0)
}

func (m *MockMemberRepo) MarkUnpaid(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMemberRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMemberRepo) StatusStats(ctx context.Context, gymID int) (*StatusStats, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StatusStats), args.Error(1)
}

func (m *MockMemberRepo) ExportMembers(ctx context.Context, gymID int) ([]MemberExportRow, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MemberExportRow), args.Error(1)
}

// serviceAt pins the service clock so due-date arithmetic is stable.
func serviceAt(repo Repository, now time.Time) *service {
	return &service{repo: repo, now: func() time.Time { return now }}
}

func TestService_Create(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	req := MemberRequest{
		FirstName: "Ana", LastName: "Lopez", NationalID: "30111222",
		PaymentStatus: PaymentPaid,
	}

	t.Run("due date is thirty days out", func(t *testing.T) {
		repo := new(MockMemberRepo)
		repo.On("NationalIDTaken", mock.Anything, "30111222", 0).Return(false, nil)
		repo.On("Create", mock.Anything, 2, req, now.AddDate(0, 0, 30)).
			Return(&Member{ID: 5, NationalID: "30111222"}, nil)

		svc := serviceAt(repo, now)
		m, err := svc.Create(context.Background(), 2, req)

		assert.NoError(t, err)
		assert.Equal(t, 5, m.ID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate national ID is a conflict", func(t *testing.T) {
		repo := new(MockMemberRepo)
		repo.On("NationalIDTaken", mock.Anything, "30111222", 0).Return(true, nil)

		svc := serviceAt(repo, now)
		_, err := svc.Create(context.Background(), 2, req)

		var conflict *ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "30111222", conflict.NationalID)
	})
}

func TestService_Update(t *testing.T) {
	now := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	renewed := now.AddDate(0, 0, 30)

	tests := []struct {
		name          string
		storedStatus  string
		requestStatus string
		wantDueDate   *time.Time
	}{
		{"unpaid to paid restarts the period", PaymentUnpaid, PaymentPaid, &renewed},
		{"paid stays paid keeps the due date", PaymentPaid, PaymentPaid, nil},
		{"paid to unpaid keeps the due date", PaymentPaid, PaymentUnpaid, nil},
		{"unpaid stays unpaid keeps the due date", PaymentUnpaid, PaymentUnpaid, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := MemberRequest{
				FirstName: "Ana", LastName: "Lopez", NationalID: "30111222",
				PaymentStatus: tt.requestStatus,
			}

			repo := new(MockMemberRepo)
			repo.On("NationalIDTaken", mock.Anything, "30111222", 5).Return(false, nil)
			repo.On("FindByID", mock.Anything, 5).Return(&Member{ID: 5, PaymentStatus: tt.storedStatus}, nil)
			repo.On("Update", mock.Anything, 5, req, tt.wantDueDate).Return(nil)

			svc := serviceAt(repo, now)
			err := svc.Update(context.Background(), 5, req)

			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_CheckStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		dueDate     time.Time
		wantStatus  string
		wantDays    int
		marksUnpaid bool
	}{
		{"due date long out is current", now.AddDate(0, 0, 25), StatusCurrent, 25, false},
		{"eleven days out is still current", now.AddDate(0, 0, 11), StatusCurrent, 11, false},
		{"ten days out is due soon", now.AddDate(0, 0, 10), StatusDueSoon, 10, false},
		{"one day out is due soon", now.AddDate(0, 0, 1), StatusDueSoon, 1, false},
		{"due today is expired", now, StatusExpired, 0, true},
		{"past due is expired with zero days", now.AddDate(0, 0, -5), StatusExpired, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMemberRepo)
			if tt.marksUnpaid {
				repo.On("MarkUnpaid", mock.Anything, 5).Return(nil)
			}

			svc := serviceAt(repo, now)
			status, days, err := svc.CheckStatus(context.Background(), 5, tt.dueDate)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantDays, days)
			if tt.marksUnpaid {
				repo.AssertCalled(t, "MarkUnpaid", mock.Anything, 5)
			} else {
				repo.AssertNotCalled(t, "MarkUnpaid", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_CheckStatus_IgnoresTimeOfDay(t *testing.T) {
	// Late evening vs early morning must not change the day count.
	now := time.Date(2026, 3, 15, 23, 50, 0, 0, time.UTC)
	dueDate := time.Date(2026, 3, 25, 0, 10, 0, 0, time.UTC)

	svc := serviceAt(new(MockMemberRepo), now)
	status, days, err := svc.CheckStatus(context.Background(), 5, dueDate)

	assert.NoError(t, err)
	assert.Equal(t, StatusDueSoon, status)
	assert.Equal(t, 10, days)
}
