package account

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/FrancoGW/fit-app/internal/auth"
	"github.com/FrancoGW/fit-app/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

// Mock repositories
type MockAccountRepo struct{ mock.Mock }
type MockLicenseChecker struct{ mock.Mock }
type MockNotifier struct{ mock.Mock }

func (m *MockAccountRepo) FindActiveByUsername(ctx context.Context, username string) (*Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockAccountRepo) FindByID(ctx context.Context, id int) (*Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockAccountRepo) ListGyms(ctx context.Context) ([]Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Account), args.Error(1)
}

func (m *MockAccountRepo) Create(ctx context.Context, kind, gymName, username, email, passwordHash string) (*Account, error) {
	args := m.Called(ctx, kind, gymName, username, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockAccountRepo) Update(ctx context.Context, id int, gymName, username, email string, passwordHash *string) error {
	return m.Called(ctx, id, gymName, username, email, passwordHash).Error(0)
}

func (m *MockAccountRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockAccountRepo) ToggleActive(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepo) TouchLastAccess(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepo) UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepo) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepo) GymName(ctx context.Context, id int) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepo) ExportGyms(ctx context.Context) ([]GymExportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]GymExportRow), args.Error(1)
}

func (m *MockLicenseChecker) ActiveEndDate(ctx context.Context, accountID int) (*time.Time, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockNotifier) GymProvisioned(ctx context.Context, email, gymName, username, password string) error {
	return m.Called(ctx, email, gymName, username, password).Error(0)
}

const testSecret = "test-secret"

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	assert.NoError(t, err)
	return hash
}

func TestService_Login(t *testing.T) {
	future := time.Now().Add(30 * 24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	adminHash := hashFor(t, "admin123")
	gymHash := hashFor(t, "gympass1")

	tests := []struct {
		name       string
		req        LoginRequest
		setupMocks func(*MockAccountRepo, *MockLicenseChecker)
		wantErr    error
	}{
		{
			name: "admin login succeeds without license check",
			req:  LoginRequest{Username: "admin", Password: "admin123"},
			setupMocks: func(r *MockAccountRepo, l *MockLicenseChecker) {
				r.On("FindActiveByUsername", mock.Anything, "admin").Return(&Account{
					ID: 1, Username: "admin", PasswordHash: adminHash, Kind: KindAdmin, Active: true,
				}, nil)
				r.On("TouchLastAccess", mock.Anything, 1).Return(nil)
			},
		},
		{
			name: "gym login with valid license",
			req:  LoginRequest{Username: "irongym", Password: "gympass1"},
			setupMocks: func(r *MockAccountRepo, l *MockLicenseChecker) {
				r.On("FindActiveByUsername", mock.Anything, "irongym").Return(&Account{
					ID: 2, Username: "irongym", PasswordHash: gymHash, Kind: KindGym,
					GymName: "Iron Gym", Active: true,
				}, nil)
				r.On("TouchLastAccess", mock.Anything, 2).Return(nil)
				l.On("ActiveEndDate", mock.Anything, 2).Return(&future, nil)
			},
		},
		{
			name: "unknown username",
			req:  LoginRequest{Username: "nobody", Password: "whatever"},
			setupMocks: func(r *MockAccountRepo, l *MockLicenseChecker) {
				r.On("FindActiveByUsername", mock.Anything, "nobody").Return(nil, errors.New("sql: no rows"))
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  LoginRequest{Username: "admin", Password: "wrong"},
			setupMocks: func(r *MockAccountRepo, l *MockLicenseChecker) {
				r.On("FindActiveByUsername", mock.Anything, "admin").Return(&Account{
					ID: 1, Username: "admin", PasswordHash: adminHash, Kind: KindAdmin, Active: true,
				}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "gym without license is rejected",
			req:  LoginRequest{Username: "irongym", Password: "gympass1"},
			setupMocks: func(r *MockAccountRepo, l *MockLicenseChecker) {
				r.On("FindActiveByUsername", mock.Anything, "irongym").Return(&Account{
					ID: 2, Username: "irongym", PasswordHash: gymHash, Kind: KindGym, Active: true,
				}, nil)
				r.On("TouchLastAccess", mock.Anything, 2).Return(nil)
				l.On("ActiveEndDate", mock.Anything, 2).Return(nil, nil)
			},
			wantErr: ErrNoActiveLicense,
		},
		{
			name: "gym with expired license is rejected",
			req:  LoginRequest{Username: "irongym", Password: "gympass1"},
			setupMocks: func(r *MockAccountRepo, l *MockLicenseChecker) {
				r.On("FindActiveByUsername", mock.Anything, "irongym").Return(&Account{
					ID: 2, Username: "irongym", PasswordHash: gymHash, Kind: KindGym, Active: true,
				}, nil)
				r.On("TouchLastAccess", mock.Anything, 2).Return(nil)
				l.On("ActiveEndDate", mock.Anything, 2).Return(&past, nil)
			},
			wantErr: ErrLicenseExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAccountRepo)
			licenses := new(MockLicenseChecker)
			tt.setupMocks(repo, licenses)

			service := NewService(repo, licenses, nil, testSecret)
			resp, err := service.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, resp.AccessToken)
				assert.NotEmpty(t, resp.RefreshToken)
			}
			repo.AssertExpectations(t)
			licenses.AssertExpectations(t)
		})
	}
}

func TestService_Login_StampsLastAccessBeforeLicenseGate(t *testing.T) {
	repo := new(MockAccountRepo)
	licenses := new(MockLicenseChecker)

	gymHash := hashFor(t, "gympass1")
	repo.On("FindActiveByUsername", mock.Anything, "irongym").Return(&Account{
		ID: 2, Username: "irongym", PasswordHash: gymHash, Kind: KindGym, Active: true,
	}, nil)
	repo.On("TouchLastAccess", mock.Anything, 2).Return(nil)
	licenses.On("ActiveEndDate", mock.Anything, 2).Return(nil, nil)

	service := NewService(repo, licenses, nil, testSecret)
	_, err := service.Login(context.Background(), LoginRequest{Username: "irongym", Password: "gympass1"})

	assert.ErrorIs(t, err, ErrNoActiveLicense)
	repo.AssertCalled(t, "TouchLastAccess", mock.Anything, 2)
}

func TestService_RefreshToken(t *testing.T) {
	session := auth.Session{AccountID: 2, Username: "irongym", Kind: KindGym, GymName: "Iron Gym"}
	_, refreshToken, err := auth.GenerateTokens(session, testSecret)
	assert.NoError(t, err)

	t.Run("active account gets a new access token", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("FindByID", mock.Anything, 2).Return(&Account{ID: 2, Active: true}, nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		accessToken, got, err := service.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.Equal(t, 2, got.AccountID)
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("FindByID", mock.Anything, 2).Return(&Account{ID: 2, Active: false}, nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		_, _, err := service.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		service := NewService(new(MockAccountRepo), new(MockLicenseChecker), nil, testSecret)
		_, _, err := service.RefreshToken(context.Background(), "not-a-token")
		assert.Error(t, err)
	})
}

func TestService_CreateGym(t *testing.T) {
	req := CreateGymRequest{
		GymName:  "Iron Gym",
		Username: "irongym",
		Email:    "owner@irongym.com",
		Password: "gympass1",
	}

	t.Run("creates account and queues a notice", func(t *testing.T) {
		repo := new(MockAccountRepo)
		notifier := new(MockNotifier)

		repo.On("UsernameTaken", mock.Anything, "irongym", 0).Return(false, nil)
		repo.On("EmailTaken", mock.Anything, "owner@irongym.com", 0).Return(false, nil)
		repo.On("Create", mock.Anything, KindGym, "Iron Gym", "irongym", "owner@irongym.com", mock.AnythingOfType("string")).
			Return(&Account{ID: 2, Username: "irongym", Email: "owner@irongym.com", GymName: "Iron Gym", Kind: KindGym}, nil)
		notifier.On("GymProvisioned", mock.Anything, "owner@irongym.com", "Iron Gym", "irongym", "gympass1").Return(nil)

		service := NewService(repo, new(MockLicenseChecker), notifier, testSecret)
		acct, err := service.CreateGym(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, 2, acct.ID)
		notifier.AssertExpectations(t)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("UsernameTaken", mock.Anything, "irongym", 0).Return(true, nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		_, err := service.CreateGym(context.Background(), req)

		var conflict *ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "username", conflict.Field)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("UsernameTaken", mock.Anything, "irongym", 0).Return(false, nil)
		repo.On("EmailTaken", mock.Anything, "owner@irongym.com", 0).Return(true, nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		_, err := service.CreateGym(context.Background(), req)

		var conflict *ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "email", conflict.Field)
	})

	t.Run("notice failure does not fail the create", func(t *testing.T) {
		repo := new(MockAccountRepo)
		notifier := new(MockNotifier)

		repo.On("UsernameTaken", mock.Anything, "irongym", 0).Return(false, nil)
		repo.On("EmailTaken", mock.Anything, "owner@irongym.com", 0).Return(false, nil)
		repo.On("Create", mock.Anything, KindGym, "Iron Gym", "irongym", "owner@irongym.com", mock.AnythingOfType("string")).
			Return(&Account{ID: 2, Email: "owner@irongym.com", GymName: "Iron Gym", Username: "irongym"}, nil)
		notifier.On("GymProvisioned", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("redis down"))

		service := NewService(repo, new(MockLicenseChecker), notifier, testSecret)
		acct, err := service.CreateGym(context.Background(), req)

		assert.NoError(t, err)
		assert.NotNil(t, acct)
	})
}

func TestService_UpdateGym(t *testing.T) {
	t.Run("empty password keeps the current hash", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("UsernameTaken", mock.Anything, "irongym", 2).Return(false, nil)
		repo.On("EmailTaken", mock.Anything, "owner@irongym.com", 2).Return(false, nil)
		repo.On("Update", mock.Anything, 2, "Iron Gym", "irongym", "owner@irongym.com", (*string)(nil)).Return(nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		err := service.UpdateGym(context.Background(), 2, UpdateGymRequest{
			GymName: "Iron Gym", Username: "irongym", Email: "owner@irongym.com",
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("UsernameTaken", mock.Anything, "irongym", 2).Return(false, nil)
		repo.On("EmailTaken", mock.Anything, "owner@irongym.com", 2).Return(false, nil)
		repo.On("Update", mock.Anything, 2, "Iron Gym", "irongym", "owner@irongym.com", mock.MatchedBy(func(hash *string) bool {
			return hash != nil && auth.CheckPassword(*hash, "newpass1")
		})).Return(nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		err := service.UpdateGym(context.Background(), 2, UpdateGymRequest{
			GymName: "Iron Gym", Username: "irongym", Email: "owner@irongym.com", Password: "newpass1",
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_ChangePassword(t *testing.T) {
	currentHash := hashFor(t, "oldpass1")

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("FindByID", mock.Anything, 1).Return(&Account{ID: 1, PasswordHash: currentHash}, nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		err := service.ChangePassword(context.Background(), 1, ChangePasswordRequest{
			CurrentPassword: "wrong", NewPassword: "newpass1",
		})

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("stores a hash of the new password", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("FindByID", mock.Anything, 1).Return(&Account{ID: 1, PasswordHash: currentHash}, nil)
		repo.On("UpdatePassword", mock.Anything, 1, mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, "newpass1")
		})).Return(nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		err := service.ChangePassword(context.Background(), 1, ChangePasswordRequest{
			CurrentPassword: "oldpass1", NewPassword: "newpass1",
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_EnsureDefaultAdmin(t *testing.T) {
	t.Run("seeds when username is free", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("UsernameTaken", mock.Anything, "admin", 0).Return(false, nil)
		repo.On("Create", mock.Anything, KindAdmin, "FitApp Administration", "admin", "admin@fitapp.com", mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, "admin123")
		})).Return(&Account{ID: 1}, nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		err := service.EnsureDefaultAdmin(context.Background(), "admin", "admin123", "admin@fitapp.com")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("is a no-op when the admin already exists", func(t *testing.T) {
		repo := new(MockAccountRepo)
		repo.On("UsernameTaken", mock.Anything, "admin", 0).Return(true, nil)

		service := NewService(repo, new(MockLicenseChecker), nil, testSecret)
		err := service.EnsureDefaultAdmin(context.Background(), "admin", "admin123", "admin@fitapp.com")

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
