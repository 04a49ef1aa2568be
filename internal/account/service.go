package account

import (
	"context"
	"time"

	"github.com/FrancoGW/fit-app/internal/auth"
	"github.com/FrancoGW/fit-app/internal/logger"
	"github.com/FrancoGW/fit-app/internal/metrics"
)

// LicenseChecker is the slice of the license store the login flow needs.
// A nil end date means the account has no active license.
type LicenseChecker interface {
	ActiveEndDate(ctx context.Context, accountID int) (*time.Time, error)
}

// Notifier delivers provisioning notices. Failures are logged, never
// surfaced: email is best-effort.
type Notifier interface {
	GymProvisioned(ctx context.Context, email, gymName, username, password string) error
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *auth.Session, error)
	GetByID(ctx context.Context, id int) (*Account, error)
	ListGyms(ctx context.Context) ([]Account, error)
	CreateGym(ctx context.Context, req CreateGymRequest) (*Account, error)
	UpdateGym(ctx context.Context, id int, req UpdateGymRequest) error
	ToggleActive(ctx context.Context, id int) (bool, error)
	ChangePassword(ctx context.Context, id int, req ChangePasswordRequest) error
	EnsureDefaultAdmin(ctx context.Context, username, password, email string) error
}

type service struct {
	repo      Repository
	licenses  LicenseChecker
	notifier  Notifier
	jwtSecret string
}

func NewService(repo Repository, licenses LicenseChecker, notifier Notifier, jwtSecret string) Service {
	return &service{
		repo:      repo,
		licenses:  licenses,
		notifier:  notifier,
		jwtSecret: jwtSecret,
	}
}

// Login runs the authentication state machine: active account lookup,
// password check, last-access stamp, then the license gate for gyms.
// The last-access stamp commits before the license gate on purpose, so
// a gym with an expired license still shows up as recently seen.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	acct, err := s.repo.FindActiveByUsername(ctx, req.Username)
	if err != nil {
		metrics.RecordLogin("unknown", "rejected")
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(acct.PasswordHash, req.Password) {
		metrics.RecordLogin(acct.Kind, "rejected")
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.TouchLastAccess(ctx, acct.ID); err != nil {
		return nil, err
	}

	session := auth.Session{
		AccountID: acct.ID,
		Username:  acct.Username,
		Kind:      acct.Kind,
	}

	if acct.Kind == KindGym {
		endDate, err := s.licenses.ActiveEndDate(ctx, acct.ID)
		if err != nil {
			return nil, err
		}
		if endDate == nil {
			metrics.RecordLogin(acct.Kind, "rejected")
			return nil, ErrNoActiveLicense
		}
		if endDate.Before(time.Now()) {
			metrics.RecordLogin(acct.Kind, "rejected")
			return nil, ErrLicenseExpired
		}

		session.GymName = acct.GymName
		session.LicenseExpiry = endDate.Format("2006-01-02")
	}

	accessToken, refreshToken, err := auth.GenerateTokens(session, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	metrics.RecordLogin(acct.Kind, "success")

	return &LoginResponse{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccountID:     session.AccountID,
		Kind:          session.Kind,
		GymName:       session.GymName,
		LicenseExpiry: session.LicenseExpiry,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *auth.Session, error) {
	newAccessToken, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	// The account may have been deactivated since the refresh token was
	// issued; re-check before minting a new access token.
	acct, err := s.repo.FindByID(ctx, claims.AccountID)
	if err != nil || !acct.Active {
		return "", nil, ErrAccountNotFound
	}

	session := claims.Session
	return newAccessToken, &session, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListGyms(ctx context.Context) ([]Account, error) {
	return s.repo.ListGyms(ctx)
}

func (s *service) CreateGym(ctx context.Context, req CreateGymRequest) (*Account, error) {
	if err := s.checkConflicts(ctx, req.Username, req.Email, 0); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	acct, err := s.repo.Create(ctx, KindGym, req.GymName, req.Username, req.Email, passwordHash)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.GymProvisioned(ctx, acct.Email, acct.GymName, acct.Username, req.Password); err != nil {
			logger.Errorf("Failed to queue provisioning notice for %s: %v", acct.Email, err)
		}
	}

	return acct, nil
}

func (s *service) UpdateGym(ctx context.Context, id int, req UpdateGymRequest) error {
	if err := s.checkConflicts(ctx, req.Username, req.Email, id); err != nil {
		return err
	}

	var passwordHash *string
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return err
		}
		passwordHash = &hash
	}

	return s.repo.Update(ctx, id, req.GymName, req.Username, req.Email, passwordHash)
}

func (s *service) ToggleActive(ctx context.Context, id int) (bool, error) {
	return s.repo.ToggleActive(ctx, id)
}

func (s *service) ChangePassword(ctx context.Context, id int, req ChangePasswordRequest) error {
	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrAccountNotFound
	}

	if !auth.CheckPassword(acct.PasswordHash, req.CurrentPassword) {
		return ErrWrongPassword
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

// EnsureDefaultAdmin seeds the admin account on first run. The password
// is hashed at seed time, so changing ADMIN_PASSWORD only affects fresh
// databases.
func (s *service) EnsureDefaultAdmin(ctx context.Context, username, password, email string) error {
	taken, err := s.repo.UsernameTaken(ctx, username, 0)
	if err != nil {
		return err
	}
	if taken {
		return nil
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = s.repo.Create(ctx, KindAdmin, "FitApp Administration", username, email, passwordHash)
	if err != nil {
		return err
	}

	logger.Infof("Default admin account '%s' created", username)
	return nil
}

func (s *service) checkConflicts(ctx context.Context, username, email string, excludeID int) error {
	taken, err := s.repo.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{Field: "username", Value: username}
	}

	taken, err = s.repo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{Field: "email", Value: email}
	}

	return nil
}
