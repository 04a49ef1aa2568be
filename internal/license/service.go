package license

import (
	"context"
	"errors"
	"time"

	"github.com/FrancoGW/fit-app/internal/logger"
	"github.com/FrancoGW/fit-app/internal/metrics"
)

var ErrInvalidStartDate = errors.New("start date must be in YYYY-MM-DD format")

// Notifier delivers license notices to gym owners. Best-effort; a failed
// notice never fails the grant or revocation.
type Notifier interface {
	LicenseGranted(ctx context.Context, email, gymName, licenseType string, endDate time.Time) error
	LicenseRevoked(ctx context.Context, email, gymName string) error
}

type Service interface {
	Grant(ctx context.Context, req GrantRequest) (*License, error)
	Revoke(ctx context.Context, licenseID int) error
	ActiveInfo(ctx context.Context, accountID int) (*Info, error)
	Stats(ctx context.Context) (*Stats, error)
	List(ctx context.Context) ([]ListedLicense, error)
	ListActiveGyms(ctx context.Context) ([]ActiveGym, error)
}

type service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) Grant(ctx context.Context, req GrantRequest) (*License, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidStartDate
	}

	licenseType := LicenseType(req.Type)
	end := start.AddDate(0, 0, licenseType.Days())

	lic, err := s.repo.Grant(ctx, req.AccountID, licenseType, start, end, req.Price)
	if err != nil {
		return nil, err
	}

	metrics.RecordLicenseGrant(string(licenseType))

	if s.notifier != nil {
		if contact, err := s.repo.GymContact(ctx, req.AccountID); err == nil {
			if err := s.notifier.LicenseGranted(ctx, contact.Email, contact.GymName, string(licenseType), end); err != nil {
				logger.Errorf("Failed to queue license notice for account %d: %v", req.AccountID, err)
			}
		}
	}

	return lic, nil
}

func (s *service) Revoke(ctx context.Context, licenseID int) error {
	// Resolve the contact before the flag flips; afterwards the license
	// row no longer identifies itself as the one being revoked.
	var contact *GymContact
	if s.notifier != nil {
		contact, _ = s.repo.ContactForLicense(ctx, licenseID)
	}

	if err := s.repo.Revoke(ctx, licenseID); err != nil {
		return err
	}

	metrics.RecordLicenseRevocation()

	if s.notifier != nil && contact != nil {
		if err := s.notifier.LicenseRevoked(ctx, contact.Email, contact.GymName); err != nil {
			logger.Errorf("Failed to queue revocation notice for license %d: %v", licenseID, err)
		}
	}

	return nil
}

// ActiveInfo returns nil when the account has no active license.
func (s *service) ActiveInfo(ctx context.Context, accountID int) (*Info, error) {
	endDate, err := s.repo.ActiveEndDate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if endDate == nil {
		return nil, nil
	}

	daysLeft := int(time.Until(*endDate).Hours() / 24)

	return &Info{EndDate: *endDate, DaysLeft: daysLeft}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *service) List(ctx context.Context) ([]ListedLicense, error) {
	return s.repo.List(ctx)
}

func (s *service) ListActiveGyms(ctx context.Context) ([]ActiveGym, error) {
	return s.repo.ListActiveGyms(ctx)
}
