package license

import (
	"context"
	"time"
)

type Repository interface {
	Grant(ctx context.Context, accountID int, licenseType LicenseType, start, end time.Time, price float64) (*License, error)
	Revoke(ctx context.Context, id int) error
	ActiveEndDate(ctx context.Context, accountID int) (*time.Time, error)
	Stats(ctx context.Context) (*Stats, error)
	List(ctx context.Context) ([]ListedLicense, error)
	ListActiveGyms(ctx context.Context) ([]ActiveGym, error)
	GymContact(ctx context.Context, accountID int) (*GymContact, error)
	ContactForLicense(ctx context.Context, licenseID int) (*GymContact, error)
	ExportLicenses(ctx context.Context) ([]LicenseExportRow, error)
}
