package account

import "context"

type Repository interface {
	FindActiveByUsername(ctx context.Context, username string) (*Account, error)
	FindByID(ctx context.Context, id int) (*Account, error)
	ListGyms(ctx context.Context) ([]Account, error)
	Create(ctx context.Context, kind, gymName, username, email, passwordHash string) (*Account, error)
	Update(ctx context.Context, id int, gymName, username, email string, passwordHash *string) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	ToggleActive(ctx context.Context, id int) (bool, error)
	TouchLastAccess(ctx context.Context, id int) error
	UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	GymName(ctx context.Context, id int) (string, error)
	ExportGyms(ctx context.Context) ([]GymExportRow, error)
}
