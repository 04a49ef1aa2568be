package member

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context, gymID int) ([]ListedMember, error)
	FindByID(ctx context.Context, id int) (*Member, error)
	FindByNationalID(ctx context.Context, nationalID string, gymID int) (*MemberWithPlan, error)
	NationalIDTaken(ctx context.Context, nationalID string, excludeID int) (bool, error)
	Create(ctx context.Context, gymID int, req MemberRequest, dueDate time.Time) (*Member, error)
	Update(ctx context.Context, id int, req MemberRequest, newDueDate *time.Time) error
	MarkUnpaid(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	StatusStats(ctx context.Context, gymID int) (*StatusStats, error)
	ExportMembers(ctx context.Context, gymID int) ([]MemberExportRow, error)
}
