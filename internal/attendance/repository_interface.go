package attendance

import "context"

type Repository interface {
	Register(ctx context.Context, memberID int) (*Attendance, error)
	MonthlyCount(ctx context.Context, gymID int) (int, error)
	MonthlyList(ctx context.Context, gymID int) ([]MonthlyRow, error)
	ExportAttendance(ctx context.Context, gymID int) ([]MonthlyRow, error)
}
