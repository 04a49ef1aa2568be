package attendance

import (
	"context"

	"github.com/FrancoGW/fit-app/internal/member"
	"github.com/FrancoGW/fit-app/internal/metrics"
)

type Service interface {
	CheckIn(ctx context.Context, gymID int, nationalID string) (*CheckInResult, error)
	Register(ctx context.Context, memberID int) (*Attendance, error)
	MonthlyCount(ctx context.Context, gymID int) (int, error)
	MonthlyList(ctx context.Context, gymID int) ([]MonthlyRow, error)
}

type service struct {
	repo    Repository
	members member.Service
}

func NewService(repo Repository, members member.Service) Service {
	return &service{repo: repo, members: members}
}

// CheckIn is the front-desk flow: find the member by national ID, append
// the attendance record, then derive the membership status. The record
// is kept even when the membership turns out to be expired; the desk
// decides whether the member gets through.
func (s *service) CheckIn(ctx context.Context, gymID int, nationalID string) (*CheckInResult, error) {
	m, err := s.members.FindByNationalID(ctx, nationalID, gymID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Register(ctx, m.ID); err != nil {
		return nil, err
	}

	status, daysRemaining, err := s.members.CheckStatus(ctx, m.ID, m.DueDate)
	if err != nil {
		return nil, err
	}
	if status == member.StatusExpired {
		m.PaymentStatus = member.PaymentUnpaid
	}

	metrics.RecordCheckIn(status)

	return &CheckInResult{
		Member:        m,
		Status:        status,
		DaysRemaining: daysRemaining,
	}, nil
}

func (s *service) Register(ctx context.Context, memberID int) (*Attendance, error) {
	return s.repo.Register(ctx, memberID)
}

func (s *service) MonthlyCount(ctx context.Context, gymID int) (int, error) {
	return s.repo.MonthlyCount(ctx, gymID)
}

func (s *service) MonthlyList(ctx context.Context, gymID int) ([]MonthlyRow, error) {
	return s.repo.MonthlyList(ctx, gymID)
}
