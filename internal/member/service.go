package member

import (
	"context"
	"errors"
	"time"
)

var ErrMemberNotFound = errors.New("member not found")

type Service interface {
	List(ctx context.Context, gymID int) ([]ListedMember, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	FindByNationalID(ctx context.Context, nationalID string, gymID int) (*MemberWithPlan, error)
	Create(ctx context.Context, gymID int, req MemberRequest) (*Member, error)
	Update(ctx context.Context, id int, req MemberRequest) error
	Delete(ctx context.Context, id int) error
	CheckStatus(ctx context.Context, memberID int, dueDate time.Time) (string, int, error)
	StatusStats(ctx context.Context, gymID int) (*StatusStats, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) List(ctx context.Context, gymID int) ([]ListedMember, error) {
	return s.repo.List(ctx, gymID)
}

func (s *service) GetByID(ctx context.Context, id int) (*Member, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func (s *service) FindByNationalID(ctx context.Context, nationalID string, gymID int) (*MemberWithPlan, error) {
	m, err := s.repo.FindByNationalID(ctx, nationalID, gymID)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func (s *service) Create(ctx context.Context, gymID int, req MemberRequest) (*Member, error) {
	taken, err := s.repo.NationalIDTaken(ctx, req.NationalID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ConflictError{NationalID: req.NationalID}
	}

	dueDate := s.now().AddDate(0, 0, MembershipDays)
	return s.repo.Create(ctx, gymID, req, dueDate)
}

// Update rejects national-ID collisions with other members and, on an
// Unpaid-to-Paid transition, restarts the 30-day membership period. Any
// other combination leaves the stored due date alone.
func (s *service) Update(ctx context.Context, id int, req MemberRequest) error {
	taken, err := s.repo.NationalIDTaken(ctx, req.NationalID, id)
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{NationalID: req.NationalID}
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrMemberNotFound
	}

	var newDueDate *time.Time
	if req.PaymentStatus == PaymentPaid && current.PaymentStatus == PaymentUnpaid {
		due := s.now().AddDate(0, 0, MembershipDays)
		newDueDate = &due
	}

	return s.repo.Update(ctx, id, req, newDueDate)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// CheckStatus derives the membership status from the due date. An
// expired membership is reconciled on the spot: the stored payment
// status drops to Unpaid so the next renewal restarts the period.
func (s *service) CheckStatus(ctx context.Context, memberID int, dueDate time.Time) (string, int, error) {
	days := daysBetween(s.now(), dueDate)

	switch {
	case days <= 0:
		if err := s.repo.MarkUnpaid(ctx, memberID); err != nil {
			return "", 0, err
		}
		return StatusExpired, 0, nil
	case days <= DueSoonWindowDays:
		return StatusDueSoon, days, nil
	default:
		return StatusCurrent, days, nil
	}
}

func (s *service) StatusStats(ctx context.Context, gymID int) (*StatusStats, error) {
	return s.repo.StatusStats(ctx, gymID)
}

// daysBetween counts whole calendar days from one date to another,
// ignoring the time of day on both ends.
func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
