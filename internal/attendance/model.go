package attendance

import (
	"time"

	"github.com/FrancoGW/fit-app/internal/member"
)

type Attendance struct {
	ID         int       `db:"id" json:"id"`
	MemberID   int       `db:"member_id" json:"member_id"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// MonthlyRow is one check-in joined with the member's identity; it backs
// both the monthly listing and the attendance report.
type MonthlyRow struct {
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	NationalID string    `db:"national_id" json:"national_id"`
}

type CheckInRequest struct {
	NationalID string `json:"national_id" binding:"required"`
}

// CheckInResult is what the front desk sees after a swipe: who came in
// and where their membership stands.
type CheckInResult struct {
	Member        *member.MemberWithPlan `json:"member"`
	Status        string                 `json:"status"`
	DaysRemaining int                    `json:"days_remaining"`
}
