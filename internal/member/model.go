package member

import (
	"fmt"
	"time"
)

// Payment states stored on the member row.
const (
	PaymentPaid   = "Paid"
	PaymentUnpaid = "Unpaid"
)

// Membership status tags derived from the due date on read.
const (
	StatusCurrent = "current"
	StatusDueSoon = "due_soon"
	StatusExpired = "expired"
)

// DueSoonWindowDays is the span before the due date during which a
// membership reports due_soon instead of current.
const DueSoonWindowDays = 10

// MembershipDays is the period granted on registration and on each
// Unpaid-to-Paid transition.
const MembershipDays = 30

type Member struct {
	ID            int       `db:"id" json:"id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	NationalID    string    `db:"national_id" json:"national_id"`
	Phone         string    `db:"phone" json:"phone"`
	PlanID        *int      `db:"plan_id" json:"plan_id,omitempty"`
	RegisteredAt  time.Time `db:"registered_at" json:"registered_at"`
	DueDate       time.Time `db:"due_date" json:"due_date"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	GymID         int       `db:"gym_id" json:"gym_id"`
}

// ListedMember carries the plan name for table rendering.
type ListedMember struct {
	Member
	PlanName *string `db:"plan_name" json:"plan_name,omitempty"`
}

// MemberWithPlan is the check-in projection: identity plus the plan the
// member is enrolled under.
type MemberWithPlan struct {
	ID              int       `db:"id" json:"id"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	DueDate         time.Time `db:"due_date" json:"due_date"`
	PaymentStatus   string    `db:"payment_status" json:"payment_status"`
	PlanName        *string   `db:"plan_name" json:"plan_name,omitempty"`
	PlanDescription *string   `db:"plan_description" json:"plan_description,omitempty"`
}

type StatusStats struct {
	Total       int     `json:"total"`
	Paid        int     `json:"paid"`
	PercentPaid float64 `json:"percent_paid"`
}

// MemberExportRow is the flat projection behind the member report.
type MemberExportRow struct {
	ID            int       `db:"id"`
	FirstName     string    `db:"first_name"`
	LastName      string    `db:"last_name"`
	NationalID    string    `db:"national_id"`
	Phone         string    `db:"phone"`
	RegisteredAt  time.Time `db:"registered_at"`
	DueDate       time.Time `db:"due_date"`
	PaymentStatus string    `db:"payment_status"`
	PlanName      *string   `db:"plan_name"`
}

type MemberRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	NationalID    string `json:"national_id" binding:"required"`
	Phone         string `json:"phone"`
	PlanID        *int   `json:"plan_id"`
	PaymentStatus string `json:"payment_status" binding:"required,paymentstatus"`
}

// ConflictError reports a national-ID collision. The constraint is
// global across gyms: one person cannot be enrolled twice.
type ConflictError struct {
	NationalID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a member with national ID %s already exists", e.NationalID)
}
