package license

import "time"

type LicenseType string

const (
	TypeMonthly    LicenseType = "monthly"
	TypeQuarterly  LicenseType = "quarterly"
	TypeSemiannual LicenseType = "semiannual"
	TypeAnnual     LicenseType = "annual"
)

// Days returns the duration of a license type. Unrecognized types fall
// back to 30 days rather than failing; the admin UI only offers the four
// known types, so the fallback matters for imported data only.
func (t LicenseType) Days() int {
	switch t {
	case TypeMonthly:
		return 30
	case TypeQuarterly:
		return 90
	case TypeSemiannual:
		return 180
	case TypeAnnual:
		return 365
	default:
		return 30
	}
}

type License struct {
	ID        int         `db:"id" json:"id"`
	AccountID int         `db:"account_id" json:"account_id"`
	Type      LicenseType `db:"type" json:"type"`
	StartDate time.Time   `db:"start_date" json:"start_date"`
	EndDate   time.Time   `db:"end_date" json:"end_date"`
	Price     float64     `db:"price" json:"price"`
	Active    bool        `db:"active" json:"active"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// ListedLicense is a license joined with its owning gym's name.
type ListedLicense struct {
	License
	GymName string `db:"gym_name" json:"gym_name"`
}

// Info describes the active license of one gym. DaysLeft is signed; a
// negative value means the end date is already past.
type Info struct {
	EndDate  time.Time `json:"end_date"`
	DaysLeft int       `json:"days_left"`
}

type Stats struct {
	TotalGyms      int     `json:"total_gyms"`
	ActiveGyms     int     `json:"active_gyms"`
	ActiveLicenses int     `json:"active_licenses"`
	TotalRevenue   float64 `json:"total_revenue"`
	PercentActive  float64 `json:"percent_active"`
}

// ActiveGym is the short projection offered by the grant form.
type ActiveGym struct {
	ID      int    `db:"id" json:"id"`
	GymName string `db:"gym_name" json:"gym_name"`
}

// GymContact is the address a license notice goes to.
type GymContact struct {
	Email   string `db:"email"`
	GymName string `db:"gym_name"`
}

// LicenseExportRow is the flat projection behind the license report.
type LicenseExportRow struct {
	ID        int       `db:"id"`
	GymName   string    `db:"gym_name"`
	Type      string    `db:"type"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Price     float64   `db:"price"`
	Active    bool      `db:"active"`
}

type GrantRequest struct {
	AccountID int     `json:"account_id" binding:"required"`
	Type      string  `json:"type" binding:"required,licensetype"`
	StartDate string  `json:"start_date" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}
