package account

import "time"

// Account kinds. The admin account is created once at bootstrap; every
// other account is a gym provisioned through the admin API.
const (
	KindAdmin = "admin"
	KindGym   = "gym"
)

type Account struct {
	ID           int        `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Email        string     `db:"email" json:"email"`
	Kind         string     `db:"kind" json:"kind"`
	GymName      string     `db:"gym_name" json:"gym_name"`
	RegisteredAt time.Time  `db:"registered_at" json:"registered_at"`
	LastAccessAt *time.Time `db:"last_access_at" json:"last_access_at,omitempty"`
	Active       bool       `db:"active" json:"active"`
}

// GymExportRow is the flat projection behind the gym report.
type GymExportRow struct {
	ID           int        `db:"id"`
	GymName      string     `db:"gym_name"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	RegisteredAt time.Time  `db:"registered_at"`
	LastAccessAt *time.Time `db:"last_access_at"`
	Active       bool       `db:"active"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
	AccountID     int    `json:"account_id"`
	Kind          string `json:"kind"`
	GymName       string `json:"gym_name,omitempty"`
	LicenseExpiry string `json:"license_expiry,omitempty"`
}

type CreateGymRequest struct {
	GymName  string `json:"gym_name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateGymRequest struct {
	GymName  string `json:"gym_name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	// Empty password keeps the current one.
	Password string `json:"password" binding:"omitempty,min=6"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}
