package account

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials deliberately covers both an unknown username
	// and a wrong password so the login response never reveals whether an
	// account exists.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrNoActiveLicense = errors.New("this gym has no active license, contact the administrator")
	ErrLicenseExpired  = errors.New("the license has expired, contact the administrator to renew it")
	ErrAccountNotFound = errors.New("account not found")
	ErrWrongPassword   = errors.New("current password is incorrect")
)

// ConflictError reports a uniqueness violation on a specific field.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("an account with %s '%s' already exists", e.Field, e.Value)
}
