package entity

import (
	"strings"

	"github.com/pkg/errors"
)

// Role represents the single role an account holds.
type Role string

const (
	// RoleAdmin is given to the first account ever registered.
	RoleAdmin Role = "Admin"
	// RoleUser is given to every later account.
	RoleUser Role = "User"
)

// ErrUnknownRole is returned by ParseRole for values outside the role set.
var ErrUnknownRole = errors.New("unknown role")

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole accepts any casing of a known role name.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "user":
		return RoleUser, nil
	default:
		return "", errors.Wrapf(ErrUnknownRole, "%q", s)
	}
}

// RoleForNewAccount applies the first-account-is-admin rule.
func RoleForNewAccount(existingAccounts int64) Role {
	if existingAccounts == 0 {
		return RoleAdmin
	}

	return RoleUser
}
