package repository

import (
	"context"

	"finsync/internal/domain/entity"
)

// RoleRepository manages the set of known roles. Roles are created lazily.
type RoleRepository interface {
	// EnsureRole creates the role if it does not exist yet.
	EnsureRole(ctx context.Context, role entity.Role) error

	// Exists reports whether the role is already part of the role set.
	Exists(ctx context.Context, role entity.Role) (bool, error)
}
