package directory

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*User, error)

	// ResolveOrganization maps a user to its organization id; nil means the
	// user has no organization (solo accounts are valid).
	ResolveOrganization(ctx context.Context, userID string) (*string, error)

	// ListMembers returns members whose role is at or above minRole, ordered
	// by role rank ascending then created_at ascending.
	ListMembers(ctx context.Context, orgID string, minRole TeamRole) ([]User, error)

	// ListAdmins returns all platform admins ordered by created_at ascending.
	ListAdmins(ctx context.Context) ([]User, error)
}
