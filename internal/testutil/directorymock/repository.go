package directorymock

import (
	"context"

	domain "equipmart-backend/internal/domain/directory"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies directory.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	GetByUserIDFn         func(ctx context.Context, userID string) (*domain.User, error)
	ResolveOrganizationFn func(ctx context.Context, userID string) (*string, error)
	ListMembersFn         func(ctx context.Context, orgID string, minRole domain.TeamRole) ([]domain.User, error)
	ListAdminsFn          func(ctx context.Context) ([]domain.User, error)
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) ResolveOrganization(ctx context.Context, userID string) (*string, error) {
	if m.ResolveOrganizationFn != nil {
		return m.ResolveOrganizationFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) ListMembers(ctx context.Context, orgID string, minRole domain.TeamRole) ([]domain.User, error) {
	if m.ListMembersFn != nil {
		return m.ListMembersFn(ctx, orgID, minRole)
	}
	return nil, nil
}

func (m *Repo) ListAdmins(ctx context.Context) ([]domain.User, error) {
	if m.ListAdminsFn != nil {
		return m.ListAdminsFn(ctx)
	}
	return nil, nil
}
