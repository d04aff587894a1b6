package escalationmock

import (
	"context"

	domain "equipmart-backend/internal/domain/escalation"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies escalation.Repository.
type Repo struct {
	CreateFn    func(ctx context.Context, a *domain.Alert) error
	ListByDayFn func(ctx context.Context, day string) ([]domain.Alert, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Alert) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListByDay(ctx context.Context, day string) ([]domain.Alert, error) {
	if m.ListByDayFn != nil {
		return m.ListByDayFn(ctx, day)
	}
	return nil, nil
}
