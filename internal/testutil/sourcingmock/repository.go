package sourcingmock

import (
	"context"

	domain "equipmart-backend/internal/domain/sourcing"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies sourcing.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, s *domain.SourcingRequest) error
	SaveFn                    func(ctx context.Context, s *domain.SourcingRequest) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.SourcingRequest, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.SourcingRequest, error)
	ListOpenFn                func(ctx context.Context) ([]domain.SourcingRequest, error)
	AppendEventFn             func(ctx context.Context, e *domain.SourcingEvent) error
	ListEventsFn              func(ctx context.Context, requestID string) ([]domain.SourcingEvent, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.SourcingRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, s *domain.SourcingRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.SourcingRequest, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.SourcingRequest, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListOpen(ctx context.Context) ([]domain.SourcingRequest, error) {
	if m.ListOpenFn != nil {
		return m.ListOpenFn(ctx)
	}
	return nil, nil
}

func (m *Repo) AppendEvent(ctx context.Context, e *domain.SourcingEvent) error {
	if m.AppendEventFn != nil {
		return m.AppendEventFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListEvents(ctx context.Context, requestID string) ([]domain.SourcingEvent, error) {
	if m.ListEventsFn != nil {
		return m.ListEventsFn(ctx, requestID)
	}
	return nil, nil
}
