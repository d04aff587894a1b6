package uowmock

import (
	"context"
	"errors"

	"equipmart-backend/internal/domain/sourcing"
	"equipmart-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinSourcingTxFn func(ctx context.Context, requestID string, fn func(r uow.Repos, s *sourcing.SourcingRequest) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough wires both tx methods straight through to the given repos,
// resolving the sourcing row via the repos themselves (no real locking).
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
		WithinSourcingTxFn: func(ctx context.Context, requestID string, fn func(r uow.Repos, s *sourcing.SourcingRequest) error) error {
			s, err := r.Sourcing.GetByRequestIDForUpdate(ctx, requestID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return sourcing.ErrNotFound
				}
				return err
			}
			return fn(r, s)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinSourcingTx(ctx context.Context, requestID string, fn func(r uow.Repos, s *sourcing.SourcingRequest) error) error {
	if m.WithinSourcingTxFn != nil {
		return m.WithinSourcingTxFn(ctx, requestID, fn)
	}
	return errUnimplemented
}
