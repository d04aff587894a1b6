package sourcing

import "context"

type Repository interface {
	Create(ctx context.Context, s *SourcingRequest) error
	Save(ctx context.Context, s *SourcingRequest) error
	GetByRequestID(ctx context.Context, requestID string) (*SourcingRequest, error)
	// GetByRequestIDForUpdate locks the row for the current transaction.
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*SourcingRequest, error)
	// ListOpen returns every non-closed request, oldest first.
	ListOpen(ctx context.Context) ([]SourcingRequest, error)

	AppendEvent(ctx context.Context, e *SourcingEvent) error
	ListEvents(ctx context.Context, requestID string) ([]SourcingEvent, error)
}
