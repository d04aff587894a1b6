package notifymock

import (
	"context"
	"sync"

	domain "equipmart-backend/internal/domain/notification"
)

var _ domain.Emitter = (*Emitter)(nil)

// Sent captures one Notify call.
type Sent struct {
	UserID   string
	Kind     domain.Kind
	Title    string
	Message  string
	Metadata map[string]string
}

// Emitter records notifications; set Err to simulate delivery failure.
type Emitter struct {
	mu   sync.Mutex
	Err  error
	Sent []Sent
}

func (m *Emitter) Notify(ctx context.Context, userID string, kind domain.Kind, title, message string, metadata map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, Sent{UserID: userID, Kind: kind, Title: title, Message: message, Metadata: metadata})
	return nil
}

// SentTo returns how many notifications went to userID.
func (m *Emitter) SentTo(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.Sent {
		if s.UserID == userID {
			n++
		}
	}
	return n
}
