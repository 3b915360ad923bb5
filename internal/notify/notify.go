// Package notify replaces the browser's ambient toast event with a typed
// notification service: services raise messages, the storefront drains them.
package notify

import (
	"sync"

	"chefmarket-storefront/internal/domain"
)

// Notifier raises a user-facing message for a session.
type Notifier interface {
	Notify(sessionID string, n domain.Notification)
}

// Queue is an in-memory per-session notification queue.
type Queue struct {
	mu      sync.Mutex
	pending map[string][]domain.Notification
}

func NewQueue() *Queue {
	return &Queue{pending: make(map[string][]domain.Notification)}
}

func (q *Queue) Notify(sessionID string, n domain.Notification) {
	q.mu.Lock()
	q.pending[sessionID] = append(q.pending[sessionID], n)
	q.mu.Unlock()
}

// Drain returns and clears the pending notifications for a session.
func (q *Queue) Drain(sessionID string) []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending[sessionID]
	delete(q.pending, sessionID)
	return out
}
