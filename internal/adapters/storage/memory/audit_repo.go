package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Nisith-Naman/Health/internal/domain/audit"
)

type auditRepo struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewAuditRepo() audit.Repository {
	return &auditRepo{}
}

func (r *auditRepo) Append(ctx context.Context, e audit.Event) error {
	if e.ID == "" {
		return errors.New("event id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	return nil
}

func (r *auditRepo) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	// más recientes primero
	out := make([]audit.Event, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}
