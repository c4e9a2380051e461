package audit

import "context"

type Repository interface {
	Append(ctx context.Context, e Event) error
	// ListRecent devuelve eventos en orden CreatedAt desc, hasta limit.
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
