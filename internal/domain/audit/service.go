package audit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record persiste un evento completando ID y CreatedAt.
// Los services llaman esto best-effort: una mutación nunca falla
// porque el sink de auditoría falló.
func (s *Service) Record(ctx context.Context, e Event) error {
	if e.Action == "" || strings.TrimSpace(e.Actor) == "" {
		return ErrInvalidInput
	}

	e.ID = uuid.NewString()
	e.Actor = strings.ToLower(strings.TrimSpace(e.Actor))
	e.Subject = strings.ToLower(strings.TrimSpace(e.Subject))
	e.CreatedAt = s.now()

	return s.repo.Append(ctx, e)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}
