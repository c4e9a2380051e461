package access

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Nisith-Naman/Health/internal/domain/audit"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// TokenOwnerLookup evita importar el paquete tokens (rompe ciclos).
// Siempre devuelve el owner ACTUAL: la autorización se decide en el
// punto de uso, nunca contra un snapshot viejo.
type TokenOwnerLookup interface {
	OwnerOf(ctx context.Context, tokenID uint64) (string, error)
}

type Auditor interface {
	Record(ctx context.Context, e audit.Event) error
}

type Service struct {
	repo   Repository
	owners TokenOwnerLookup
	audit  Auditor
	now    func() time.Time
}

func NewService(repo Repository, owners TokenOwnerLookup, auditor Auditor) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		audit:  auditor,
		now:    time.Now,
	}
}

// CanRead es el predicado central: true si address es el owner actual
// del token o tiene un grant vivo. Puro, sin side effects, recalculado
// en cada llamada (un revoke aplica en la lectura siguiente, sin delay
// de propagación).
func (s *Service) CanRead(ctx context.Context, tokenID uint64, address string) (bool, error) {
	address = normalize(address)
	if address == "" {
		return false, ErrInvalidInput
	}

	owner, err := s.owners.OwnerOf(ctx, tokenID)
	if err != nil {
		return false, ErrNotFound
	}
	if owner == address {
		return true, nil
	}

	g, err := s.repo.Get(ctx, tokenID, address)
	if errors.Is(err, ErrNotFound) {
		// sin grant => sin acceso, no es un error
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return g.live(s.now()), nil
}

// Grant otorga (o pisa) acceso de lectura para viewer.
// expiresAt nil = indefinido; un timestamp pasado es inválido.
// Solo el owner actual del token puede otorgar.
func (s *Service) Grant(ctx context.Context, tokenID uint64, viewer string, expiresAt *time.Time, caller string) (Grant, error) {
	viewer = normalize(viewer)
	caller = normalize(caller)
	if viewer == "" || caller == "" {
		return Grant{}, ErrInvalidInput
	}

	owner, err := s.owners.OwnerOf(ctx, tokenID)
	if err != nil {
		return Grant{}, ErrNotFound
	}
	if owner != caller {
		return Grant{}, ErrUnauthorized
	}
	if viewer == owner {
		// el owner siempre está autorizado; un self-grant solo
		// ensuciaría la tabla
		return Grant{}, ErrInvalidInput
	}

	now := s.now()
	if expiresAt != nil && !expiresAt.After(now) {
		return Grant{}, ErrInvalidInput
	}

	// solo ErrNotFound significa "sin grant previo"; otra falla de
	// storage corta la operación
	g, err := s.repo.Get(ctx, tokenID, viewer)
	switch {
	case errors.Is(err, ErrNotFound):
		g = Grant{
			ID:        uuid.NewString(),
			TokenID:   tokenID,
			Viewer:    viewer,
			CreatedAt: now,
		}
	case err != nil:
		return Grant{}, err
	}
	g.GrantedBy = caller
	g.ExpiresAt = expiresAt
	g.UpdatedAt = now

	if err := s.repo.Upsert(ctx, g); err != nil {
		return Grant{}, err
	}

	detail := "indefinite"
	if expiresAt != nil {
		detail = "until " + expiresAt.UTC().Format(time.RFC3339)
	}
	s.record(ctx, audit.Event{
		Action:  audit.ActionAccessGrant,
		Actor:   caller,
		Subject: viewer,
		TokenID: &tokenID,
		Detail:  detail,
	})
	return g, nil
}

// Revoke elimina el grant de viewer. Idempotente: revocar algo que no
// existe es un no-op exitoso y no toca ningún otro grant.
func (s *Service) Revoke(ctx context.Context, tokenID uint64, viewer, caller string) error {
	viewer = normalize(viewer)
	caller = normalize(caller)
	if viewer == "" || caller == "" {
		return ErrInvalidInput
	}

	owner, err := s.owners.OwnerOf(ctx, tokenID)
	if err != nil {
		return ErrNotFound
	}
	if owner != caller {
		return ErrUnauthorized
	}

	removed, err := s.repo.Delete(ctx, tokenID, viewer)
	if err != nil {
		return err
	}

	if removed {
		s.record(ctx, audit.Event{
			Action:  audit.ActionAccessRevoke,
			Actor:   caller,
			Subject: viewer,
			TokenID: &tokenID,
		})
	}
	return nil
}

// ListByToken enumera los grants del token. Solo el owner.
func (s *Service) ListByToken(ctx context.Context, tokenID uint64, caller string) ([]Grant, error) {
	caller = normalize(caller)
	if caller == "" {
		return nil, ErrInvalidInput
	}

	owner, err := s.owners.OwnerOf(ctx, tokenID)
	if err != nil {
		return nil, ErrNotFound
	}
	if owner != caller {
		return nil, ErrUnauthorized
	}

	return s.repo.ListByToken(ctx, tokenID)
}

// LiveGrants cuenta cuántos grants del token siguen vivos ahora.
// Lo usa el handler de transfer para que el cambio de owner no
// esconda accesos preexistentes.
func (s *Service) LiveGrants(ctx context.Context, tokenID uint64) (int, error) {
	items, err := s.repo.ListByToken(ctx, tokenID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	n := 0
	for _, g := range items {
		if g.live(now) {
			n++
		}
	}
	return n, nil
}

func (s *Service) record(ctx context.Context, e audit.Event) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, e)
}

func normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
