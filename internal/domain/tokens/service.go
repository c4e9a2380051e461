package tokens

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Nisith-Naman/Health/internal/domain/audit"
	"github.com/Nisith-Naman/Health/internal/domain/roles"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// RoleChecker gate para el mint (solo administradores mintean).
type RoleChecker interface {
	Has(ctx context.Context, role roles.Role, address string) (bool, error)
}

type Auditor interface {
	Record(ctx context.Context, e audit.Event) error
}

type Service struct {
	repo  Repository
	roles RoleChecker
	audit Auditor
	now   func() time.Time
}

func NewService(repo Repository, roleChecker RoleChecker, auditor Auditor) *Service {
	return &Service{
		repo:  repo,
		roles: roleChecker,
		audit: auditor,
		now:   time.Now,
	}
}

// Mint crea un token nuevo para owner. El ID lo asigna el repo.
func (s *Service) Mint(ctx context.Context, owner, caller string) (Token, error) {
	owner = normalize(owner)
	caller = normalize(caller)

	if owner == "" || caller == "" {
		return Token{}, ErrInvalidInput
	}

	isAdmin, err := s.roles.Has(ctx, roles.RoleAdministrator, caller)
	if err != nil {
		return Token{}, err
	}
	if !isAdmin {
		return Token{}, ErrUnauthorized
	}

	t, err := s.repo.Mint(ctx, Token{
		Owner:    owner,
		MintedBy: caller,
		MintedAt: s.now(),
	})
	if err != nil {
		return Token{}, err
	}

	s.record(ctx, audit.Event{
		Action:  audit.ActionTokenMint,
		Actor:   caller,
		Subject: owner,
		TokenID: &t.ID,
	})
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id uint64) (Token, error) {
	if id == 0 {
		return Token{}, ErrNotFound
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		// el sentinel del repo es suyo; hacia afuera el kind es uno solo
		return Token{}, ErrNotFound
	}
	return t, nil
}

// Transfer cambia el owner. Solo el owner actual puede transferir.
// Los access grants del token NO se revocan: el nuevo owner los ve
// vía el listado de grants y la auditoría, y decide él si revoca.
func (s *Service) Transfer(ctx context.Context, id uint64, newOwner, caller string) (Token, error) {
	newOwner = normalize(newOwner)
	caller = normalize(caller)

	if newOwner == "" || caller == "" {
		return Token{}, ErrInvalidInput
	}

	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Token{}, err
	}
	if t.Owner != caller {
		return Token{}, ErrUnauthorized
	}

	if err := s.repo.SetOwner(ctx, id, newOwner); err != nil {
		return Token{}, err
	}
	t.Owner = newOwner

	s.record(ctx, audit.Event{
		Action:  audit.ActionTokenTransfer,
		Actor:   caller,
		Subject: newOwner,
		TokenID: &id,
		Detail:  "access grants preexistentes se mantienen",
	})
	return t, nil
}

func (s *Service) ListByOwner(ctx context.Context, owner string) ([]Token, error) {
	owner = normalize(owner)
	if owner == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, owner)
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
