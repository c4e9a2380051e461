package roles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Nisith-Naman/Health/internal/domain/audit"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvariant    = errors.New("invariant violation")
)

// Auditor es el sink de auditoría. Puede ser nil (tests).
type Auditor interface {
	Record(ctx context.Context, e audit.Event) error
}

type Service struct {
	repo  Repository
	audit Auditor
	now   func() time.Time
}

func NewService(repo Repository, auditor Auditor) *Service {
	return &Service{
		repo:  repo,
		audit: auditor,
		now:   time.Now,
	}
}

// Bootstrap asigna administrator a la address de génesis, una sola vez.
// Si ya existe al menos un administrador, es un no-op (idempotente entre
// reinicios). Los cambios posteriores van solo por Grant/Revoke.
func (s *Service) Bootstrap(ctx context.Context, address string) error {
	address = normalize(address)
	if address == "" {
		return ErrInvalidInput
	}

	n, err := s.repo.CountByRole(ctx, RoleAdministrator)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	added, err := s.repo.Put(ctx, Assignment{
		Role:      RoleAdministrator,
		Address:   address,
		GrantedBy: "genesis",
		CreatedAt: s.now(),
	})
	if err != nil {
		return err
	}
	if added {
		s.record(ctx, audit.Event{
			Action:  audit.ActionRoleGrant,
			Actor:   "genesis",
			Subject: address,
			Detail:  string(RoleAdministrator),
		})
	}
	return nil
}

// Grant asigna role a target. Solo administradores.
// Re-asignar un rol ya tenido es un no-op exitoso.
func (s *Service) Grant(ctx context.Context, role Role, target, caller string) error {
	target = normalize(target)
	caller = normalize(caller)

	if !role.IsValid() {
		return ErrInvalidInput
	}
	if target == "" || caller == "" {
		return ErrInvalidInput
	}

	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}

	added, err := s.repo.Put(ctx, Assignment{
		Role:      role,
		Address:   target,
		GrantedBy: caller,
		CreatedAt: s.now(),
	})
	if err != nil {
		return err
	}

	if added {
		s.record(ctx, audit.Event{
			Action:  audit.ActionRoleGrant,
			Actor:   caller,
			Subject: target,
			Detail:  string(role),
		})
	}
	return nil
}

// Revoke quita role a target. Solo administradores.
// Quitar el último administrador viola la invariante del registro:
// falla con ErrInvariant y no toca la tabla.
func (s *Service) Revoke(ctx context.Context, role Role, target, caller string) error {
	target = normalize(target)
	caller = normalize(caller)

	if !role.IsValid() {
		return ErrInvalidInput
	}
	if target == "" || caller == "" {
		return ErrInvalidInput
	}

	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}

	if role == RoleAdministrator {
		holds, err := s.repo.Has(ctx, RoleAdministrator, target)
		if err != nil {
			return err
		}
		if holds {
			n, err := s.repo.CountByRole(ctx, RoleAdministrator)
			if err != nil {
				return err
			}
			if n <= 1 {
				return ErrInvariant
			}
		}
	}

	removed, err := s.repo.Delete(ctx, role, target)
	if err != nil {
		return err
	}

	if removed {
		s.record(ctx, audit.Event{
			Action:  audit.ActionRoleRevoke,
			Actor:   caller,
			Subject: target,
			Detail:  string(role),
		})
	}
	return nil
}

// Has es un predicado puro contra el estado actual, sin cache.
// La membresía de roles no es sensible: se consulta sin autorización.
func (s *Service) Has(ctx context.Context, role Role, address string) (bool, error) {
	address = normalize(address)
	if !role.IsValid() || address == "" {
		return false, ErrInvalidInput
	}
	return s.repo.Has(ctx, role, address)
}

// IsAdministrator es azúcar para los handlers de otros módulos.
func (s *Service) IsAdministrator(ctx context.Context, address string) (bool, error) {
	return s.Has(ctx, RoleAdministrator, address)
}

func (s *Service) requireAdmin(ctx context.Context, caller string) error {
	ok, err := s.repo.Has(ctx, RoleAdministrator, caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

// record emite auditoría best-effort: el resultado de la mutación
// nunca depende del sink.
func (s *Service) record(ctx context.Context, e audit.Event) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, e)
}

// Las addresses son opacas; solo se normalizan para comparar
// case-insensitive.
func normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
